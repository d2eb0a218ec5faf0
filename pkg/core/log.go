package core

// LogEntry records one job completion during a simulated run.
type LogEntry struct {
	JobID      int
	Requested  int
	Turnaround int64
	Order      int // 0-based position in completion order
}

// Result is the outcome of running one policy over a batch.
type Result struct {
	Policy        string
	Quantum       int // 0 for non-preemptive policies
	Jobs          int
	TotalTime     int64
	AvgTurnaround int64
	Log           []LogEntry
}

// Turnarounds returns the per-job turnaround times in completion order.
func (r Result) Turnarounds() []int64 {
	out := make([]int64, len(r.Log))
	for i, e := range r.Log {
		out[i] = e.Turnaround
	}
	return out
}

// tally accumulates elapsed time and the sum of completion times for one run.
type tally struct {
	elapsed int64
	sum     int64
	log     []LogEntry
}

// advance moves the clock forward by units of work.
func (t *tally) advance(units int) { t.elapsed += int64(units) }

// complete stamps j with the current elapsed time and folds it into the sum.
func (t *tally) complete(j *Job) {
	j.Turnaround = t.elapsed
	t.sum += t.elapsed
	t.log = append(t.log, LogEntry{
		JobID:      j.ID,
		Requested:  j.Requested,
		Turnaround: j.Turnaround,
		Order:      len(t.log),
	})
}

func (t *tally) result(policy string, quantum, n int) Result {
	return Result{
		Policy:        policy,
		Quantum:       quantum,
		Jobs:          n,
		TotalTime:     t.elapsed,
		AvgTurnaround: t.sum / int64(n),
		Log:           t.log,
	}
}
