package core

// Batch is an ordered set of jobs known up front. Order is the FIFO service
// order and the initial round-robin queue order.
type Batch []Job

// NewBatch builds a batch from requested times, assigning IDs 0..n-1.
// It fails on the first non-positive duration.
func NewBatch(times ...int) (Batch, error) {
	b := make(Batch, 0, len(times))
	for i, t := range times {
		j, err := NewJob(i, t)
		if err != nil {
			return nil, err
		}
		b = append(b, j)
	}
	return b, nil
}

// Clone returns an independent copy; mutating it never touches b.
func (b Batch) Clone() Batch {
	out := make(Batch, len(b))
	copy(out, b)
	return out
}

// Durations returns the requested time of every job in batch order.
func (b Batch) Durations() []int {
	out := make([]int, len(b))
	for i, j := range b {
		out[i] = j.Requested
	}
	return out
}

// TotalWork is the sum of requested times, the total processing time of the
// batch under any policy.
func (b Batch) TotalWork() int64 {
	var sum int64
	for _, j := range b {
		sum += int64(j.Requested)
	}
	return sum
}
