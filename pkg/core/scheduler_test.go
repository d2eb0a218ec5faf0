package core

import (
	"errors"
	"math/rand"
	"sort"
	"testing"
)

func mustBatch(t *testing.T, times ...int) Batch {
	t.Helper()
	b, err := NewBatch(times...)
	if err != nil {
		t.Fatalf("NewBatch(%v): %v", times, err)
	}
	return b
}

func randomBatch(t *testing.T, rng *rand.Rand, n int) Batch {
	t.Helper()
	times := make([]int, n)
	for i := range times {
		times[i] = rng.Intn(n) + 1
	}
	return mustBatch(t, times...)
}

func equalInt64s(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFIFO_ConcreteBatch(t *testing.T) {
	res, err := FIFO(mustBatch(t, 5, 3, 8))
	if err != nil {
		t.Fatalf("FIFO: %v", err)
	}
	if res.TotalTime != 16 {
		t.Errorf("expected total 16, got %d", res.TotalTime)
	}
	if res.AvgTurnaround != 9 {
		t.Errorf("expected avg 9, got %d", res.AvgTurnaround)
	}
	if got := res.Turnarounds(); !equalInt64s(got, []int64{5, 8, 16}) {
		t.Errorf("expected turnarounds [5 8 16], got %v", got)
	}
}

func TestShortestJobFirst_ConcreteBatch(t *testing.T) {
	res, err := ShortestJobFirst(mustBatch(t, 5, 3, 8))
	if err != nil {
		t.Fatalf("SJF: %v", err)
	}
	if res.TotalTime != 16 || res.AvgTurnaround != 9 {
		t.Errorf("expected (16, 9), got (%d, %d)", res.TotalTime, res.AvgTurnaround)
	}
	if got := res.Turnarounds(); !equalInt64s(got, []int64{3, 8, 16}) {
		t.Errorf("expected turnarounds [3 8 16], got %v", got)
	}
	wantOrder := []int{1, 0, 2}
	for i, e := range res.Log {
		if e.JobID != wantOrder[i] {
			t.Errorf("completion %d: expected job %d, got job %d", i, wantOrder[i], e.JobID)
		}
	}
}

func TestRoundRobin_ConcreteBatch(t *testing.T) {
	res, err := RoundRobin(mustBatch(t, 5, 3, 8), 2)
	if err != nil {
		t.Fatalf("RoundRobin: %v", err)
	}
	if res.TotalTime != 16 {
		t.Errorf("expected total 16, got %d", res.TotalTime)
	}
	// completions: job 1 at 9, job 0 at 12, job 2 at 16 -> 37/3
	if res.AvgTurnaround != 12 {
		t.Errorf("expected avg 12, got %d", res.AvgTurnaround)
	}
	if got := res.Turnarounds(); !equalInt64s(got, []int64{9, 12, 16}) {
		t.Errorf("expected turnarounds [9 12 16], got %v", got)
	}
	wantOrder := []int{1, 0, 2}
	for i, e := range res.Log {
		if e.JobID != wantOrder[i] {
			t.Errorf("completion %d: expected job %d, got job %d", i, wantOrder[i], e.JobID)
		}
	}
	if res.Quantum != 2 {
		t.Errorf("expected quantum 2 recorded, got %d", res.Quantum)
	}
}

func TestPolicies_RejectEmptyBatch(t *testing.T) {
	runs := map[string]func(Batch) (Result, error){
		"FIFO": FIFO,
		"SJF":  ShortestJobFirst,
		"RR":   func(b Batch) (Result, error) { return RoundRobin(b, 4) },
	}
	for name, run := range runs {
		if _, err := run(Batch{}); !errors.Is(err, ErrEmptyBatch) {
			t.Errorf("%s: expected ErrEmptyBatch, got %v", name, err)
		}
		if _, err := run(nil); !errors.Is(err, ErrEmptyBatch) {
			t.Errorf("%s(nil): expected ErrEmptyBatch, got %v", name, err)
		}
	}
}

func TestRoundRobin_RejectsInvalidQuantum(t *testing.T) {
	b := mustBatch(t, 5, 3, 8)
	for _, q := range []int{0, -1, -20} {
		if _, err := RoundRobin(b, q); !errors.Is(err, ErrInvalidQuantum) {
			t.Errorf("quantum %d: expected ErrInvalidQuantum, got %v", q, err)
		}
	}
}

func TestNewBatch_RejectsNonPositiveDuration(t *testing.T) {
	for _, times := range [][]int{{0}, {3, -2, 4}, {1, 2, 0}} {
		if _, err := NewBatch(times...); !errors.Is(err, ErrInvalidJobDuration) {
			t.Errorf("NewBatch(%v): expected ErrInvalidJobDuration, got %v", times, err)
		}
	}
}

func TestPolicies_ConserveWork(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		b := randomBatch(t, rng, rng.Intn(60)+1)
		want := b.TotalWork()
		for _, s := range DefaultStrategies(1, 3, 20, 1000) {
			res, err := s.Schedule(b)
			if err != nil {
				t.Fatalf("%s: %v", s.Name(), err)
			}
			if res.TotalTime != want {
				t.Errorf("%s: expected total %d, got %d", s.Name(), want, res.TotalTime)
			}
			if len(res.Log) != len(b) {
				t.Errorf("%s: expected %d completions, got %d", s.Name(), len(b), len(res.Log))
			}
		}
	}
}

func TestFIFO_TurnaroundIsPrefixSum(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := randomBatch(t, rng, 40)
	res, err := FIFO(b)
	if err != nil {
		t.Fatalf("FIFO: %v", err)
	}
	var prefix int64
	for i, j := range b {
		prefix += int64(j.Requested)
		if res.Log[i].JobID != j.ID || res.Log[i].Turnaround != prefix {
			t.Fatalf("job %d: expected turnaround %d, got %+v", j.ID, prefix, res.Log[i])
		}
	}
}

func TestShortestJobFirst_NeverWorseThanFIFO(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		b := randomBatch(t, rng, rng.Intn(100)+1)
		fifo, err := FIFO(b)
		if err != nil {
			t.Fatalf("FIFO: %v", err)
		}
		sjf, err := ShortestJobFirst(b)
		if err != nil {
			t.Fatalf("SJF: %v", err)
		}
		if sjf.AvgTurnaround > fifo.AvgTurnaround {
			t.Errorf("trial %d: SJF avg %d worse than FIFO avg %d", trial, sjf.AvgTurnaround, fifo.AvgTurnaround)
		}
		for i := 1; i < len(sjf.Log); i++ {
			if sjf.Log[i].Requested < sjf.Log[i-1].Requested {
				t.Fatalf("trial %d: SJF served %d after %d", trial, sjf.Log[i].Requested, sjf.Log[i-1].Requested)
			}
		}
	}
}

func TestShortestJobFirst_MatchesFIFOOnSortedBatch(t *testing.T) {
	times := []int{9, 1, 4, 4, 7, 2, 30}
	sort.Ints(times)
	b := mustBatch(t, times...)
	fifo, _ := FIFO(b)
	sjf, _ := ShortestJobFirst(b)
	if fifo.AvgTurnaround != sjf.AvgTurnaround {
		t.Errorf("expected equal averages on sorted batch, FIFO %d vs SJF %d", fifo.AvgTurnaround, sjf.AvgTurnaround)
	}
	if !equalInt64s(fifo.Turnarounds(), sjf.Turnarounds()) {
		t.Errorf("expected identical turnarounds, FIFO %v vs SJF %v", fifo.Turnarounds(), sjf.Turnarounds())
	}
}

func TestRoundRobin_TurnaroundAtLeastRequested(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	b := randomBatch(t, rng, 30)
	for _, q := range []int{1, 2, 5, 10, 15, 20, 100} {
		res, err := RoundRobin(b, q)
		if err != nil {
			t.Fatalf("q=%d: %v", q, err)
		}
		for _, e := range res.Log {
			if e.Turnaround < int64(e.Requested) {
				t.Errorf("q=%d job %d: turnaround %d below requested %d", q, e.JobID, e.Turnaround, e.Requested)
			}
		}
	}
}

func TestRoundRobin_LargeQuantumMatchesFIFO(t *testing.T) {
	b := mustBatch(t, 5, 3, 8, 1, 12)
	fifo, _ := FIFO(b)
	rr, err := RoundRobin(b, 12)
	if err != nil {
		t.Fatalf("RoundRobin: %v", err)
	}
	if rr.TotalTime != fifo.TotalTime || rr.AvgTurnaround != fifo.AvgTurnaround {
		t.Errorf("expected FIFO metrics (%d, %d), got (%d, %d)",
			fifo.TotalTime, fifo.AvgTurnaround, rr.TotalTime, rr.AvgTurnaround)
	}
}

func TestPolicies_DoNotMutateInput(t *testing.T) {
	b := mustBatch(t, 5, 3, 8, 2, 2, 9)
	before := b.Clone()
	for _, s := range DefaultStrategies(2, 4) {
		if _, err := s.Schedule(b); err != nil {
			t.Fatalf("%s: %v", s.Name(), err)
		}
	}
	for i := range b {
		if b[i] != before[i] {
			t.Fatalf("input mutated at %d: expected %+v, got %+v", i, before[i], b[i])
		}
	}
}

func TestPolicies_SingleJob(t *testing.T) {
	b := mustBatch(t, 7)
	for _, s := range DefaultStrategies(3) {
		res, err := s.Schedule(b)
		if err != nil {
			t.Fatalf("%s: %v", s.Name(), err)
		}
		if res.TotalTime != 7 || res.AvgTurnaround != 7 {
			t.Errorf("%s: expected (7, 7), got (%d, %d)", s.Name(), res.TotalTime, res.AvgTurnaround)
		}
	}
}

func TestAvgTurnaround_Truncates(t *testing.T) {
	// turnarounds 1, 2, 4 -> 7/3
	res, _ := FIFO(mustBatch(t, 1, 1, 2))
	if res.AvgTurnaround != 2 {
		t.Errorf("expected truncated avg 2, got %d", res.AvgTurnaround)
	}
}
