package core

import (
	"container/list"
	"fmt"

	"github.com/g-uva/job-scheduling-sim/pkg/minheap"
)

const (
	PolicyFIFO       = "FIFO"
	PolicyRoundRobin = "RR"
	PolicySJF        = "SJF"
)

// FIFO runs every job to completion in batch order.
func FIFO(b Batch) (Result, error) {
	if len(b) == 0 {
		return Result{}, fmt.Errorf("%s: %w", PolicyFIFO, ErrEmptyBatch)
	}
	jobs := b.Clone()

	var t tally
	for i := range jobs {
		t.advance(jobs[i].Requested)
		jobs[i].Remaining = 0
		t.complete(&jobs[i])
	}
	return t.result(PolicyFIFO, 0, len(jobs)), nil
}

// RoundRobin serves the front of a FIFO queue for at most quantum units,
// sending unfinished jobs to the tail.
func RoundRobin(b Batch, quantum int) (Result, error) {
	if quantum < 1 {
		return Result{}, fmt.Errorf("%s: %w (got %d)", PolicyRoundRobin, ErrInvalidQuantum, quantum)
	}
	if len(b) == 0 {
		return Result{}, fmt.Errorf("%s: %w", PolicyRoundRobin, ErrEmptyBatch)
	}

	queue := list.New()
	for _, j := range b {
		queue.PushBack(j)
	}

	var t tally
	for queue.Len() > 0 {
		j := queue.Remove(queue.Front()).(Job)
		slice := min(j.Remaining, quantum)
		t.advance(slice)
		j.Remaining -= slice

		if j.Remaining > 0 {
			queue.PushBack(j)
			continue
		}
		t.complete(&j)
	}
	return t.result(PolicyRoundRobin, quantum, len(b)), nil
}

// ShortestJobFirst serves jobs in ascending order of remaining time, drawn
// from a min-heap built once over the batch.
func ShortestJobFirst(b Batch) (Result, error) {
	if len(b) == 0 {
		return Result{}, fmt.Errorf("%s: %w", PolicySJF, ErrEmptyBatch)
	}
	jobs := b.Clone()
	h := minheap.New(jobs, func(x, y Job) bool { return x.Remaining < y.Remaining })
	h.Build()

	var t tally
	end := len(jobs) - 1
	for ; end > 0; end-- {
		serve(&t, &jobs[0])
		h.ExtractMin(end)
	}
	// the loop stops with one job left at the root
	serve(&t, &jobs[0])

	return t.result(PolicySJF, 0, len(jobs)), nil
}

func serve(t *tally, j *Job) {
	t.advance(j.Requested)
	j.Remaining = 0
	t.complete(j)
}
