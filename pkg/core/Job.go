package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBatch is returned when a policy is asked to schedule zero jobs.
	ErrEmptyBatch = errors.New("batch has no jobs")
	// ErrInvalidQuantum is returned by RoundRobin for a time slice below 1.
	ErrInvalidQuantum = errors.New("time quantum must be at least 1")
	// ErrInvalidJobDuration is returned when a job requests no processing time.
	ErrInvalidJobDuration = errors.New("requested time must be positive")
)

// Job is one unit of CPU work in a batch. Every job arrives at batch start,
// so Turnaround is the elapsed batch time at the instant the job finished.
type Job struct {
	ID         int
	Requested  int   // total work units, fixed at creation
	Remaining  int   // work units still owed; 0 <= Remaining <= Requested
	Turnaround int64 // zero until the job completes
}

// NewJob returns a fresh job with Remaining set to the requested time.
func NewJob(id, requested int) (Job, error) {
	if requested <= 0 {
		return Job{}, fmt.Errorf("job %d: %w (got %d)", id, ErrInvalidJobDuration, requested)
	}
	return Job{ID: id, Requested: requested, Remaining: requested}, nil
}

// Done reports whether the job has received all of its requested time.
func (j Job) Done() bool { return j.Remaining == 0 }
