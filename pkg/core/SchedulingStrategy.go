package core

import "fmt"

// Strategy lets drivers run every policy through one call shape.
type Strategy interface {
	Name() string
	Schedule(b Batch) (Result, error)
}

type FCFS struct{}

func (s FCFS) Name() string                     { return PolicyFIFO }
func (s FCFS) Schedule(b Batch) (Result, error) { return FIFO(b) }

type RR struct {
	Quantum int
}

func (s RR) Name() string                     { return fmt.Sprintf("%s(q=%d)", PolicyRoundRobin, s.Quantum) }
func (s RR) Schedule(b Batch) (Result, error) { return RoundRobin(b, s.Quantum) }

type SJF struct{}

func (s SJF) Name() string                     { return PolicySJF }
func (s SJF) Schedule(b Batch) (Result, error) { return ShortestJobFirst(b) }

// DefaultStrategies is the classic comparison: FIFO, SJF, then round robin
// at each of the given quanta in order.
func DefaultStrategies(quanta ...int) []Strategy {
	out := []Strategy{FCFS{}, SJF{}}
	for _, q := range quanta {
		out = append(out, RR{Quantum: q})
	}
	return out
}
