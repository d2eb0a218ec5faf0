package benchmark

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/g-uva/job-scheduling-sim/pkg/core"
)

// BenchmarkRecord is one strategy's outcome over the adapter's batch.
type BenchmarkRecord struct {
	RunID     string
	Timestamp time.Time
	Strategy  string
	Result    core.Result
	Err       error
}

// Observer receives every successful result, e.g. a metrics recorder or a store.
type Observer func(runID string, res core.Result) error

// BenchmarkAdapter runs a set of strategies over one batch.
type BenchmarkAdapter struct {
	Batch      core.Batch
	Strategies []core.Strategy
	Observers  []Observer
	Log        logrus.FieldLogger

	RunID   string
	Results []BenchmarkRecord
}

// RunBenchmark runs every strategy in order. A rejected strategy is recorded
// with its error and does not stop the others.
func (ba *BenchmarkAdapter) RunBenchmark() {
	log := ba.logger()
	if ba.RunID == "" {
		ba.RunID = uuid.NewString()
	}

	for _, s := range ba.Strategies {
		res, err := s.Schedule(ba.Batch)
		rec := BenchmarkRecord{
			RunID:     ba.RunID,
			Timestamp: time.Now(),
			Strategy:  s.Name(),
			Result:    res,
			Err:       err,
		}
		ba.Results = append(ba.Results, rec)

		if err != nil {
			log.WithField("strategy", s.Name()).Warnf("[Benchmark] Failed to schedule batch: %v", err)
			continue
		}
		log.WithFields(logrus.Fields{
			"strategy":       s.Name(),
			"jobs":           res.Jobs,
			"total_time":     res.TotalTime,
			"avg_turnaround": res.AvgTurnaround,
		}).Info("[Benchmark] Strategy finished")

		for _, obs := range ba.Observers {
			if err := obs(ba.RunID, res); err != nil {
				log.WithField("strategy", s.Name()).Errorf("[Benchmark] Observer failed: %v", err)
			}
		}
	}
}

// Succeeded returns the results of every strategy that ran.
func (ba *BenchmarkAdapter) Succeeded() []core.Result {
	var out []core.Result
	for _, r := range ba.Results {
		if r.Err == nil {
			out = append(out, r.Result)
		}
	}
	return out
}

func (ba *BenchmarkAdapter) logger() logrus.FieldLogger {
	if ba.Log != nil {
		return ba.Log
	}
	return logrus.StandardLogger()
}
