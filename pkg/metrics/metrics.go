package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/g-uva/job-scheduling-sim/pkg/core"
)

// Recorder exposes per-policy simulation results as Prometheus metrics.
type Recorder struct {
	registry      *prometheus.Registry
	runs          *prometheus.CounterVec
	failures      *prometheus.CounterVec
	totalTime     *prometheus.GaugeVec
	avgTurnaround *prometheus.GaugeVec
	jobs          *prometheus.GaugeVec
}

// NewRecorder registers the simulator collectors on a fresh registry.
func NewRecorder() *Recorder {
	labels := []string{"policy", "quantum"}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scheduler_runs_total",
				Help: "Total number of completed policy simulations.",
			},
			labels,
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scheduler_run_failures_total",
				Help: "Total number of policy simulations rejected before running.",
			},
			[]string{"policy"},
		),
		totalTime: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scheduler_total_time_units",
				Help: "Total batch processing time of the last run.",
			},
			labels,
		),
		avgTurnaround: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scheduler_avg_turnaround_units",
				Help: "Average job turnaround time of the last run (truncated).",
			},
			labels,
		),
		jobs: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scheduler_batch_jobs",
				Help: "Number of jobs in the last simulated batch.",
			},
			labels,
		),
	}
	r.registry.MustRegister(r.runs, r.failures, r.totalTime, r.avgTurnaround, r.jobs)
	return r
}

// Observe records one successful run.
func (r *Recorder) Observe(res core.Result) {
	q := strconv.Itoa(res.Quantum)
	r.runs.WithLabelValues(res.Policy, q).Inc()
	r.totalTime.WithLabelValues(res.Policy, q).Set(float64(res.TotalTime))
	r.avgTurnaround.WithLabelValues(res.Policy, q).Set(float64(res.AvgTurnaround))
	r.jobs.WithLabelValues(res.Policy, q).Set(float64(res.Jobs))
}

// ObserveFailure counts a rejected run for the named strategy.
func (r *Recorder) ObserveFailure(policy string) {
	r.failures.WithLabelValues(policy).Inc()
}

// Registry returns the registry backing this recorder.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the recorder's metrics in the exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string, log logrus.FieldLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Infof("[Prometheus] Starting metrics server on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
