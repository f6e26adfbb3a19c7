package publisher

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "publisher"
	metricsSubsystem = "pipeline"
)

// Recorder is the ambient observability seam RunCoordinator reports
// through. It is adapted from the service_layer package's
// Prometheus-backed Recorder, trimmed from that package's generic
// lazy-registration label system down to the fixed counters/histogram/
// gauge this domain actually needs: one recorder per process, shared
// across all three publisher families, distinguished by a "family"
// label ("steam"/"web"/"mobile").
type Recorder struct {
	registry *prometheus.Registry

	runsTotal    *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	targetsTotal *prometheus.CounterVec
	activeRuns   *prometheus.GaugeVec

	mu         sync.Mutex
	registered bool
}

// NewRecorder builds a Recorder backed by reg. If reg is nil, a private
// registry is created so tests never collide with the process default
// registerer.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Recorder{
		registry: reg,
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "runs_total",
			Help:      "Total publish runs completed, by family and terminal status.",
		}, []string{"family", "status"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "run_duration_seconds",
			Help:      "Publish run wall-clock duration in seconds, by family.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"family"}),
		targetsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "targets_total",
			Help:      "Total targets executed, by family, kind, and status.",
		}, []string{"family", "kind", "status"}),
		activeRuns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "active_runs",
			Help:      "Publish runs currently in flight, by family.",
		}, []string{"family"}),
	}
	r.register()
	return r
}

func (r *Recorder) register() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.registered {
		return
	}
	r.registry.MustRegister(r.runsTotal, r.runDuration, r.targetsTotal, r.activeRuns)
	r.registered = true
}

// Registry exposes the underlying *prometheus.Registry so a CLI or
// server can mount /metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RunStarted increments the in-flight gauge for family.
func (r *Recorder) RunStarted(family string) {
	if r == nil {
		return
	}
	r.activeRuns.WithLabelValues(family).Inc()
}

// RunFinished decrements the in-flight gauge and records the completed
// run's status and duration.
func (r *Recorder) RunFinished(family string, status Status, durationMS int64) {
	if r == nil {
		return
	}
	r.activeRuns.WithLabelValues(family).Dec()
	r.runsTotal.WithLabelValues(family, string(status)).Inc()
	r.runDuration.WithLabelValues(family).Observe(float64(durationMS) / 1000.0)
}

// TargetFinished records one target's outcome.
func (r *Recorder) TargetFinished(family, kind string, status Status) {
	if r == nil {
		return
	}
	r.targetsTotal.WithLabelValues(family, kind, string(status)).Inc()
}
