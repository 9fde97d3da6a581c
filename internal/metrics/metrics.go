package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeStored       = "stored"
	OutcomeNoCoordinate = "no_coordinate"
	OutcomeStoreFailed  = "store_failed"
	OutcomeError        = "error"
)

const (
	resultComputationsTotal   = "spotcontest_result_computations_total"
	resultComputationDuration = "spotcontest_result_computation_duration_seconds"
	resultCandidates          = "spotcontest_result_candidates"
)

// Recorder collects winner computation metrics on its own registry.
type Recorder struct {
	registry     *prometheus.Registry
	computations *prometheus.CounterVec
	duration     prometheus.Histogram
	candidates   prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: resultComputationsTotal,
			Help: "Count of winner computations by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    resultComputationDuration,
			Help:    "Duration of winner computations",
			Buckets: prometheus.DefBuckets,
		}),
		candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    resultCandidates,
			Help:    "Number of scored tickets per winner computation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	// default collectors
	r.registry.MustRegister(collectors.NewGoCollector())
	r.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r.registry.MustRegister(r.computations, r.duration, r.candidates)

	return r
}

func (r *Recorder) ObserveComputation(outcome string, elapsed time.Duration, candidates int) {
	r.computations.WithLabelValues(outcome).Inc()
	r.duration.Observe(elapsed.Seconds())
	if candidates >= 0 {
		r.candidates.Observe(float64(candidates))
	}
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
