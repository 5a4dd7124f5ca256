package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "goutly"

// Recorder counts analysis calls by kind and outcome and tracks their latency.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	recorder := &Recorder{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_requests_total",
			Help:      "Meal analysis and advisory calls by kind and outcome.",
		}, []string{"kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Latency of meal analysis and advisory calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		}, []string{"kind"}),
	}

	registry.MustRegister(
		recorder.requests,
		recorder.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return recorder
}

func (recorder *Recorder) ObserveAnalysis(kind string, outcome string, duration time.Duration) {
	recorder.requests.WithLabelValues(kind, outcome).Inc()
	recorder.duration.WithLabelValues(kind).Observe(duration.Seconds())
}

func (recorder *Recorder) Registry() *prometheus.Registry {
	return recorder.registry
}

func (recorder *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(recorder.registry, promhttp.HandlerOpts{})
}
