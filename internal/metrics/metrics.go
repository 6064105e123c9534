package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tallerhub/aiops-reporter/internal/models"
)

const (
	// OutcomeSuccess labels check runs that produced a report.
	OutcomeSuccess = "success"
	// OutcomeError labels check runs aborted by a data-source failure.
	OutcomeError = "error"
)

// Registry owns every exported series for the process. It is constructed once
// at startup and handed to the components that publish; there is no ambient
// global registry. Series are never removed, only their values change.
type Registry struct {
	registry *prometheus.Registry

	checksTotal     *prometheus.CounterVec
	checkSeconds    prometheus.Histogram
	anomalySeverity *prometheus.GaugeVec
}

// New builds a Registry with the reporter's instruments plus the default
// Go runtime and process collectors.
func New() (*Registry, error) {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		checksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aiops",
				Name:      "business_checks_total",
				Help:      "Total number of business check runs, partitioned by outcome.",
			},
			[]string{"outcome"},
		),
		checkSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "aiops",
				Name:      "business_check_seconds",
				Help:      "Business check pipeline latency in seconds.",
				Buckets:   []float64{0.25, 0.5, 1, 2, 3, 4, 5, 6, 8, 10, 15},
			},
		),
		anomalySeverity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "aiops",
				Name:      "anomaly_severity",
				Help:      "Last computed anomaly severity (0=normal, 1=potential, 2=critical) per category.",
			},
			[]string{"category"},
		),
	}

	cs := []prometheus.Collector{
		r.checksTotal,
		r.checkSeconds,
		r.anomalySeverity,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return nil, err
		}
	}
	return r, nil
}

// ObserveCheck records one pipeline run with its duration and outcome label.
func (r *Registry) ObserveCheck(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	r.checksTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	r.checkSeconds.Observe(duration.Seconds())
}

// SetAnomalySeverity overwrites the severity gauge for the given category.
// Last writer wins; prior values for the same label are replaced, not summed.
func (r *Registry) SetAnomalySeverity(category string, severity models.Severity) {
	if category == "" {
		category = "General"
	}
	r.anomalySeverity.WithLabelValues(category).Set(float64(severity))
}

// Handler exposes the scrape endpoint for every registered series.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
