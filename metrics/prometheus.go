package metrics

import (
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Prometheus records into its own registry.
type Prometheus struct {
	registry    *prom.Registry
	events      *prom.CounterVec
	selected    *prom.CounterVec
	weights     *prom.GaugeVec
	fileSeconds *prom.HistogramVec
}

// NewPrometheus creates a recorder backed by a fresh registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prom.NewRegistry(),
		events: prom.NewCounterVec(prom.CounterOpts{
			Name: "zll_events_total",
			Help: "Number of events read",
		}, []string{"tool", "sample"}),
		selected: prom.NewCounterVec(prom.CounterOpts{
			Name: "zll_events_selected_total",
			Help: "Number of events written or filled",
		}, []string{"tool", "sample"}),
		weights: prom.NewGaugeVec(prom.GaugeOpts{
			Name: "zll_selected_weight_sum",
			Help: "Signed sum of the weights of selected events",
		}, []string{"tool", "sample"}),
		fileSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "zll_file_seconds",
			Help:    "Time spent processing one input file",
			Buckets: prom.ExponentialBuckets(0.1, 4, 8),
		}, []string{"tool"}),
	}
	p.registry.MustRegister(p.events, p.selected, p.weights, p.fileSeconds)
	return p
}

func (p *Prometheus) IncEvents(tool, sample string) {
	p.events.WithLabelValues(tool, sample).Inc()
}

func (p *Prometheus) IncSelected(tool, sample string) {
	p.selected.WithLabelValues(tool, sample).Inc()
}

// AddWeight accumulates w, negative generator weights included.
func (p *Prometheus) AddWeight(tool, sample string, w float64) {
	p.weights.WithLabelValues(tool, sample).Add(w)
}

func (p *Prometheus) ObserveFileSeconds(tool string, seconds float64) {
	p.fileSeconds.WithLabelValues(tool).Observe(seconds)
}

func (p *Prometheus) Gatherer() prom.Gatherer { return p.registry }

// WriteTextfile dumps the registry in the Prometheus text format.
func (p *Prometheus) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("could not write metrics to %q: %w", path, err)
	}
	return nil
}

// EnableTextfile installs a Prometheus recorder and returns the function
// that writes its state to path. An empty path keeps the no-op recorder.
func EnableTextfile(path string) func() error {
	if path == "" {
		return func() error { return nil }
	}
	p := NewPrometheus()
	SetRecorder(p)
	return func() error { return p.WriteTextfile(path) }
}
