package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
)

// Recorder observes relay outcomes. A nil *Metrics is a valid no-op Recorder.
type Recorder interface {
	ObserveRelay(outcome string)
	ObserveUpstream(d time.Duration)
}

type Metrics struct {
	relayTotal       *prometheus.CounterVec
	upstreamDuration prometheus.Histogram
}

// NewMetrics registers the relay collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		relayTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "poshchat",
			Name:      "relay_total",
			Help:      "Chat relay requests by outcome.",
		}, []string{"outcome"}),
		upstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "poshchat",
			Name:      "upstream_duration_seconds",
			Help:      "Latency of provider completion calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		}),
	}
	reg.MustRegister(m.relayTotal, m.upstreamDuration)
	return m
}

func (m *Metrics) ObserveRelay(outcome string) {
	if m == nil {
		return
	}
	m.relayTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveUpstream(d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.Observe(d.Seconds())
}
