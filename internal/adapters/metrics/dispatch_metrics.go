package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// Dispatch outcome labels
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusInvalid = "invalid"
)

// DispatchMetricsCollector records request dispatch metrics
type DispatchMetricsCollector struct {
	dispatchDuration *prometheus.HistogramVec
	dispatchesTotal  *prometheus.CounterVec
	inFlight         prometheus.Gauge
}

// NewDispatchMetricsCollector creates a new dispatch metrics collector
func NewDispatchMetricsCollector() *DispatchMetricsCollector {
	return &DispatchMetricsCollector{
		dispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "duration_seconds",
				Help:      "Request dispatch duration distribution",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 5.0},
			},
			[]string{"request", "status"},
		),
		dispatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total number of dispatched requests by type and status",
			},
			[]string{"request", "status"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "in_flight",
				Help:      "Number of requests currently being dispatched",
			},
		),
	}
}

// Register registers all dispatch metrics with reg, or with the global Registry when reg is nil
func (c *DispatchMetricsCollector) Register(reg prometheus.Registerer) error {
	if reg == nil {
		if Registry == nil {
			return nil // Metrics not enabled
		}
		reg = Registry
	}

	for _, metric := range []prometheus.Collector{c.dispatchDuration, c.dispatchesTotal, c.inFlight} {
		if err := reg.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordDispatch records one finished dispatch
func (c *DispatchMetricsCollector) RecordDispatch(requestName string, duration float64, err error) {
	status := StatusFor(err)
	c.dispatchDuration.WithLabelValues(requestName, status).Observe(duration)
	c.dispatchesTotal.WithLabelValues(requestName, status).Inc()
}

// StatusFor maps a dispatch error to its status label
func StatusFor(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, mediator.ErrValidation):
		return StatusInvalid
	default:
		return StatusError
	}
}
