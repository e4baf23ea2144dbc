package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Namespace for all metrics
	namespace = "mediator"
	// Subsystem for dispatch metrics
	subsystem = "dispatch"
)

// Registry is the global Prometheus registry for all metrics.
// It stays nil until InitRegistry is called, which disables collection.
var Registry *prometheus.Registry

// InitRegistry initializes the Prometheus registry with Go runtime and process collectors.
// Should be called once at application startup if metrics are enabled.
func InitRegistry() *prometheus.Registry {
	Registry = prometheus.NewRegistry()
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Handler exposes a registry in the Prometheus text format
func Handler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
