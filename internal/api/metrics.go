package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devghori1264/aerophoenix/osplugin/internal/metrics"
)

// RegisterMetrics registers the osplugin collectors and serves them on /metrics
func RegisterMetrics(mux *http.ServeMux) {
	metrics.Register()
	mux.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}
