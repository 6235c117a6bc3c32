package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/devghori1264/aerophoenix/osplugin/internal/metrics"
)

func TestMetricsEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	RegisterMetrics(mux)
	metrics.RecordRPC("instantiate", "Success", 5*time.Millisecond)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `osplugin_rpc_requests_total{method="instantiate",status="Success"}`)
}
