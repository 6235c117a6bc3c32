package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "osplugin"

var (
	rpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Lifecycle RPCs handled, by method and result status.",
		},
		[]string{"method", "status"},
	)

	rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Latency of lifecycle RPCs.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	backendCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_calls_total",
			Help:      "Calls made to the orchestration backend, by operation and result.",
		},
		[]string{"op", "result"},
	)

	backendLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_call_duration_seconds",
			Help:      "Latency of orchestration backend calls.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"op"},
	)

	reconcileTicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_ticks_total",
			Help:      "Reconciliation polls, by outcome.",
		},
		[]string{"outcome"},
	)

	reconcileActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reconcile_active",
			Help:      "Instances with a scheduled reconciliation poll.",
		},
	)

	packageAdmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "package_admissions_total",
			Help:      "Package uploads, by result.",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			rpcRequests,
			rpcDuration,
			backendCalls,
			backendLatency,
			reconcileTicks,
			reconcileActive,
			packageAdmissions,
		)
	})
}

// RecordRPC counts one handled RPC.
func RecordRPC(method, status string, elapsed time.Duration) {
	rpcRequests.WithLabelValues(method, status).Inc()
	rpcDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// RecordBackendCall counts one backend call.
func RecordBackendCall(op string, err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	backendCalls.WithLabelValues(op, result).Inc()
	backendLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

// RecordReconcileTick counts one reconciliation poll.
func RecordReconcileTick(outcome string) {
	reconcileTicks.WithLabelValues(outcome).Inc()
}

// SetReconcileActive sets the number of instances with a pending poll.
func SetReconcileActive(n int) {
	reconcileActive.Set(float64(n))
}

// RecordAdmission counts one package upload.
func RecordAdmission(result string) {
	packageAdmissions.WithLabelValues(result).Inc()
}
