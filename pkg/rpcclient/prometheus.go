package rpcclient

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/russellwmy/near-api-go/pkg/nearrpc"
)

// Metrics used in monitoring service.
var (
	rpcCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of RPC calls made by method",
			Name:      "rpc_calls_total",
			Namespace: "nearapi",
		},
		[]string{"method"},
	)
	rpcErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of failed RPC calls by method and error class",
			Name:      "rpc_errors_total",
			Namespace: "nearapi",
		},
		[]string{"method", "class"},
	)
	rpcTimes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Help:      "RPC call time",
			Name:      "rpc_call_duration_seconds",
			Namespace: "nearapi",
		},
		[]string{"method"},
	)
)

// Error classes used as metric labels.
const (
	classTransport = "transport"
	classLegacy    = "legacy"
	classUnknown   = "unknown"
)

func init() {
	prometheus.MustRegister(
		rpcCalls,
		rpcErrors,
		rpcTimes,
	)
}

func addCallMetrics(method string, t time.Duration, err error) {
	rpcCalls.WithLabelValues(method).Inc()
	rpcTimes.WithLabelValues(method).Observe(t.Seconds())
	if err != nil {
		rpcErrors.WithLabelValues(method, errorClass(err)).Inc()
	}
}

func errorClass(err error) string {
	var rpcErr *nearrpc.Error
	switch {
	case nearrpc.IsTransportError(err):
		return classTransport
	case errors.As(err, &rpcErr):
		if rpcErr.IsLegacy() {
			return classLegacy
		}
		return rpcErr.Name
	default:
		return classUnknown
	}
}
