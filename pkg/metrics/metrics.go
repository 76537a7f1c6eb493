package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/the-dev-tools/folio/pkg/errmap"
)

var OperationCount = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "folio",
	Subsystem: "movable",
	Name:      "operations",
}, []string{"collection", "operation", "result"})

var OperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "folio",
	Subsystem: "movable",
	Name:      "operation_duration_seconds",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
}, []string{"collection", "operation"})

var ReorderSessions = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "folio",
	Subsystem: "reorder",
	Name:      "sessions_open",
})

var CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "folio",
	Subsystem: "portfolio",
	Name:      "cache_lookups",
}, []string{"collection", "result"})

var ContactSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "folio",
	Subsystem: "contact",
	Name:      "submissions",
}, []string{"result"})

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		OperationCount,
		OperationDuration,
		ReorderSessions,
		CacheLookups,
		ContactSubmissions,
	}
}

// Register adds every folio collector to reg. Registering twice is not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// StoreRecorder feeds engine operations into OperationCount and OperationDuration.
type StoreRecorder struct{}

func (StoreRecorder) ObserveOperation(collection, operation string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = string(errmap.CodeOf(err))
	}
	OperationCount.WithLabelValues(collection, operation, result).Inc()
	OperationDuration.WithLabelValues(collection, operation).Observe(elapsed.Seconds())
}
