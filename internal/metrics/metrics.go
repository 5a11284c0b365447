package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "qmikke"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	httpInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_in_flight_requests",
		Help:      "Current number of in-flight HTTP requests",
	})

	scanOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_attempts_total",
		Help:      "Scan attempts by classification",
	}, []string{"result"})

	goalsFinalized = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "goals_finalized_total",
		Help:      "Sessions that reached the goal on this instance",
	})

	openEventGoals = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "open_event_goals",
		Help:      "Goaled sessions per currently open event",
	}, []string{"event_id"})
)

// Middleware records request metrics. Routes are labelled by their pattern, not the raw path,
// to keep cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method": ctx.Request.Method,
			"route":  route,
			"status": strconv.Itoa(ctx.Writer.Status()),
		}
		httpRequests.With(labels).Inc()
		httpLatency.With(labels).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveScan(result string) {
	scanOutcomes.WithLabelValues(result).Inc()
}

func ObserveGoal() {
	goalsFinalized.Inc()
}

// SetOpenEventGoals replaces the per-event goal gauge with counts.
func SetOpenEventGoals(counts map[uint]int64) {
	openEventGoals.Reset()
	for eventID, n := range counts {
		openEventGoals.WithLabelValues(strconv.FormatUint(uint64(eventID), 10)).Set(float64(n))
	}
}
