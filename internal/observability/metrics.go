// Package observability holds the Prometheus collectors exported on /metrics.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	httpDurationHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "exercise_tracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of HTTP requests by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	usersCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Name:      "users_created_total",
		Help:      "Number of users registered.",
	})

	exercisesRecordedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Name:      "exercises_recorded_total",
		Help:      "Number of exercises recorded.",
	})

	lastExerciseGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exercise_tracker",
		Name:      "last_exercise_recorded_timestamp_seconds",
		Help:      "Unix timestamp of the most recently recorded exercise.",
	})
)

func init() {
	prometheus.MustRegister(
		httpRequestsCounter,
		httpDurationHistogram,
		usersCreatedCounter,
		exercisesRecordedCounter,
		lastExerciseGauge,
	)
}

// RecordUserCreated increments the user registration counter.
func RecordUserCreated() {
	usersCreatedCounter.Inc()
}

// RecordExercise increments the exercise counter and moves the watermark gauge.
func RecordExercise(recordedAt time.Time) {
	exercisesRecordedCounter.Inc()
	if recordedAt.IsZero() {
		return
	}
	lastExerciseGauge.Set(float64(recordedAt.Unix()))
}

// Middleware records request counts and latency per chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequestsCounter.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpDurationHistogram.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
