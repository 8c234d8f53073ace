// Package observability регистрирует метрики Prometheus сервиса.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fitness_api"

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests processed, by method, route template and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	cascadeDeletes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "integrity",
		Name:      "cascade_deletes_total",
		Help:      "Completed cascade deletions by root entity.",
	}, []string{"entity"})

	blockedDeletes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "integrity",
		Name:      "blocked_exercise_deletes_total",
		Help:      "Exercise deletions rejected because the exercise is used in workouts.",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, cascadeDeletes, blockedDeletes)
}

// ObserveHTTP учитывает завершённый HTTP-запрос. route - шаблон маршрута gin,
// для неизвестных маршрутов передаётся "unmatched".
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordCascadeDelete учитывает успешное каскадное удаление user или workout.
func RecordCascadeDelete(entity string) {
	cascadeDeletes.WithLabelValues(entity).Inc()
}

// RecordBlockedExerciseDelete учитывает отказ в удалении используемого упражнения.
func RecordBlockedExerciseDelete() {
	blockedDeletes.Inc()
}
