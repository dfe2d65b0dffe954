package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation outcomes recorded by NutritionMetrics
const (
	StatusSuccess = "success"
	StatusError   = "error"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// NutritionMetrics handles Prometheus metrics collection
type NutritionMetrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Business metrics
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	reportCache       *prometheus.CounterVec
	dailyCalories     prometheus.Histogram
	recipesAdjusted   *prometheus.CounterVec
}

// NewRegistry creates a registry with the Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewNutritionMetrics creates a new metrics collector registered on reg
func NewNutritionMetrics(reg *prometheus.Registry) *NutritionMetrics {
	factory := promauto.With(reg)

	return &NutritionMetrics{
		registry: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nutriplan",
				Name:      "operations_total",
				Help:      "Total number of nutrition service operations by outcome",
			},
			[]string{"operation", "status"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "nutriplan",
				Name:      "operation_duration_seconds",
				Help:      "Nutrition service operation duration in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		),
		reportCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nutriplan",
				Name:      "report_cache_total",
				Help:      "Report cache lookups by result",
			},
			[]string{"result"},
		),
		dailyCalories: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "nutriplan",
				Name:      "daily_calories",
				Help:      "Distribution of computed daily calorie targets",
				Buckets:   prometheus.LinearBuckets(1200, 200, 12),
			},
		),
		recipesAdjusted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nutriplan",
				Name:      "recipes_adjusted_total",
				Help:      "Recipes rescaled to meal targets",
			},
			[]string{"meal_type"},
		),
	}
}

// ObserveOperation records the outcome and latency of a service operation
func (m *NutritionMetrics) ObserveOperation(operation string, start time.Time, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.operationsTotal.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ReportCache records a report cache lookup
func (m *NutritionMetrics) ReportCache(result string) {
	m.reportCache.WithLabelValues(result).Inc()
}

// DailyCalories records a computed daily calorie target
func (m *NutritionMetrics) DailyCalories(kcal float64) {
	m.dailyCalories.Observe(kcal)
}

// RecipesAdjusted records rescaled recipes for a meal type
func (m *NutritionMetrics) RecipesAdjusted(mealType string, n int) {
	m.recipesAdjusted.WithLabelValues(mealType).Add(float64(n))
}

// HTTPRequest records a served HTTP request
func (m *NutritionMetrics) HTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler returns the Prometheus scrape handler for this registry
func (m *NutritionMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
