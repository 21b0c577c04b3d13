package infrastructure

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetricsCollector implements the MetricsCollector port. Every
// collector is registered on the registry passed to the constructor.
type PrometheusMetricsCollector struct {
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	providerCalls    *prometheus.CounterVec
	intents          *prometheus.CounterVec
	intentDuration   *prometheus.HistogramVec
	requestDuration  *prometheus.HistogramVec
	cacheWarmupCount *prometheus.CounterVec
}

// NewPrometheusMetricsCollector registers the collectors on registerer
func NewPrometheusMetricsCollector(registerer prometheus.Registerer) *PrometheusMetricsCollector {
	factory := promauto.With(registerer)

	return &PrometheusMetricsCollector{
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "weatherdialog_cache_hits_total",
			Help: "The total number of forecast cache hits",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "weatherdialog_cache_misses_total",
			Help: "The total number of forecast cache misses",
		}),
		providerCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherdialog_provider_calls_total",
			Help: "Forecast provider calls by provider and outcome",
		}, []string{"provider", "outcome"}),
		intents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherdialog_intents_total",
			Help: "Handled intents by intent and outcome",
		}, []string{"intent", "outcome"}),
		intentDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weatherdialog_intent_duration_seconds",
			Help:    "Intent handling duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"intent"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weatherdialog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		cacheWarmupCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherdialog_cache_warmups_total",
			Help: "Scheduled cache warm-up runs by outcome",
		}, []string{"outcome"}),
	}
}

func (m *PrometheusMetricsCollector) RecordCacheHit(ctx context.Context) {
	m.cacheHits.Inc()
}

func (m *PrometheusMetricsCollector) RecordCacheMiss(ctx context.Context) {
	m.cacheMisses.Inc()
}

func (m *PrometheusMetricsCollector) RecordWeatherAPICall(ctx context.Context, provider string, success bool) {
	m.providerCalls.WithLabelValues(provider, outcome(success)).Inc()
}

func (m *PrometheusMetricsCollector) RecordIntent(ctx context.Context, intent string, outcome string, duration time.Duration) {
	m.intents.WithLabelValues(intent, outcome).Inc()
	m.intentDuration.WithLabelValues(intent).Observe(duration.Seconds())
}

// ObserveRequest records one HTTP request
func (m *PrometheusMetricsCollector) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordWarmup records one scheduled cache warm-up
func (m *PrometheusMetricsCollector) RecordWarmup(success bool) {
	m.cacheWarmupCount.WithLabelValues(outcome(success)).Inc()
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
