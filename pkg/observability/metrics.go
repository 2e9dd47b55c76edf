package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the analysis service.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Graph metrics
	GraphBuildsTotal    prometheus.Counter
	GraphPackages       prometheus.Gauge
	GraphEdges          prometheus.Gauge
	AnalysisRunsTotal   *prometheus.CounterVec
	AnalysisDuration    *prometheus.HistogramVec
	CyclesDetectedTotal prometheus.Counter

	// Catalog metrics
	ManifestsTotal prometheus.Gauge

	// Cache metrics
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics on the given
// registry. A nil registry gets a fresh one.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depscope_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "depscope_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		GraphBuildsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "depscope_graph_builds_total",
				Help: "Total number of dependency graphs built from the catalog",
			},
		),
		GraphPackages: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "depscope_graph_packages",
				Help: "Package count of the most recently built graph",
			},
		),
		GraphEdges: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "depscope_graph_edges",
				Help: "Edge count of the most recently built graph",
			},
		),
		AnalysisRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depscope_analysis_runs_total",
				Help: "Total number of analysis runs",
			},
			[]string{"analysis", "outcome"},
		),
		AnalysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "depscope_analysis_duration_seconds",
				Help:    "Analysis run duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"analysis"},
		),
		CyclesDetectedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "depscope_cycles_detected_total",
				Help: "Total number of analysis runs that found a dependency cycle",
			},
		),
		ManifestsTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "depscope_manifests_total",
				Help: "Number of package manifests currently registered",
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "depscope_report_cache_hits_total",
				Help: "Total number of analysis report cache hits",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "depscope_report_cache_misses_total",
				Help: "Total number of analysis report cache misses",
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.GraphBuildsTotal,
		m.GraphPackages,
		m.GraphEdges,
		m.AnalysisRunsTotal,
		m.AnalysisDuration,
		m.CyclesDetectedTotal,
		m.ManifestsTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAnalysis records one analysis run.
func (m *Metrics) ObserveAnalysis(analysis, outcome string, duration time.Duration) {
	m.AnalysisRunsTotal.WithLabelValues(analysis, outcome).Inc()
	m.AnalysisDuration.WithLabelValues(analysis).Observe(duration.Seconds())
}

// HTTPMiddleware instruments a handler with request count and duration
// metrics. The route template, not the raw URL, should be used as the
// path label by mounting this per-router.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		m.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rw.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration.Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
