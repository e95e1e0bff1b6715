package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "layerroute"

// PrometheusHooks records pipeline and cache events as Prometheus metrics in
// a private registry.
type PrometheusHooks struct {
	registry *prometheus.Registry

	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
	graphEdges    *prometheus.GaugeVec
	graphNodes    prometheus.Gauge

	searches       *prometheus.CounterVec
	searchPaths    *prometheus.GaugeVec
	searchDuration *prometheus.HistogramVec

	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram

	cacheOps   *prometheus.CounterVec
	cacheBytes prometheus.Counter
}

// NewPrometheusHooks creates hooks backed by a fresh registry.
func NewPrometheusHooks() *PrometheusHooks {
	h := &PrometheusHooks{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Graph builds by source (cache or assembly) and status.",
		}, []string{"source", "status"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Time to load or assemble the graph.",
			Buckets:   prometheus.DefBuckets,
		}),
		graphEdges: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Edges of the last built graph by class.",
		}, []string{"class"}),
		graphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Nodes of the last built graph.",
		}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Path searches by kind and status.",
		}, []string{"kind", "status"}),
		searchPaths: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "search_paths",
			Help:      "Paths found by the last search of each kind.",
		}, []string{"kind"}),
		searchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Path search duration by kind.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Diagram renders by format and status.",
		}, []string{"format", "status"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Diagram render duration.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache operations by backend and result.",
		}, []string{"backend", "result"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}),
	}

	h.registry.MustRegister(
		h.builds, h.buildDuration, h.graphEdges, h.graphNodes,
		h.searches, h.searchPaths, h.searchDuration,
		h.renders, h.renderDuration,
		h.cacheOps, h.cacheBytes,
	)
	return h
}

// Registry returns the registry holding the metrics.
func (h *PrometheusHooks) Registry() *prometheus.Registry { return h.registry }

// WriteTextfile writes all metrics to path in the text exposition format.
func (h *PrometheusHooks) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, h.registry)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *PrometheusHooks) OnBuildStart(context.Context, string) {}

func (h *PrometheusHooks) OnBuildComplete(_ context.Context, _ string, stats BuildStats, d time.Duration, err error) {
	source := "assembly"
	if stats.FromCache {
		source = "cache"
	}
	h.builds.WithLabelValues(source, status(err)).Inc()
	h.buildDuration.Observe(d.Seconds())
	if err != nil {
		return
	}
	h.graphNodes.Set(float64(stats.Nodes))
	h.graphEdges.WithLabelValues("structural").Set(float64(stats.Structural))
	h.graphEdges.WithLabelValues("induced").Set(float64(stats.Induced))
	h.graphEdges.WithLabelValues("same-category").Set(float64(stats.SameCategory))
}

func (h *PrometheusHooks) OnSearchComplete(_ context.Context, kind string, paths int, d time.Duration, err error) {
	h.searches.WithLabelValues(kind, status(err)).Inc()
	h.searchPaths.WithLabelValues(kind).Set(float64(paths))
	h.searchDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnRenderStart(context.Context, string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	h.renders.WithLabelValues(format, status(err)).Inc()
	h.renderDuration.Observe(d.Seconds())
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, backend string) {
	h.cacheOps.WithLabelValues(backend, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, backend string) {
	h.cacheOps.WithLabelValues(backend, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, backend string, size int) {
	h.cacheOps.WithLabelValues(backend, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

func (h *PrometheusHooks) OnCacheCorrupt(_ context.Context, backend string) {
	h.cacheOps.WithLabelValues(backend, "corrupt").Inc()
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
)
