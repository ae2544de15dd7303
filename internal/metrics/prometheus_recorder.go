package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration   prom.Histogram
	stageDuration   *prom.HistogramVec
	buildOutcome    *prom.CounterVec
	pageRenders     *prom.CounterVec
	unresolvedLinks prom.Counter
}

// NewPrometheusRecorder constructs and registers the build metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "notesite",
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		}),
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "notesite",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "notesite",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		pageRenders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "notesite",
			Name:      "page_renders_total",
			Help:      "Per-page render outcomes (rendered vs incrementally skipped)",
		}, []string{"result"}),
		unresolvedLinks: prom.NewCounter(prom.CounterOpts{
			Namespace: "notesite",
			Name:      "unresolved_links_total",
			Help:      "Wiki-link tokens that resolved to no page or attachment",
		}),
	}
	reg.MustRegister(pr.buildDuration, pr.stageDuration, pr.buildOutcome, pr.pageRenders, pr.unresolvedLinks)
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncPageRender(result RenderResult) {
	if p == nil || p.pageRenders == nil {
		return
	}
	p.pageRenders.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddUnresolvedLinks(n int) {
	if p == nil || p.unresolvedLinks == nil || n <= 0 {
		return
	}
	p.unresolvedLinks.Add(float64(n))
}

// HTTPHandler returns an http.Handler that serves Prometheus metrics for the provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
