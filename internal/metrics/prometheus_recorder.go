package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	stageResults  *prom.CounterVec
	buildOutcome  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "corebuilder",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "corebuilder",
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "corebuilder",
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "corebuilder",
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})

	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

// HTTPHandler returns an http.Handler serving the recorder's registry.
func (p *PrometheusRecorder) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
