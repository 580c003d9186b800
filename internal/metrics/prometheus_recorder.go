package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdsplit"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	stageDuration *prom.HistogramVec
	splitDuration prom.Histogram
	stageResults  *prom.CounterVec
	splitOutcome  *prom.CounterVec
	sections      prom.Gauge
	linkIssues    *prom.CounterVec
	qualityIssues *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual split stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.splitDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "split_duration_seconds",
			Help:      "Total split duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.splitOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "split_outcomes_total",
			Help:      "Split outcomes by final status",
		}, []string{"outcome"})
		pr.sections = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "sections",
			Help:      "Number of sections produced by the last split",
		})
		pr.linkIssues = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "link_issues_total",
			Help:      "Link issues found after splitting, by category",
		}, []string{"category"})
		pr.qualityIssues = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "quality_issues_total",
			Help:      "Quality issues found after splitting, by severity",
		}, []string{"severity"})
		reg.MustRegister(pr.stageDuration, pr.splitDuration, pr.stageResults, pr.splitOutcome, pr.sections, pr.linkIssues, pr.qualityIssues)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveSplitDuration(d time.Duration) {
	if p == nil || p.splitDuration == nil {
		return
	}
	p.splitDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncSplitOutcome(outcome ResultLabel) {
	if p == nil || p.splitOutcome == nil {
		return
	}
	p.splitOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetSections(n int) {
	if p == nil || p.sections == nil {
		return
	}
	p.sections.Set(float64(n))
}

func (p *PrometheusRecorder) AddLinkIssues(category string, n int) {
	if p == nil || p.linkIssues == nil || n <= 0 {
		return
	}
	p.linkIssues.WithLabelValues(category).Add(float64(n))
}

func (p *PrometheusRecorder) AddQualityIssues(severity string, n int) {
	if p == nil || p.qualityIssues == nil || n <= 0 {
		return
	}
	p.qualityIssues.WithLabelValues(severity).Add(float64(n))
}
