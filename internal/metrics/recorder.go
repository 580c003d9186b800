package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFailed  ResultLabel = "failed"
	ResultEmpty   ResultLabel = "empty"
)

// Recorder defines observability hooks for split and stage metrics.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveSplitDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncSplitOutcome(outcome ResultLabel)
	SetSections(n int)
	AddLinkIssues(category string, n int)
	AddQualityIssues(severity string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveSplitDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncSplitOutcome(ResultLabel)                {}
func (NoopRecorder) SetSections(int)                            {}
func (NoopRecorder) AddLinkIssues(string, int)                  {}
func (NoopRecorder) AddQualityIssues(string, int)               {}
