// Package metrics provides observability hooks for site builds.
//
// Components receive a Recorder by injection and default to NoopRecorder, so
// metrics cost nothing unless the preview server wires in the Prometheus
// implementation.
package metrics

import "time"

// RenderResult enumerates per-page render outcomes for counters.
type RenderResult string

const (
	RenderFresh   RenderResult = "rendered"
	RenderSkipped RenderResult = "skipped"
)

// Recorder defines observability hooks for build and stage metrics.
// All methods must be safe on the zero NoopRecorder so injection stays optional.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	ObserveStageDuration(stage string, d time.Duration)
	IncBuildOutcome(outcome string) // outcome: success|failed
	IncPageRender(result RenderResult)
	AddUnresolvedLinks(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncBuildOutcome(string)                     {}
func (NoopRecorder) IncPageRender(RenderResult)                 {}
func (NoopRecorder) AddUnresolvedLinks(int)                     {}
