package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder_SafeOnZeroValue(t *testing.T) {
	var r Recorder = NoopRecorder{}
	require.NotPanics(t, func() {
		r.ObserveBuildDuration(time.Second)
		r.ObserveStageDuration("walk", time.Millisecond)
		r.IncBuildOutcome("success")
		r.IncPageRender(RenderFresh)
		r.AddUnresolvedLinks(3)
	})
}

func TestPrometheusRecorder_NilReceiverSafe(t *testing.T) {
	var p *PrometheusRecorder
	require.NotPanics(t, func() {
		p.ObserveBuildDuration(time.Second)
		p.IncPageRender(RenderSkipped)
	})
}

func TestPrometheusRecorder_CountsRenders(t *testing.T) {
	reg := prom.NewRegistry()
	p := NewPrometheusRecorder(reg)

	p.IncPageRender(RenderFresh)
	p.IncPageRender(RenderFresh)
	p.IncPageRender(RenderSkipped)

	rendered := testutil.ToFloat64(p.pageRenders.WithLabelValues(string(RenderFresh)))
	skipped := testutil.ToFloat64(p.pageRenders.WithLabelValues(string(RenderSkipped)))
	require.Equal(t, 2.0, rendered)
	require.Equal(t, 1.0, skipped)
}
