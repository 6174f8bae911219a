package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("resolve", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.IncStageResult("resolve", ResultSuccess)
	r.IncBuildOutcome("success")
}

func TestPrometheusRecorderCounts(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.IncStageResult("csr", ResultSuccess)
	r.IncStageResult("csr", ResultSuccess)
	r.IncStageResult("csr", ResultFatal)
	r.IncBuildOutcome("success")
	r.ObserveStageDuration("csr", 10*time.Millisecond)
	r.ObserveBuildDuration(time.Second)

	c, err := r.stageResults.GetMetricWithLabelValues("csr", string(ResultSuccess))
	require.NoError(t, err)
	assert.Equal(t, float64(2), testutil.ToFloat64(c))

	o, err := r.buildOutcome.GetMetricWithLabelValues("success")
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(o))
}

func TestHTTPHandlerServesRegistry(t *testing.T) {
	r := NewPrometheusRecorder(nil)
	assert.NotNil(t, r.HTTPHandler())
}
