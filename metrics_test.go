package toolgate

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsStage_Outcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	stage := NewMetricsStage(reg)
	gw := New(WithStages(stage))
	require.NoError(t, gw.Register(addTool(t)))

	fail, err := NewTool("fail", "Fails", nil, func(_ context.Context, _ Args) (any, error) {
		return nil, errors.New("nope")
	})
	require.NoError(t, err)
	require.NoError(t, gw.Register(fail))
	ctx := context.Background()

	_ = gw.Invoke(ctx, Call{Tool: "add", Args: Args{"a": 1.0, "b": 2.0}})
	_ = gw.Invoke(ctx, Call{Tool: "add", Args: Args{"a": 1.0, "b": 2.0}})
	_ = gw.Invoke(ctx, Call{Tool: "fail", Args: Args{}})

	assert.Equal(t, 2.0, promtestutil.ToFloat64(stage.invocations.WithLabelValues("add", "success")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(stage.invocations.WithLabelValues("fail", "error")))
}

func TestMetricsStage_CachedOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	stage := NewMetricsStage(reg)

	res := &Result{Success: true, Cached: true}
	stage.Response(context.Background(), &Call{Tool: "add"}, res)
	assert.Equal(t, 1.0, promtestutil.ToFloat64(stage.invocations.WithLabelValues("add", "cached")))
	assert.Equal(t, 0.0, promtestutil.ToFloat64(stage.invocations.WithLabelValues("add", "success")))
}

func TestMetricsStage_RequestIsNoop(t *testing.T) {
	stage := NewMetricsStage(prometheus.NewRegistry())
	res, err := stage.Request(context.Background(), &Call{Tool: "add"})
	assert.NoError(t, err)
	assert.Nil(t, res)
}
