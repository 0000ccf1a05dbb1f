package toolgate

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsStage counts invocations and observes their duration, labeled by
// tool and outcome (success, error, cached).
type MetricsStage struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetricsStage registers the gateway metrics with registerer (nil means
// prometheus.DefaultRegisterer).
func NewMetricsStage(registerer prometheus.Registerer) *MetricsStage {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)
	return &MetricsStage{
		invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toolgate_invocations_total",
				Help: "Total number of tool invocations",
			},
			[]string{"tool", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "toolgate_invocation_duration_seconds",
				Help:    "Duration of tool invocations in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"tool"},
		),
	}
}

func (s *MetricsStage) Name() string { return "metrics" }

func (s *MetricsStage) Request(_ context.Context, _ *Call) (*Result, error) {
	return nil, nil
}

func (s *MetricsStage) Response(_ context.Context, call *Call, res *Result) *Result {
	outcome := "success"
	switch {
	case res.Cached:
		outcome = "cached"
	case !res.Success:
		outcome = "error"
	}
	s.invocations.WithLabelValues(call.Tool, outcome).Inc()
	s.duration.WithLabelValues(call.Tool).Observe(res.Duration.Seconds())
	return res
}
