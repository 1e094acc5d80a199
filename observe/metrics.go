package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric instrument names.
const (
	StageTotalMetric    = "graphql.stage.total"
	StageErrorsMetric   = "graphql.stage.errors"
	StageDurationMetric = "graphql.stage.duration_ms"
)

// Metrics records execution metrics for instrumented stages.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordStage records one stage call with its duration and outcome.
	RecordStage(ctx context.Context, meta SpanMeta, duration time.Duration, failed bool)
}

type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates stage instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		StageTotalMetric,
		metric.WithDescription("Total number of instrumented GraphQL stage calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		StageErrorsMetric,
		metric.WithDescription("Total number of GraphQL stage calls that reported errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		StageDurationMetric,
		metric.WithDescription("GraphQL stage duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
	}, nil
}

// RecordStage records metrics for one stage call.
func (m *metricsImpl) RecordStage(ctx context.Context, meta SpanMeta, duration time.Duration, failed bool) {
	opt := metric.WithAttributes(attribute.String("graphql.stage", meta.Name))

	m.totalCount.Add(ctx, 1, opt)
	if failed {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration)/float64(time.Millisecond), opt)
}

type noopMetrics struct{}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics {
	return noopMetrics{}
}

func (noopMetrics) RecordStage(context.Context, SpanMeta, time.Duration, bool) {}
