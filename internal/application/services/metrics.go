package services

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type engineMetrics struct {
	queryCount     metric.Int64Counter
	queryDuration  metric.Float64Histogram
	topSimilarity  metric.Float64Histogram
	chunksReturned metric.Int64Histogram
}

var (
	metricsOnce sync.Once
	metrics     *engineMetrics
)

func ensureMetrics() *engineMetrics {
	metricsOnce.Do(func() {
		meter := otel.Meter("github.com/jaassure/proposal-intelligence/engine")
		m := &engineMetrics{}
		m.queryCount, _ = meter.Int64Counter("engine.query.count",
			metric.WithDescription("Queries answered, by branch"))
		m.queryDuration, _ = meter.Float64Histogram("engine.query.duration",
			metric.WithDescription("Query handling duration in seconds"),
			metric.WithUnit("s"))
		m.topSimilarity, _ = meter.Float64Histogram("engine.retrieval.top_similarity",
			metric.WithDescription("Best similarity score of a retrieval pass"))
		m.chunksReturned, _ = meter.Int64Histogram("engine.retrieval.chunks",
			metric.WithDescription("Chunks returned above threshold"))
		metrics = m
	})
	return metrics
}

func recordQuery(ctx context.Context, branch string, seconds float64) {
	m := ensureMetrics()
	attrs := metric.WithAttributes(attribute.String("engine.branch", branch))
	if m.queryCount != nil {
		m.queryCount.Add(ctx, 1, attrs)
	}
	if m.queryDuration != nil {
		m.queryDuration.Record(ctx, seconds, attrs)
	}
}

func recordRetrieval(ctx context.Context, chunks int, topSimilarity float64) {
	m := ensureMetrics()
	if m.chunksReturned != nil {
		m.chunksReturned.Record(ctx, int64(chunks))
	}
	if m.topSimilarity != nil {
		m.topSimilarity.Record(ctx, topSimilarity)
	}
}
