// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Coaching request metrics
	IncAnalysisRequested(feature string)
	IncCacheHit(feature string)
	IncCacheMiss(feature string)
	IncFallbackServed(feature string)

	// Upstream LLM metrics
	ObserveUpstreamDuration(duration time.Duration)
	IncUpstreamError()

	// History pipeline metrics
	IncHistoryEventPublished(status string) // status: "success" or "dropped"
	IncHistoryEventProcessed(status string) // status: "success", "failed", "dead_lettered"
	ObserveHistoryBatchSize(size int)
	ObserveHistoryBatchDuration(duration time.Duration)
	SetHistoryQueueDepth(depth int64)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
