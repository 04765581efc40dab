package metrics

import "time"

// NoopRecorder discards all metric events.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncAnalysisRequested(feature string)               {}
func (n *NoopRecorder) IncCacheHit(feature string)                        {}
func (n *NoopRecorder) IncCacheMiss(feature string)                       {}
func (n *NoopRecorder) IncFallbackServed(feature string)                  {}
func (n *NoopRecorder) ObserveUpstreamDuration(duration time.Duration)    {}
func (n *NoopRecorder) IncUpstreamError()                                 {}
func (n *NoopRecorder) IncHistoryEventPublished(status string)            {}
func (n *NoopRecorder) IncHistoryEventProcessed(status string)            {}
func (n *NoopRecorder) ObserveHistoryBatchSize(size int)                  {}
func (n *NoopRecorder) ObserveHistoryBatchDuration(duration time.Duration) {}
func (n *NoopRecorder) SetHistoryQueueDepth(depth int64)                  {}
