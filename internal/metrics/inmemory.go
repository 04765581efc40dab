package metrics

import (
	"sync"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	AnalysisRequests        map[string]uint64 `json:"analysis_requests"`
	CacheHits               map[string]uint64 `json:"cache_hits"`
	CacheMisses             map[string]uint64 `json:"cache_misses"`
	FallbacksServed         map[string]uint64 `json:"fallbacks_served"`
	UpstreamCalls           uint64            `json:"upstream_calls"`
	UpstreamErrors          uint64            `json:"upstream_errors"`
	UpstreamDurationTotalMs int64             `json:"upstream_duration_total_ms"`
	HistoryPublished        map[string]uint64 `json:"history_published"`
	HistoryProcessed        map[string]uint64 `json:"history_processed"`
	HistoryBatches          uint64            `json:"history_batches"`
	HistoryBatchSizeSum     uint64            `json:"history_batch_size_sum"`
	HistoryBatchDurationMs  int64             `json:"history_batch_duration_total_ms"`
	HistoryQueueDepth       int64             `json:"history_queue_depth"`
}

// InMemoryRecorder stores metrics in memory. Used by the /metrics endpoint
// and by tests.
type InMemoryRecorder struct {
	mu sync.Mutex

	analysisRequests        map[string]uint64
	cacheHits               map[string]uint64
	cacheMisses             map[string]uint64
	fallbacksServed         map[string]uint64
	upstreamCalls           uint64
	upstreamErrors          uint64
	upstreamDurationTotalNs int64
	historyPublished        map[string]uint64
	historyProcessed        map[string]uint64
	historyBatches          uint64
	historyBatchSizeSum     uint64
	historyBatchDurationNs  int64
	historyQueueDepth       int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		analysisRequests: make(map[string]uint64),
		cacheHits:        make(map[string]uint64),
		cacheMisses:      make(map[string]uint64),
		fallbacksServed:  make(map[string]uint64),
		historyPublished: make(map[string]uint64),
		historyProcessed: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		AnalysisRequests:        copyCounters(m.analysisRequests),
		CacheHits:               copyCounters(m.cacheHits),
		CacheMisses:             copyCounters(m.cacheMisses),
		FallbacksServed:         copyCounters(m.fallbacksServed),
		UpstreamCalls:           m.upstreamCalls,
		UpstreamErrors:          m.upstreamErrors,
		UpstreamDurationTotalMs: m.upstreamDurationTotalNs / int64(time.Millisecond),
		HistoryPublished:        copyCounters(m.historyPublished),
		HistoryProcessed:        copyCounters(m.historyProcessed),
		HistoryBatches:          m.historyBatches,
		HistoryBatchSizeSum:     m.historyBatchSizeSum,
		HistoryBatchDurationMs:  m.historyBatchDurationNs / int64(time.Millisecond),
		HistoryQueueDepth:       m.historyQueueDepth,
	}
}

func (m *InMemoryRecorder) IncAnalysisRequested(feature string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analysisRequests[feature]++
}

func (m *InMemoryRecorder) IncCacheHit(feature string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits[feature]++
}

func (m *InMemoryRecorder) IncCacheMiss(feature string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses[feature]++
}

func (m *InMemoryRecorder) IncFallbackServed(feature string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacksServed[feature]++
}

func (m *InMemoryRecorder) ObserveUpstreamDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upstreamCalls++
	m.upstreamDurationTotalNs += duration.Nanoseconds()
}

func (m *InMemoryRecorder) IncUpstreamError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upstreamErrors++
}

func (m *InMemoryRecorder) IncHistoryEventPublished(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historyPublished[status]++
}

func (m *InMemoryRecorder) IncHistoryEventProcessed(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historyProcessed[status]++
}

func (m *InMemoryRecorder) ObserveHistoryBatchSize(size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historyBatches++
	if size > 0 {
		m.historyBatchSizeSum += uint64(size)
	}
}

func (m *InMemoryRecorder) ObserveHistoryBatchDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historyBatchDurationNs += duration.Nanoseconds()
}

func (m *InMemoryRecorder) SetHistoryQueueDepth(depth int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historyQueueDepth = depth
}

func copyCounters(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
