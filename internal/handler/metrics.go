package handler

import (
	"fmt"
	"net/http"

	"github.com/interviewiq/interviewiq/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
//
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	for feature, count := range snap.AnalysisRequests {
		writeMetric(w, "interviewiq_analysis_requests_total{feature=%q} %d\n", feature, count)
	}
	for feature, count := range snap.CacheHits {
		writeMetric(w, "interviewiq_cache_hits_total{feature=%q} %d\n", feature, count)
	}
	for feature, count := range snap.CacheMisses {
		writeMetric(w, "interviewiq_cache_misses_total{feature=%q} %d\n", feature, count)
	}
	for feature, count := range snap.FallbacksServed {
		writeMetric(w, "interviewiq_fallbacks_served_total{feature=%q} %d\n", feature, count)
	}

	writeMetric(w, "interviewiq_upstream_calls_total %d\n", snap.UpstreamCalls)
	writeMetric(w, "interviewiq_upstream_errors_total %d\n", snap.UpstreamErrors)
	writeMetric(w, "interviewiq_upstream_duration_seconds_sum %.3f\n", float64(snap.UpstreamDurationTotalMs)/1000)

	for status, count := range snap.HistoryPublished {
		writeMetric(w, "interviewiq_history_events_published_total{status=%q} %d\n", status, count)
	}
	for status, count := range snap.HistoryProcessed {
		writeMetric(w, "interviewiq_history_events_processed_total{status=%q} %d\n", status, count)
	}
	writeMetric(w, "interviewiq_history_batches_total %d\n", snap.HistoryBatches)
	writeMetric(w, "interviewiq_history_batch_size_sum %d\n", snap.HistoryBatchSizeSum)
	writeMetric(w, "interviewiq_history_batch_duration_seconds_sum %.3f\n", float64(snap.HistoryBatchDurationMs)/1000)
	writeMetric(w, "interviewiq_history_queue_depth %d\n", snap.HistoryQueueDepth)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
