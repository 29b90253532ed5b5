package handler

import (
	"fmt"
	"net/http"

	"github.com/emotionlog/emotionlog/internal/metrics"
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
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "emotionlog_emotions_created_total %d\n", snap.EmotionsCreated)
	writeMetric(w, "emotionlog_emotions_deleted_total %d\n", snap.EmotionsDeleted)
	writeMetric(w, "emotionlog_emotion_duplicates_total %d\n", snap.EmotionDuplicates)
	writeMetric(w, "emotionlog_clients_created_total %d\n", snap.ClientsCreated)

	writeMetric(w, "emotionlog_classification_duration_seconds_count %d\n", snap.ClassificationDurationCount)
	writeMetric(w, "emotionlog_classification_duration_seconds_sum %.6f\n", float64(snap.ClassificationDurationTotalNs)/1e9)

	for _, kind := range snap.FailureKinds() {
		writeMetric(w, "emotionlog_classification_failures_total{kind=%q} %d\n", kind, snap.ClassificationFailures[kind])
	}
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
