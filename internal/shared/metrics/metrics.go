package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	generationStartedTotal   atomic.Uint64
	generationCompletedTotal atomic.Uint64
	generationFailedTotal    atomic.Uint64
	generationFallbackTotal  atomic.Uint64

	reminderEmailsSentTotal   atomic.Uint64
	reminderEmailsFailedTotal atomic.Uint64
	reminderJobsReceivedTotal  atomic.Uint64
	reminderJobsCompletedTotal atomic.Uint64
	reminderJobsFailedTotal    atomic.Uint64
	reminderJobsDroppedTotal   atomic.Uint64

	generationDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncGenerationStarted increments the started counter.
func IncGenerationStarted() {
	generationStartedTotal.Add(1)
}

// IncGenerationCompleted increments the completed counter.
func IncGenerationCompleted() {
	generationCompletedTotal.Add(1)
}

// IncGenerationFailed increments the failed counter.
func IncGenerationFailed() {
	generationFailedTotal.Add(1)
}

// IncGenerationFallback increments the fallback-synthesis counter.
func IncGenerationFallback() {
	generationFallbackTotal.Add(1)
}

// IncReminderEmailsSent increments the sent-email counter.
func IncReminderEmailsSent() {
	reminderEmailsSentTotal.Add(1)
}

// IncReminderEmailsFailed increments the failed-email counter.
func IncReminderEmailsFailed() {
	reminderEmailsFailedTotal.Add(1)
}

// IncReminderJobsReceived increments the worker received counter.
func IncReminderJobsReceived() {
	reminderJobsReceivedTotal.Add(1)
}

// IncReminderJobsCompleted increments the worker completed counter.
func IncReminderJobsCompleted() {
	reminderJobsCompletedTotal.Add(1)
}

// IncReminderJobsFailed increments the worker failed counter.
func IncReminderJobsFailed() {
	reminderJobsFailedTotal.Add(1)
}

// IncReminderJobsDropped increments the worker unrecoverable-drop counter.
func IncReminderJobsDropped() {
	reminderJobsDroppedTotal.Add(1)
}

// ObserveGenerationDurationMs records a pipeline duration in milliseconds.
func ObserveGenerationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	generationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "generation_started_total", "Total test generations started", generationStartedTotal.Load())
	writeCounter(&buf, "generation_completed_total", "Total test generations completed", generationCompletedTotal.Load())
	writeCounter(&buf, "generation_failed_total", "Total test generations failed", generationFailedTotal.Load())
	writeCounter(&buf, "generation_fallback_total", "Total generations that used fallback questions", generationFallbackTotal.Load())
	writeCounter(&buf, "reminder_emails_sent_total", "Total reminder emails sent", reminderEmailsSentTotal.Load())
	writeCounter(&buf, "reminder_emails_failed_total", "Total reminder emails failed", reminderEmailsFailedTotal.Load())
	writeCounter(&buf, "reminder_jobs_received_total", "Total reminder jobs received by the worker", reminderJobsReceivedTotal.Load())
	writeCounter(&buf, "reminder_jobs_completed_total", "Total reminder jobs completed by the worker", reminderJobsCompletedTotal.Load())
	writeCounter(&buf, "reminder_jobs_failed_total", "Total reminder jobs that failed processing", reminderJobsFailedTotal.Load())
	writeCounter(&buf, "reminder_jobs_dropped_total", "Total reminder jobs dropped as unrecoverable", reminderJobsDroppedTotal.Load())
	writeHistogram(&buf, "generation_duration_ms", "Generation pipeline duration in milliseconds", generationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
