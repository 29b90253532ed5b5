package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncEmotionCreated is a no-op.
func (n *NoopRecorder) IncEmotionCreated() {}

// IncEmotionDeleted is a no-op.
func (n *NoopRecorder) IncEmotionDeleted() {}

// IncEmotionDuplicate is a no-op.
func (n *NoopRecorder) IncEmotionDuplicate() {}

// IncClientCreated is a no-op.
func (n *NoopRecorder) IncClientCreated() {}

// ObserveClassificationDuration is a no-op.
func (n *NoopRecorder) ObserveClassificationDuration(duration time.Duration) {}

// IncClassificationFailure is a no-op.
func (n *NoopRecorder) IncClassificationFailure(kind string) {}
