// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Registry metrics
	IncEmotionCreated()
	IncEmotionDeleted()
	IncEmotionDuplicate()
	IncClientCreated()

	// Provider metrics
	ObserveClassificationDuration(duration time.Duration)
	IncClassificationFailure(kind string)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
