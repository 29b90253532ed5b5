package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	EmotionsCreated               uint64
	EmotionsDeleted               uint64
	EmotionDuplicates             uint64
	ClientsCreated                uint64
	ClassificationDurationCount   uint64
	ClassificationDurationTotalNs int64
	ClassificationFailures        map[string]uint64
}

// FailureKinds returns the recorded failure kinds in stable order.
func (s Snapshot) FailureKinds() []string {
	kinds := make([]string, 0, len(s.ClassificationFailures))
	for kind := range s.ClassificationFailures {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	emotionsCreated               uint64
	emotionsDeleted               uint64
	emotionDuplicates             uint64
	clientsCreated                uint64
	classificationDurationCount   uint64
	classificationDurationTotalNs int64

	mu       sync.Mutex
	failures map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{failures: make(map[string]uint64)}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	failures := make(map[string]uint64, len(m.failures))
	for kind, n := range m.failures {
		failures[kind] = n
	}
	m.mu.Unlock()

	return Snapshot{
		EmotionsCreated:               atomic.LoadUint64(&m.emotionsCreated),
		EmotionsDeleted:               atomic.LoadUint64(&m.emotionsDeleted),
		EmotionDuplicates:             atomic.LoadUint64(&m.emotionDuplicates),
		ClientsCreated:                atomic.LoadUint64(&m.clientsCreated),
		ClassificationDurationCount:   atomic.LoadUint64(&m.classificationDurationCount),
		ClassificationDurationTotalNs: atomic.LoadInt64(&m.classificationDurationTotalNs),
		ClassificationFailures:        failures,
	}
}

// IncEmotionCreated increments the emotion created counter.
func (m *InMemoryRecorder) IncEmotionCreated() {
	atomic.AddUint64(&m.emotionsCreated, 1)
}

// IncEmotionDeleted increments the emotion deleted counter.
func (m *InMemoryRecorder) IncEmotionDeleted() {
	atomic.AddUint64(&m.emotionsDeleted, 1)
}

// IncEmotionDuplicate increments the rejected duplicate counter.
func (m *InMemoryRecorder) IncEmotionDuplicate() {
	atomic.AddUint64(&m.emotionDuplicates, 1)
}

// IncClientCreated increments the client created counter.
func (m *InMemoryRecorder) IncClientCreated() {
	atomic.AddUint64(&m.clientsCreated, 1)
}

// ObserveClassificationDuration records provider round-trip duration.
func (m *InMemoryRecorder) ObserveClassificationDuration(duration time.Duration) {
	atomic.AddUint64(&m.classificationDurationCount, 1)
	atomic.AddInt64(&m.classificationDurationTotalNs, duration.Nanoseconds())
}

// IncClassificationFailure counts a failed classification by kind.
func (m *InMemoryRecorder) IncClassificationFailure(kind string) {
	m.mu.Lock()
	m.failures[kind]++
	m.mu.Unlock()
}
