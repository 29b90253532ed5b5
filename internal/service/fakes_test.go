package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/emotionlog/emotionlog/internal/model"
	"github.com/emotionlog/emotionlog/internal/repository"
)

// memStore is an in-memory ClientStore and EmotionStore.
// uniqueText mirrors the emotions text index; the email index is always on.
type memStore struct {
	mu         sync.Mutex
	uniqueText bool

	nextClientID  int64
	nextEmotionID int64
	clients       []*model.Client
	emotions      []*model.Emotion

	clientWrites  int
	emotionWrites int
	deletes       int

	// beforeCreateClient runs before CreateClient inserts.
	beforeCreateClient func(email string)
}

func newMemStore() *memStore {
	return &memStore{uniqueText: true}
}

func (m *memStore) CreateClient(ctx context.Context, client *model.Client) error {
	if m.beforeCreateClient != nil {
		m.beforeCreateClient(client.Email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.clients {
		if c.Email == client.Email {
			return repository.ErrEmailExists
		}
	}
	m.nextClientID++
	client.ID = m.nextClientID
	client.CreatedAt = time.Now().UTC()
	stored := *client
	m.clients = append(m.clients, &stored)
	m.clientWrites++
	return nil
}

func (m *memStore) GetClientByEmail(ctx context.Context, email string) (*model.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.clients {
		if c.Email == email {
			found := *c
			return &found, nil
		}
	}
	return nil, repository.ErrClientNotFound
}

func (m *memStore) GetClientByID(ctx context.Context, id int64) (*model.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.clients {
		if c.ID == id {
			found := *c
			return &found, nil
		}
	}
	return nil, repository.ErrClientNotFound
}

func (m *memStore) ListClients(ctx context.Context) ([]*model.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Client, 0, len(m.clients))
	for _, c := range m.clients {
		found := *c
		out = append(out, &found)
	}
	return out, nil
}

func (m *memStore) ListEmotionsByClient(ctx context.Context, clientID int64) ([]*model.Emotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Emotion
	for _, e := range m.emotions {
		if e.ClientID == clientID {
			found := *e
			out = append(out, &found)
		}
	}
	return out, nil
}

func (m *memStore) CreateEmotion(ctx context.Context, emotion *model.Emotion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uniqueText {
		for _, e := range m.emotions {
			if e.Text == emotion.Text {
				return repository.ErrEmotionTextExists
			}
		}
	}
	m.nextEmotionID++
	emotion.ID = m.nextEmotionID
	emotion.CreatedAt = time.Now().UTC()
	stored := *emotion
	m.emotions = append(m.emotions, &stored)
	m.emotionWrites++
	return nil
}

func (m *memStore) GetEmotionByText(ctx context.Context, text string) (*model.Emotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.emotions {
		if e.Text == text {
			found := *e
			return &found, nil
		}
	}
	return nil, repository.ErrEmotionNotFound
}

func (m *memStore) GetEmotionByID(ctx context.Context, id int64) (*model.Emotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.emotions {
		if e.ID == id {
			found := *e
			return &found, nil
		}
	}
	return nil, repository.ErrEmotionNotFound
}

func (m *memStore) ListEmotions(ctx context.Context, filter repository.EmotionFilter) ([]*model.Emotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Emotion
	for _, e := range m.emotions {
		if len(filter.Types) > 0 && (e.Type == nil || !slices.Contains(filter.Types, *e.Type)) {
			continue
		}
		found := *e
		out = append(out, &found)
	}
	return out, nil
}

func (m *memStore) DeleteEmotion(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.emotions {
		if e.ID == id {
			m.emotions = append(m.emotions[:i], m.emotions[i+1:]...)
			m.deletes++
			return nil
		}
	}
	return repository.ErrEmotionNotFound
}

func (m *memStore) emotionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.emotions)
}

// stubClassifier returns a fixed result and counts calls.
type stubClassifier struct {
	mu     sync.Mutex
	result model.SentimentResult
	err    error
	calls  int
	delay  time.Duration
}

func (s *stubClassifier) Analyze(ctx context.Context, text string) (model.SentimentResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.result, s.err
}

func (s *stubClassifier) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// barrierClassifier holds every caller until n callers have arrived.
type barrierClassifier struct {
	wg sync.WaitGroup
}

func newBarrierClassifier(n int) *barrierClassifier {
	b := &barrierClassifier{}
	b.wg.Add(n)
	return b
}

func (b *barrierClassifier) Analyze(ctx context.Context, text string) (model.SentimentResult, error) {
	b.wg.Done()
	b.wg.Wait()
	return model.SentimentResult{Label: "POSITIVE", Score: 0.5}, nil
}

var errLockBusy = errors.New("lock busy")

// busyLocker fails every key with the given prefix, as a distributed lock
// does when its wait period runs out.
type busyLocker struct{ prefix string }

func (b busyLocker) Acquire(ctx context.Context, key string) (func(), error) {
	if strings.HasPrefix(key, b.prefix) {
		return nil, errLockBusy
	}
	return func() {}, nil
}

// nopLocker never blocks.
type nopLocker struct{}

func (nopLocker) Acquire(ctx context.Context, key string) (func(), error) {
	return func() {}, nil
}
