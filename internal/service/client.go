package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/emotionlog/emotionlog/internal/metrics"
	"github.com/emotionlog/emotionlog/internal/model"
	"github.com/emotionlog/emotionlog/internal/repository"
)

// ClientService handles client resolution and lookups.
type ClientService struct {
	store   ClientStore
	locker  Locker
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewClientService creates a new ClientService.
// A nil locker falls back to an in-process LocalLocker.
func NewClientService(store ClientStore, locker Locker, logger *slog.Logger, recorder metrics.Recorder) *ClientService {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ClientService{
		store:   store,
		locker:  locker,
		logger:  logger,
		metrics: recorder,
	}
}

// ReadOrCreateClient returns the client registered under email, creating it
// when absent. created reports whether this call inserted the row.
func (s *ClientService) ReadOrCreateClient(ctx context.Context, email string) (client *model.Client, created bool, err error) {
	email, err = normalizeEmail(email)
	if err != nil {
		return nil, false, err
	}

	unlock, err := s.locker.Acquire(ctx, clientLockKey(email))
	if err != nil {
		return nil, false, fmt.Errorf("lock client %q: %w", email, err)
	}
	defer unlock()

	existing, err := s.store.GetClientByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrClientNotFound) {
		return nil, false, fmt.Errorf("failed to look up client: %w", err)
	}

	client = &model.Client{Email: email}
	if err := s.store.CreateClient(ctx, client); err != nil {
		if !errors.Is(err, repository.ErrEmailExists) {
			return nil, false, fmt.Errorf("failed to create client: %w", err)
		}
		// Another writer won the insert; return its row.
		existing, getErr := s.store.GetClientByEmail(ctx, email)
		if getErr != nil {
			return nil, false, fmt.Errorf("failed to read existing client: %w", getErr)
		}
		return existing, false, nil
	}

	s.metrics.IncClientCreated()
	s.logger.InfoContext(ctx, "client_created",
		slog.Int64("client_id", client.ID),
	)

	return client, true, nil
}

// GetClient returns a client together with summaries of its emotions.
func (s *ClientService) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	client, err := s.store.GetClientByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrClientNotFound, id)
		}
		return nil, err
	}

	emotions, err := s.store.ListEmotionsByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list client emotions: %w", err)
	}
	client.Emotions = make([]model.EmotionSummary, 0, len(emotions))
	for _, emotion := range emotions {
		client.Emotions = append(client.Emotions, emotion.Summary())
	}

	return client, nil
}

// ListClients returns every registered client.
func (s *ClientService) ListClients(ctx context.Context) ([]*model.Client, error) {
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, ErrNoClients
	}
	return clients, nil
}
