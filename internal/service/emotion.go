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

// EmotionService records texts together with their classified sentiment.
type EmotionService struct {
	store      EmotionStore
	clients    *ClientService
	classifier Classifier
	locker     Locker
	logger     *slog.Logger
	metrics    metrics.Recorder
}

// NewEmotionService creates a new EmotionService.
func NewEmotionService(
	store EmotionStore,
	clients *ClientService,
	classifier Classifier,
	locker Locker,
	logger *slog.Logger,
	recorder metrics.Recorder,
) *EmotionService {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &EmotionService{
		store:      store,
		clients:    clients,
		classifier: classifier,
		locker:     locker,
		logger:     logger,
		metrics:    recorder,
	}
}

// CreateEmotionInput defines input for recording an emotion.
type CreateEmotionInput struct {
	Text        string
	Type        *string // hint only; the classifier's label is stored
	ClientEmail string
}

// CreateEmotion classifies and stores a new text for the given client.
// Texts are unique across all clients; a repeat fails with ErrDuplicateEmotion
// before the classifier is called.
func (s *EmotionService) CreateEmotion(ctx context.Context, input CreateEmotionInput) (*model.Emotion, error) {
	if err := validateText(input.Text); err != nil {
		return nil, err
	}
	if _, err := normalizeEmail(input.ClientEmail); err != nil {
		return nil, err
	}

	client, _, err := s.clients.ReadOrCreateClient(ctx, input.ClientEmail)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Acquire(ctx, emotionLockKey(input.Text))
	if err != nil {
		// The holder may have stored the same text by now.
		if ctx.Err() == nil {
			if existing, lookupErr := s.store.GetEmotionByText(ctx, input.Text); lookupErr == nil {
				s.metrics.IncEmotionDuplicate()
				return nil, fmt.Errorf("%w: id %d", ErrDuplicateEmotion, existing.ID)
			}
		}
		return nil, fmt.Errorf("lock emotion text: %w", err)
	}
	defer unlock()

	existing, err := s.store.GetEmotionByText(ctx, input.Text)
	switch {
	case err == nil:
		s.metrics.IncEmotionDuplicate()
		return nil, fmt.Errorf("%w: id %d", ErrDuplicateEmotion, existing.ID)
	case !errors.Is(err, repository.ErrEmotionNotFound):
		return nil, fmt.Errorf("failed to look up emotion: %w", err)
	}

	result, err := s.classifier.Analyze(ctx, input.Text)
	if err != nil {
		return nil, fmt.Errorf("classify emotion: %w", err)
	}

	if input.Type != nil && *input.Type != result.Label {
		s.logger.DebugContext(ctx, "emotion_type_overridden",
			slog.String("requested", *input.Type),
			slog.String("classified", result.Label),
		)
	}

	emotion := &model.Emotion{
		Text:     input.Text,
		ClientID: client.ID,
		Client:   client,
	}
	emotion.ApplySentiment(result)

	if err := s.store.CreateEmotion(ctx, emotion); err != nil {
		if errors.Is(err, repository.ErrEmotionTextExists) {
			s.metrics.IncEmotionDuplicate()
			if existing, lookupErr := s.store.GetEmotionByText(ctx, input.Text); lookupErr == nil {
				return nil, fmt.Errorf("%w: id %d", ErrDuplicateEmotion, existing.ID)
			}
			return nil, fmt.Errorf("%w: text already stored", ErrDuplicateEmotion)
		}
		return nil, fmt.Errorf("failed to create emotion: %w", err)
	}

	s.metrics.IncEmotionCreated()
	s.logger.InfoContext(ctx, "emotion_created",
		slog.Int64("emotion_id", emotion.ID),
		slog.Int64("client_id", client.ID),
		slog.String("type", result.Label),
		slog.Float64("score", result.Score),
	)

	return emotion, nil
}

// EmotionFilter narrows FindAllEmotions.
type EmotionFilter struct {
	// Types limits results to these labels. Empty means all.
	Types []string
}

// FindAllEmotions returns stored emotions, newest first.
func (s *EmotionService) FindAllEmotions(ctx context.Context, filter EmotionFilter) ([]*model.Emotion, error) {
	emotions, err := s.store.ListEmotions(ctx, repository.EmotionFilter{Types: filter.Types})
	if err != nil {
		return nil, err
	}
	if len(emotions) == 0 {
		return nil, ErrNoEmotions
	}
	return emotions, nil
}

// GetEmotion retrieves an emotion by ID.
func (s *EmotionService) GetEmotion(ctx context.Context, id int64) (*model.Emotion, error) {
	emotion, err := s.store.GetEmotionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEmotionNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrEmotionNotFound, id)
		}
		return nil, err
	}
	return emotion, nil
}

// DeleteEmotion removes an emotion by ID.
func (s *EmotionService) DeleteEmotion(ctx context.Context, id int64) error {
	if err := s.store.DeleteEmotion(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEmotionNotFound) {
			return fmt.Errorf("%w: id %d", ErrEmotionNotFound, id)
		}
		return fmt.Errorf("failed to delete emotion: %w", err)
	}

	s.metrics.IncEmotionDeleted()
	s.logger.InfoContext(ctx, "emotion_deleted", slog.Int64("emotion_id", id))

	return nil
}
