// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/emotionlog/emotionlog/internal/model"
	"github.com/emotionlog/emotionlog/internal/repository"
)

// Service errors.
var (
	ErrInvalidEmail     = errors.New("invalid client email")
	ErrInvalidText      = errors.New("invalid emotion text")
	ErrDuplicateEmotion = errors.New("emotion with this text already exists")
	ErrEmotionNotFound  = errors.New("emotion not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrNoEmotions       = errors.New("no emotions found")
	ErrNoClients        = errors.New("no clients found")
)

const (
	maxTextLength  = 1000
	maxEmailLength = 254
)

// ClientStore persists clients.
type ClientStore interface {
	CreateClient(ctx context.Context, client *model.Client) error
	GetClientByEmail(ctx context.Context, email string) (*model.Client, error)
	GetClientByID(ctx context.Context, id int64) (*model.Client, error)
	ListClients(ctx context.Context) ([]*model.Client, error)
	ListEmotionsByClient(ctx context.Context, clientID int64) ([]*model.Emotion, error)
}

// EmotionStore persists emotions.
type EmotionStore interface {
	CreateEmotion(ctx context.Context, emotion *model.Emotion) error
	GetEmotionByText(ctx context.Context, text string) (*model.Emotion, error)
	GetEmotionByID(ctx context.Context, id int64) (*model.Emotion, error)
	ListEmotions(ctx context.Context, filter repository.EmotionFilter) ([]*model.Emotion, error)
	DeleteEmotion(ctx context.Context, id int64) error
}

// Classifier produces a sentiment label and score for a text.
type Classifier interface {
	Analyze(ctx context.Context, text string) (model.SentimentResult, error)
}

// normalizeEmail trims surrounding whitespace and checks the address is a bare
// mailbox (no display name, no angle brackets).
func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidEmail)
	}
	if len(email) > maxEmailLength {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidEmail, maxEmailLength)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return email, nil
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidText)
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidText, maxTextLength)
	}
	return nil
}
