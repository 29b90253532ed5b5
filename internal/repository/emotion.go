package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/emotionlog/emotionlog/internal/model"
)

// EmotionFilter defines filters for listing emotions.
type EmotionFilter struct {
	// Types matches any of the given labels. Empty matches all rows.
	Types []string
}

const emotionColumns = `
	e.id, e.text, e.type, e.score, e.client_id, e.created_at,
	c.id, c.email, c.created_at
`

// CreateEmotion inserts an emotion and fills in its generated ID and timestamp.
func (r *Repository) CreateEmotion(ctx context.Context, emotion *model.Emotion) error {
	query := `
		INSERT INTO emotions (text, type, score, client_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		emotion.Text,
		emotion.Type,
		emotion.Score,
		emotion.ClientID,
	).Scan(&emotion.ID, &emotion.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmotionTextExists
		}
		return fmt.Errorf("failed to create emotion: %w", err)
	}

	return nil
}

// GetEmotionByText retrieves the emotion with exactly this text.
func (r *Repository) GetEmotionByText(ctx context.Context, text string) (*model.Emotion, error) {
	// md5 predicate lets the planner use emotions_text_key.
	query := `
		SELECT ` + emotionColumns + `
		FROM emotions e
		JOIN clients c ON c.id = e.client_id
		WHERE md5(e.text) = md5($1) AND e.text = $1
	`

	emotion, err := scanEmotion(r.pool.QueryRow(ctx, query, text))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmotionNotFound
		}
		return nil, fmt.Errorf("failed to get emotion by text: %w", err)
	}

	return emotion, nil
}

// GetEmotionByID retrieves an emotion by its ID.
func (r *Repository) GetEmotionByID(ctx context.Context, id int64) (*model.Emotion, error) {
	query := `
		SELECT ` + emotionColumns + `
		FROM emotions e
		JOIN clients c ON c.id = e.client_id
		WHERE e.id = $1
	`

	emotion, err := scanEmotion(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmotionNotFound
		}
		return nil, fmt.Errorf("failed to get emotion: %w", err)
	}

	return emotion, nil
}

// ListEmotions returns emotions newest first, optionally limited to some labels.
func (r *Repository) ListEmotions(ctx context.Context, filter EmotionFilter) ([]*model.Emotion, error) {
	query := `
		SELECT ` + emotionColumns + `
		FROM emotions e
		JOIN clients c ON c.id = e.client_id
		WHERE ($1::text[] IS NULL OR e.type = ANY($1::text[]))
		ORDER BY e.created_at DESC, e.id DESC
	`

	var types any
	if len(filter.Types) > 0 {
		types = pq.Array(filter.Types)
	}

	return r.queryEmotions(ctx, query, types)
}

// ListEmotionsByClient returns a client's emotions oldest first.
func (r *Repository) ListEmotionsByClient(ctx context.Context, clientID int64) ([]*model.Emotion, error) {
	query := `
		SELECT ` + emotionColumns + `
		FROM emotions e
		JOIN clients c ON c.id = e.client_id
		WHERE e.client_id = $1
		ORDER BY e.id
	`

	return r.queryEmotions(ctx, query, clientID)
}

// DeleteEmotion permanently removes an emotion.
func (r *Repository) DeleteEmotion(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM emotions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete emotion: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrEmotionNotFound
	}

	return nil
}

func (r *Repository) queryEmotions(ctx context.Context, query string, args ...any) ([]*model.Emotion, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list emotions: %w", err)
	}
	defer rows.Close()

	var emotions []*model.Emotion
	for rows.Next() {
		emotion, err := scanEmotion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan emotion: %w", err)
		}
		emotions = append(emotions, emotion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating emotions: %w", err)
	}

	return emotions, nil
}

func scanEmotion(row pgx.Row) (*model.Emotion, error) {
	var emotion model.Emotion
	var client model.Client
	err := row.Scan(
		&emotion.ID,
		&emotion.Text,
		&emotion.Type,
		&emotion.Score,
		&emotion.ClientID,
		&emotion.CreatedAt,
		&client.ID,
		&client.Email,
		&client.CreatedAt,
	)
	emotion.Client = &client
	return &emotion, err
}
