package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emotionlog/emotionlog/internal/model"
)

// CreateClient inserts a client and fills in its generated ID and timestamp.
func (r *Repository) CreateClient(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (email)
		VALUES ($1)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, client.Email).Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// GetClientByEmail retrieves a client by its exact email.
func (r *Repository) GetClientByEmail(ctx context.Context, email string) (*model.Client, error) {
	query := `SELECT id, email, created_at FROM clients WHERE email = $1`

	client, err := scanClient(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by email: %w", err)
	}

	return client, nil
}

// GetClientByID retrieves a client by its ID.
func (r *Repository) GetClientByID(ctx context.Context, id int64) (*model.Client, error) {
	query := `SELECT id, email, created_at FROM clients WHERE id = $1`

	client, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}

// ListClients returns all clients ordered by ID.
func (r *Repository) ListClients(ctx context.Context) ([]*model.Client, error) {
	query := `SELECT id, email, created_at FROM clients ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*model.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

func scanClient(row pgx.Row) (*model.Client, error) {
	var client model.Client
	err := row.Scan(&client.ID, &client.Email, &client.CreatedAt)
	return &client, err
}
