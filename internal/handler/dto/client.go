package dto

import (
	"time"

	"github.com/emotionlog/emotionlog/internal/model"
)

// CreateClientRequest represents the request body for resolving a client.
type CreateClientRequest struct {
	Email string `json:"email"`
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID        int64                  `json:"id"`
	Email     string                 `json:"email"`
	CreatedAt time.Time              `json:"created_at"`
	Emotions  []model.EmotionSummary `json:"emotions,omitempty"`
}

// ClientListResponse wraps a list of clients.
type ClientListResponse struct {
	Data []ClientResponse `json:"data"`
}

// ToClientResponse converts a Client model to ClientResponse DTO.
func ToClientResponse(client *model.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		Email:     client.Email,
		CreatedAt: client.CreatedAt,
		Emotions:  client.Emotions,
	}
}

// ToClientListResponse converts a slice of clients.
func ToClientListResponse(clients []*model.Client) ClientListResponse {
	data := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		data = append(data, ToClientResponse(c))
	}
	return ClientListResponse{Data: data}
}
