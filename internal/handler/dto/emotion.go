// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/emotionlog/emotionlog/internal/model"
)

// ClientRef identifies the owning client in a create request.
type ClientRef struct {
	Email string `json:"email"`
}

// CreateEmotionRequest represents the request body for recording an emotion.
type CreateEmotionRequest struct {
	Text   string    `json:"text"`
	Type   *string   `json:"type,omitempty"`
	Client ClientRef `json:"client"`
}

// EmotionResponse represents an emotion in API responses.
type EmotionResponse struct {
	ID        int64           `json:"id"`
	Text      string          `json:"text"`
	Type      *string         `json:"type"`
	Score     *float64        `json:"score"`
	Client    *ClientResponse `json:"client,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// EmotionListResponse wraps a list of emotions.
type EmotionListResponse struct {
	Data []EmotionResponse `json:"data"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToEmotionResponse converts an Emotion model to EmotionResponse DTO.
func ToEmotionResponse(emotion *model.Emotion) EmotionResponse {
	resp := EmotionResponse{
		ID:        emotion.ID,
		Text:      emotion.Text,
		Type:      emotion.Type,
		Score:     emotion.Score,
		CreatedAt: emotion.CreatedAt,
	}
	if emotion.Client != nil {
		client := ToClientResponse(emotion.Client)
		resp.Client = &client
	}
	return resp
}

// ToEmotionListResponse converts a slice of emotions.
func ToEmotionListResponse(emotions []*model.Emotion) EmotionListResponse {
	data := make([]EmotionResponse, 0, len(emotions))
	for _, e := range emotions {
		data = append(data, ToEmotionResponse(e))
	}
	return EmotionListResponse{Data: data}
}
