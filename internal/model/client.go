// Package model defines domain entities for the application.
package model

import "time"

// Client is the owner of recorded emotions, identified by email.
type Client struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`

	// Emotions is only populated on the single-client read path.
	Emotions []EmotionSummary `json:"emotions,omitempty"`
}
