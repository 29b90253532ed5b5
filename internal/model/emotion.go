package model

import "time"

// Emotion is a text snippet annotated with the sentiment the provider assigned to it.
// Type and Score stay nil until classification completes.
type Emotion struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Type      *string   `json:"type,omitempty"`
	Score     *float64  `json:"score,omitempty"`
	ClientID  int64     `json:"client_id"`
	Client    *Client   `json:"client,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsClassified reports whether a label and score have been attached.
func (e *Emotion) IsClassified() bool {
	return e.Type != nil && e.Score != nil
}

// ApplySentiment copies a classification result onto the emotion.
func (e *Emotion) ApplySentiment(result SentimentResult) {
	label := result.Label
	score := result.Score
	e.Type = &label
	e.Score = &score
}

// Summary returns the compact form used inside client responses.
func (e *Emotion) Summary() EmotionSummary {
	return EmotionSummary{
		ID:    e.ID,
		Text:  e.Text,
		Type:  e.Type,
		Score: e.Score,
	}
}

// EmotionSummary is an emotion without its owning client.
type EmotionSummary struct {
	ID    int64    `json:"id"`
	Text  string   `json:"text"`
	Type  *string  `json:"type,omitempty"`
	Score *float64 `json:"score,omitempty"`
}
