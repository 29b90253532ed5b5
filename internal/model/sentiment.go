package model

// SentimentResult is the best prediction selected from a provider response.
// It is never persisted on its own.
type SentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
