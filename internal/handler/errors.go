package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/emotionlog/emotionlog/internal/handler/dto"
	"github.com/emotionlog/emotionlog/internal/sentiment"
	"github.com/emotionlog/emotionlog/internal/service"
)

// errorMapping ties a sentinel error to its HTTP status and stable code.
type errorMapping struct {
	err    error
	status int
	code   string
}

// Order matters only where one error could wrap another; the sentinels here
// are disjoint.
var errorMappings = []errorMapping{
	{service.ErrInvalidEmail, http.StatusBadRequest, "INVALID_EMAIL"},
	{service.ErrInvalidText, http.StatusBadRequest, "INVALID_TEXT"},
	{service.ErrDuplicateEmotion, http.StatusConflict, "DUPLICATE_EMOTION"},
	{service.ErrEmotionNotFound, http.StatusNotFound, "EMOTION_NOT_FOUND"},
	{service.ErrClientNotFound, http.StatusNotFound, "CLIENT_NOT_FOUND"},
	{service.ErrNoEmotions, http.StatusNotFound, "NO_EMOTIONS"},
	{service.ErrNoClients, http.StatusNotFound, "NO_CLIENTS"},

	{sentiment.ErrConfiguration, http.StatusServiceUnavailable, "CONFIGURATION_ERROR"},
	{sentiment.ErrTransport, http.StatusBadGateway, "TRANSPORT_ERROR"},
	{sentiment.ErrProviderError, http.StatusBadGateway, "PROVIDER_ERROR"},
	{sentiment.ErrEmptyResponse, http.StatusBadGateway, "EMPTY_RESPONSE"},
	{sentiment.ErrUnsupportedFormat, http.StatusBadGateway, "UNSUPPORTED_FORMAT"},
	{sentiment.ErrNoPredictions, http.StatusBadGateway, "NO_PREDICTIONS"},
	{sentiment.ErrNoUsablePrediction, http.StatusBadGateway, "NO_USABLE_PREDICTION"},
	{sentiment.ErrMalformedResponse, http.StatusBadGateway, "MALFORMED_RESPONSE"},
}

// handleServiceError maps service and provider errors to HTTP responses.
// Unknown errors are logged and reported without detail.
func handleServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			if m.status >= http.StatusInternalServerError {
				logger.WarnContext(r.Context(), "upstream_error",
					slog.String("code", m.code),
					slog.String("error", err.Error()),
				)
			}
			writeError(w, m.status, m.code, err.Error())
			return
		}
	}

	logger.ErrorContext(r.Context(), "internal_error", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
