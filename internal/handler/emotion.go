package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/emotionlog/emotionlog/internal/handler/dto"
	"github.com/emotionlog/emotionlog/internal/model"
	"github.com/emotionlog/emotionlog/internal/service"
)

// EmotionService is the subset of service.EmotionService used by EmotionHandler.
type EmotionService interface {
	CreateEmotion(ctx context.Context, input service.CreateEmotionInput) (*model.Emotion, error)
	FindAllEmotions(ctx context.Context, filter service.EmotionFilter) ([]*model.Emotion, error)
	GetEmotion(ctx context.Context, id int64) (*model.Emotion, error)
	DeleteEmotion(ctx context.Context, id int64) error
}

// EmotionHandler handles HTTP requests for emotion operations.
type EmotionHandler struct {
	svc    EmotionService
	logger *slog.Logger
}

// NewEmotionHandler creates a new EmotionHandler.
func NewEmotionHandler(svc EmotionService, logger *slog.Logger) *EmotionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmotionHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/emotions.
func (h *EmotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	emotion, err := h.svc.CreateEmotion(r.Context(), service.CreateEmotionInput{
		Text:        req.Text,
		Type:        req.Type,
		ClientEmail: req.Client.Email,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToEmotionResponse(emotion))
}

// List handles GET /api/v1/emotions.
// The optional type query parameter takes a comma-separated list of labels
// and may be repeated.
func (h *EmotionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := service.EmotionFilter{Types: parseTypes(r.URL.Query()["type"])}

	emotions, err := h.svc.FindAllEmotions(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToEmotionListResponse(emotions))
}

// Get handles GET /api/v1/emotions/{id}.
func (h *EmotionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	emotion, err := h.svc.GetEmotion(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToEmotionResponse(emotion))
}

// Delete handles DELETE /api/v1/emotions/{id}.
func (h *EmotionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteEmotion(r.Context(), id); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseID reads a positive integer {id} path parameter, writing a 400 when invalid.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "ID must be a positive integer")
		return 0, false
	}
	return id, true
}

func parseTypes(values []string) []string {
	var types []string
	for _, v := range values {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}
	return types
}
