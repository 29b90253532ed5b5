package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/emotionlog/emotionlog/internal/handler/dto"
	"github.com/emotionlog/emotionlog/internal/model"
)

// ClientService is the subset of service.ClientService used by ClientHandler.
type ClientService interface {
	ReadOrCreateClient(ctx context.Context, email string) (*model.Client, bool, error)
	GetClient(ctx context.Context, id int64) (*model.Client, error)
	ListClients(ctx context.Context) ([]*model.Client, error)
}

// ClientHandler handles HTTP requests for client operations.
type ClientHandler struct {
	svc    ClientService
	logger *slog.Logger
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(svc ClientService, logger *slog.Logger) *ClientHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClientHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/clients.
// Responds 201 when the client was created and 200 when it already existed.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	client, created, err := h.svc.ReadOrCreateClient(r.Context(), req.Email)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, dto.ToClientResponse(client))
}

// List handles GET /api/v1/clients.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.ListClients(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToClientListResponse(clients))
}

// Get handles GET /api/v1/clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	client, err := h.svc.GetClient(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToClientResponse(client))
}
