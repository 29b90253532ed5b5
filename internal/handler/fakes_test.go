package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/emotionlog/emotionlog/internal/handler/dto"
	"github.com/emotionlog/emotionlog/internal/model"
	"github.com/emotionlog/emotionlog/internal/service"
)

type fakeEmotionService struct {
	createFn  func(ctx context.Context, input service.CreateEmotionInput) (*model.Emotion, error)
	findAllFn func(ctx context.Context, filter service.EmotionFilter) ([]*model.Emotion, error)
	getFn     func(ctx context.Context, id int64) (*model.Emotion, error)
	deleteFn  func(ctx context.Context, id int64) error
}

func (f *fakeEmotionService) CreateEmotion(ctx context.Context, input service.CreateEmotionInput) (*model.Emotion, error) {
	return f.createFn(ctx, input)
}

func (f *fakeEmotionService) FindAllEmotions(ctx context.Context, filter service.EmotionFilter) ([]*model.Emotion, error) {
	return f.findAllFn(ctx, filter)
}

func (f *fakeEmotionService) GetEmotion(ctx context.Context, id int64) (*model.Emotion, error) {
	return f.getFn(ctx, id)
}

func (f *fakeEmotionService) DeleteEmotion(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

type fakeClientService struct {
	resolveFn func(ctx context.Context, email string) (*model.Client, bool, error)
	getFn     func(ctx context.Context, id int64) (*model.Client, error)
	listFn    func(ctx context.Context) ([]*model.Client, error)
}

func (f *fakeClientService) ReadOrCreateClient(ctx context.Context, email string) (*model.Client, bool, error) {
	return f.resolveFn(ctx, email)
}

func (f *fakeClientService) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	return f.getFn(ctx, id)
}

func (f *fakeClientService) ListClients(ctx context.Context) ([]*model.Client, error) {
	return f.listFn(ctx)
}

// serve routes a single request through a chi router so URL params resolve.
func serve(t *testing.T, method, pattern, target, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func classified(id int64, text, label string, score float64) *model.Emotion {
	e := &model.Emotion{
		ID:       id,
		Text:     text,
		ClientID: 1,
		Client:   &model.Client{ID: 1, Email: "ana@example.com"},
	}
	e.ApplySentiment(model.SentimentResult{Label: label, Score: score})
	return e
}
