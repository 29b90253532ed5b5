package sentiment

import (
	"context"
	"log/slog"
	"time"

	"github.com/emotionlog/emotionlog/internal/metrics"
	"github.com/emotionlog/emotionlog/internal/model"
)

// RawClassifier returns the provider's unparsed response for a text.
type RawClassifier interface {
	Classify(ctx context.Context, text string) ([]byte, error)
}

// Analyzer runs a classification request and picks the best prediction.
type Analyzer struct {
	client  RawClassifier
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewAnalyzer creates an Analyzer on top of a provider client.
func NewAnalyzer(client RawClassifier, logger *slog.Logger, recorder metrics.Recorder) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Analyzer{
		client:  client,
		logger:  logger,
		metrics: recorder,
	}
}

// Analyze classifies text and returns the single best label and score.
func (a *Analyzer) Analyze(ctx context.Context, text string) (model.SentimentResult, error) {
	start := time.Now()

	body, err := a.client.Classify(ctx, text)
	if err != nil {
		return model.SentimentResult{}, a.fail(ctx, err, start)
	}
	a.metrics.ObserveClassificationDuration(time.Since(start))

	result, err := ParseBestPrediction(body)
	if err != nil {
		return model.SentimentResult{}, a.fail(ctx, err, start)
	}

	a.logger.DebugContext(ctx, "classification_completed",
		slog.String("label", result.Label),
		slog.Float64("score", result.Score),
		slog.String("shape", DetectShape(body).String()),
		slog.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

func (a *Analyzer) fail(ctx context.Context, err error, start time.Time) error {
	kind := Kind(err)
	a.metrics.IncClassificationFailure(kind)
	a.logger.WarnContext(ctx, "classification_failed",
		slog.String("kind", kind),
		slog.String("error", err.Error()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return err
}
