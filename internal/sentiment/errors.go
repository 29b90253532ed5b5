// Package sentiment talks to the external sentiment classification provider
// and turns its loosely structured responses into a single best prediction.
package sentiment

import "errors"

// Sentinel errors for provider calls and response interpretation.
var (
	ErrConfiguration      = errors.New("sentiment provider is not configured")
	ErrTransport          = errors.New("sentiment provider request failed")
	ErrProviderError      = errors.New("sentiment provider reported an error")
	ErrEmptyResponse      = errors.New("sentiment provider returned an empty response")
	ErrMalformedResponse  = errors.New("sentiment provider response is not valid JSON")
	ErrUnsupportedFormat  = errors.New("sentiment provider response format is not supported")
	ErrNoPredictions      = errors.New("sentiment provider returned no predictions")
	ErrNoUsablePrediction = errors.New("sentiment provider returned no usable prediction values")
)

// ProviderError carries the message the provider put in its "error" field.
// It matches ErrProviderError under errors.Is.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return "sentiment provider error: " + e.Message
}

// Is reports whether target is ErrProviderError.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderError
}

// Failure kinds, used as metric labels and log attributes.
const (
	KindConfiguration      = "configuration"
	KindTransport          = "transport"
	KindProviderError      = "provider_error"
	KindEmptyResponse      = "empty_response"
	KindMalformedResponse  = "malformed_response"
	KindUnsupportedFormat  = "unsupported_format"
	KindNoPredictions      = "no_predictions"
	KindNoUsablePrediction = "no_usable_prediction"
	KindUnknown            = "unknown"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrConfiguration, KindConfiguration},
	{ErrTransport, KindTransport},
	{ErrProviderError, KindProviderError},
	{ErrEmptyResponse, KindEmptyResponse},
	{ErrMalformedResponse, KindMalformedResponse},
	{ErrUnsupportedFormat, KindUnsupportedFormat},
	{ErrNoPredictions, KindNoPredictions},
	{ErrNoUsablePrediction, KindNoUsablePrediction},
}

// Kind classifies err into one of the Kind* constants.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}

// IsProviderFailure reports whether err came from interpreting the provider
// response rather than from configuration or transport.
func IsProviderFailure(err error) bool {
	switch Kind(err) {
	case KindProviderError, KindEmptyResponse, KindMalformedResponse,
		KindUnsupportedFormat, KindNoPredictions, KindNoUsablePrediction:
		return true
	}
	return false
}
