package sentiment

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/emotionlog/emotionlog/internal/model"
)

// Shape is the resolved form of a provider response.
type Shape int

const (
	ShapeMalformed Shape = iota
	ShapeEmpty
	ShapeErrorObject
	ShapeFlatList
	ShapeNestedList
	ShapeUnsupported
)

func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeErrorObject:
		return "error_object"
	case ShapeFlatList:
		return "flat_list"
	case ShapeNestedList:
		return "nested_list"
	case ShapeUnsupported:
		return "unsupported"
	default:
		return "malformed"
	}
}

// DetectShape inspects body and reports which response form it has.
// Order matters: null/empty, then error object, then arrays.
func DetectShape(body []byte) Shape {
	if len(bytes.TrimSpace(body)) == 0 {
		return ShapeEmpty
	}
	if !gjson.ValidBytes(body) {
		return ShapeMalformed
	}

	doc := gjson.ParseBytes(body)
	switch {
	case doc.Type == gjson.Null:
		return ShapeEmpty
	case doc.IsObject() && doc.Get("error").Exists():
		return ShapeErrorObject
	case !doc.IsArray():
		return ShapeUnsupported
	}

	elements := doc.Array()
	if len(elements) == 0 {
		return ShapeUnsupported
	}
	if elements[0].IsArray() {
		return ShapeNestedList
	}
	return ShapeFlatList
}

// ParseBestPrediction selects the highest scoring label from a provider response.
//
// Accepted forms are a flat array of {label, score} objects, an array whose first
// element is such an array, or an object with an "error" field. Elements without a
// label or with a non-numeric score are skipped; ties keep the first element seen.
func ParseBestPrediction(body []byte) (model.SentimentResult, error) {
	var predictions []gjson.Result

	switch shape := DetectShape(body); shape {
	case ShapeMalformed:
		return model.SentimentResult{}, fmt.Errorf("%w: %s", ErrMalformedResponse, preview(body))
	case ShapeEmpty:
		return model.SentimentResult{}, ErrEmptyResponse
	case ShapeErrorObject:
		return model.SentimentResult{}, &ProviderError{Message: errorText(gjson.GetBytes(body, "error"))}
	case ShapeUnsupported:
		return model.SentimentResult{}, ErrUnsupportedFormat
	case ShapeNestedList:
		predictions = gjson.ParseBytes(body).Array()[0].Array()
	default:
		predictions = gjson.ParseBytes(body).Array()
	}

	if len(predictions) == 0 {
		return model.SentimentResult{}, ErrNoPredictions
	}

	var best *model.SentimentResult
	for _, prediction := range predictions {
		if !prediction.IsObject() {
			continue
		}
		label, ok := labelValue(prediction.Get("label"))
		if !ok {
			continue
		}
		score, ok := scoreValue(prediction.Get("score"))
		if !ok {
			continue
		}
		if best == nil || score > best.Score {
			best = &model.SentimentResult{Label: label, Score: score}
		}
	}

	if best == nil {
		return model.SentimentResult{}, ErrNoUsablePrediction
	}
	return *best, nil
}

func errorText(field gjson.Result) string {
	if field.Type == gjson.String {
		return field.Str
	}
	return field.Raw
}

// labelValue accepts any non-null scalar and returns its text.
func labelValue(field gjson.Result) (string, bool) {
	switch field.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return field.String(), true
	default:
		return "", false
	}
}

// scoreValue accepts JSON numbers and numeric strings.
func scoreValue(field gjson.Result) (float64, bool) {
	var score float64
	switch field.Type {
	case gjson.Number:
		score = field.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(field.Str), 64)
		if err != nil {
			return 0, false
		}
		score = parsed
	default:
		return 0, false
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, false
	}
	return score, true
}
