package domain

// SentimentModel is the capability contract of the offline-trained
// classifier artifact: a fitted text-to-feature transform plus a binary
// predictor. Implementations are loaded once at process start and must be
// safe for concurrent use; the service never retrains or mutates them.
type SentimentModel interface {
	Transform(text string) ([]float64, error)
	Predict(features []float64) (int, error)
}

// Classifier maps raw text to a binary sentiment label: 0 negative, 1 positive.
// Implementations must not fail: degraded conditions resolve to a label.
type Classifier interface {
	Classify(text string) int
}
