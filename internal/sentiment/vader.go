package sentiment

import (
	"fmt"

	"github.com/jonreiter/govader"
)

// VaderModel is a lexicon-based sentiment model. It satisfies the same
// capability contract as the trained artifact and serves as the default
// when no artifact path is configured.
type VaderModel struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderModel() *VaderModel {
	return &VaderModel{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Transform returns a one-element feature vector holding the VADER compound
// score in [-1, 1].
func (m *VaderModel) Transform(text string) ([]float64, error) {
	scores := m.analyzer.PolarityScores(text)
	return []float64{scores.Compound}, nil
}

// Predict maps a non-negative compound score to positive.
func (m *VaderModel) Predict(features []float64) (int, error) {
	if len(features) != 1 {
		return 0, fmt.Errorf("expected 1 feature, got %d", len(features))
	}
	if features[0] < 0 {
		return labelNegative, nil
	}
	return labelPositive, nil
}
