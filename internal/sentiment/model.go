package sentiment

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

// modelArtifact is the JSON export of the offline training run: a fitted
// tf-idf vocabulary plus the weights of a linear decision function.
type modelArtifact struct {
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	Coefficients []float64      `json:"coefficients"`
	Intercept    float64        `json:"intercept"`
	NgramMin     int            `json:"ngram_min"`
	NgramMax     int            `json:"ngram_max"`
}

// LinearModel scores normalized text with tf-idf features and a linear
// decision function. It implements domain.SentimentModel and is read-only
// after load, so concurrent use needs no locking.
type LinearModel struct {
	artifact modelArtifact
}

// LoadLinearModel reads and validates a model artifact from path.
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var artifact modelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}

	if artifact.NgramMin == 0 {
		artifact.NgramMin = 1
	}
	if artifact.NgramMax == 0 {
		artifact.NgramMax = artifact.NgramMin
	}

	if err := validateArtifact(artifact); err != nil {
		return nil, err
	}

	return &LinearModel{artifact: artifact}, nil
}

func validateArtifact(a modelArtifact) error {
	if len(a.Vocabulary) == 0 {
		return fmt.Errorf("model artifact has empty vocabulary")
	}
	if len(a.IDF) != len(a.Vocabulary) {
		return fmt.Errorf("idf size %d does not match vocabulary size %d", len(a.IDF), len(a.Vocabulary))
	}
	if len(a.Coefficients) != len(a.Vocabulary) {
		return fmt.Errorf("coefficient size %d does not match vocabulary size %d", len(a.Coefficients), len(a.Vocabulary))
	}
	if a.NgramMin < 1 || a.NgramMax < a.NgramMin {
		return fmt.Errorf("invalid ngram range [%d, %d]", a.NgramMin, a.NgramMax)
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= len(a.IDF) {
			return fmt.Errorf("vocabulary index %d for %q out of range", idx, term)
		}
	}
	return nil
}

// Transform converts normalized text into an l2-normalized tf-idf vector
// over the artifact's vocabulary. Out-of-vocabulary terms are dropped.
func (m *LinearModel) Transform(text string) ([]float64, error) {
	tokens := strings.Fields(text)
	features := make([]float64, len(m.artifact.IDF))

	for n := m.artifact.NgramMin; n <= m.artifact.NgramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := strings.Join(tokens[i:i+n], " ")
			if idx, ok := m.artifact.Vocabulary[term]; ok {
				features[idx]++
			}
		}
	}

	var norm float64
	for idx, tf := range features {
		if tf == 0 {
			continue
		}
		weighted := tf * m.artifact.IDF[idx]
		features[idx] = weighted
		norm += weighted * weighted
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range features {
			features[idx] /= norm
		}
	}

	return features, nil
}

// Predict evaluates the decision function and returns 1 for a positive
// score, 0 otherwise.
func (m *LinearModel) Predict(features []float64) (int, error) {
	if len(features) != len(m.artifact.Coefficients) {
		return 0, fmt.Errorf("feature size %d does not match model size %d", len(features), len(m.artifact.Coefficients))
	}

	score := m.artifact.Intercept
	for idx, weight := range m.artifact.Coefficients {
		score += weight * features[idx]
	}

	if score > 0 {
		return labelPositive, nil
	}
	return labelNegative, nil
}
