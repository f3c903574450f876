package sentiment

import (
	"fmt"

	"github.com/pscheid92/mindpulse/internal/domain"
	"github.com/pscheid92/mindpulse/internal/metrics"
)

const (
	labelNegative = 0
	labelPositive = 1
)

// Oracle classifies raw text as negative (0) or positive (1) using an
// offline-trained SentimentModel. It implements domain.Classifier.
type Oracle struct {
	model domain.SentimentModel
}

func NewOracle(model domain.SentimentModel) *Oracle {
	return &Oracle{model: model}
}

// Classify returns the binary sentiment label for text.
//
// Text that normalizes to the empty string is positive: absence of signal is
// not negative signal. Any model failure resolves to negative, because for a
// mental-health signal under-estimating wellbeing is safer than silently
// losing it. Failures never reach the caller.
func (o *Oracle) Classify(text string) int {
	clean := Normalize(text)
	if clean == "" {
		return labelPositive
	}

	label, err := o.predict(clean)
	if err != nil {
		metrics.ClassifierFailures.Inc()
		return labelNegative
	}
	return label
}

// predict runs the model and converts panics into errors so that the
// fail-safe in Classify covers every failure mode.
func (o *Oracle) predict(clean string) (label int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sentiment model panicked: %v", r)
		}
	}()

	features, err := o.model.Transform(clean)
	if err != nil {
		return 0, fmt.Errorf("transform failed: %w", err)
	}

	label, err = o.model.Predict(features)
	if err != nil {
		return 0, fmt.Errorf("predict failed: %w", err)
	}
	if label != labelNegative && label != labelPositive {
		return 0, fmt.Errorf("model returned out-of-range label %d", label)
	}
	return label, nil
}
