package sentiment

import (
	"errors"

	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/models"
)

// ErrNoArticles is returned when there is nothing to aggregate. The mean
// of an empty set is undefined, so the caller must report missing data
// instead of a misleading neutral verdict.
var ErrNoArticles = errors.New("no articles to analyze")

// Thresholds for interpreting a mean compound score. These follow the
// standard boundary convention for compound scores and must not drift:
// downstream consumers compare verdicts across runs.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Aggregate returns the arithmetic mean of the compound scores.
func Aggregate(scores []float64) (float64, error) {
	if len(scores) == 0 {
		return 0, ErrNoArticles
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores)), nil
}

// Classify maps a mean compound score to an interpretation label.
// Both boundaries are inclusive.
func Classify(mean float64) string {
	switch {
	case mean >= positiveThreshold:
		return models.Positive
	case mean <= negativeThreshold:
		return models.Negative
	default:
		return models.Neutral
	}
}
