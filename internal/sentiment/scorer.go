package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Scorer computes a compound sentiment score in [-1, 1] for a piece of
// text. Implementations must be stateless and safe for repeated calls so
// alternative scoring strategies can substitute for the default one.
type Scorer interface {
	Score(text string) float64
}

// VaderScorer scores text with a lexicon-and-rule-based model that
// accounts for negation, intensifiers, punctuation emphasis, and
// capitalization.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer builds a scorer with the default lexicon.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound polarity of text. Text without usable
// content scores exactly 0 rather than failing.
func (s *VaderScorer) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return s.analyzer.PolarityScores(text).Compound
}
