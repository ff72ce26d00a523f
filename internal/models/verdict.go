package models

import "time"

// Interpretation labels for a classified mean compound score.
const (
	Positive = "Positive"
	Negative = "Negative"
	Neutral  = "Neutral"
)

// Verdict is the terminal output of a run: the original query echoed back
// with the aggregate score and its interpretation. Never persisted.
type Verdict struct {
	RunID          string    `json:"run_id"`
	Company        string    `json:"company"`
	HorizonDays    int       `json:"horizon_days"`
	MeanScore      float64   `json:"mean_score"`
	Interpretation string    `json:"interpretation"`
	ArticleCount   int       `json:"article_count"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Report is a complete run result: the verdict plus the scored articles
// that produced it, most recent first.
type Report struct {
	Verdict  Verdict         `json:"verdict"`
	Articles []ScoredArticle `json:"articles"`
}
