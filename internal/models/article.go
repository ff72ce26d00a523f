package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidQuery marks query validation failures. Callers can test for it
// with errors.Is regardless of the specific field that was rejected.
var ErrInvalidQuery = errors.New("invalid query")

// Query describes a single analysis request: which company to look up and
// how far back to search. Constructed once per run and never mutated.
type Query struct {
	Company     string `json:"company"`
	HorizonDays int    `json:"horizon_days"`
	PageSize    int    `json:"page_size"`
}

// Validate rejects queries that cannot produce a meaningful result.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Company) == "" {
		return fmt.Errorf("%w: company must not be empty", ErrInvalidQuery)
	}
	if q.HorizonDays <= 0 {
		return fmt.Errorf("%w: horizon_days must be positive, got %d", ErrInvalidQuery, q.HorizonDays)
	}
	if q.PageSize <= 0 {
		return fmt.Errorf("%w: page_size must be positive, got %d", ErrInvalidQuery, q.PageSize)
	}
	return nil
}

// Article is a single news item as returned by the news source.
// Read-only once produced by the fetcher.
type Article struct {
	PublishedAt time.Time `json:"published_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
}

// Text returns the content handed to the sentiment scorer: title and
// description joined the way a reader would encounter them.
func (a Article) Text() string {
	title := strings.TrimSpace(a.Title)
	desc := strings.TrimSpace(a.Description)
	switch {
	case title == "":
		return desc
	case desc == "":
		return title
	default:
		return title + ". " + desc
	}
}

// ScoredArticle pairs an article with its compound sentiment score.
// Compound is always in [-1, 1].
type ScoredArticle struct {
	Article
	Compound float64 `json:"compound_score"`
}
