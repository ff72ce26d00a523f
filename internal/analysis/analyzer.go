package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/models"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/sentiment"
)

// ArticleFetcher supplies the articles to analyze. The production
// implementation lives in internal/newsapi.
type ArticleFetcher interface {
	Fetch(ctx context.Context, q models.Query) ([]models.Article, error)
}

// Analyzer runs the fetch -> score -> aggregate -> classify pipeline.
// It holds no state across runs; concurrent Runs are independent.
type Analyzer struct {
	fetcher ArticleFetcher
	scorer  sentiment.Scorer
	log     *slog.Logger

	// RelevantOnly drops articles whose title does not mention the
	// company, keeping the verdict focused on direct coverage.
	RelevantOnly bool
}

// New wires an Analyzer.
func New(fetcher ArticleFetcher, scorer sentiment.Scorer, log *slog.Logger) *Analyzer {
	return &Analyzer{fetcher: fetcher, scorer: scorer, log: log}
}

// Run produces a complete Report for the query or an error; there are no
// partial results. An empty article set (before or after the relevance
// filter) fails with sentiment.ErrNoArticles.
func (a *Analyzer) Run(ctx context.Context, q models.Query) (*models.Report, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	articles, err := a.fetcher.Fetch(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch articles: %w", err)
	}
	if len(articles) == 0 {
		return nil, sentiment.ErrNoArticles
	}

	if a.RelevantOnly {
		articles = filterRelevant(articles, q.Company)
		if len(articles) == 0 {
			a.log.Warn("no relevant articles after title filter", slog.String("company", q.Company))
			return nil, sentiment.ErrNoArticles
		}
	}

	scored := make([]models.ScoredArticle, 0, len(articles))
	scores := make([]float64, 0, len(articles))
	for _, article := range articles {
		compound := a.scorer.Score(article.Text())
		scored = append(scored, models.ScoredArticle{Article: article, Compound: compound})
		scores = append(scores, compound)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PublishedAt.After(scored[j].PublishedAt)
	})

	mean, err := sentiment.Aggregate(scores)
	if err != nil {
		return nil, err
	}

	verdict := models.Verdict{
		RunID:          uuid.NewString(),
		Company:        q.Company,
		HorizonDays:    q.HorizonDays,
		MeanScore:      mean,
		Interpretation: sentiment.Classify(mean),
		ArticleCount:   len(scored),
		GeneratedAt:    time.Now().UTC(),
	}

	a.log.Info("analysis complete",
		slog.String("run_id", verdict.RunID),
		slog.String("company", verdict.Company),
		slog.Int("articles", verdict.ArticleCount),
		slog.Float64("mean_score", verdict.MeanScore),
		slog.String("interpretation", verdict.Interpretation),
	)

	return &models.Report{Verdict: verdict, Articles: scored}, nil
}

func filterRelevant(articles []models.Article, company string) []models.Article {
	needle := strings.ToLower(strings.TrimSpace(company))
	out := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if strings.Contains(strings.ToLower(article.Title), needle) {
			out = append(out, article)
		}
	}
	return out
}
