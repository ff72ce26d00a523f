package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/analysis"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/config"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/logger"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/models"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/newsapi"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/report"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/sentiment"
)

func main() {
	_ = godotenv.Load()

	company := flag.String("company", "", "company name to analyze (overrides NEWS_COMPANY)")
	horizon := flag.Int("horizon", 0, "lookback window in days (overrides NEWS_HORIZON_DAYS)")
	pageSize := flag.Int("page-size", 0, "max articles to fetch (overrides NEWS_PAGE_SIZE)")
	topN := flag.Int("top", 0, "articles to show in the report (overrides NEWS_TOP_N)")
	flag.Parse()

	log := logger.New("cli")

	cfg, err := config.LoadCLI()
	if err != nil {
		fail(log, "load config", err)
	}
	if *company != "" {
		cfg.Company = *company
	}
	if *horizon > 0 {
		cfg.HorizonDays = *horizon
	}
	if *pageSize > 0 {
		cfg.PageSize = *pageSize
	}
	if *topN > 0 {
		cfg.TopN = *topN
	}

	client, err := newsapi.New(cfg.NewsAPIKey, newsapi.Options{
		BaseURL: cfg.NewsAPIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Domains: cfg.Domains,
	}, log)
	if err != nil {
		fail(log, "init news client", err)
	}

	analyzer := analysis.New(client, sentiment.NewVaderScorer(), log)
	analyzer.RelevantOnly = cfg.RelevantOnly

	query := models.Query{
		Company:     cfg.Company,
		HorizonDays: cfg.HorizonDays,
		PageSize:    cfg.PageSize,
	}

	result, err := analyzer.Run(context.Background(), query)
	if err != nil {
		switch {
		case errors.Is(err, sentiment.ErrNoArticles):
			fmt.Fprintf(os.Stderr, "No articles found for %q in the last %d days.\n", query.Company, query.HorizonDays)
		case errors.Is(err, models.ErrInvalidQuery):
			fmt.Fprintf(os.Stderr, "Invalid query: %v\n", err)
			flag.Usage()
		default:
			fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Print(report.Render(result, cfg.TopN))
}

func fail(log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.Any("err", err))
	os.Exit(1)
}
