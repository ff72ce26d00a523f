package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/analysis"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/cache"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/config"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/logger"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/models"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/newsapi"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/sentiment"
)

func main() {
	_ = godotenv.Load()

	log := logger.New("api")
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	client, err := newsapi.New(cfg.NewsAPIKey, newsapi.Options{
		BaseURL: cfg.NewsAPIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Domains: cfg.Domains,
	}, log)
	if err != nil {
		log.Error("init news client", slog.Any("err", err))
		os.Exit(1)
	}

	analyzer := analysis.New(client, sentiment.NewVaderScorer(), log)
	analyzer.RelevantOnly = cfg.RelevantOnly

	srv := &server{
		log:      log,
		cfg:      cfg,
		analyzer: analyzer,
		cache:    cache.New(cfg.CacheCapacity, cfg.CacheTTL),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Get("/sentiment", srv.handleSentiment)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

type sentimentRunner interface {
	Run(ctx context.Context, q models.Query) (*models.Report, error)
}

type server struct {
	log      *slog.Logger
	cfg      *config.API
	analyzer sentimentRunner
	cache    *cache.Cache
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.HTTPTimeout+5*time.Second)
	defer cancel()

	query := models.Query{
		Company:     strings.TrimSpace(r.URL.Query().Get("company")),
		HorizonDays: parseIntParam(r.URL.Query().Get("horizon_days"), 3),
		PageSize:    parseIntParam(r.URL.Query().Get("page_size"), s.cfg.DefaultPageSize),
	}
	if query.HorizonDays > s.cfg.MaxHorizonDays {
		query.HorizonDays = s.cfg.MaxHorizonDays
	}

	if err := query.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	key := cacheKey(query)
	if cached, ok := s.cache.Get(key); ok {
		s.log.Debug("cache hit", slog.String("key", key))
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err := s.analyzer.Run(ctx, query)
	if err != nil {
		var fetchErr *newsapi.FetchError
		switch {
		case errors.Is(err, sentiment.ErrNoArticles):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no articles found for the requested window"})
		case errors.Is(err, models.ErrInvalidQuery):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.As(err, &fetchErr):
			s.log.Error("upstream fetch failed", slog.Any("err", err))
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "news source unavailable"})
		default:
			s.log.Error("analysis failed", slog.Any("err", err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		}
		return
	}

	s.cache.Put(key, result)
	writeJSON(w, http.StatusOK, result)
}

func cacheKey(q models.Query) string {
	return fmt.Sprintf("%s|%d|%d", strings.ToLower(q.Company), q.HorizonDays, q.PageSize)
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing better to do
	}
}
