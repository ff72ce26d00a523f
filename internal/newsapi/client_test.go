package newsapi_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/models"
	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/newsapi"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := newsapi.New("", newsapi.Options{}, discard())
	require.Error(t, err)

	_, err = newsapi.New("   ", newsapi.Options{}, discard())
	require.Error(t, err)
}

func TestFetchParsesArticles(t *testing.T) {
	payload := map[string]any{
		"status":       "ok",
		"totalResults": 2,
		"articles": []map[string]any{
			{
				"source":      map[string]any{"name": "Reuters"},
				"title":       "Tesla Posts Record Deliveries",
				"description": "Quarterly deliveries beat analyst expectations.",
				"url":         "https://example.com/tesla-deliveries",
				"publishedAt": "2026-08-28T09:30:00Z",
			},
			{
				"source":      map[string]any{"name": "CNBC"},
				"title":       "Tesla Expands Berlin Plant",
				"description": "",
				"url":         "https://example.com/tesla-berlin",
				"publishedAt": "2026-08-27T14:00:00Z",
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/everything", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client, err := newsapi.New("test-key", newsapi.Options{BaseURL: srv.URL}, discard())
	require.NoError(t, err)

	articles, err := client.Fetch(context.Background(), models.Query{
		Company: "Tesla", HorizonDays: 3, PageSize: 5,
	})
	require.NoError(t, err)
	require.Len(t, articles, 2)

	first := articles[0]
	require.Equal(t, "Tesla Posts Record Deliveries", first.Title)
	require.Equal(t, "Quarterly deliveries beat analyst expectations.", first.Description)
	require.Equal(t, "https://example.com/tesla-deliveries", first.URL)
	require.Equal(t, "Reuters", first.Source)
	require.Equal(t, time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC), first.PublishedAt)

	require.Empty(t, articles[1].Description)
}

func TestFetchQueryParams(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	var params url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "articles": []any{}})
	}))
	defer srv.Close()

	client, err := newsapi.New("test-key", newsapi.Options{
		BaseURL: srv.URL,
		Domains: []string{"reuters.com", "bloomberg.com"},
		Now:     func() time.Time { return now },
	}, discard())
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), models.Query{
		Company: "Tesla", HorizonDays: 7, PageSize: 5,
	})
	require.NoError(t, err)

	require.Equal(t, "Tesla", params.Get("q"))
	require.Equal(t, "2026-08-22", params.Get("from"))
	require.Equal(t, "en", params.Get("language"))
	require.Equal(t, "publishedAt", params.Get("sortBy"))
	require.Equal(t, "5", params.Get("pageSize"))
	require.Equal(t, "reuters.com,bloomberg.com", params.Get("domains"))
}

func TestFetchRejectsInvalidQuery(t *testing.T) {
	requested := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer srv.Close()

	client, err := newsapi.New("test-key", newsapi.Options{BaseURL: srv.URL}, discard())
	require.NoError(t, err)

	tests := []struct {
		name  string
		query models.Query
	}{
		{name: "empty company", query: models.Query{Company: "", HorizonDays: 3, PageSize: 5}},
		{name: "zero horizon", query: models.Query{Company: "Tesla", HorizonDays: 0, PageSize: 5}},
		{name: "negative horizon", query: models.Query{Company: "Tesla", HorizonDays: -1, PageSize: 5}},
		{name: "zero page size", query: models.Query{Company: "Tesla", HorizonDays: 3, PageSize: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Fetch(context.Background(), tt.query)
			require.ErrorIs(t, err, models.ErrInvalidQuery)
		})
	}

	require.False(t, requested, "invalid queries must not reach the network")
}

func TestFetchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "error",
			"code":    "apiKeyInvalid",
			"message": "Your API key is invalid.",
		})
	}))
	defer srv.Close()

	client, err := newsapi.New("bad-key", newsapi.Options{BaseURL: srv.URL}, discard())
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), models.Query{Company: "Tesla", HorizonDays: 3, PageSize: 5})

	var fetchErr *newsapi.FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, http.StatusUnauthorized, fetchErr.StatusCode)
	require.Equal(t, "apiKeyInvalid", fetchErr.Code)
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	client, err := newsapi.New("test-key", newsapi.Options{BaseURL: srv.URL}, discard())
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), models.Query{Company: "Tesla", HorizonDays: 3, PageSize: 5})

	var fetchErr *newsapi.FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client, err := newsapi.New("test-key", newsapi.Options{BaseURL: srv.URL}, discard())
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), models.Query{Company: "Tesla", HorizonDays: 3, PageSize: 5})

	var fetchErr *newsapi.FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Zero(t, fetchErr.StatusCode)
}

func TestFetchBadTimestampFallsBackToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"articles": []map[string]any{
				{"title": "No date", "description": "x", "publishedAt": "yesterday"},
			},
		})
	}))
	defer srv.Close()

	client, err := newsapi.New("test-key", newsapi.Options{BaseURL: srv.URL}, discard())
	require.NoError(t, err)

	articles, err := client.Fetch(context.Background(), models.Query{Company: "Tesla", HorizonDays: 3, PageSize: 5})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	require.True(t, articles[0].PublishedAt.IsZero())
}
