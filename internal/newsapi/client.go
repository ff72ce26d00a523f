package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Krzysztof-Ad/Financial-News-Sentiment-Analyzer/internal/models"
)

// DefaultBaseURL points at the hosted NewsAPI everything endpoint.
const DefaultBaseURL = "https://newsapi.org/v2"

const dateLayout = "2006-01-02"

// FetchError reports a failed article fetch: transport failure, a
// non-success response, or a body that did not match the expected schema.
type FetchError struct {
	StatusCode int    // HTTP status, 0 when the request never completed
	Code       string // NewsAPI error code when the API returned one
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("newsapi: %s: %v", e.Message, e.Err)
	case e.Code != "":
		return fmt.Sprintf("newsapi: %s (code=%s, status=%d)", e.Message, e.Code, e.StatusCode)
	default:
		return fmt.Sprintf("newsapi: %s (status=%d)", e.Message, e.StatusCode)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// Options tune a Client beyond its credentials.
type Options struct {
	BaseURL string        // defaults to DefaultBaseURL
	Timeout time.Duration // HTTP client timeout, defaults to 10s
	Domains []string      // optional source-domain allowlist sent to the API
	Now     func() time.Time
}

// Client fetches articles from NewsAPI. One outbound call per Fetch,
// no caching, no retries.
type Client struct {
	apiKey     string
	baseURL    string
	domains    []string
	httpClient *http.Client
	now        func() time.Time
	log        *slog.Logger
}

// New builds a Client. The API key is required and checked here so a
// missing credential surfaces before any network call.
func New(apiKey string, opts Options, log *slog.Logger) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("newsapi: api key is required")
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		domains:    opts.Domains,
		httpClient: &http.Client{Timeout: timeout},
		now:        now,
		log:        log,
	}, nil
}

// Fetch issues a single everything-search request for the query's company,
// looking back HorizonDays from now, and returns the articles most recent
// first. The page size caps how many articles come back.
func (c *Client) Fetch(ctx context.Context, q models.Query) ([]models.Article, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	from := c.now().AddDate(0, 0, -q.HorizonDays)

	params := url.Values{}
	params.Set("q", q.Company)
	params.Set("from", from.Format(dateLayout))
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	if len(c.domains) > 0 {
		params.Set("domains", strings.Join(c.domains, ","))
	}

	endpoint := c.baseURL + "/everything?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Message: "build request", Err: err}
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	c.log.Debug("fetching articles",
		slog.String("company", q.Company),
		slog.String("from", from.Format(dateLayout)),
		slog.Int("page_size", q.PageSize),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	var payload everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FetchError{StatusCode: resp.StatusCode, Message: "decode response", Err: err}
	}

	if resp.StatusCode != http.StatusOK || payload.Status != "ok" {
		msg := payload.Message
		if msg == "" {
			msg = "unexpected response"
		}
		return nil, &FetchError{StatusCode: resp.StatusCode, Code: payload.Code, Message: msg}
	}

	articles := make([]models.Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}
		articles = append(articles, models.Article{
			PublishedAt: publishedAt,
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Source:      item.Source.Name,
		})
	}

	c.log.Info("fetched articles",
		slog.String("company", q.Company),
		slog.Int("count", len(articles)),
		slog.Int("total_results", payload.TotalResults),
	)

	return articles, nil
}

type everythingResponse struct {
	Status       string        `json:"status"`
	Code         string        `json:"code"`
	Message      string        `json:"message"`
	TotalResults int           `json:"totalResults"`
	Articles     []articleItem `json:"articles"`
}

type articleItem struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}
