package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"newsinsight/internal/models"
)

const (
	NEWS_API_EVERYTHING_ENDPOINT = "https://newsapi.org/v2/everything"
	NEWS_API_HEADLINES_ENDPOINT  = "https://newsapi.org/v2/top-headlines"
	MAX_RETRIES                  = 5
	INITIAL_BACKOFF              = 1 * time.Second
	MAX_BACKOFF                  = 32 * time.Second
)

var (
	newsAPIInstance *NewsAPIClient
	newsAPIOnce     sync.Once
)

// StatusError is a non-success response from an upstream API. The status code
// is preserved so callers can tell bad credentials apart from server errors.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

type NewsAPIClient struct {
	Client *http.Client

	everythingURL  string
	headlinesURL   string
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

func GetNewsAPIClient() *NewsAPIClient {
	newsAPIOnce.Do(func() {
		newsAPIInstance = NewNewsAPIClient()
	})
	return newsAPIInstance
}

func NewNewsAPIClient() *NewsAPIClient {
	return &NewsAPIClient{
		Client:         &http.Client{Timeout: 30 * time.Second},
		everythingURL:  NEWS_API_EVERYTHING_ENDPOINT,
		headlinesURL:   NEWS_API_HEADLINES_ENDPOINT,
		initialBackoff: INITIAL_BACKOFF,
		maxBackoff:     MAX_BACKOFF,
	}
}

// EverythingParams mirrors the /v2/everything query grammar.
type EverythingParams struct {
	Query    string
	From     time.Time
	To       time.Time
	Language string
	SortBy   string
	PageSize int
}

// Everything searches articles by keyword within a date window.
func (n *NewsAPIClient) Everything(ctx context.Context, apiKey string, p EverythingParams) ([]models.NewsAPIArticle, error) {
	if p.Language == "" {
		p.Language = "en"
	}
	if p.SortBy == "" {
		p.SortBy = "publishedAt"
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}

	q := url.Values{}
	q.Set("q", p.Query)
	q.Set("from", p.From.Format("2006-01-02"))
	q.Set("to", p.To.Format("2006-01-02"))
	q.Set("sortBy", p.SortBy)
	q.Set("language", p.Language)
	q.Set("pageSize", strconv.Itoa(p.PageSize))
	q.Set("apiKey", apiKey)

	return n.fetch(ctx, n.everythingURL+"?"+q.Encode())
}

// TopHeadlines fetches the freshest headlines; page is 1-based.
func (n *NewsAPIClient) TopHeadlines(ctx context.Context, apiKey string, pageSize, page int) ([]models.NewsAPIArticle, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	q := url.Values{}
	q.Set("country", "us")
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("page", strconv.Itoa(page))
	q.Set("apiKey", apiKey)

	return n.fetch(ctx, n.headlinesURL+"?"+q.Encode())
}

func (n *NewsAPIClient) fetch(ctx context.Context, requestURL string) ([]models.NewsAPIArticle, error) {
	var lastErr error
	backoff := n.initialBackoff

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}

		res, err := n.Client.Do(req)
		if err != nil {
			slog.Warn("[NewsAPIClient] request failed",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			lastErr = fmt.Errorf("[NewsAPIClient] request failed: %w", err)
		} else {
			articles, retry, err := n.handleResponse(res)
			if !retry {
				return articles, err
			}
			lastErr = err
		}

		if attempt == MAX_RETRIES {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > n.maxBackoff {
			backoff = n.maxBackoff
		}
	}

	slog.Error("[NewsAPIClient] failed after max retries")
	return nil, lastErr
}

// handleResponse maps the NewsAPI status taxonomy. The second return value
// reports whether the failure is retryable (rate limit, server error).
func (n *NewsAPIClient) handleResponse(res *http.Response) ([]models.NewsAPIArticle, bool, error) {
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, false, fmt.Errorf("[NewsAPIClient] failed to read response body: %w", err)
		}
		var response models.NewsAPIResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, false, fmt.Errorf("[NewsAPIClient] failed to parse JSON response: %w", err)
		}
		if response.Status != "ok" {
			return nil, false, &StatusError{StatusCode: res.StatusCode, Message: response.Message}
		}
		return response.Articles, false, nil
	case http.StatusBadRequest:
		slog.Warn("[NewsAPIClient] bad request: check query parameters")
		return nil, false, &StatusError{StatusCode: res.StatusCode, Message: "bad request: check query parameters"}
	case http.StatusUnauthorized:
		slog.Error("[NewsAPIClient] invalid API key, check credentials")
		return nil, false, &StatusError{StatusCode: res.StatusCode, Message: "invalid API key"}
	case http.StatusForbidden:
		slog.Error("[NewsAPIClient] access forbidden, check API key permissions")
		return nil, false, &StatusError{StatusCode: res.StatusCode, Message: "API key lacks required permissions"}
	case http.StatusTooManyRequests:
		slog.Warn("[NewsAPIClient] rate limit exceeded, retrying...")
		io.Copy(io.Discard, res.Body)
		return nil, true, &StatusError{StatusCode: res.StatusCode, Message: "rate limit exceeded"}
	default:
		if res.StatusCode >= http.StatusInternalServerError {
			slog.Warn("[NewsAPIClient] server error", slog.Int("statusCode", res.StatusCode))
			io.Copy(io.Discard, res.Body)
			return nil, true, &StatusError{StatusCode: res.StatusCode, Message: "server error"}
		}
		slog.Warn("[NewsAPIClient] unexpected response", slog.Int("statusCode", res.StatusCode))
		return nil, false, &StatusError{StatusCode: res.StatusCode, Message: "unexpected response"}
	}
}
