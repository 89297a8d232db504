// AngelaMos | 2026
// client.go

package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/promptacademy/platform-api/internal/config"
	"github.com/promptacademy/platform-api/internal/core"
)

// ErrNotConfigured is returned when no API key is present. Surfaced
// as a server-side failure, never as an empty result.
var ErrNotConfigured = errors.New("news api key not configured")

type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"publishedAt"`
}

type everythingResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	query      string
	language   string
	pageSize   int
	logger     *slog.Logger
}

func NewClient(cfg config.NewsConfig, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		query:      cfg.Query,
		language:   cfg.Language,
		pageSize:   cfg.PageSize,
		logger:     logger,
	}
}

// FetchWindow pulls articles published inside [from, to], newest
// first.
func (c *Client) FetchWindow(
	ctx context.Context,
	from, to time.Time,
) ([]Article, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("q", c.query)
	params.Set("from", from.UTC().Format(time.RFC3339))
	params.Set("to", to.UTC().Format(time.RFC3339))
	params.Set("language", c.language)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(c.pageSize))

	endpoint := c.baseURL + "/everything?" + params.Encode()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		endpoint,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w: %w", core.ErrUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUpgradeRequired, http.StatusTooManyRequests:
		// Free-plan throttling; worth distinguishing in the logs.
		c.logger.Warn("news api rate limited",
			"status", resp.StatusCode,
			"retry_after", resp.Header.Get("Retry-After"),
		)
		return nil, fmt.Errorf(
			"fetch news: rate limited (%d): %w",
			resp.StatusCode,
			core.ErrUpstream,
		)
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf(
			"fetch news: upstream returned %d: %s: %w",
			resp.StatusCode,
			string(respBody),
			core.ErrUpstream,
		)
	}

	var body everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf(
			"decode news response: %w: %w",
			core.ErrUpstream,
			err,
		)
	}

	if body.Status != "ok" {
		return nil, fmt.Errorf(
			"fetch news: upstream status %q: %w",
			body.Status,
			core.ErrUpstream,
		)
	}

	return body.Articles, nil
}
