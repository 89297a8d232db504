// AngelaMos | 2026
// client_test.go

package news

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptacademy/platform-api/internal/config"
	"github.com/promptacademy/platform-api/internal/core"
)

func testClientConfig(baseURL string) config.NewsConfig {
	return config.NewsConfig{
		APIKey:   "test-key",
		BaseURL:  baseURL,
		Query:    "artificial intelligence",
		Language: "en",
		PageSize: 60,
		Timeout:  2 * time.Second,
	}
}

func TestFetchWindowSendsExpectedRequest(t *testing.T) {
	var gotPath string
	var gotKey string
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("X-Api-Key")
			gotQuery = r.URL.Query()

			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test handler
			_, _ = w.Write([]byte(`{
				"status": "ok",
				"totalResults": 2,
				"articles": [
					{"title": "OpenAI ships a model", "description": "d1"},
					{"title": "Neural nets explained", "description": "d2"}
				]
			}`))
		}))
	defer srv.Close()

	client := NewClient(testClientConfig(srv.URL), slog.Default())

	to := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	from := to.Add(-24 * time.Hour)

	articles, err := client.FetchWindow(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "OpenAI ships a model", articles[0].Title)

	assert.Equal(t, "/everything", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, []string{"artificial intelligence"}, gotQuery["q"])
	assert.Equal(t, []string{"2026-03-13T09:00:00Z"}, gotQuery["from"])
	assert.Equal(t, []string{"2026-03-14T09:00:00Z"}, gotQuery["to"])
	assert.Equal(t, []string{"en"}, gotQuery["language"])
	assert.Equal(t, []string{"publishedAt"}, gotQuery["sortBy"])
	assert.Equal(t, []string{"60"}, gotQuery["pageSize"])
}

func TestFetchWindowRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
	defer srv.Close()

	client := NewClient(testClientConfig(srv.URL), slog.Default())

	_, err := client.FetchWindow(
		context.Background(),
		time.Now().Add(-24*time.Hour),
		time.Now(),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUpstream)
}

func TestFetchWindowUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test handler
			_, _ = w.Write([]byte(`{"status": "error", "articles": []}`))
		}))
	defer srv.Close()

	client := NewClient(testClientConfig(srv.URL), slog.Default())

	_, err := client.FetchWindow(
		context.Background(),
		time.Now().Add(-24*time.Hour),
		time.Now(),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUpstream)
}

func TestFetchWindowMissingAPIKey(t *testing.T) {
	cfg := testClientConfig("http://unused.invalid")
	cfg.APIKey = ""

	client := NewClient(cfg, slog.Default())

	_, err := client.FetchWindow(
		context.Background(),
		time.Now().Add(-24*time.Hour),
		time.Now(),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
