// AngelaMos | 2026
// service_test.go

package news

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptacademy/platform-api/internal/config"
	"github.com/promptacademy/platform-api/internal/core"
)

type fetchCall struct {
	from time.Time
	to   time.Time
}

type fakeSource struct {
	batches [][]Article
	err     error
	calls   []fetchCall
}

func (f *fakeSource) FetchWindow(
	_ context.Context,
	from, to time.Time,
) ([]Article, error) {
	f.calls = append(f.calls, fetchCall{from: from, to: to})
	if f.err != nil {
		return nil, f.err
	}

	idx := len(f.calls) - 1
	if idx >= len(f.batches) {
		return nil, nil
	}
	return f.batches[idx], nil
}

type fakeRepo struct {
	records map[string]*HeadlineRecord
	inserts int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[string]*HeadlineRecord{}}
}

func (f *fakeRepo) FindByDay(
	_ context.Context,
	day time.Time,
) (*HeadlineRecord, error) {
	rec, ok := f.records[day.UTC().Format("2006-01-02")]
	if !ok {
		return nil, core.ErrNotFound
	}
	return rec, nil
}

func (f *fakeRepo) Insert(
	_ context.Context,
	rec *HeadlineRecord,
) (*HeadlineRecord, error) {
	key := rec.Day.UTC().Format("2006-01-02")
	if existing, ok := f.records[key]; ok {
		return existing, nil
	}
	f.inserts++
	f.records[key] = rec
	return rec, nil
}

func newTestService(
	source HeadlineSource,
	repo Repository,
	cap int,
) *Service {
	svc := NewService(repo, source, config.NewsConfig{HeadlineCap: cap},
		slog.Default())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func aiArticles(n int) []Article {
	articles := make([]Article, 0, n)
	for i := range n {
		articles = append(articles, Article{
			Title: fmt.Sprintf("OpenAI announcement number %d", i),
		})
	}
	return articles
}

func TestHeadlinesServedFromCacheAfterFirstCall(t *testing.T) {
	source := &fakeSource{batches: [][]Article{aiArticles(3)}}
	repo := newFakeRepo()
	svc := newTestService(source, repo, 30)

	first, err := svc.HeadlinesForToday(context.Background())
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 3, first.Count)
	assert.Equal(t, "2026-03-14", first.Date)

	second, err := svc.HeadlinesForToday(context.Background())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Headlines, second.Headlines)

	assert.Len(t, source.calls, 1, "second call must not hit upstream")
	assert.Equal(t, 1, repo.inserts)
}

func TestFallbackWidensWindowOnce(t *testing.T) {
	source := &fakeSource{batches: [][]Article{
		nil,
		aiArticles(2),
	}}
	repo := newFakeRepo()
	svc := newTestService(source, repo, 30)

	resp, err := svc.HeadlinesForToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)

	require.Len(t, source.calls, 2)
	assert.Equal(t, 24*time.Hour, source.calls[0].to.Sub(source.calls[0].from))
	assert.Equal(t, 48*time.Hour, source.calls[1].to.Sub(source.calls[1].from))
}

func TestHeadlineCapApplied(t *testing.T) {
	source := &fakeSource{batches: [][]Article{aiArticles(50)}}
	svc := newTestService(source, newFakeRepo(), 30)

	resp, err := svc.HeadlinesForToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, resp.Count)
}

func TestKeywordFilter(t *testing.T) {
	source := &fakeSource{batches: [][]Article{{
		{Title: "ChatGPT rewrites the rules"},
		{Title: "Quarterly maintenance report"},
		{Title: "Local bakery wins award",
			Description: "judges used machine learning to score entries"},
		{Title: "How AI changed chip design"},
		{Title: "how ai changed chip design"},
		{Title: "Airline stocks rally"},
	}}}
	svc := newTestService(source, newFakeRepo(), 30)

	resp, err := svc.HeadlinesForToday(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ChatGPT rewrites the rules",
		"Local bakery wins award",
		"How AI changed chip design",
	}, resp.Headlines)
}

func TestEmptyResultNotPersisted(t *testing.T) {
	source := &fakeSource{}
	repo := newFakeRepo()
	svc := newTestService(source, repo, 30)

	resp, err := svc.HeadlinesForToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Headlines)
	assert.Equal(t, 0, repo.inserts)

	// A later call the same day gets a fresh attempt.
	_, err = svc.HeadlinesForToday(context.Background())
	require.NoError(t, err)
	assert.Len(t, source.calls, 4)
}

func TestUpstreamFailurePropagates(t *testing.T) {
	source := &fakeSource{err: fmt.Errorf("boom: %w", core.ErrUpstream)}
	svc := newTestService(source, newFakeRepo(), 30)

	_, err := svc.HeadlinesForToday(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUpstream)
}

func TestConcurrentIngestionsShareOneBatch(t *testing.T) {
	repo := newFakeRepo()

	// Pre-seed the winner the way a racing instance would.
	won := &HeadlineRecord{
		ID:        "winner",
		Day:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Headlines: []string{"First writer wins"},
	}
	_, err := repo.Insert(context.Background(), won)
	require.NoError(t, err)

	source := &fakeSource{batches: [][]Article{aiArticles(5)}}
	svc := newTestService(source, repo, 30)

	resp, err := svc.HeadlinesForToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"First writer wins"}, resp.Headlines)
	assert.Len(t, source.calls, 0)
}
