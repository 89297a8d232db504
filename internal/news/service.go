// AngelaMos | 2026
// service.go

package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/promptacademy/platform-api/internal/config"
	"github.com/promptacademy/platform-api/internal/core"
)

// aiKeywords gates which articles count as AI news; matched
// case-insensitively against title and description.
var aiKeywords = []string{
	"ai",
	"artificial intelligence",
	"machine learning",
	"chatgpt",
	"openai",
	"neural",
}

// HeadlineSource abstracts the upstream news API for testing.
type HeadlineSource interface {
	FetchWindow(ctx context.Context, from, to time.Time) ([]Article, error)
}

type HeadlinesResponse struct {
	Date      string   `json:"date"`
	Headlines []string `json:"headlines"`
	Count     int      `json:"count"`
	Cached    bool     `json:"cached"`
}

type Service struct {
	repo   Repository
	source HeadlineSource
	cap    int
	logger *slog.Logger
	now    func() time.Time
}

func NewService(
	repo Repository,
	source HeadlineSource,
	cfg config.NewsConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:   repo,
		source: source,
		cap:    cfg.HeadlineCap,
		logger: logger,
		now:    time.Now,
	}
}

// HeadlinesForToday returns the day's batch, ingesting it on first
// call. Calls after the first within one UTC day always serve the
// stored batch, so the response is stable no matter how often the
// endpoint is hit or what the upstream would return now.
func (s *Service) HeadlinesForToday(
	ctx context.Context,
) (*HeadlinesResponse, error) {
	now := s.now().UTC()
	day := now.Truncate(24 * time.Hour)

	cached, err := s.repo.FindByDay(ctx, day)
	if err == nil {
		return toResponse(cached, true), nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	titles, err := s.ingest(ctx, now)
	if err != nil {
		return nil, err
	}

	if len(titles) == 0 {
		// Nothing matched even over the widened window. Deliberately
		// not persisted: a later request today gets another attempt.
		return &HeadlinesResponse{
			Date:      day.Format("2006-01-02"),
			Headlines: []string{},
			Count:     0,
		}, nil
	}

	stored, err := s.repo.Insert(ctx, &HeadlineRecord{
		ID:        uuid.New().String(),
		Day:       day,
		Headlines: titles,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("headlines ingested",
		"day", day.Format("2006-01-02"),
		"count", len(stored.Headlines),
	)

	return toResponse(stored, false), nil
}

// ingest fetches the last 24 hours and, only when that yields nothing
// after filtering, widens once to 48 hours.
func (s *Service) ingest(
	ctx context.Context,
	now time.Time,
) ([]string, error) {
	articles, err := s.source.FetchWindow(ctx, now.Add(-24*time.Hour), now)
	if err != nil {
		return nil, fmt.Errorf("ingest headlines: %w", err)
	}

	titles := s.filterTitles(articles)
	if len(titles) > 0 {
		return titles, nil
	}

	s.logger.Info("no headlines in 24h window, widening to 48h")

	articles, err = s.source.FetchWindow(ctx, now.Add(-48*time.Hour), now)
	if err != nil {
		return nil, fmt.Errorf("ingest headlines: %w", err)
	}

	return s.filterTitles(articles), nil
}

func (s *Service) filterTitles(articles []Article) []string {
	titles := make([]string, 0, len(articles))
	seen := make(map[string]struct{}, len(articles))

	for _, a := range articles {
		if a.Title == "" || !matchesAI(a) {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(a.Title))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		titles = append(titles, a.Title)
		if len(titles) >= s.cap {
			break
		}
	}

	return titles
}

func matchesAI(a Article) bool {
	haystack := strings.ToLower(a.Title + " " + a.Description)

	for _, kw := range aiKeywords {
		if kw == "ai" {
			// Bare "ai" needs word boundaries or it matches words
			// like "maintain".
			if containsWord(haystack, "ai") {
				return true
			}
			continue
		}
		if strings.Contains(haystack, kw) {
			return true
		}
	}

	return false
}

func containsWord(s, word string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)

		beforeOK := start == 0 || !isWordChar(s[start-1])
		afterOK := end == len(s) || !isWordChar(s[end])
		if beforeOK && afterOK {
			return true
		}

		idx = start + 1
		if idx >= len(s) {
			return false
		}
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

func toResponse(rec *HeadlineRecord, cached bool) *HeadlinesResponse {
	headlines := rec.Headlines
	if headlines == nil {
		headlines = []string{}
	}

	return &HeadlinesResponse{
		Date:      rec.Day.UTC().Format("2006-01-02"),
		Headlines: headlines,
		Count:     len(headlines),
		Cached:    cached,
	}
}
