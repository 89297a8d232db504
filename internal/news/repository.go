// AngelaMos | 2026
// repository.go

package news

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/promptacademy/platform-api/internal/core"
)

type Repository interface {
	FindByDay(ctx context.Context, day time.Time) (*HeadlineRecord, error)
	Insert(ctx context.Context, rec *HeadlineRecord) (*HeadlineRecord, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) FindByDay(
	ctx context.Context,
	day time.Time,
) (*HeadlineRecord, error) {
	query := `
		SELECT id, day, headlines, created_at
		FROM headline_cache
		WHERE day = $1`

	var rec HeadlineRecord
	err := r.db.GetContext(ctx, &rec, query, day.UTC().Format("2006-01-02"))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find headlines: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find headlines: %w", err)
	}

	return &rec, nil
}

// Insert writes the day's batch. On a conflict the row that got there
// first is read back and returned, so concurrent ingestions all hand
// out the same batch.
func (r *repository) Insert(
	ctx context.Context,
	rec *HeadlineRecord,
) (*HeadlineRecord, error) {
	query := `
		INSERT INTO headline_cache (id, day, headlines)
		VALUES ($1, $2, $3)
		ON CONFLICT (day) DO NOTHING
		RETURNING id, day, headlines, created_at`

	var stored HeadlineRecord
	err := r.db.GetContext(ctx, &stored, query,
		rec.ID,
		rec.Day.UTC().Format("2006-01-02"),
		rec.Headlines,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r.FindByDay(ctx, rec.Day)
	}
	if err != nil {
		return nil, fmt.Errorf("insert headlines: %w", err)
	}

	return &stored, nil
}
