// AngelaMos | 2026
// repository.go

package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/promptacademy/platform-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, course *Course) error
	GetByID(ctx context.Context, id string) (*Course, error)
	List(ctx context.Context, params ListCoursesParams) ([]Course, int, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id string) error
	ExistsByTitle(ctx context.Context, title string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, course *Course) error {
	query := `
		INSERT INTO courses (id, title, description, image_url, price,
		                     access_tier, active, modules)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, course, query,
		course.ID,
		course.Title,
		course.Description,
		course.ImageURL,
		course.Price,
		course.AccessTier,
		course.Active,
		course.Modules,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create course: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Course, error) {
	query := `
		SELECT id, title, description, image_url, price, access_tier,
		       active, modules, created_at, updated_at
		FROM courses
		WHERE id = $1`

	var course Course
	err := r.db.GetContext(ctx, &course, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get course: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	return &course, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListCoursesParams,
) ([]Course, int, error) {
	params.Normalize()

	whereClause := "TRUE"
	var args []any
	argIdx := 1

	if !params.IncludeInactive {
		whereClause = "active = TRUE"
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM courses WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, title, description, image_url, price, access_tier,
		       active, modules, created_at, updated_at
		FROM courses
		WHERE %s
		ORDER BY price ASC, created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var courses []Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	return courses, total, nil
}

func (r *repository) Update(ctx context.Context, course *Course) error {
	query := `
		UPDATE courses
		SET title = $2, description = $3, image_url = $4, price = $5,
		    access_tier = $6, active = $7, modules = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &course.UpdatedAt, query,
		course.ID,
		course.Title,
		course.Description,
		course.ImageURL,
		course.Price,
		course.AccessTier,
		course.Active,
		course.Modules,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update course: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update course: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update course: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM courses WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete course: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ExistsByTitle(
	ctx context.Context,
	title string,
) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM courses WHERE LOWER(title) = LOWER($1))`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, title); err != nil {
		return false, fmt.Errorf("check course title: %w", err)
	}

	return exists, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
