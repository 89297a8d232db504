// AngelaMos | 2026
// repository.go

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/promptacademy/platform-api/internal/core"
)

type Repository interface {
	CreateLibrary(ctx context.Context, lib *Library) error
	GetLibrary(ctx context.Context, id string) (*Library, error)
	ListLibraries(ctx context.Context) ([]Library, error)
	UpdateLibrary(ctx context.Context, lib *Library) error
	DeleteLibrary(ctx context.Context, id string) error
	LibraryExistsByTitle(ctx context.Context, title string) (bool, error)

	CreateContent(ctx context.Context, c *Content) error
	GetContent(ctx context.Context, id string) (*Content, error)
	ListByLibrary(ctx context.Context, libraryID string) ([]Content, error)
	UpdateContent(ctx context.Context, c *Content) error
	DeleteContent(ctx context.Context, id string) error
	ContentExistsByTitle(ctx context.Context, title string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreateLibrary(ctx context.Context, lib *Library) error {
	query := `
		INSERT INTO libraries (id, title, description, level, icon)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, lib, query,
		lib.ID,
		lib.Title,
		lib.Description,
		lib.Level,
		lib.Icon,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create library: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create library: %w", err)
	}

	return nil
}

func (r *repository) GetLibrary(
	ctx context.Context,
	id string,
) (*Library, error) {
	query := `
		SELECT id, title, description, level, icon, created_at, updated_at
		FROM libraries
		WHERE id = $1`

	var lib Library
	err := r.db.GetContext(ctx, &lib, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get library: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get library: %w", err)
	}

	return &lib, nil
}

func (r *repository) ListLibraries(ctx context.Context) ([]Library, error) {
	query := `
		SELECT id, title, description, level, icon, created_at, updated_at
		FROM libraries
		ORDER BY title ASC`

	var libs []Library
	if err := r.db.SelectContext(ctx, &libs, query); err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}

	return libs, nil
}

func (r *repository) UpdateLibrary(ctx context.Context, lib *Library) error {
	query := `
		UPDATE libraries
		SET title = $2, description = $3, level = $4, icon = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &lib.UpdatedAt, query,
		lib.ID,
		lib.Title,
		lib.Description,
		lib.Level,
		lib.Icon,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update library: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update library: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update library: %w", err)
	}

	return nil
}

func (r *repository) DeleteLibrary(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM libraries WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete library: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete library: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete library: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) LibraryExistsByTitle(
	ctx context.Context,
	title string,
) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM libraries WHERE LOWER(title) = LOWER($1))`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, title); err != nil {
		return false, fmt.Errorf("check library title: %w", err)
	}

	return exists, nil
}

func (r *repository) CreateContent(ctx context.Context, c *Content) error {
	query := `
		INSERT INTO contents (id, library_id, title, description, prompt,
		                      method, icon, video_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, c, query,
		c.ID,
		c.LibraryID,
		c.Title,
		c.Description,
		c.Prompt,
		c.Method,
		c.Icon,
		c.VideoURL,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create content: %w", core.ErrDuplicateKey)
		}
		if isForeignKeyError(err) {
			return fmt.Errorf("create content: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create content: %w", err)
	}

	return nil
}

func (r *repository) GetContent(
	ctx context.Context,
	id string,
) (*Content, error) {
	query := `
		SELECT id, library_id, title, description, prompt, method, icon,
		       video_url, created_at, updated_at
		FROM contents
		WHERE id = $1`

	var c Content
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get content: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}

	return &c, nil
}

func (r *repository) ListByLibrary(
	ctx context.Context,
	libraryID string,
) ([]Content, error) {
	query := `
		SELECT id, library_id, title, description, prompt, method, icon,
		       video_url, created_at, updated_at
		FROM contents
		WHERE library_id = $1
		ORDER BY title ASC`

	var items []Content
	if err := r.db.SelectContext(ctx, &items, query, libraryID); err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}

	return items, nil
}

func (r *repository) UpdateContent(ctx context.Context, c *Content) error {
	query := `
		UPDATE contents
		SET title = $2, description = $3, prompt = $4, method = $5,
		    icon = $6, video_url = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &c.UpdatedAt, query,
		c.ID,
		c.Title,
		c.Description,
		c.Prompt,
		c.Method,
		c.Icon,
		c.VideoURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update content: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update content: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update content: %w", err)
	}

	return nil
}

func (r *repository) DeleteContent(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM contents WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete content: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ContentExistsByTitle(
	ctx context.Context,
	title string,
) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM contents WHERE LOWER(title) = LOWER($1))`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, title); err != nil {
		return false, fmt.Errorf("check content title: %w", err)
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

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
