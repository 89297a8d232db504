// AngelaMos | 2026
// entity.go

package content

import "time"

// Library is a themed collection of prompt content.
type Library struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Level       string    `db:"level"`
	Icon        string    `db:"icon"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Content struct {
	ID          string    `db:"id"`
	LibraryID   string    `db:"library_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Prompt      string    `db:"prompt"`
	Method      *string   `db:"method"`
	Icon        *string   `db:"icon"`
	VideoURL    *string   `db:"video_url"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
