// AngelaMos | 2026
// entity.go

package course

import (
	"time"

	"github.com/lib/pq"
)

type Course struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	ImageURL    string         `db:"image_url"`
	Price       int64          `db:"price"`
	AccessTier  string         `db:"access_tier"`
	Active      bool           `db:"active"`
	Modules     pq.StringArray `db:"modules"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
