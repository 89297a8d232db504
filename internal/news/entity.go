// AngelaMos | 2026
// entity.go

package news

import (
	"time"

	"github.com/lib/pq"
)

// HeadlineRecord is one day's cached batch of headline titles. The
// unique index on day makes the first writer of the day the winner;
// everyone else reads that row back.
type HeadlineRecord struct {
	ID        string         `db:"id"`
	Day       time.Time      `db:"day"`
	Headlines pq.StringArray `db:"headlines"`
	CreatedAt time.Time      `db:"created_at"`
}
