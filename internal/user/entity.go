// AngelaMos | 2026
// entity.go

package user

import "time"

type User struct {
	ID               string    `db:"id"`
	Email            string    `db:"email"`
	Username         string    `db:"username"`
	PasswordHash     string    `db:"password_hash"`
	Role             string    `db:"role"`
	TotalPaid        int64     `db:"total_paid"`
	SubscriptionTier string    `db:"subscription_tier"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
