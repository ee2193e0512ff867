// internal/domain/user.go
package domain

import "time"

// User represents a registered user of the tracker.
// ID is assigned by storage; Username is unique.
type User struct {
	ID        string    `db:"id" json:"_id"`
	Username  string    `db:"username" json:"username"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// NewUser creates a new User instance.
func NewUser(username string) *User {
	return &User{
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
}
