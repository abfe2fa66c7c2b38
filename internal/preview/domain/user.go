package domain

import "time"

// RoleUser is the implicit role assigned when a record carries none.
const RoleUser = "USER"

type User struct {
	ID                string
	Email             string // unique
	Username          string
	PasswordHash      string // argon2 encoded, never plaintext
	Bio               *string
	ProfilePictureURL *string
	Role              string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RoleOrDefault returns the stored role, falling back to RoleUser when the
// record predates the role column or was created without one.
func (u User) RoleOrDefault() string {
	if u.Role == "" {
		return RoleUser
	}
	return u.Role
}
