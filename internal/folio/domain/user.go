package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Username     string // stored lower-case, unique
	Email        string // stored lower-case, unique
	Phone        string
	PasswordHash string // argon2id PHC string, never leaves the service layer
	Role         Role
	Image        ImageRef
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// NormalizeHandle canonicalises usernames and emails for storage and lookup.
func NormalizeHandle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// UserPatch carries the fields of a partial user update. Nil means "keep".
type UserPatch struct {
	FirstName *string
	LastName  *string
	Username  *string
	Email     *string
	Phone     *string
	Password  *string
	Role      *Role
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Username == nil &&
		p.Email == nil && p.Phone == nil && p.Password == nil && p.Role == nil
}
