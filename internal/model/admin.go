package model

import "time"

// DefaultPermissions is assigned to a new admin when the create request
// doesn't specify any.
var DefaultPermissions = []string{"read"}

// AdminAccess is one row of the admin roster. Email is unique across the
// roster, and the roster must never empty — the delete path enforces both.
//
// Permissions is a set of strings stored as a JSON array in the database.
// An absent stored value decodes to DefaultPermissions.
type AdminAccess struct {
	ID          string    `json:"id"          db:"id"`
	Name        string    `json:"name"        db:"name"`
	Role        string    `json:"role"        db:"role"`
	Email       string    `json:"email"       db:"email"`
	AvatarURL   string    `json:"avatar_url"  db:"avatar_url"`
	Permissions []string  `json:"permissions" db:"permissions"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updated_at"`
}
