// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// UserProfile represents a user's account profile.
//
// Profiles are created by the onboarding system, not by this service — we only
// read and mutate them. The row is keyed by the same ID the identity provider
// issues, so a caller's token subject doubles as the profile primary key.
//
// WHY AvatarURL string (not *string)?
// The avatar is optional. We use an empty string as the zero value rather than
// a nullable pointer — simpler to work with and safe to render.
type UserProfile struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Role      string    `json:"role"       db:"role"`
	Email     string    `json:"email"      db:"email"`
	Phone     string    `json:"phone"      db:"phone"`
	City      string    `json:"city"       db:"city"`
	State     string    `json:"state"      db:"state"`
	Country   string    `json:"country"    db:"country"`
	AvatarURL string    `json:"avatar_url" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
