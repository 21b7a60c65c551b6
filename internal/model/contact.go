package model

import "time"

// ContactRequest is an enterprise "contact sales" submission. Rows are
// write-once from this service's point of view: a sales tool elsewhere moves
// them past "pending".
type ContactRequest struct {
	ID           string    `json:"id"            db:"id"`
	UserID       string    `json:"user_id"       db:"user_id"`
	CompanyName  string    `json:"company_name"  db:"company_name"`
	ContactEmail string    `json:"contact_email" db:"contact_email"`
	ContactPhone string    `json:"contact_phone" db:"contact_phone"`
	Requirements string    `json:"requirements"  db:"requirements"`
	Status       string    `json:"status"        db:"status"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
}
