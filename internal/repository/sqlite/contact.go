package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"settings-api/internal/model"
	"settings-api/internal/repository"
)

var _ repository.ContactRepository = (*ContactDB)(nil)

// ContactDB is the enterprise_contact_requests slice of the store.
type ContactDB struct {
	conn *sql.DB
}

// Contacts returns the contact-request repository backed by this database.
func (db *DB) Contacts() *ContactDB {
	return &ContactDB{conn: db.conn}
}

// Create inserts a contact request, generating its ID. Status always starts
// as "pending"; a sales tool elsewhere moves it on from there.
func (db *ContactDB) Create(ctx context.Context, req *model.ContactRequest) error {
	req.ID = xid.New().String()
	req.Status = "pending"
	req.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO enterprise_contact_requests
			(id, user_id, company_name, contact_email, contact_phone, requirements, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID,
		req.UserID,
		req.CompanyName,
		req.ContactEmail,
		req.ContactPhone,
		req.Requirements,
		req.Status,
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting contact request for %s: %w", req.UserID, err)
	}

	return nil
}
