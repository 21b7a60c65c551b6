package sqlite

import (
	"context"
	"testing"

	"settings-api/internal/model"
)

func TestContactDB_Create(t *testing.T) {
	db := newTestDB(t)

	req := &model.ContactRequest{
		UserID:       "user-1",
		CompanyName:  "Acme Corp",
		ContactEmail: "it@acme.example",
		ContactPhone: "+1-555-0199",
		Requirements: "SSO and a dedicated tenant",
	}
	if err := db.Contacts().Create(context.Background(), req); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if req.ID == "" {
		t.Error("expected Create to assign an ID")
	}
	if req.Status != "pending" {
		t.Errorf("expected status pending, got %s", req.Status)
	}

	var stored model.ContactRequest
	err := db.conn.QueryRow(
		`SELECT id, user_id, company_name, contact_email, contact_phone, requirements, status, created_at
		 FROM enterprise_contact_requests WHERE id = ?`, req.ID,
	).Scan(
		&stored.ID,
		&stored.UserID,
		&stored.CompanyName,
		&stored.ContactEmail,
		&stored.ContactPhone,
		&stored.Requirements,
		&stored.Status,
		&stored.CreatedAt,
	)
	if err != nil {
		t.Fatalf("reading stored request: %v", err)
	}
	if stored.CompanyName != "Acme Corp" || stored.Requirements != "SSO and a dedicated tenant" {
		t.Errorf("stored request does not match: %+v", stored)
	}
}
