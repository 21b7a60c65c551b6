package sqlite

import (
	"context"
	"testing"
	"time"

	"settings-api/internal/model"
)

// newTestDB returns a fresh in-memory database. t.Cleanup closes it when the
// test (or subtest) finishes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedPlan inserts a subscription plan directly. Plans are read-only through
// the repository, so tests reach past it.
func seedPlan(t *testing.T, db *DB, id, name string, price float64) {
	t.Helper()
	now := time.Now()
	_, err := db.conn.Exec(
		`INSERT INTO subscription_plans (id, name, price, billing_period, features, is_custom, created_at, updated_at)
		 VALUES (?, ?, ?, 'monthly', '["feature a","feature b"]', 0, ?, ?)`,
		id, name, price, now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed plan %s: %v", id, err)
	}
}

// seedProfile inserts a user profile row. Profiles are provisioned
// externally in production, so tests do the provisioning by hand.
func seedProfile(t *testing.T, db *DB, id, name, email string) {
	t.Helper()
	now := time.Now()
	_, err := db.conn.Exec(
		`INSERT INTO user_profiles (id, name, role, email, created_at, updated_at)
		 VALUES (?, ?, 'member', ?, ?, ?)`,
		id, name, email, now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed profile %s: %v", id, err)
	}
}

// createTestAdmin creates a roster row and fails the test if it errors.
func createTestAdmin(t *testing.T, admins *AdminDB, name, email string) *model.AdminAccess {
	t.Helper()
	admin := &model.AdminAccess{
		Name:        name,
		Role:        "administrator",
		Email:       email,
		Permissions: []string{"read", "write"},
	}
	if err := admins.Create(context.Background(), admin); err != nil {
		t.Fatalf("failed to create test admin: %v", err)
	}
	return admin
}
