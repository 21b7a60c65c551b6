package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"settings-api/internal/auth"
	"settings-api/internal/repository/sqlite"
)

// The handler tests run against real services over an in-memory store, so
// they cover the status-code mapping end to end rather than re-testing the
// business rules the service tests already pin down.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// authedRequest builds a request carrying an authenticated identity, the way
// RequireAuth would have left it.
func authedRequest(t *testing.T, method, target, userID string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	return req
}

// rawRequest is authedRequest for bodies that are deliberately not valid
// JSON for the endpoint.
func rawRequest(t *testing.T, method, target, userID, body string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if userID != "" {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func seedProfileRow(t *testing.T, db *sqlite.DB, id, name, email string) {
	t.Helper()
	now := time.Now()
	_, err := db.Conn().Exec(
		`INSERT INTO user_profiles (id, name, role, email, created_at, updated_at)
		 VALUES (?, ?, 'member', ?, ?, ?)`,
		id, name, email, now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed profile %s: %v", id, err)
	}
}

func seedPlanRow(t *testing.T, db *sqlite.DB, id, name string, price float64) {
	t.Helper()
	now := time.Now()
	_, err := db.Conn().Exec(
		`INSERT INTO subscription_plans (id, name, price, billing_period, features, is_custom, created_at, updated_at)
		 VALUES (?, ?, ?, 'monthly', '["feature a"]', 0, ?, ?)`,
		id, name, price, now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed plan %s: %v", id, err)
	}
}
