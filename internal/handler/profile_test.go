package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"settings-api/internal/model"
	"settings-api/internal/repository/sqlite"
	"settings-api/internal/service"
)

func newProfileHandler(t *testing.T) (*ProfileHandler, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := service.NewProfileService(db.Profiles(), testLogger())
	return NewProfileHandler(svc, testLogger()), db
}

func TestProfileHandler_Get(t *testing.T) {
	h, db := newProfileHandler(t)
	seedProfileRow(t, db, "user-1", "Alice Nguyen", "alice@example.com")

	rec := httptest.NewRecorder()
	h.HandleGet(rec, authedRequest(t, http.MethodGet, "/api/user/profile", "user-1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var profile model.UserProfile
	decodeBody(t, rec, &profile)
	assert.Equal(t, "user-1", profile.ID)
	assert.Equal(t, "Alice Nguyen", profile.Name)
}

func TestProfileHandler_Get_NoIdentity(t *testing.T) {
	h, _ := newProfileHandler(t)

	rec := httptest.NewRecorder()
	h.HandleGet(rec, authedRequest(t, http.MethodGet, "/api/user/profile", "", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "unauthorized", resp.Error)
}

func TestProfileHandler_Get_UnknownUser(t *testing.T) {
	h, _ := newProfileHandler(t)

	rec := httptest.NewRecorder()
	h.HandleGet(rec, authedRequest(t, http.MethodGet, "/api/user/profile", "user-1", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "not_found", resp.Error)
}

func TestProfileHandler_Update(t *testing.T) {
	h, db := newProfileHandler(t)
	seedProfileRow(t, db, "user-1", "Alice Nguyen", "alice@example.com")

	body := map[string]any{
		"name":  "Alice N.",
		"email": "alice@example.com",
		"role":  "member",
		"city":  "Portland",
	}
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, authedRequest(t, http.MethodPut, "/api/user/profile", "user-1", body))

	assert.Equal(t, http.StatusOK, rec.Code)

	var profile model.UserProfile
	decodeBody(t, rec, &profile)
	assert.Equal(t, "Alice N.", profile.Name)
	assert.Equal(t, "Portland", profile.City)

	// The update is visible on the next read.
	rec = httptest.NewRecorder()
	h.HandleGet(rec, authedRequest(t, http.MethodGet, "/api/user/profile", "user-1", nil))
	decodeBody(t, rec, &profile)
	assert.Equal(t, "Alice N.", profile.Name)
}

func TestProfileHandler_Update_MissingRequiredField(t *testing.T) {
	h, db := newProfileHandler(t)
	seedProfileRow(t, db, "user-1", "Alice Nguyen", "alice@example.com")

	body := map[string]any{"email": "alice@example.com", "role": "member"}
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, authedRequest(t, http.MethodPut, "/api/user/profile", "user-1", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "validation_error", resp.Error)
	assert.Contains(t, resp.Message, "name")
}

func TestProfileHandler_Update_InvalidJSON(t *testing.T) {
	h, _ := newProfileHandler(t)

	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, rawRequest(t, http.MethodPut, "/api/user/profile", "user-1", "{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
