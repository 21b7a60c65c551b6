package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"settings-api/internal/apperror"
	"settings-api/internal/model"
	"settings-api/internal/repository"
)

// In-memory repository mocks shared by the service tests. Each one implements
// just enough of the store contract for the rules under test, including the
// sentinel errors the real sqlite implementations return.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockProfileRepo struct {
	profiles  map[string]*model.UserProfile
	updateErr error
}

var _ repository.ProfileRepository = (*mockProfileRepo)(nil)

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: map[string]*model.UserProfile{}}
}

func (m *mockProfileRepo) GetByID(_ context.Context, id string) (*model.UserProfile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, apperror.NotFound("user profile", id)
	}
	cp := *p
	return &cp, nil
}

func (m *mockProfileRepo) Update(_ context.Context, profile *model.UserProfile) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.profiles[profile.ID]; !ok {
		return apperror.NotFound("user profile", profile.ID)
	}
	cp := *profile
	m.profiles[profile.ID] = &cp
	return nil
}

type mockPrivacyRepo struct {
	rows        map[string]*model.PrivacySettings
	createCalls int
	createErr   error
}

var _ repository.PrivacyRepository = (*mockPrivacyRepo)(nil)

func newMockPrivacyRepo() *mockPrivacyRepo {
	return &mockPrivacyRepo{rows: map[string]*model.PrivacySettings{}}
}

func (m *mockPrivacyRepo) GetByUserID(_ context.Context, userID string) (*model.PrivacySettings, error) {
	s, ok := m.rows[userID]
	if !ok {
		return nil, apperror.NotFound("privacy settings", userID)
	}
	cp := *s
	return &cp, nil
}

func (m *mockPrivacyRepo) Create(_ context.Context, settings *model.PrivacySettings) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	cp := *settings
	m.rows[settings.UserID] = &cp
	return nil
}

func (m *mockPrivacyRepo) Update(_ context.Context, settings *model.PrivacySettings) error {
	if _, ok := m.rows[settings.UserID]; !ok {
		return apperror.NotFound("privacy settings", settings.UserID)
	}
	cp := *settings
	m.rows[settings.UserID] = &cp
	return nil
}

type mockAdminRepo struct {
	admins map[string]*model.AdminAccess
	nextID int
}

var _ repository.AdminRepository = (*mockAdminRepo)(nil)

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: map[string]*model.AdminAccess{}}
}

func (m *mockAdminRepo) List(_ context.Context) ([]model.AdminAccess, error) {
	out := []model.AdminAccess{}
	for _, a := range m.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id string) (*model.AdminAccess, error) {
	a, ok := m.admins[id]
	if !ok {
		return nil, apperror.NotFound("admin", id)
	}
	cp := *a
	return &cp, nil
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*model.AdminAccess, error) {
	for _, a := range m.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("admin", email)
}

func (m *mockAdminRepo) Create(_ context.Context, admin *model.AdminAccess) error {
	m.nextID++
	admin.ID = fmt.Sprintf("admin-%d", m.nextID)
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	cp := *admin
	m.admins[admin.ID] = &cp
	return nil
}

func (m *mockAdminRepo) Update(_ context.Context, admin *model.AdminAccess) error {
	if _, ok := m.admins[admin.ID]; !ok {
		return apperror.NotFound("admin", admin.ID)
	}
	cp := *admin
	m.admins[admin.ID] = &cp
	return nil
}

func (m *mockAdminRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.admins[id]; !ok {
		return apperror.NotFound("admin", id)
	}
	if len(m.admins) == 1 {
		return apperror.ValidationFailed("id", "cannot delete the last admin")
	}
	delete(m.admins, id)
	return nil
}

type mockPlanRepo struct {
	plans []model.SubscriptionPlan
}

var _ repository.PlanRepository = (*mockPlanRepo)(nil)

func (m *mockPlanRepo) List(_ context.Context) ([]model.SubscriptionPlan, error) {
	return m.plans, nil
}

func (m *mockPlanRepo) GetByID(_ context.Context, id string) (*model.SubscriptionPlan, error) {
	for _, p := range m.plans {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("subscription plan", id)
}

type mockSubscriptionRepo struct {
	active     map[string]*model.UserSubscription
	cancelled  []model.UserSubscription
	replaceErr error
	nextID     int
}

var _ repository.SubscriptionRepository = (*mockSubscriptionRepo)(nil)

func newMockSubscriptionRepo() *mockSubscriptionRepo {
	return &mockSubscriptionRepo{active: map[string]*model.UserSubscription{}}
}

func (m *mockSubscriptionRepo) GetActive(_ context.Context, userID string) (*model.SubscriptionWithPlan, error) {
	sub, ok := m.active[userID]
	if !ok {
		return nil, apperror.NotFound("active subscription", userID)
	}
	return &model.SubscriptionWithPlan{UserSubscription: *sub}, nil
}

func (m *mockSubscriptionRepo) Replace(_ context.Context, sub *model.UserSubscription) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	now := time.Now()
	if prev, ok := m.active[sub.UserID]; ok {
		prev.Status = model.StatusCancelled
		prev.EndDate = &now
		m.cancelled = append(m.cancelled, *prev)
	}
	m.nextID++
	sub.ID = fmt.Sprintf("sub-%d", m.nextID)
	sub.Status = model.StatusActive
	sub.StartDate = now
	sub.EndDate = nil
	cp := *sub
	m.active[sub.UserID] = &cp
	return nil
}

func (m *mockSubscriptionRepo) CancelActive(_ context.Context, userID string) (*model.UserSubscription, error) {
	sub, ok := m.active[userID]
	if !ok {
		return nil, apperror.NotFound("active subscription", userID)
	}
	now := time.Now()
	sub.Status = model.StatusCancelled
	sub.EndDate = &now
	delete(m.active, userID)
	m.cancelled = append(m.cancelled, *sub)
	return sub, nil
}

type mockContactRepo struct {
	created []model.ContactRequest
}

var _ repository.ContactRepository = (*mockContactRepo)(nil)

func (m *mockContactRepo) Create(_ context.Context, req *model.ContactRequest) error {
	req.ID = fmt.Sprintf("req-%d", len(m.created)+1)
	req.Status = "pending"
	req.CreatedAt = time.Now()
	m.created = append(m.created, *req)
	return nil
}
