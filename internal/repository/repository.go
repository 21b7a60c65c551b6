// Package repository defines the storage interfaces the service layer
// programs against. The sqlite subpackage provides the concrete
// implementation; tests substitute in-memory mocks.
package repository

import (
	"context"

	"settings-api/internal/model"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*model.UserProfile, error)
	Update(ctx context.Context, profile *model.UserProfile) error
}

type PrivacyRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.PrivacySettings, error)
	Create(ctx context.Context, settings *model.PrivacySettings) error
	Update(ctx context.Context, settings *model.PrivacySettings) error
}

type AdminRepository interface {
	List(ctx context.Context) ([]model.AdminAccess, error)
	GetByID(ctx context.Context, id string) (*model.AdminAccess, error)
	GetByEmail(ctx context.Context, email string) (*model.AdminAccess, error)
	Create(ctx context.Context, admin *model.AdminAccess) error
	Update(ctx context.Context, admin *model.AdminAccess) error
	// Delete removes the admin with the given id, but only while at least one
	// other roster row remains. The guard is a single conditional statement at
	// the store, so concurrent deletes cannot empty the roster.
	Delete(ctx context.Context, id string) error
}

type PlanRepository interface {
	// List returns all plans ordered by ascending price.
	List(ctx context.Context) ([]model.SubscriptionPlan, error)
	GetByID(ctx context.Context, id string) (*model.SubscriptionPlan, error)
}

type SubscriptionRepository interface {
	// GetActive returns the user's active subscription joined with its plan.
	GetActive(ctx context.Context, userID string) (*model.SubscriptionWithPlan, error)
	// Replace cancels any active subscription for the user (setting its end
	// date) and inserts sub as the new active row, in one transaction.
	Replace(ctx context.Context, sub *model.UserSubscription) error
	// CancelActive transitions the user's active subscription to cancelled
	// and returns the updated row.
	CancelActive(ctx context.Context, userID string) (*model.UserSubscription, error)
}

type ContactRepository interface {
	Create(ctx context.Context, req *model.ContactRequest) error
}
