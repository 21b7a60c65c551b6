package model

import (
	"fmt"
	"time"
)

// Billing periods a plan can use. The column is constrained to these two
// values; anything else fails validation before reaching the database.
const (
	BillingMonthly  = "monthly"
	BillingAnnually = "annually"
)

// Subscription statuses. A user has at most one row with StatusActive at any
// time — Upgrade and Cancel maintain that invariant transactionally.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// ValidStatus reports whether s is one of the known subscription statuses.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusCancelled || s == StatusExpired
}

// SubscriptionPlan is a purchasable plan. Plans are maintained externally and
// read-only to this service.
//
// Features is an ordered list stored as a JSON array column.
type SubscriptionPlan struct {
	ID            string    `json:"id"             db:"id"`
	Name          string    `json:"name"           db:"name"`
	Price         float64   `json:"price"          db:"price"`
	BillingPeriod string    `json:"billing_period" db:"billing_period"`
	Features      []string  `json:"features"       db:"features"`
	IsCustom      bool      `json:"is_custom"      db:"is_custom"`
	CreatedAt     time.Time `json:"created_at"     db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"     db:"updated_at"`
}

// Validate checks the plan invariants: non-negative price and a known
// billing period. Repository scans call this so a corrupted row surfaces as
// an error instead of flowing through as a half-valid record.
func (p *SubscriptionPlan) Validate() error {
	if p.Price < 0 {
		return fmt.Errorf("plan %s: negative price %v", p.ID, p.Price)
	}
	if p.BillingPeriod != BillingMonthly && p.BillingPeriod != BillingAnnually {
		return fmt.Errorf("plan %s: unknown billing period %q", p.ID, p.BillingPeriod)
	}
	return nil
}

// UserSubscription links a user to a plan.
//
// WHY EndDate *time.Time?
// An active subscription has no end date yet. nil is the explicit "unset"
// sentinel — it serialises to JSON null and scans from a NULL column. This is
// the one timestamp in the model that is genuinely optional.
type UserSubscription struct {
	ID        string     `json:"id"         db:"id"`
	UserID    string     `json:"user_id"    db:"user_id"`
	PlanID    string     `json:"plan_id"    db:"plan_id"`
	Status    string     `json:"status"     db:"status"`
	StartDate time.Time  `json:"start_date" db:"start_date"`
	EndDate   *time.Time `json:"end_date"   db:"end_date"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// SubscriptionWithPlan is the "current subscription" read model: the active
// row joined with its plan.
type SubscriptionWithPlan struct {
	UserSubscription
	Plan SubscriptionPlan `json:"plan"`
}
