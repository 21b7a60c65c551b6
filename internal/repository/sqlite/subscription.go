package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"settings-api/internal/apperror"
	"settings-api/internal/model"
	"settings-api/internal/repository"
)

var (
	_ repository.PlanRepository         = (*PlanDB)(nil)
	_ repository.SubscriptionRepository = (*SubscriptionDB)(nil)
)

// PlanDB is the read-only subscription_plans slice of the store.
type PlanDB struct {
	conn *sql.DB
}

// Plans returns the plan repository backed by this database.
func (db *DB) Plans() *PlanDB {
	return &PlanDB{conn: db.conn}
}

// SubscriptionDB is the user_subscriptions slice of the store.
type SubscriptionDB struct {
	conn *sql.DB
}

// Subscriptions returns the subscription repository backed by this database.
func (db *DB) Subscriptions() *SubscriptionDB {
	return &SubscriptionDB{conn: db.conn}
}

const planColumns = `id, name, price, billing_period, features, is_custom, created_at, updated_at`

// scanPlan reads one plan row, decoding the features JSON column and
// validating the record invariants (non-negative price, known billing
// period). A row that fails validation is corrupt data, not a caller error.
func scanPlan(row interface{ Scan(...any) error }) (*model.SubscriptionPlan, error) {
	var (
		p       model.SubscriptionPlan
		rawFeat string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.BillingPeriod,
		&rawFeat,
		&p.IsCustom,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Features, err = decodeList(rawFeat)
	if err != nil {
		return nil, fmt.Errorf("plan %s features: %w", p.ID, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every plan, cheapest first. The ordering is part of the API
// contract, so it happens here rather than in a handler sort.
func (db *PlanDB) List(ctx context.Context) ([]model.SubscriptionPlan, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+planColumns+` FROM subscription_plans ORDER BY price ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing plans: %w", err)
	}
	defer rows.Close()

	plans := []model.SubscriptionPlan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning plan row: %w", err)
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating plans: %w", err)
	}

	return plans, nil
}

func (db *PlanDB) GetByID(ctx context.Context, id string) (*model.SubscriptionPlan, error) {
	p, err := scanPlan(db.conn.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM subscription_plans WHERE id = ?`, id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("subscription plan", id)
		}
		return nil, fmt.Errorf("sqlite: getting plan %s: %w", id, err)
	}
	return p, nil
}

// GetActive returns the user's active subscription joined with its plan.
func (db *SubscriptionDB) GetActive(ctx context.Context, userID string) (*model.SubscriptionWithPlan, error) {
	var (
		out     model.SubscriptionWithPlan
		endDate sql.NullTime
		rawFeat string
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT s.id, s.user_id, s.plan_id, s.status, s.start_date, s.end_date,
		        s.created_at, s.updated_at,
		        p.id, p.name, p.price, p.billing_period, p.features, p.is_custom,
		        p.created_at, p.updated_at
		 FROM user_subscriptions s
		 JOIN subscription_plans p ON p.id = s.plan_id
		 WHERE s.user_id = ? AND s.status = ?`,
		userID, model.StatusActive,
	).Scan(
		&out.ID,
		&out.UserID,
		&out.PlanID,
		&out.Status,
		&out.StartDate,
		&endDate,
		&out.CreatedAt,
		&out.UpdatedAt,
		&out.Plan.ID,
		&out.Plan.Name,
		&out.Plan.Price,
		&out.Plan.BillingPeriod,
		&rawFeat,
		&out.Plan.IsCustom,
		&out.Plan.CreatedAt,
		&out.Plan.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("active subscription", userID)
		}
		return nil, fmt.Errorf("sqlite: getting active subscription for %s: %w", userID, err)
	}

	if endDate.Valid {
		out.EndDate = &endDate.Time
	}
	out.Plan.Features, err = decodeList(rawFeat)
	if err != nil {
		return nil, fmt.Errorf("sqlite: plan %s features: %w", out.Plan.ID, err)
	}

	return &out, nil
}

// Replace swaps the user's subscription: cancel whatever is active, insert
// sub as the new active row. Both statements run in one transaction so there
// is no instant at which a user has two active rows — or a cancelled old row
// with no new one — visible to other readers.
func (db *SubscriptionDB) Replace(ctx context.Context, sub *model.UserSubscription) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning subscription swap: %w", err)
	}
	// Rollback after a successful Commit is a no-op, so a bare defer covers
	// every early return below.
	defer tx.Rollback()

	now := time.Now()

	_, err = tx.ExecContext(ctx,
		`UPDATE user_subscriptions
		 SET status = ?, end_date = ?, updated_at = ?
		 WHERE user_id = ? AND status = ?`,
		model.StatusCancelled, now, now, sub.UserID, model.StatusActive,
	)
	if err != nil {
		return fmt.Errorf("sqlite: cancelling previous subscription for %s: %w", sub.UserID, err)
	}

	sub.ID = xid.New().String()
	sub.Status = model.StatusActive
	sub.StartDate = now
	sub.EndDate = nil
	sub.CreatedAt = now
	sub.UpdatedAt = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_subscriptions (id, user_id, plan_id, status, start_date, end_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, NULL, ?, ?)`,
		sub.ID,
		sub.UserID,
		sub.PlanID,
		sub.Status,
		sub.StartDate,
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting subscription for %s: %w", sub.UserID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing subscription swap: %w", err)
	}

	return nil
}

// CancelActive transitions the user's active subscription to cancelled. The
// UPDATE is keyed on status as well as user, so losing a race to another
// cancel shows up as zero rows affected → NotFound, same as no subscription.
func (db *SubscriptionDB) CancelActive(ctx context.Context, userID string) (*model.UserSubscription, error) {
	now := time.Now()

	var (
		sub     model.UserSubscription
		endDate sql.NullTime
	)
	err := db.conn.QueryRowContext(ctx,
		`UPDATE user_subscriptions
		 SET status = ?, end_date = ?, updated_at = ?
		 WHERE user_id = ? AND status = ?
		 RETURNING id, user_id, plan_id, status, start_date, end_date, created_at, updated_at`,
		model.StatusCancelled, now, now, userID, model.StatusActive,
	).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.PlanID,
		&sub.Status,
		&sub.StartDate,
		&endDate,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("active subscription", userID)
		}
		return nil, fmt.Errorf("sqlite: cancelling subscription for %s: %w", userID, err)
	}

	if endDate.Valid {
		sub.EndDate = &endDate.Time
	}

	return &sub, nil
}
