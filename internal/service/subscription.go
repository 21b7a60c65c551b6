package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"settings-api/internal/apperror"
	"settings-api/internal/model"
	"settings-api/internal/repository"
)

// SubscriptionService manages the subscription lifecycle.
//
// Per-user states are {none, active, cancelled, expired} with the invariant
// that at most one row per user is active. Upgrade is the only transition
// that could violate it, and it delegates to the repository's transactional
// swap, so the invariant holds even when two upgrades race.
type SubscriptionService struct {
	plans    repository.PlanRepository
	subs     repository.SubscriptionRepository
	contacts repository.ContactRepository
	logger   *slog.Logger
}

func NewSubscriptionService(
	plans repository.PlanRepository,
	subs repository.SubscriptionRepository,
	contacts repository.ContactRepository,
	logger *slog.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		plans:    plans,
		subs:     subs,
		contacts: contacts,
		logger:   logger,
	}
}

// ContactSubmission is the enterprise contact-request payload. All fields
// are required.
type ContactSubmission struct {
	CompanyName  string
	ContactEmail string
	ContactPhone string
	Requirements string
}

// Plans lists every available plan, cheapest first.
func (s *SubscriptionService) Plans(ctx context.Context) ([]model.SubscriptionPlan, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		s.logger.Error("failed to list plans", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	return plans, nil
}

// Current returns the caller's active subscription with its plan joined in.
func (s *SubscriptionService) Current(ctx context.Context, userID string) (*model.SubscriptionWithPlan, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.ValidationFailed("user_id", "user ID is required")
	}

	return s.subs.GetActive(ctx, userID)
}

// Upgrade moves the caller onto planID. Whatever subscription was active is
// cancelled (end date set to now) and a fresh active row is created, in one
// atomic swap. Upgrading from no subscription at all is fine — the swap just
// has nothing to cancel.
//
// A plan ID that doesn't resolve is a caller error (400), not NotFound: the
// plan isn't the resource being addressed, it's a reference inside the body.
func (s *SubscriptionService) Upgrade(ctx context.Context, userID, planID string) (*model.UserSubscription, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.ValidationFailed("user_id", "user ID is required")
	}
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return nil, apperror.ValidationFailed("plan_id", "plan ID not provided")
	}

	if _, err := s.plans.GetByID(ctx, planID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ValidationFailed("plan_id", "invalid plan ID")
		}
		s.logger.Error("failed to resolve plan",
			slog.String("plan_id", planID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("resolving plan: %w", err)
	}

	sub := &model.UserSubscription{
		UserID: userID,
		PlanID: planID,
	}
	if err := s.subs.Replace(ctx, sub); err != nil {
		s.logger.Error("failed to upgrade subscription",
			slog.String("user_id", userID),
			slog.String("plan_id", planID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("upgrading subscription: %w", err)
	}

	s.logger.Info("subscription upgraded",
		slog.String("user_id", userID),
		slog.String("plan_id", planID),
		slog.String("subscription_id", sub.ID),
	)

	return sub, nil
}

// Cancel ends the caller's active subscription. No active subscription is
// NotFound.
func (s *SubscriptionService) Cancel(ctx context.Context, userID string) (*model.UserSubscription, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.ValidationFailed("user_id", "user ID is required")
	}

	sub, err := s.subs.CancelActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("subscription cancelled",
		slog.String("user_id", userID),
		slog.String("subscription_id", sub.ID),
	)

	return sub, nil
}

// SubmitContact records an enterprise contact request.
func (s *SubscriptionService) SubmitContact(ctx context.Context, userID string, in ContactSubmission) (*model.ContactRequest, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.ValidationFailed("user_id", "user ID is required")
	}

	fields := []struct {
		name  string
		value string
	}{
		{"company_name", in.CompanyName},
		{"contact_email", in.ContactEmail},
		{"contact_phone", in.ContactPhone},
		{"requirements", in.Requirements},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return nil, apperror.ValidationFailed(f.name, "missing required field: "+f.name)
		}
	}

	req := &model.ContactRequest{
		UserID:       userID,
		CompanyName:  strings.TrimSpace(in.CompanyName),
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		Requirements: strings.TrimSpace(in.Requirements),
	}
	if err := s.contacts.Create(ctx, req); err != nil {
		s.logger.Error("failed to store contact request",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("storing contact request: %w", err)
	}

	s.logger.Info("contact request submitted",
		slog.String("user_id", userID),
		slog.String("request_id", req.ID),
	)

	return req, nil
}
