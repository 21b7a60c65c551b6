// Package service contains the business logic layer.
//
// The layering follows the usual three-layer shape: handlers parse HTTP and
// write responses, services validate and enforce the rules, repositories talk
// to the store. Services receive repository interfaces, never concrete
// sqlite types, so tests can substitute in-memory mocks and the wiring in
// internal/server decides the real implementation.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"settings-api/internal/apperror"
	"settings-api/internal/model"
	"settings-api/internal/repository"
)

// ProfileService handles reads and updates of user profiles.
type ProfileService struct {
	repo   repository.ProfileRepository
	logger *slog.Logger
}

func NewProfileService(repo repository.ProfileRepository, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:   repo,
		logger: logger,
	}
}

// ProfileUpdate is the update payload. Name, Email and Role are required on
// every update; the remaining fields are optional — nil means "leave as is".
type ProfileUpdate struct {
	Name      string
	Email     string
	Role      string
	Phone     *string
	City      *string
	State     *string
	Country   *string
	AvatarURL *string
}

// Get returns the caller's profile. Profiles are provisioned externally, so
// an absent row is a plain NotFound.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.ValidationFailed("user_id", "user ID is required")
	}

	return s.repo.GetByID(ctx, userID)
}

// Update applies a profile update using fetch-then-save: the existing row
// confirms the profile exists and supplies values for fields the caller
// didn't send.
func (s *ProfileService) Update(ctx context.Context, userID string, upd ProfileUpdate) (*model.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.ValidationFailed("user_id", "user ID is required")
	}

	upd.Name = strings.TrimSpace(upd.Name)
	upd.Email = strings.TrimSpace(upd.Email)
	upd.Role = strings.TrimSpace(upd.Role)
	if upd.Name == "" {
		return nil, apperror.ValidationFailed("name", "missing required field: name")
	}
	if upd.Email == "" {
		return nil, apperror.ValidationFailed("email", "missing required field: email")
	}
	if upd.Role == "" {
		return nil, apperror.ValidationFailed("role", "missing required field: role")
	}

	profile, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Name = upd.Name
	profile.Email = upd.Email
	profile.Role = upd.Role
	if upd.Phone != nil {
		profile.Phone = *upd.Phone
	}
	if upd.City != nil {
		profile.City = *upd.City
	}
	if upd.State != nil {
		profile.State = *upd.State
	}
	if upd.Country != nil {
		profile.Country = *upd.Country
	}
	if upd.AvatarURL != nil {
		profile.AvatarURL = *upd.AvatarURL
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		s.logger.Error("failed to update profile",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	s.logger.Info("profile updated", slog.String("user_id", userID))

	return profile, nil
}
