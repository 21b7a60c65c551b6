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

// defaultPrivacySettings is what a user gets on first read, before they have
// ever touched their privacy page. Note these are NOT the struct zero values:
// monitoring, reporting and internal communications start enabled.
func defaultPrivacySettings(userID string) *model.PrivacySettings {
	return &model.PrivacySettings{
		UserID:                 userID,
		RealTimeMonitoring:     true,
		DataRetention:          false,
		DetailedReporting:      true,
		InternalCommunications: true,
		Notifications:          false,
		RealTimeAlerts:         false,
	}
}

// PrivacyService handles the per-user privacy toggles.
type PrivacyService struct {
	repo   repository.PrivacyRepository
	logger *slog.Logger
}

func NewPrivacyService(repo repository.PrivacyRepository, logger *slog.Logger) *PrivacyService {
	return &PrivacyService{
		repo:   repo,
		logger: logger,
	}
}

// Get returns the caller's privacy settings, creating the row with defaults
// on first read.
func (s *PrivacyService) Get(ctx context.Context, userID string) (*model.PrivacySettings, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.ValidationFailed("user_id", "user ID is required")
	}

	settings, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	settings = defaultPrivacySettings(userID)
	if err := s.repo.Create(ctx, settings); err != nil {
		s.logger.Error("failed to create default privacy settings",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating privacy settings: %w", err)
	}

	s.logger.Info("privacy settings created with defaults", slog.String("user_id", userID))

	return settings, nil
}

// Update applies a subset of toggles. It goes through Get first, so updating
// before any read still works — the row is lazily created and the unspecified
// toggles keep their default values.
func (s *PrivacyService) Update(ctx context.Context, userID string, toggles model.PrivacyToggles) (*model.PrivacySettings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	toggles.Apply(settings)

	if err := s.repo.Update(ctx, settings); err != nil {
		s.logger.Error("failed to update privacy settings",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating privacy settings: %w", err)
	}

	s.logger.Info("privacy settings updated", slog.String("user_id", userID))

	return settings, nil
}
