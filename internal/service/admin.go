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

// AdminService manages the admin roster.
//
// Two invariants live here and in the repository beneath:
//   - email is unique across the roster (checked before insert/update; the
//     UNIQUE column backs it up)
//   - the roster never empties (enforced by the conditional delete in the
//     repository, so it holds even under concurrent deletes)
type AdminService struct {
	repo   repository.AdminRepository
	logger *slog.Logger
}

func NewAdminService(repo repository.AdminRepository, logger *slog.Logger) *AdminService {
	return &AdminService{
		repo:   repo,
		logger: logger,
	}
}

// AdminCreate is the create payload. Permissions defaults to ["read"] when
// empty.
type AdminCreate struct {
	Name        string
	Email       string
	Role        string
	AvatarURL   string
	Permissions []string
}

// AdminUpdate is a partial update — nil fields are left unchanged.
type AdminUpdate struct {
	Name        *string
	Email       *string
	Role        *string
	AvatarURL   *string
	Permissions []string
}

func (s *AdminService) List(ctx context.Context) ([]model.AdminAccess, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list admins", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing admins: %w", err)
	}
	return admins, nil
}

func (s *AdminService) Get(ctx context.Context, id string) (*model.AdminAccess, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "admin ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// Create adds a new admin to the roster.
func (s *AdminService) Create(ctx context.Context, in AdminCreate) (*model.AdminAccess, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if in.Name == "" {
		return nil, apperror.ValidationFailed("name", "missing required field: name")
	}
	if in.Email == "" {
		return nil, apperror.ValidationFailed("email", "missing required field: email")
	}
	if in.Role == "" {
		return nil, apperror.ValidationFailed("role", "missing required field: role")
	}

	if err := s.checkEmailFree(ctx, in.Email, ""); err != nil {
		return nil, err
	}

	permissions := in.Permissions
	if len(permissions) == 0 {
		permissions = model.DefaultPermissions
	}

	admin := &model.AdminAccess{
		Name:        in.Name,
		Email:       in.Email,
		Role:        in.Role,
		AvatarURL:   in.AvatarURL,
		Permissions: permissions,
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		s.logger.Error("failed to create admin",
			slog.String("email", in.Email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating admin: %w", err)
	}

	s.logger.Info("admin created",
		slog.String("id", admin.ID),
		slog.String("email", admin.Email),
	)

	return admin, nil
}

// Update applies a partial update to an existing admin. Changing the email
// to one already used by a DIFFERENT admin is a conflict; re-submitting the
// admin's own email is fine.
func (s *AdminService) Update(ctx context.Context, id string, upd AdminUpdate) (*model.AdminAccess, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "admin ID is required")
	}

	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if email == "" {
			return nil, apperror.ValidationFailed("email", "email must not be empty")
		}
		if err := s.checkEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		admin.Email = email
	}
	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, apperror.ValidationFailed("name", "name must not be empty")
		}
		admin.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Role != nil {
		admin.Role = strings.TrimSpace(*upd.Role)
	}
	if upd.AvatarURL != nil {
		admin.AvatarURL = *upd.AvatarURL
	}
	if upd.Permissions != nil {
		admin.Permissions = upd.Permissions
	}

	if err := s.repo.Update(ctx, admin); err != nil {
		s.logger.Error("failed to update admin",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating admin: %w", err)
	}

	s.logger.Info("admin updated", slog.String("id", id))

	return admin, nil
}

// Delete removes an admin. The repository refuses to delete the last roster
// row, so the error here may be NotFound or the last-admin rejection.
func (s *AdminService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "admin ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("admin deleted", slog.String("id", id))
	return nil
}

// checkEmailFree returns a Conflict error when email belongs to a roster row
// other than selfID. selfID is empty on create.
func (s *AdminService) checkEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("checking admin email: %w", err)
	}
	if existing.ID == selfID {
		return nil
	}
	return apperror.Conflict("admin", fmt.Sprintf("email %s is already in use", email))
}
