package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"settings-api/internal/apperror"
	"settings-api/internal/model"
	"settings-api/internal/repository"
)

// Compile-time check that *ProfileDB implements repository.ProfileRepository.
var _ repository.ProfileRepository = (*ProfileDB)(nil)

// ProfileDB is the user_profiles slice of the store. Entity-scoped structs
// keep method sets from colliding — every repository gets its own GetByID.
type ProfileDB struct {
	conn *sql.DB
}

// Profiles returns the profile repository backed by this database.
func (db *DB) Profiles() *ProfileDB {
	return &ProfileDB{conn: db.conn}
}

// GetByID retrieves a user profile. Profiles are provisioned by the
// onboarding system, so there is no Create here — a missing row is NotFound,
// not an invitation to insert one.
func (db *ProfileDB) GetByID(ctx context.Context, id string) (*model.UserProfile, error) {
	var p model.UserProfile

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, role, email, phone, city, state, country, avatar_url,
		        created_at, updated_at
		 FROM user_profiles
		 WHERE id = ?`,
		id,
	).Scan(
		&p.ID,
		&p.Name,
		&p.Role,
		&p.Email,
		&p.Phone,
		&p.City,
		&p.State,
		&p.Country,
		&p.AvatarURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		// sql.ErrNoRows is a sentinel — database/sql doesn't wrap it,
		// so == is the right check.
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user profile", id)
		}
		return nil, fmt.Errorf("sqlite: getting profile %s: %w", id, err)
	}

	return &p, nil
}

// Update writes the mutable profile fields. id and created_at never change.
// RowsAffected distinguishes "updated" from "no such profile".
func (db *ProfileDB) Update(ctx context.Context, profile *model.UserProfile) error {
	profile.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE user_profiles
		 SET name = ?, role = ?, email = ?, phone = ?, city = ?, state = ?,
		     country = ?, avatar_url = ?, updated_at = ?
		 WHERE id = ?`,
		profile.Name,
		profile.Role,
		profile.Email,
		profile.Phone,
		profile.City,
		profile.State,
		profile.Country,
		profile.AvatarURL,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating profile %s: %w", profile.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user profile", profile.ID)
	}

	return nil
}
