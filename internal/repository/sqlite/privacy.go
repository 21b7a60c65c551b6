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

var _ repository.PrivacyRepository = (*PrivacyDB)(nil)

// PrivacyDB is the privacy_settings slice of the store.
type PrivacyDB struct {
	conn *sql.DB
}

// Privacy returns the privacy-settings repository backed by this database.
func (db *DB) Privacy() *PrivacyDB {
	return &PrivacyDB{conn: db.conn}
}

// GetByUserID retrieves a user's privacy row. The lazy-create-on-first-read
// behaviour lives in the service, so NotFound here is a normal outcome.
func (db *PrivacyDB) GetByUserID(ctx context.Context, userID string) (*model.PrivacySettings, error) {
	var s model.PrivacySettings

	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, real_time_monitoring, data_retention, detailed_reporting,
		        internal_communications, notifications, real_time_alerts,
		        created_at, updated_at
		 FROM privacy_settings
		 WHERE user_id = ?`,
		userID,
	).Scan(
		&s.UserID,
		&s.RealTimeMonitoring,
		&s.DataRetention,
		&s.DetailedReporting,
		&s.InternalCommunications,
		&s.Notifications,
		&s.RealTimeAlerts,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("privacy settings", userID)
		}
		return nil, fmt.Errorf("sqlite: getting privacy settings for %s: %w", userID, err)
	}

	return &s, nil
}

// Create inserts the privacy row for a user. Exactly one row per user — the
// PRIMARY KEY on user_id rejects a second insert.
func (db *PrivacyDB) Create(ctx context.Context, settings *model.PrivacySettings) error {
	now := time.Now()
	settings.CreatedAt = now
	settings.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO privacy_settings (
			user_id, real_time_monitoring, data_retention, detailed_reporting,
			internal_communications, notifications, real_time_alerts,
			created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settings.UserID,
		settings.RealTimeMonitoring,
		settings.DataRetention,
		settings.DetailedReporting,
		settings.InternalCommunications,
		settings.Notifications,
		settings.RealTimeAlerts,
		settings.CreatedAt,
		settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating privacy settings for %s: %w", settings.UserID, err)
	}

	return nil
}

// Update writes all six toggles in place.
func (db *PrivacyDB) Update(ctx context.Context, settings *model.PrivacySettings) error {
	settings.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE privacy_settings
		 SET real_time_monitoring = ?, data_retention = ?, detailed_reporting = ?,
		     internal_communications = ?, notifications = ?, real_time_alerts = ?,
		     updated_at = ?
		 WHERE user_id = ?`,
		settings.RealTimeMonitoring,
		settings.DataRetention,
		settings.DetailedReporting,
		settings.InternalCommunications,
		settings.Notifications,
		settings.RealTimeAlerts,
		settings.UpdatedAt,
		settings.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating privacy settings for %s: %w", settings.UserID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("privacy settings", settings.UserID)
	}

	return nil
}
