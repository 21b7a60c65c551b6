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

var _ repository.AdminRepository = (*AdminDB)(nil)

// AdminDB is the admin_access slice of the store.
type AdminDB struct {
	conn *sql.DB
}

// Admins returns the admin-roster repository backed by this database.
func (db *DB) Admins() *AdminDB {
	return &AdminDB{conn: db.conn}
}

// adminColumns is the SELECT list shared by every admin query. Keeping it in
// one place means scanAdmin always matches the column order.
const adminColumns = `id, name, role, email, avatar_url, permissions, created_at, updated_at`

// scanAdmin reads one admin row, decoding the permissions JSON column.
func scanAdmin(row interface{ Scan(...any) error }) (*model.AdminAccess, error) {
	var (
		a       model.AdminAccess
		rawPerm string
	)
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Role,
		&a.Email,
		&a.AvatarURL,
		&rawPerm,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Permissions, err = decodeList(rawPerm)
	if err != nil {
		return nil, fmt.Errorf("admin %s permissions: %w", a.ID, err)
	}
	return &a, nil
}

// List returns the full roster.
func (db *AdminDB) List(ctx context.Context) ([]model.AdminAccess, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+adminColumns+` FROM admin_access ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing admins: %w", err)
	}
	defer rows.Close()

	admins := []model.AdminAccess{}
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning admin row: %w", err)
		}
		admins = append(admins, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating admins: %w", err)
	}

	return admins, nil
}

func (db *AdminDB) GetByID(ctx context.Context, id string) (*model.AdminAccess, error) {
	a, err := scanAdmin(db.conn.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin_access WHERE id = ?`, id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("admin", id)
		}
		return nil, fmt.Errorf("sqlite: getting admin %s: %w", id, err)
	}
	return a, nil
}

func (db *AdminDB) GetByEmail(ctx context.Context, email string) (*model.AdminAccess, error) {
	a, err := scanAdmin(db.conn.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin_access WHERE email = ?`, email,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("admin", email)
		}
		return nil, fmt.Errorf("sqlite: getting admin by email %s: %w", email, err)
	}
	return a, nil
}

// Create inserts a new roster row, generating its ID.
func (db *AdminDB) Create(ctx context.Context, admin *model.AdminAccess) error {
	admin.ID = xid.New().String()
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	perms, err := encodeList(admin.Permissions)
	if err != nil {
		return fmt.Errorf("sqlite: creating admin: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO admin_access (id, name, role, email, avatar_url, permissions, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		admin.ID,
		admin.Name,
		admin.Role,
		admin.Email,
		admin.AvatarURL,
		perms,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting admin %s: %w", admin.Email, err)
	}

	return nil
}

func (db *AdminDB) Update(ctx context.Context, admin *model.AdminAccess) error {
	admin.UpdatedAt = time.Now()

	perms, err := encodeList(admin.Permissions)
	if err != nil {
		return fmt.Errorf("sqlite: updating admin: %w", err)
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE admin_access
		 SET name = ?, role = ?, email = ?, avatar_url = ?, permissions = ?, updated_at = ?
		 WHERE id = ?`,
		admin.Name,
		admin.Role,
		admin.Email,
		admin.AvatarURL,
		perms,
		admin.UpdatedAt,
		admin.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating admin %s: %w", admin.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("admin", admin.ID)
	}

	return nil
}

// Delete removes an admin, refusing to empty the roster.
//
// The last-admin guard is part of the DELETE predicate itself rather than a
// separate read-then-act check. Two concurrent deletes both racing past an
// application-level count check could otherwise leave the roster empty; a
// single conditional statement makes the store arbitrate.
func (db *AdminDB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM admin_access
		 WHERE id = ? AND (SELECT COUNT(*) FROM admin_access) > 1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting admin %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Nothing deleted: either the id doesn't exist, or it's the last admin.
	// One existence probe tells them apart.
	var exists int
	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admin_access WHERE id = ?`, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("sqlite: checking admin %s: %w", id, err)
	}
	if exists == 0 {
		return apperror.NotFound("admin", id)
	}
	return apperror.ValidationFailed("id", "cannot delete the last admin")
}
