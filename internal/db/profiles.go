package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, email, password_hash, COALESCE(full_name, ''),
	COALESCE(target_role, ''), COALESCE(experience_level, ''), COALESCE(country, ''),
	onboarding_completed, is_admin, created_at, updated_at, deleted_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName,
		&p.TargetRole, &p.ExperienceLevel, &p.Country,
		&p.OnboardingCompleted, &p.IsAdmin, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}
	return &p, nil
}

// CreateProfile inserts a new profile row and returns its ID
func (db *DB) CreateProfile(ctx context.Context, email, passwordHash, fullName string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO user_profiles (email, password_hash, full_name)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		email, passwordHash, fullName,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return id, nil
}

// UpsertProfile inserts a profile row for a new identity, doing nothing if
// one already exists. Used by the provisioning hook: duplicate signups must
// converge on exactly one row without erroring.
func (db *DB) UpsertProfile(ctx context.Context, id uuid.UUID, email, fullName string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO user_profiles (id, email, full_name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		id, email, fullName,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by ID. Soft-deleted profiles are invisible.
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles
		 WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	return scanProfile(row)
}

// GetProfileByEmail retrieves a profile by email for login
func (db *DB) GetProfileByEmail(ctx context.Context, email string) (*Profile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles
		 WHERE email = $1 AND deleted_at IS NULL`,
		email,
	)
	return scanProfile(row)
}

// ProfileUpdate holds the mutable profile fields.
type ProfileUpdate struct {
	FullName            string
	TargetRole          string
	ExperienceLevel     string
	Country             string
	OnboardingCompleted bool
}

// UpdateProfile updates the caller's own profile. The id is the
// authenticated identity, so no further ownership check is needed.
func (db *DB) UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE user_profiles
		 SET full_name = $1, target_role = $2, experience_level = $3,
		     country = $4, onboarding_completed = $5
		 WHERE id = $6 AND deleted_at IS NULL`,
		upd.FullName, nullIfEmpty(upd.TargetRole), nullIfEmpty(upd.ExperienceLevel),
		nullIfEmpty(upd.Country), upd.OnboardingCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePasswordHash replaces the stored password hash
func (db *DB) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE user_profiles SET password_hash = $1
		 WHERE id = $2 AND deleted_at IS NULL`,
		hash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAdmin grants or revokes the admin role. Admins manage the prompt
// registry; there is no self-service path to the flag.
func (db *DB) SetAdmin(ctx context.Context, id uuid.UUID, admin bool) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE user_profiles SET is_admin = $1
		 WHERE id = $2 AND deleted_at IS NULL`,
		admin, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set admin flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteProfile marks a profile deleted without removing owned rows
func (db *DB) SoftDeleteProfile(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE user_profiles SET deleted_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to soft delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProfile hard-deletes a profile and, via cascade, everything it owns.
// Admin/test use only.
func (db *DB) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
