package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurant-ordering/account-svc/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// translate maps driver errors onto domain sentinels.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", domain.ErrConflict, pqErr.Constraint)
		case "23503":
			return domain.ErrNotFound
		}
	}
	return err
}

const userSelect = `
	SELECT u.id, u.email, u.password_hash, u.verified, COALESCE(p.full_name, ''), u.created_at,
		COALESCE(array_agg(r.role ORDER BY r.role) FILTER (WHERE r.role IS NOT NULL), '{}')
	FROM users u
	LEFT JOIN profiles p ON p.user_id = u.id
	LEFT JOIN user_roles r ON r.user_id = u.id`

const userGroup = ` GROUP BY u.id, p.full_name`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Verified, &u.FullName, &u.CreatedAt, pq.Array(&u.Roles))
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User, role string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, verified)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, user.Email, user.PasswordHash, user.Verified).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return translate(err)
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO profiles (user_id, full_name) VALUES ($1, $2)`, user.ID, user.FullName); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, user.ID, role); err != nil {
		return fmt.Errorf("insert role: %w", err)
	}
	return tx.Commit()
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, userSelect+` WHERE u.email = $1`+userGroup, email))
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, userSelect+` WHERE u.id = $1`+userGroup, id))
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.DB.QueryContext(ctx, userSelect+userGroup+` ORDER BY u.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// EnsureAdmin grants the admin role and marks the account unverified until
// the invitation is redeemed.
func (r *PostgresRepository) EnsureAdmin(ctx context.Context, email, fullName string) (*domain.User, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email, verified)
		VALUES ($1, FALSE)
		ON CONFLICT (email) DO UPDATE SET verified = FALSE
		RETURNING id
	`, email).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (user_id, full_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET full_name = COALESCE(NULLIF(EXCLUDED.full_name, ''), profiles.full_name)
	`, id, fullName)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO user_roles (user_id, role) VALUES ($1, 'admin') ON CONFLICT DO NOTHING`, id)
	if err != nil {
		return nil, fmt.Errorf("grant admin: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetUserByID(ctx, id)
}

// SetPassword verifies a pending account. It returns ErrNotFound when the user
// is missing or already verified, which makes an invitation single-use.
func (r *PostgresRepository) SetPassword(ctx context.Context, userID, hash string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET password_hash = $1, verified = TRUE WHERE id = $2 AND NOT verified`, hash, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.DB.QueryRowContext(ctx, `
		SELECT p.user_id, u.email, p.full_name, p.phone, p.address, p.updated_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`, userID).Scan(&p.UserID, &p.Email, &p.FullName, &p.Phone, &p.Address, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO profiles (user_id, full_name, phone, address, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = EXCLUDED.full_name, phone = EXCLUDED.phone, address = EXCLUDED.address, updated_at = NOW()
	`, userID, update.FullName, update.Phone, update.Address)
	if err != nil {
		return nil, translate(err)
	}
	return r.GetProfile(ctx, userID)
}
