package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pharma-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.Role == "" {
		u.Role = "pharmacist" // Default role
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, role, is_active)
         VALUES($1, $2, $3, $4, TRUE)
         RETURNING id, is_active, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, is_active,
		 COALESCE(totp_secret, ''), totp_enabled, created_at, updated_at
         FROM users WHERE id=$1`, id)

	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.IsActive, &user.TOTPSecret, &user.TOTPEnabled,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, is_active,
		 COALESCE(totp_secret, ''), totp_enabled, created_at, updated_at
         FROM users WHERE email=$1`, email)

	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.IsActive, &user.TOTPSecret, &user.TOTPEnabled,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether an account with this email exists,
// optionally excluding one id (for self-updates).
func (r *UserRepository) EmailExists(ctx context.Context, email string, excludeID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email=$1 AND id<>$2)`,
		email, excludeID).Scan(&exists)
	return exists, err
}

// List returns all login accounts, newest first
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, email, role, is_active, totp_enabled, created_at, updated_at
         FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role,
			&user.IsActive, &user.TOTPEnabled, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE users SET name=$1, email=$2, role=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4`,
		u.Name, u.Email, u.Role, u.ID)
	return tag.RowsAffected(), err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE users SET password_hash=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		passwordHash, id)
	return tag.RowsAffected(), err
}

func (r *UserRepository) SetActiveStatus(ctx context.Context, id int, isActive bool) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE users SET is_active=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		isActive, id)
	return tag.RowsAffected(), err
}

func (r *UserRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return tag.RowsAffected(), err
}

// SetTOTPSecret stores the TOTP secret during 2FA setup, before verification
func (r *UserRepository) SetTOTPSecret(ctx context.Context, id int, secret string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_secret=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		secret, id)
	return err
}

// EnableTOTP marks 2FA as enabled after the first code verifies
func (r *UserRepository) EnableTOTP(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_enabled=TRUE, updated_at=CURRENT_TIMESTAMP WHERE id=$1`,
		id)
	return err
}

// DisableTOTP disables 2FA and clears the secret
func (r *UserRepository) DisableTOTP(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_enabled=FALSE, totp_secret=NULL, updated_at=CURRENT_TIMESTAMP WHERE id=$1`,
		id)
	return err
}
