package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pharma-backend/internal/models"
)

type PharmacyRepository struct {
	DB *pgxpool.Pool
}

func NewPharmacyRepository(db *pgxpool.Pool) *PharmacyRepository {
	return &PharmacyRepository{DB: db}
}

// CreateWithAccount inserts the pharmacy and its linked login account in
// one transaction. The users row is created first so the pharmacy row can
// carry the account_id foreign key.
func (r *PharmacyRepository) CreateWithAccount(ctx context.Context, p *models.Pharmacy, account *models.User) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, role, is_active)
		 VALUES($1, $2, $3, 'pharmacist', TRUE)
		 RETURNING id, is_active, created_at, updated_at`,
		account.Name, account.Email, account.PasswordHash,
	).Scan(&account.ID, &account.IsActive, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return err
	}
	account.Role = "pharmacist"

	err = tx.QueryRow(ctx,
		`INSERT INTO pharmacies(name, email, phone, president, is_active, account_id)
		 VALUES($1, $2, $3, $4, TRUE, $5)
		 RETURNING id, is_active, created_at, updated_at`,
		p.Name, p.Email, p.Phone, p.President, account.ID,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}
	p.AccountID = &account.ID

	return tx.Commit(ctx)
}

func (r *PharmacyRepository) Get(ctx context.Context, id int) (*models.Pharmacy, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, email, phone, president, is_active, account_id, created_at, updated_at
		 FROM pharmacies WHERE id=$1`, id)

	var p models.Pharmacy
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.President,
		&p.IsActive, &p.AccountID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PharmacyRepository) List(ctx context.Context) ([]*models.Pharmacy, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, email, phone, president, is_active, account_id, created_at, updated_at
		 FROM pharmacies ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pharmacies []*models.Pharmacy
	for rows.Next() {
		var p models.Pharmacy
		err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.President,
			&p.IsActive, &p.AccountID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		pharmacies = append(pharmacies, &p)
	}
	return pharmacies, rows.Err()
}

// EmailExists checks the pharmacies table, optionally excluding one id.
func (r *PharmacyRepository) EmailExists(ctx context.Context, email string, excludeID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM pharmacies WHERE email=$1 AND id<>$2)`,
		email, excludeID).Scan(&exists)
	return exists, err
}

// UpdateWithAccount updates the pharmacy profile and, when the email
// changed, propagates it to the linked login account through account_id,
// both in the same transaction.
func (r *PharmacyRepository) UpdateWithAccount(ctx context.Context, p *models.Pharmacy) (int64, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE pharmacies SET name=$1, email=$2, phone=$3, president=$4, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$5`,
		p.Name, p.Email, p.Phone, p.President, p.ID)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET email=$1, name=$2, updated_at=CURRENT_TIMESTAMP
		 WHERE id=(SELECT account_id FROM pharmacies WHERE id=$3)`,
		p.Email, p.Name, p.ID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), tx.Commit(ctx)
}

// UpdatePassword stores the new hash on the linked login account.
func (r *PharmacyRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE users SET password_hash=$1, updated_at=CURRENT_TIMESTAMP
		 WHERE id=(SELECT account_id FROM pharmacies WHERE id=$2)`,
		passwordHash, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// GetAccountHash returns the linked login account's current password hash.
func (r *PharmacyRepository) GetAccountHash(ctx context.Context, id int) (string, error) {
	var hash string
	err := r.DB.QueryRow(ctx,
		`SELECT u.password_hash FROM users u
		 JOIN pharmacies p ON p.account_id = u.id
		 WHERE p.id=$1`, id).Scan(&hash)
	return hash, err
}

func (r *PharmacyRepository) SetActiveStatus(ctx context.Context, id int, isActive bool) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE pharmacies SET is_active=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		isActive, id)
	return tag.RowsAffected(), err
}

// DeleteWithAccount removes the pharmacy and its linked login account in
// one transaction; both go or neither does.
func (r *PharmacyRepository) DeleteWithAccount(ctx context.Context, id int) (int64, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var accountID *int
	err = tx.QueryRow(ctx,
		`SELECT account_id FROM pharmacies WHERE id=$1`, id).Scan(&accountID)
	if err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM pharmacies WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}

	if accountID != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id=$1`, *accountID); err != nil {
			return 0, err
		}
	}

	return tag.RowsAffected(), tx.Commit(ctx)
}
