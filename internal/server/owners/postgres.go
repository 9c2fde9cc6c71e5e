package owners

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"shopgate/internal/common"
	"shopgate/internal/server/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, owner *models.Owner) error {
	onboarding, err := json.Marshal(owner.Onboarding)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO owners (id, email, shop_name, status, salt, verifier, onboarding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, owner.ID, owner.Email, owner.ShopName, owner.Status, owner.Salt, owner.Verifier, onboarding, owner.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert owner: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	return r.get(ctx, `SELECT id, email, shop_name, status, salt, verifier, onboarding, created_at
		FROM owners WHERE email = $1`, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Owner, error) {
	return r.get(ctx, `SELECT id, email, shop_name, status, salt, verifier, onboarding, created_at
		FROM owners WHERE id = $1`, id)
}

func (r *PostgresRepository) get(ctx context.Context, query string, arg any) (*models.Owner, error) {
	var owner models.Owner
	var onboarding []byte

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&owner.ID, &owner.Email, &owner.ShopName, &owner.Status,
		&owner.Salt, &owner.Verifier, &onboarding, &owner.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}

	if len(onboarding) > 0 {
		if err := json.Unmarshal(onboarding, &owner.Onboarding); err != nil {
			return nil, err
		}
	}
	return &owner, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE owners SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update owner status: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) UpdateOnboarding(ctx context.Context, id string, fields map[string]string) error {
	onboarding, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE owners SET onboarding = $2 WHERE id = $1`, id, onboarding)
	if err != nil {
		return fmt.Errorf("failed to update owner onboarding: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
