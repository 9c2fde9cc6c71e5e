package orders

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

const orderColumns = `id, number, owner_id, status, delivery_method, customer_name,
	items, total, pickup_code, out_for_delivery, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, order.ID, order.Number, order.OwnerID, order.Status, order.DeliveryMethod,
		order.CustomerName, items, order.Total, order.PickupCode,
		order.OutForDelivery, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE owner_id = $1 ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE owner_id = $1 AND id = $2
	`, ownerID, id)
	return scanOrder(row)
}

func (r *PostgresRepository) GetByNumber(ctx context.Context, ownerID, number string) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE owner_id = $1 AND number = $2
	`, ownerID, number)
	return scanOrder(row)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, ownerID, id, status string) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE orders SET status = $3, updated_at = now()
		WHERE owner_id = $1 AND id = $2
		RETURNING `+orderColumns+`
	`, ownerID, id, status)
	return scanOrder(row)
}

func (r *PostgresRepository) MarkOutForDelivery(ctx context.Context, ownerID, id string) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE orders SET out_for_delivery = true, updated_at = now()
		WHERE owner_id = $1 AND id = $2
		RETURNING `+orderColumns+`
	`, ownerID, id)
	return scanOrder(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var items []byte

	err := row.Scan(&order.ID, &order.Number, &order.OwnerID, &order.Status,
		&order.DeliveryMethod, &order.CustomerName, &items, &order.Total,
		&order.PickupCode, &order.OutForDelivery, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, err
		}
	}
	return &order, nil
}
