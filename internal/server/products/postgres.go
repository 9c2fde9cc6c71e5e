package products

import (
	"context"
	"database/sql"
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

func (r *PostgresRepository) Create(ctx context.Context, product *models.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, owner_id, name, description, price, stock, image_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, product.ID, product.OwnerID, product.Name, product.Description,
		product.Price, product.Stock, product.ImageKey)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, description, price, stock, image_key
		FROM products WHERE owner_id = $1 ORDER BY name
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Product, 0)
	for rows.Next() {
		var product models.Product
		if err := rows.Scan(&product.ID, &product.OwnerID, &product.Name,
			&product.Description, &product.Price, &product.Stock, &product.ImageKey); err != nil {
			return nil, err
		}
		result = append(result, &product)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, description, price, stock, image_key
		FROM products WHERE owner_id = $1 AND id = $2
	`, ownerID, id).Scan(&product.ID, &product.OwnerID, &product.Name,
		&product.Description, &product.Price, &product.Stock, &product.ImageKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *PostgresRepository) Update(ctx context.Context, product *models.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET name = $3, description = $4, price = $5, stock = $6, image_key = $7
		WHERE owner_id = $1 AND id = $2
	`, product.OwnerID, product.ID, product.Name, product.Description,
		product.Price, product.Stock, product.ImageKey)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
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
