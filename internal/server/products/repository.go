// Package products stores catalog entries per shop.
package products

import (
	"context"

	"shopgate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, product *models.Product) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Product, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, ownerID, id string) error
}
