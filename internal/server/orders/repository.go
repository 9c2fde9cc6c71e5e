// Package orders stores customer orders per shop.
package orders

import (
	"context"

	"shopgate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, order *models.Order) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Order, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Order, error)
	GetByNumber(ctx context.Context, ownerID, number string) (*models.Order, error)
	UpdateStatus(ctx context.Context, ownerID, id, status string) (*models.Order, error)
	MarkOutForDelivery(ctx context.Context, ownerID, id string) (*models.Order, error)
}
