// Package owners stores merchant accounts.
package owners

import (
	"context"

	"shopgate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, owner *models.Owner) error
	GetByEmail(ctx context.Context, email string) (*models.Owner, error)
	GetByID(ctx context.Context, id string) (*models.Owner, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateOnboarding(ctx context.Context, id string, fields map[string]string) error
}
