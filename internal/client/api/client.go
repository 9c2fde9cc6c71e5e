// Package api defines the portal's view of the backend REST collaborator
// and its HTTP implementation. The backend is the single source of truth;
// this package only moves JSON and maps failures onto the client's error
// taxonomy.
package api

import (
	"context"

	"shopgate/internal/client/models"
)

// Client is the backend contract the portal core relies on.
//
// Contract:
//   - Login/Register/Logout: credential lifecycle.
//   - Profile: fetch the account behind a token; the payload arrives in one
//     of three shapes and is normalized here, never by callers.
//   - Orders/Order: read-only order fetches.
//   - UpdateOrderStatus: status transition keyed by the storage identifier,
//     not the human-facing order number.
//   - VerifyPickup: self-pickup code verification keyed by the public
//     order number.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Login(ctx context.Context, email, password string) (token string, account *models.Account, err error)
	Register(ctx context.Context, email, password, shopName string) error
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (*models.Account, error)
	SubmitOnboarding(ctx context.Context, token string, fields map[string]string) error

	Orders(ctx context.Context, token string) ([]models.Order, error)
	Order(ctx context.Context, token, orderID string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, token, storageID string, status models.OrderStatus) (*models.Order, error)
	VerifyPickup(ctx context.Context, token, orderID, otp string) (*models.Order, error)

	Products(ctx context.Context, token string) ([]models.Product, error)
	CreateProduct(ctx context.Context, token string, p *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, token string, p *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error
	ImageUploadURL(ctx context.Context, token string) (key string, url string, err error)

	Ping(ctx context.Context) error
	Close() error
}
