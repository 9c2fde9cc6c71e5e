package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shopgate/internal/common"
	"shopgate/internal/cryptox"
	"shopgate/internal/server/models"
)

// Demo credentials for the in-memory backend.
const (
	DemoEmail    = "demo@shop.dev"
	DemoPassword = "password"
)

// SeedDemoData loads one approved owner and a handful of orders covering
// every status the portal renders differently. Only used when the server
// runs without a database DSN.
func SeedDemoData(ctx context.Context, m RepositoryManager) error {
	salt := common.GenerateRandByteArray(16)

	owner := &models.Owner{
		ID:        uuid.NewString(),
		Email:     DemoEmail,
		ShopName:  "Demo Coffee",
		Status:    "Active",
		Salt:      salt,
		Verifier:  cryptox.MakeVerifier(cryptox.DeriveKey([]byte(DemoPassword), salt)),
		CreatedAt: time.Now(),
	}
	if err := m.Owners().Create(ctx, owner); err != nil {
		return fmt.Errorf("failed to seed owner: %w", err)
	}

	items := []models.OrderItem{
		{ProductID: uuid.NewString(), Name: "Flat white", Quantity: 2, Price: 4.50},
		{ProductID: uuid.NewString(), Name: "Croissant", Quantity: 1, Price: 3.20},
	}

	seeds := []struct {
		status   string
		method   string
		customer string
		out      bool
	}{
		{"pending", "delivery", "Alice Martin", false},
		{"pending", "self_pickup", "Bob Chen", false},
		{"shop_accepted", "delivery", "Carol Diaz", false},
		{"shop_preparing", "self_pickup", "Dan Novak", false},
		{"shop_preparing", "self_pickup", "Eve Lindqvist", true},
		{"ready_for_pickup", "self_pickup", "Frank Osei", true},
		{"rider_assigned", "delivery", "Grace Ito", true},
		{"delivered", "delivery", "Henry Walsh", true},
	}

	for i, s := range seeds {
		order := &models.Order{
			ID:             uuid.NewString(),
			Number:         fmt.Sprintf("ORD-%04d", 1001+i),
			OwnerID:        owner.ID,
			Status:         s.status,
			DeliveryMethod: s.method,
			CustomerName:   s.customer,
			Items:          items,
			Total:          12.20,
			PickupCode:     common.GenerateNumericCode(4),
			OutForDelivery: s.out,
			CreatedAt:      time.Now().Add(-time.Duration(len(seeds)-i) * time.Hour),
			UpdatedAt:      time.Now(),
		}
		if err := m.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("failed to seed order: %w", err)
		}
	}

	product := &models.Product{
		ID:          uuid.NewString(),
		OwnerID:     owner.ID,
		Name:        "House blend beans 250g",
		Description: "Medium roast, whole beans.",
		Price:       11.90,
		Stock:       40,
	}
	if err := m.Products().Create(ctx, product); err != nil {
		return fmt.Errorf("failed to seed product: %w", err)
	}

	return nil
}
