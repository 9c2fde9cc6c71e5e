// Package models defines the dev server's persisted entities.
package models

import "time"

// Owner is a merchant account. Passwords are stored as argon2id
// verifiers, never in the clear.
type Owner struct {
	ID         string
	Email      string
	ShopName   string
	Status     string
	Salt       []byte
	Verifier   []byte
	Onboarding map[string]string
	CreatedAt  time.Time
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a customer order assigned to one shop. ID is the storage
// identifier used by mutation calls; Number is the human-facing order
// number shown to customers and merchants.
type Order struct {
	ID             string
	Number         string
	OwnerID        string
	Status         string
	DeliveryMethod string
	CustomerName   string
	Items          []OrderItem
	Total          float64
	PickupCode     string
	OutForDelivery bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Product is one catalog entry.
type Product struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageKey    string
}
