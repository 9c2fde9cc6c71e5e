package db

import (
	"context"
	"database/sql"

	"shopgate/internal/server/orders"
	"shopgate/internal/server/owners"
	"shopgate/internal/server/products"
)

type InMemoryRepositoryManager struct {
	owners   owners.Repository
	orders   orders.Repository
	products products.Repository
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Owners() owners.Repository {
	return m.owners
}

func (m InMemoryRepositoryManager) Orders() orders.Repository {
	return m.orders
}

func (m InMemoryRepositoryManager) Products() products.Repository {
	return m.products
}

func (m InMemoryRepositoryManager) Close() error {
	return nil
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{
		owners:   owners.NewMemoryRepository(),
		orders:   orders.NewMemoryRepository(),
		products: products.NewMemoryRepository(),
	}
}
