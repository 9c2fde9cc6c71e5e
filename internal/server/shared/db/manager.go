// Package db wires repository implementations to a storage backend.
package db

import (
	"context"
	"database/sql"

	"shopgate/internal/server/orders"
	"shopgate/internal/server/owners"
	"shopgate/internal/server/products"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Owners() owners.Repository
	Orders() orders.Repository
	Products() products.Repository
	Close() error
}
