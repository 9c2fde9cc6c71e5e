package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"shopgate/internal/server/migrations"
	"shopgate/internal/server/orders"
	"shopgate/internal/server/owners"
	"shopgate/internal/server/products"
)

type PostgresRepositoryManager struct {
	db       *sql.DB
	owners   owners.Repository
	orders   orders.Repository
	products products.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Owners() owners.Repository {
	return m.owners
}

func (m *PostgresRepositoryManager) Orders() orders.Repository {
	return m.orders
}

func (m *PostgresRepositoryManager) Products() products.Repository {
	return m.products
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	ownerRepo, err := owners.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("owner repo creation error: %w", err)
	}

	orderRepo, err := orders.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("order repo creation error: %w", err)
	}

	productRepo, err := products.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("product repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:       db,
		owners:   ownerRepo,
		orders:   orderRepo,
		products: productRepo,
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
