package db

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"shopgate/internal/cryptox"
)

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()
	m := NewInMemoryRepositoryManager()
	require.NoError(t, SeedDemoData(ctx, m))

	owner, err := m.Owners().GetByEmail(ctx, DemoEmail)
	require.NoError(t, err)
	require.True(t, cryptox.VerifyPassword([]byte(DemoPassword), owner.Salt, owner.Verifier))

	orders, err := m.Orders().ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.NotEmpty(t, orders)

	codePattern := regexp.MustCompile(`^[0-9]{4}$`)
	statuses := make(map[string]bool)
	for _, o := range orders {
		statuses[o.Status] = true
		require.Regexp(t, codePattern, o.PickupCode)
	}
	// at least one order per action the portal offers
	for _, s := range []string{"pending", "shop_preparing", "ready_for_pickup"} {
		require.True(t, statuses[s], "missing seeded status %s", s)
	}

	products, err := m.Products().ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.NotEmpty(t, products)
}
