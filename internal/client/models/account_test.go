package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAccountStatus(t *testing.T) {
	tests := []struct {
		raw      string
		want     AccountStatus
		approved bool
	}{
		{"Active", StatusActive, true},
		{"active", StatusActive, true},
		{"Verified", StatusVerified, true},
		{"verified", StatusVerified, true},
		{"Pending", StatusPending, false},
		{"pending", StatusPending, false},
		{"", StatusPending, false},
		{"suspended", StatusOther, false},
	}

	for _, tt := range tests {
		got := ParseAccountStatus(tt.raw)
		require.Equal(t, tt.want, got, "raw=%q", tt.raw)
		require.Equal(t, tt.approved, got.Approved(), "raw=%q", tt.raw)
	}
}

func TestParseOrderStatus(t *testing.T) {
	st, known := ParseOrderStatus("shop_preparing")
	require.True(t, known)
	require.Equal(t, OrderShopPreparing, st)

	st, known = ParseOrderStatus("teleported")
	require.False(t, known)
	require.Equal(t, OrderStatus("teleported"), st)
}
