package orders

import (
	"testing"

	"shopgate/internal/client/models"

	"github.com/stretchr/testify/require"
)

func TestAllowedActions_Table(t *testing.T) {
	tests := []struct {
		name     string
		status   models.OrderStatus
		method   models.DeliveryMethod
		verified bool
		want     []Action
	}{
		{"pending delivery", models.OrderPending, models.DeliveryCourier, false, []Action{ActionAccept}},
		{"pending pickup", models.OrderPending, models.DeliverySelfPickup, false, []Action{ActionAccept}},
		{"accepted delivery", models.OrderShopAccepted, models.DeliveryCourier, false, []Action{ActionMarkReady}},
		{"preparing delivery", models.OrderShopPreparing, models.DeliveryCourier, false, []Action{ActionMarkReady}},
		{"accepted pickup unverified", models.OrderShopAccepted, models.DeliverySelfPickup, false, []Action{ActionVerifyOTP}},
		{"preparing pickup unverified", models.OrderShopPreparing, models.DeliverySelfPickup, false, []Action{ActionVerifyOTP}},
		{"preparing pickup verified", models.OrderShopPreparing, models.DeliverySelfPickup, true, []Action{ActionMarkDelivered}},
		{"ready delivery is view-only", models.OrderReadyForPickup, models.DeliveryCourier, false, nil},
		{"ready pickup", models.OrderReadyForPickup, models.DeliverySelfPickup, false, []Action{ActionConfirmPickup}},
		{"delivered pickup is view-only", models.OrderDelivered, models.DeliverySelfPickup, true, nil},
		{"cancelled is view-only", models.OrderCancelled, models.DeliveryCourier, false, nil},
		{"rider assigned is view-only", models.OrderRiderAssigned, models.DeliveryCourier, false, nil},
		{"awaiting assignment is view-only", models.OrderAwaitingAssign, models.DeliveryCourier, false, nil},
		{"user confirmation is view-only", models.OrderUserConfirmation, models.DeliverySelfPickup, false, nil},
		{"unknown status is view-only", models.OrderStatus("weird"), models.DeliveryCourier, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllowedActions(tt.status, tt.method, tt.verified)
			require.Len(t, got, len(tt.want))
			for _, a := range tt.want {
				require.True(t, got.Has(a))
			}
		})
	}
}

func TestApplyConfirmed(t *testing.T) {
	current := models.Order{
		OrderID:   "1001",
		StorageID: "st-1",
		Status:    models.OrderReadyForPickup,
		Items:     []models.OrderItem{{Name: "bread", Quantity: 1, Price: 2}},
		Total:     2,
	}

	// nil delta: only the confirmed status changes
	next := applyConfirmed(current, models.OrderDelivered, nil)
	require.Equal(t, models.OrderDelivered, next.Status)
	require.Equal(t, current.Items, next.Items)
	// the input value is untouched
	require.Equal(t, models.OrderReadyForPickup, current.Status)

	// delta overrides with whatever the backend returned
	delta := &models.Order{
		Status:   models.OrderDelivered,
		Tracking: models.TrackingFlags{OutForDelivery: true},
	}
	next = applyConfirmed(current, models.OrderDelivered, delta)
	require.True(t, next.Tracking.OutForDelivery)
	require.Equal(t, models.OrderDelivered, next.Status)
}
