package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"shopgate/internal/client/models"
	"shopgate/internal/logging"
)

func TestFormatOrderLineRendersUnknownStatusVerbatim(t *testing.T) {
	app := &App{log: logging.NewDefault()}

	order := models.Order{
		OrderID:        "ORD-1001",
		Status:         models.OrderStatus("weird_new_state"),
		DeliveryMethod: models.DeliveryCourier,
		CustomerName:   "Alice Martin",
		Total:          12.20,
	}

	line := app.formatOrderLine(context.Background(), 1, order)
	require.Contains(t, line, "weird_new_state")
	require.Contains(t, line, "#ORD-1001")
}
