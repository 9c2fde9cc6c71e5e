package models

import "time"

// OrderStatus is the backend's order state. It is treated as an opaque
// enumeration: the client never enforces a transition table, it only
// offers the actions valid for the currently displayed status. Values
// the client does not recognize stay displayable via their raw string.
type OrderStatus string

const (
	OrderPending          OrderStatus = "pending"
	OrderShopAccepted     OrderStatus = "shop_accepted"
	OrderShopPreparing    OrderStatus = "shop_preparing"
	OrderReadyForPickup   OrderStatus = "ready_for_pickup"
	OrderRiderAssigned    OrderStatus = "rider_assigned"
	OrderDelivered        OrderStatus = "delivered"
	OrderCancelled        OrderStatus = "cancelled"
	OrderAwaitingAssign   OrderStatus = "awaiting_manual_assignment"
	OrderUserConfirmation OrderStatus = "user_conformation"
)

var knownOrderStatuses = map[OrderStatus]struct{}{
	OrderPending: {}, OrderShopAccepted: {}, OrderShopPreparing: {},
	OrderReadyForPickup: {}, OrderRiderAssigned: {}, OrderDelivered: {},
	OrderCancelled: {}, OrderAwaitingAssign: {}, OrderUserConfirmation: {},
}

// ParseOrderStatus returns the typed status and whether it is one the
// client knows. Unknown statuses are kept verbatim so list views can
// still render them.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(raw)
	_, ok := knownOrderStatuses[s]
	return s, ok
}

// DeliveryMethod determines which action set applies to an order.
type DeliveryMethod string

const (
	DeliveryCourier    DeliveryMethod = "delivery"
	DeliverySelfPickup DeliveryMethod = "self_pickup"
)

// TrackingFlags mirrors the backend's tracking sub-object.
// OutForDelivery doubles as "pickup code already verified" for
// self-pickup orders.
type TrackingFlags struct {
	OutForDelivery bool `json:"is_out_for_delivery"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is the client-side mirror of a remote order. OrderID is the
// human-facing number; StorageID is the identifier mutation calls are
// keyed by. The mirror is best-effort: after a confirmed mutation the
// client patches it in memory without waiting for a list refresh.
type Order struct {
	OrderID        string         `json:"order_id"`
	StorageID      string         `json:"id"`
	Status         OrderStatus    `json:"status"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	CustomerName   string         `json:"customer_name"`
	Items          []OrderItem    `json:"items"`
	Total          float64        `json:"total"`
	Tracking       TrackingFlags  `json:"tracking"`
	CreatedAt      time.Time      `json:"created_at"`
}
