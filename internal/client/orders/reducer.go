package orders

import "shopgate/internal/client/models"

// applyConfirmed folds a backend-confirmed delta into the current order
// mirror and returns the new value. The current order is never mutated
// in place; callers swap the whole value after confirmation.
//
// delta may be nil (the backend confirmed without echoing the order) —
// then only the locally requested status change is applied via status.
func applyConfirmed(current models.Order, status models.OrderStatus, delta *models.Order) models.Order {
	next := current
	next.Status = status

	if delta == nil {
		return next
	}

	if delta.Status != "" {
		next.Status = delta.Status
	}
	next.Tracking = delta.Tracking
	if delta.DeliveryMethod != "" {
		next.DeliveryMethod = delta.DeliveryMethod
	}
	if delta.CustomerName != "" {
		next.CustomerName = delta.CustomerName
	}
	if len(delta.Items) > 0 {
		next.Items = delta.Items
		next.Total = delta.Total
	}
	return next
}

// mergeTracking folds only the tracking flags of a delta into the
// current order, leaving the status untouched. Used after OTP
// verification, which changes tracking state but not the order status.
func mergeTracking(current models.Order, delta *models.Order) models.Order {
	next := current
	if delta != nil {
		next.Tracking = delta.Tracking
	}
	return next
}
