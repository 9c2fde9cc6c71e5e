// Package orders implements the order lifecycle controller: given one
// fetched order, expose exactly the actions valid for its current status
// and delivery method, execute them against the backend, and patch the
// local mirror once the backend confirms.
package orders

import "shopgate/internal/client/models"

// Action is one operator control in the order detail view.
type Action int

const (
	// ActionAccept takes a pending order into preparation.
	ActionAccept Action = iota
	// ActionMarkReady transitions a courier order to ready_for_pickup.
	ActionMarkReady
	// ActionVerifyOTP verifies the customer's pickup code. Precondition
	// for delivering a self-pickup order.
	ActionVerifyOTP
	// ActionMarkDelivered marks a verified self-pickup order delivered.
	ActionMarkDelivered
	// ActionConfirmPickup confirms the customer picked the order up,
	// gated by an explicit confirmation step.
	ActionConfirmPickup
)

// ActionSet is the set of actions currently offered.
type ActionSet map[Action]struct{}

func (s ActionSet) Has(a Action) bool {
	_, ok := s[a]
	return ok
}

func set(actions ...Action) ActionSet {
	s := make(ActionSet, len(actions))
	for _, a := range actions {
		s[a] = struct{}{}
	}
	return s
}

// AllowedActions maps (status, deliveryMethod, otpVerified) onto the
// actions the view may offer. Pure function; everything outside this
// table is view-only. The backend remains the authority on whether a
// transition actually goes through.
func AllowedActions(status models.OrderStatus, method models.DeliveryMethod, otpVerified bool) ActionSet {
	switch status {
	case models.OrderPending:
		return set(ActionAccept)

	case models.OrderShopAccepted, models.OrderShopPreparing:
		if method == models.DeliverySelfPickup {
			if otpVerified {
				return set(ActionMarkDelivered)
			}
			return set(ActionVerifyOTP)
		}
		return set(ActionMarkReady)

	case models.OrderReadyForPickup:
		if method == models.DeliverySelfPickup {
			return set(ActionConfirmPickup)
		}
		// courier orders show a read-only "ready" indicator
		return set()

	default:
		return set()
	}
}
