package orders

import (
	"context"
	"errors"
	"regexp"

	"shopgate/internal/client/api"
	"shopgate/internal/client/models"
	"shopgate/internal/logging"
)

// Outcome is what every mutating action resolves to: either success, or a
// dismissible message for the operator. Errors never escape the
// controller. Closed reports that a terminal action dismissed the detail
// view.
type Outcome struct {
	OK      bool
	Message string
	Closed  bool
}

func ok() Outcome             { return Outcome{OK: true} }
func fail(msg string) Outcome { return Outcome{Message: msg} }
func closed() Outcome         { return Outcome{OK: true, Closed: true} }

var otpPattern = regexp.MustCompile(`^[0-9]{4}$`)

// Controller drives the detail view of a single order. It holds the
// in-memory mirror of the order, per-action busy flags, and the local
// "pickup code verified" flag seeded from the fetched tracking state.
//
// The controller is confined to the UI goroutine; busy flags serialize
// actions the same way disabled buttons do, not via locking.
type Controller struct {
	api   api.Client
	log   logging.Logger
	token string

	order    models.Order
	verified bool
	busy     map[Action]bool

	// onRefresh asks the surrounding view to re-fetch the order list.
	// onClose dismisses the detail view after a terminal action.
	onRefresh func()
	onClose   func()
}

// NewController builds a controller for a fetched order. Either callback
// may be nil.
func NewController(c api.Client, log logging.Logger, token string, order models.Order, onRefresh, onClose func()) *Controller {
	return &Controller{
		api:       c,
		log:       log,
		token:     token,
		order:     order,
		verified:  order.DeliveryMethod == models.DeliverySelfPickup && order.Tracking.OutForDelivery,
		busy:      make(map[Action]bool),
		onRefresh: onRefresh,
		onClose:   onClose,
	}
}

// Order returns the current in-memory mirror.
func (c *Controller) Order() models.Order { return c.order }

// OTPVerified reports whether the pickup code has been verified. Not
// reversible from the UI.
func (c *Controller) OTPVerified() bool { return c.verified }

// Busy reports whether an action is in flight (its control is disabled).
func (c *Controller) Busy(a Action) bool { return c.busy[a] }

// Actions returns the action set valid for the order as displayed.
func (c *Controller) Actions() ActionSet {
	return AllowedActions(c.order.Status, c.order.DeliveryMethod, c.verified)
}

// VerifyOTP runs the pickup-code verification sub-protocol. Codes that
// are not exactly 4 digits are rejected client-side without a network
// call. On success the verified flag latches true and any tracking delta
// from the backend is merged; on failure local state is untouched.
func (c *Controller) VerifyOTP(ctx context.Context, otp string) Outcome {
	if !c.Actions().Has(ActionVerifyOTP) {
		return fail("verification is not available for this order")
	}
	if c.busy[ActionVerifyOTP] {
		return fail("verification already in progress")
	}
	if !otpPattern.MatchString(otp) {
		return fail("pickup code must be exactly 4 digits")
	}

	c.busy[ActionVerifyOTP] = true
	defer func() { c.busy[ActionVerifyOTP] = false }()

	delta, err := c.api.VerifyPickup(ctx, c.token, c.order.OrderID, otp)
	if err != nil {
		c.log.Warn(ctx, "pickup verification failed", "order", c.order.OrderID, "error", err)
		return fail(messageFor(err))
	}

	c.verified = true
	c.order = mergeTracking(c.order, delta)
	c.order.Tracking.OutForDelivery = true
	c.refresh()
	return ok()
}

// Accept takes a pending order into preparation.
func (c *Controller) Accept(ctx context.Context) Outcome {
	if !c.Actions().Has(ActionAccept) {
		return fail("this order cannot be accepted")
	}
	return c.transition(ctx, ActionAccept, models.OrderShopAccepted, false)
}

// MarkReady transitions a courier order to ready_for_pickup.
func (c *Controller) MarkReady(ctx context.Context) Outcome {
	if !c.Actions().Has(ActionMarkReady) {
		return fail("this order cannot be marked ready")
	}
	return c.transition(ctx, ActionMarkReady, models.OrderReadyForPickup, false)
}

// MarkDelivered completes a self-pickup order whose code was verified.
// Terminal: the detail view closes on success.
func (c *Controller) MarkDelivered(ctx context.Context) Outcome {
	if !c.Actions().Has(ActionMarkDelivered) {
		if c.order.DeliveryMethod == models.DeliverySelfPickup && !c.verified {
			return fail("verify the customer's pickup code first")
		}
		return fail("this order cannot be marked delivered")
	}
	return c.transition(ctx, ActionMarkDelivered, models.OrderDelivered, true)
}

// ConfirmPickup completes a ready self-pickup order. The confirmed
// argument is the operator's answer to the confirmation step; without it
// no call is made.
func (c *Controller) ConfirmPickup(ctx context.Context, confirmed bool) Outcome {
	if !c.Actions().Has(ActionConfirmPickup) {
		return fail("this order is not awaiting pickup confirmation")
	}
	if !confirmed {
		return fail("pickup not confirmed")
	}
	return c.transition(ctx, ActionConfirmPickup, models.OrderDelivered, true)
}

// transition is the generic status-mutation sub-protocol: one backend
// call keyed by the storage identifier, optimistic-after-confirmation
// patching of the mirror, and a busy flag cleared regardless of outcome.
func (c *Controller) transition(ctx context.Context, action Action, status models.OrderStatus, terminal bool) Outcome {
	if c.busy[action] {
		return fail("action already in progress")
	}
	c.busy[action] = true
	defer func() { c.busy[action] = false }()

	delta, err := c.api.UpdateOrderStatus(ctx, c.token, c.order.StorageID, status)
	if err != nil {
		c.log.Warn(ctx, "status update failed",
			"order", c.order.OrderID, "status", status, "error", err)
		return fail(messageFor(err))
	}

	c.order = applyConfirmed(c.order, status, delta)
	c.refresh()

	if terminal {
		if c.onClose != nil {
			c.onClose()
		}
		return closed()
	}
	return ok()
}

func (c *Controller) refresh() {
	if c.onRefresh != nil {
		c.onRefresh()
	}
}

// messageFor picks the operator-facing text: the backend's message
// verbatim when there is one, a generic fallback otherwise.
func messageFor(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "server unavailable, please try again"
	}
	return api.FallbackMessage
}
