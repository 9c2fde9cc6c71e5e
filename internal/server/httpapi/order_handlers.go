package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopgate/internal/common"
	"shopgate/internal/server/models"
)

// allowedTransitions is the server-side counterpart of the portal's
// action table. Keys are current statuses, values the statuses a merchant
// may move the order to.
var allowedTransitions = map[string]map[string]bool{
	"pending":          {"shop_accepted": true, "cancelled": true},
	"shop_accepted":    {"shop_preparing": true, "ready_for_pickup": true, "delivered": true},
	"shop_preparing":   {"ready_for_pickup": true, "delivered": true},
	"ready_for_pickup": {"delivered": true},
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.repos.Orders().ListByOwner(c.Request.Context(), ownerID(c))
	if err != nil {
		h.log.Error(c.Request.Context(), "order list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	views := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		views = append(views, orderView(order))
	}
	c.JSON(http.StatusOK, views)
}

// getOrder accepts either identifier: the storage id or the public order
// number.
func (h *Handler) getOrder(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	order, err := h.repos.Orders().GetByID(ctx, ownerID(c), id)
	if errors.Is(err, common.ErrNotFound) {
		order, err = h.repos.Orders().GetByNumber(ctx, ownerID(c), id)
	}
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		return
	}
	if err != nil {
		h.log.Error(ctx, "order lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, orderView(order))
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	ctx := c.Request.Context()

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "status is required"})
		return
	}

	order, err := h.repos.Orders().GetByID(ctx, ownerID(c), c.Param("id"))
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "order not found"})
		return
	}
	if err != nil {
		h.log.Error(ctx, "order lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	if msg := rejectTransition(order, req.Status); msg != "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": msg})
		return
	}

	updated, err := h.repos.Orders().UpdateStatus(ctx, ownerID(c), order.ID, req.Status)
	if err != nil {
		h.log.Error(ctx, "status update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	h.log.Info(ctx, "order status updated",
		"order", updated.Number, "from", order.Status, "to", updated.Status)
	c.JSON(http.StatusOK, gin.H{"success": true, "order": orderView(updated)})
}

func rejectTransition(order *models.Order, target string) string {
	if !allowedTransitions[order.Status][target] {
		return "cannot move order from " + order.Status + " to " + target
	}
	if target == "delivered" && order.DeliveryMethod == "self_pickup" && !order.OutForDelivery {
		return "verify the pickup code first"
	}
	return ""
}

type verifyPickupRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	OTP     string `json:"otp" binding:"required"`
}

// verifyPickup checks a self-pickup confirmation code against the order
// identified by its public number. A correct code flips the tracking flag
// the portal reads as "verified".
func (h *Handler) verifyPickup(c *gin.Context) {
	ctx := c.Request.Context()

	var req verifyPickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "order_id and otp are required"})
		return
	}

	order, err := h.repos.Orders().GetByNumber(ctx, ownerID(c), req.OrderID)
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "order not found"})
		return
	}
	if err != nil {
		h.log.Error(ctx, "order lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	if order.DeliveryMethod != "self_pickup" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "order is not a self-pickup order"})
		return
	}
	if order.PickupCode != req.OTP {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "invalid pickup code"})
		return
	}

	updated, err := h.repos.Orders().MarkOutForDelivery(ctx, ownerID(c), order.ID)
	if err != nil {
		h.log.Error(ctx, "pickup verification failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": orderView(updated)})
}
