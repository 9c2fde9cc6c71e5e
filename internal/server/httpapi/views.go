package httpapi

import (
	"github.com/gin-gonic/gin"

	"shopgate/internal/server/models"
)

// orderView renders an order the way the portal expects it: the public
// number under order_id, the storage identifier under id, and the
// tracking flags nested.
func orderView(o *models.Order) gin.H {
	items := o.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	return gin.H{
		"order_id":        o.Number,
		"id":              o.ID,
		"status":          o.Status,
		"delivery_method": o.DeliveryMethod,
		"customer_name":   o.CustomerName,
		"items":           items,
		"total":           o.Total,
		"tracking":        gin.H{"is_out_for_delivery": o.OutForDelivery},
		"created_at":      o.CreatedAt,
	}
}

// accountView renders an owner in one of the payload shapes the real
// backend has shipped over time. The default wraps the account in
// {data:...}; shape=owner uses the {owner:...} envelope with the older
// field names; shape=bare returns the account object directly.
func accountView(o *models.Owner, shape string) gin.H {
	switch shape {
	case "owner":
		return gin.H{"owner": gin.H{
			"owner_id":       o.ID,
			"email":          o.Email,
			"name":           o.ShopName,
			"account_status": o.Status,
			"onboarding":     o.Onboarding,
		}}
	case "bare":
		return bareAccount(o)
	default:
		return gin.H{"data": bareAccount(o)}
	}
}

func bareAccount(o *models.Owner) gin.H {
	return gin.H{
		"id":         o.ID,
		"email":      o.Email,
		"shop_name":  o.ShopName,
		"status":     o.Status,
		"onboarding": o.Onboarding,
	}
}

func productView(p *models.Product) gin.H {
	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"stock":       p.Stock,
		"image_key":   p.ImageKey,
	}
}
