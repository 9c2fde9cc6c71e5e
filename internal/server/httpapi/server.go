// Package httpapi exposes the dev server's REST surface: the same routes
// and payload shapes the production backend serves the portal.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"shopgate/internal/logging"
	"shopgate/internal/server/assets"
	sc "shopgate/internal/server/config"
	"shopgate/internal/server/shared/db"
)

type Handler struct {
	config    *sc.Config
	repos     db.RepositoryManager
	presigner *assets.Presigner
	log       logging.Logger
}

func NewHandler(config *sc.Config, repos db.RepositoryManager, presigner *assets.Presigner, log logging.Logger) *Handler {
	return &Handler{
		config:    config,
		repos:     repos,
		presigner: presigner,
		log:       log,
	}
}

func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", h.healthz)
	r.POST("/login", h.login)
	r.POST("/register", h.register)

	authed := r.Group("/", h.requireAuth)
	authed.POST("/logout", h.logout)
	authed.GET("/profile", h.profile)
	authed.POST("/onboarding", h.onboarding)

	authed.GET("/orders", h.listOrders)
	authed.GET("/orders/:id", h.getOrder)
	authed.PUT("/orders/:id/status", h.updateOrderStatus)
	authed.POST("/verify-pickup", h.verifyPickup)

	authed.GET("/products", h.listProducts)
	authed.POST("/products", h.createProduct)
	authed.PUT("/products/:id", h.updateProduct)
	authed.DELETE("/products/:id", h.deleteProduct)
	authed.GET("/images/upload-url", h.imageUploadURL)

	return r
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
