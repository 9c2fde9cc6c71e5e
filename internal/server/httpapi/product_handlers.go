package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopgate/internal/common"
	"shopgate/internal/server/models"
)

type productRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageKey    string  `json:"image_key"`
}

func (h *Handler) listProducts(c *gin.Context) {
	items, err := h.repos.Products().ListByOwner(c.Request.Context(), ownerID(c))
	if err != nil {
		h.log.Error(c.Request.Context(), "product list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	views := make([]gin.H, 0, len(items))
	for _, p := range items {
		views = append(views, productView(p))
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required"})
		return
	}

	product := &models.Product{
		ID:          uuid.NewString(),
		OwnerID:     ownerID(c),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageKey:    req.ImageKey,
	}

	if err := h.repos.Products().Create(c.Request.Context(), product); err != nil {
		h.log.Error(c.Request.Context(), "product create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, productView(product))
}

func (h *Handler) updateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required"})
		return
	}

	product := &models.Product{
		ID:          c.Param("id"),
		OwnerID:     ownerID(c),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageKey:    req.ImageKey,
	}

	if err := h.repos.Products().Update(c.Request.Context(), product); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		h.log.Error(c.Request.Context(), "product update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, productView(product))
}

func (h *Handler) deleteProduct(c *gin.Context) {
	err := h.repos.Products().Delete(c.Request.Context(), ownerID(c), c.Param("id"))
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	if err != nil {
		h.log.Error(c.Request.Context(), "product delete failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) imageUploadURL(c *gin.Context) {
	key, url, err := h.presigner.GetPresignedPutURL(c.Request.Context())
	if err != nil {
		h.log.Error(c.Request.Context(), "presign failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "object storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "url": url})
}
