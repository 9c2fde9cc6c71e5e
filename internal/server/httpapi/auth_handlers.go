package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopgate/internal/common"
	"shopgate/internal/cryptox"
	"shopgate/internal/server/auth"
	"shopgate/internal/server/models"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	ShopName string `json:"shop_name" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email, password and shop_name are required"})
		return
	}

	salt := common.GenerateRandByteArray(16)
	owner := &models.Owner{
		ID:        uuid.NewString(),
		Email:     req.Email,
		ShopName:  req.ShopName,
		Status:    "pending",
		Salt:      salt,
		Verifier:  cryptox.MakeVerifier(cryptox.DeriveKey([]byte(req.Password), salt)),
		CreatedAt: time.Now(),
	}

	if err := h.repos.Owners().Create(c.Request.Context(), owner); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
			return
		}
		h.log.Error(c.Request.Context(), "register failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, accountView(owner, "bare"))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	owner, err := h.repos.Owners().GetByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		h.log.Error(c.Request.Context(), "login lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	if owner == nil || !cryptox.VerifyPassword([]byte(req.Password), owner.Salt, owner.Verifier) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(owner.ID, []byte(h.config.SecretKey), h.config.TokenValidityDuration)
	if err != nil {
		h.log.Error(c.Request.Context(), "token generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"account": bareAccount(owner),
	})
}

// logout is a no-op server-side: tokens are stateless JWTs and simply
// expire. The endpoint exists so the client's best-effort logout call has
// something to hit.
func (h *Handler) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) profile(c *gin.Context) {
	owner, err := h.repos.Owners().GetByID(c.Request.Context(), ownerID(c))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "account no longer exists"})
			return
		}
		h.log.Error(c.Request.Context(), "profile lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, accountView(owner, c.Query("shape")))
}

func (h *Handler) onboarding(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid onboarding payload"})
		return
	}

	if err := h.repos.Owners().UpdateOnboarding(c.Request.Context(), ownerID(c), fields); err != nil {
		h.log.Error(c.Request.Context(), "onboarding update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "submitted"})
}
