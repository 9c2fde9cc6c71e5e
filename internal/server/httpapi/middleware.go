package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopgate/internal/server/auth"
)

const ownerIDKey = "ownerID"

func (h *Handler) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
		return
	}

	ownerID, err := auth.GetOwnerIDFromToken(token, []byte(h.config.SecretKey))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
		return
	}

	c.Set(ownerIDKey, ownerID)
	c.Next()
}

func ownerID(c *gin.Context) string {
	return c.GetString(ownerIDKey)
}
