package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID  = "userId"
	ctxIsGuest = "isGuest"
	ctxIsAdmin = "isAdmin"
)

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	claims, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxIsGuest, claims.IsGuest)
	c.Set(ctxIsAdmin, claims.IsAdmin)
	c.Next()
}

func (h *Handler) adminMiddleware(c *gin.Context) {
	if !c.GetBool(ctxIsAdmin) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "admin access required",
		})
		return
	}
	c.Next()
}

// userID reads the authenticated user id set by userIdMiddleware.
func userID(c *gin.Context) int {
	return c.GetInt(ctxUserID)
}

// pathID parses the :id path parameter; writes a 400 and returns false
// when it is not a positive integer.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
