package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PermissionService is a local interface; any package with a matching
// Enforce method satisfies it, so middleware does not import the rbac
// package directly.
type PermissionService interface {
	Enforce(userID, permission string) (bool, error)
}

func RequirePermission(service PermissionService, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get("user_id")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			c.Abort()
			return
		}

		allowed, err := service.Enforce(userID.(string), permission)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  "You do not have permission to access this resource",
				"required": permission,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
