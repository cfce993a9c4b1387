package auth

import (
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		// Login is the brute-force target, keep it tight.
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.POST("/logout", handler.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}
}
