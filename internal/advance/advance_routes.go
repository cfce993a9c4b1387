package advance

import (
	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, perms middleware.PermissionService) {
	advances := r.Group("/salary-advances")
	advances.Use(middleware.AuthMiddleware())
	{
		advances.POST("", middleware.RequirePermission(perms, domain.PermAdvanceGrant), handler.Create)
		advances.GET("/pending", middleware.RequirePermission(perms, domain.PermAdvanceView), handler.ListPending)
		advances.GET("/users/:userId", middleware.RequirePermission(perms, domain.PermAdvanceView), handler.ListByUser)
		advances.GET("/:id", middleware.RequirePermission(perms, domain.PermAdvanceView), handler.GetByID)
		advances.POST("/:id/approve", middleware.RequirePermission(perms, domain.PermAdvanceGrant), handler.Approve)
		advances.POST("/:id/reject", middleware.RequirePermission(perms, domain.PermAdvanceGrant), handler.Reject)
	}
}
