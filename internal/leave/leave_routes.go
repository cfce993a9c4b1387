package leave

import (
	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, perms middleware.PermissionService) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", middleware.RequirePermission(perms, domain.PermLeaveApply), handler.Apply)
		leaves.GET("/me", handler.GetMine)
		leaves.GET("", middleware.RequirePermission(perms, domain.PermLeaveView), handler.GetAll)
		leaves.GET("/:id", middleware.RequirePermission(perms, domain.PermLeaveView), handler.GetByID)
		leaves.POST("/:id/approve", middleware.RequirePermission(perms, domain.PermLeaveApprove), handler.Approve)
		leaves.POST("/:id/reject", middleware.RequirePermission(perms, domain.PermLeaveApprove), handler.Reject)
	}
}
