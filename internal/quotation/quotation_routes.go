package quotation

import (
	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, perms middleware.PermissionService) {
	quotations := r.Group("/quotations")
	quotations.Use(middleware.AuthMiddleware())
	{
		quotations.GET("", middleware.RequirePermission(perms, domain.PermCRMView), handler.GetAll)
		quotations.GET("/:id", middleware.RequirePermission(perms, domain.PermCRMView), handler.GetByID)
		quotations.POST("", middleware.RequirePermission(perms, domain.PermCRMManage), handler.Create)
		quotations.POST("/:id/send", middleware.RequirePermission(perms, domain.PermCRMManage), handler.MarkSent)
		quotations.POST("/:id/accept", middleware.RequirePermission(perms, domain.PermCRMManage), handler.Accept)
		quotations.POST("/:id/reject", middleware.RequirePermission(perms, domain.PermCRMManage), handler.Reject)
		quotations.POST("/:id/convert", middleware.RequirePermission(perms, domain.PermCRMManage), handler.Convert)
	}
}
