package invoice

import (
	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, perms middleware.PermissionService) {
	invoices := r.Group("/invoices")
	invoices.Use(middleware.AuthMiddleware())
	{
		invoices.GET("", middleware.RequirePermission(perms, domain.PermCRMView), handler.GetAll)
		invoices.GET("/:id", middleware.RequirePermission(perms, domain.PermCRMView), handler.GetByID)
		invoices.POST("", middleware.RequirePermission(perms, domain.PermCRMManage), handler.Create)
		invoices.POST("/:id/send", middleware.RequirePermission(perms, domain.PermCRMManage), handler.MarkSent)
		invoices.POST("/:id/pay", middleware.RequirePermission(perms, domain.PermCRMManage), handler.MarkPaid)
	}
}
