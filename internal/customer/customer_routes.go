package customer

import (
	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, perms middleware.PermissionService) {
	customers := r.Group("/customers")
	customers.Use(middleware.AuthMiddleware())
	{
		customers.GET("", middleware.RequirePermission(perms, domain.PermCRMView), handler.GetAll)
		customers.GET("/:id", middleware.RequirePermission(perms, domain.PermCRMView), handler.GetByID)
		customers.POST("", middleware.RequirePermission(perms, domain.PermCRMManage), handler.Create)
		customers.PUT("/:id", middleware.RequirePermission(perms, domain.PermCRMManage), handler.Update)
		customers.DELETE("/:id", middleware.RequirePermission(perms, domain.PermCRMManage), handler.Delete)
	}
}
