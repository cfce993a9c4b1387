package product

import (
	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, perms middleware.PermissionService) {
	products := r.Group("/products")
	products.Use(middleware.AuthMiddleware())
	{
		products.GET("", middleware.RequirePermission(perms, domain.PermCRMView), handler.GetAll)
		products.GET("/:id", middleware.RequirePermission(perms, domain.PermCRMView), handler.GetByID)
		products.POST("", middleware.RequirePermission(perms, domain.PermCRMManage), handler.Create)
		products.PUT("/:id", middleware.RequirePermission(perms, domain.PermCRMManage), handler.Update)
		products.DELETE("/:id", middleware.RequirePermission(perms, domain.PermCRMManage), handler.Delete)
	}
}
