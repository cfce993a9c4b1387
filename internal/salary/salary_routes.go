package salary

import (
	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, perms middleware.PermissionService) {
	structures := r.Group("/salary-structures")
	structures.Use(middleware.AuthMiddleware())
	{
		structures.POST("", middleware.RequirePermission(perms, domain.PermSalaryManage), handler.Create)
		structures.GET("/users/:userId/active", middleware.RequirePermission(perms, domain.PermSalaryView), handler.GetActiveByUser)
		structures.GET("/users/:userId", middleware.RequirePermission(perms, domain.PermSalaryView), handler.ListByUser)
	}
}
