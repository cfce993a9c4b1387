package department

import (
	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, perms middleware.PermissionService) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.RequirePermission(perms, domain.PermDeptView), handler.GetAll)
		departments.GET("/:id", middleware.RequirePermission(perms, domain.PermDeptView), handler.GetByID)
		departments.POST("", middleware.RequirePermission(perms, domain.PermDeptManage), handler.Create)
		departments.PUT("/:id", middleware.RequirePermission(perms, domain.PermDeptManage), handler.Update)
		departments.DELETE("/:id", middleware.RequirePermission(perms, domain.PermDeptManage), handler.Delete)

		departments.GET("/:id/designations", middleware.RequirePermission(perms, domain.PermDeptView), handler.GetDesignations)
		departments.POST("/:id/designations", middleware.RequirePermission(perms, domain.PermDeptManage), handler.CreateDesignation)
		departments.PUT("/:id/designations/:designationId", middleware.RequirePermission(perms, domain.PermDeptManage), handler.UpdateDesignation)
		departments.DELETE("/:id/designations/:designationId", middleware.RequirePermission(perms, domain.PermDeptManage), handler.DeleteDesignation)
	}
}
