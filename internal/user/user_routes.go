package user

import (
	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, perms middleware.PermissionService) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", middleware.RequirePermission(perms, domain.PermUsersView), handler.GetAll)
		users.GET("/options", middleware.RequirePermission(perms, domain.PermUsersView), handler.GetOptions)
		users.GET("/:id", middleware.RequirePermission(perms, domain.PermUsersView), handler.GetByID)
		users.POST("", middleware.RequirePermission(perms, domain.PermUsersCreate), handler.Create)
		users.PUT("/:id", middleware.RequirePermission(perms, domain.PermUsersEdit), handler.Update)
		users.DELETE("/:id", middleware.RequirePermission(perms, domain.PermUsersDelete), handler.Delete)
	}
}
