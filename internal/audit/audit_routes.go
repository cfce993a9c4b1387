package audit

import (
	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, perms middleware.PermissionService) {
	logs := r.Group("/activity-logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.GET("", middleware.RequirePermission(perms, domain.PermSysAudit), handler.GetAll)
	}
}
