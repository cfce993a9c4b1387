package rbac

import (
	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, perms middleware.PermissionService) {
	rbac := r.Group("/rbac")
	rbac.Use(middleware.AuthMiddleware())
	{
		rbac.GET("/users/:userId/permissions", middleware.RequirePermission(perms, domain.PermPermsAssign), handler.GetEffectivePermissions)

		rbac.GET("/roles", middleware.RequirePermission(perms, domain.PermRolesManage), handler.ListRoles)
		rbac.POST("/roles", middleware.RequirePermission(perms, domain.PermRolesManage), handler.CreateRole)
		rbac.PUT("/roles/:id", middleware.RequirePermission(perms, domain.PermRolesManage), handler.UpdateRole)
		rbac.DELETE("/roles/:id", middleware.RequirePermission(perms, domain.PermRolesManage), handler.DeleteRole)

		rbac.POST("/assignments", middleware.RequirePermission(perms, domain.PermPermsAssign), handler.AssignRole)
		rbac.DELETE("/assignments/:id", middleware.RequirePermission(perms, domain.PermPermsAssign), handler.RevokeAssignment)

		// Overrides bypass the whole resolution pipeline, so they stay
		// behind the coarse role gate on top of the permission check.
		masterOnly := middleware.RoleMiddleware(domain.RoleMasterAdmin)
		rbac.POST("/overrides", masterOnly, middleware.RequirePermission(perms, domain.PermPermsAssign), handler.CreateOverride)
		rbac.DELETE("/overrides/:id", masterOnly, middleware.RequirePermission(perms, domain.PermPermsAssign), handler.DeleteOverride)
	}
}
