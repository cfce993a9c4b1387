package attendance

import (
	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, perms middleware.PermissionService) {
	att := r.Group("/attendance")
	att.Use(middleware.AuthMiddleware())
	{
		// Per-user throttle keeps a stuck client from hammering the
		// one-record-per-date check.
		punchLimit := middleware.RateLimitByUser(rate.Limit(1), 3)
		att.POST("/check-in", punchLimit, handler.CheckIn)
		att.POST("/check-out", punchLimit, handler.CheckOut)
		att.GET("/me", handler.ListMine)

		att.GET("/users/:userId", middleware.RequirePermission(perms, domain.PermAttendView), handler.ListForUser)
		att.GET("/users/:userId/summary", middleware.RequirePermission(perms, domain.PermAttendView), handler.GetSummary)

		att.GET("/policies", middleware.RequirePermission(perms, domain.PermAttendPolicy), handler.ListPolicies)
		att.POST("/policies", middleware.RequirePermission(perms, domain.PermAttendPolicy), handler.CreatePolicy)
		att.PUT("/policies/:id", middleware.RequirePermission(perms, domain.PermAttendPolicy), handler.UpdatePolicy)
		att.DELETE("/policies/:id", middleware.RequirePermission(perms, domain.PermAttendPolicy), handler.DeletePolicy)

		att.GET("/timings", middleware.RequirePermission(perms, domain.PermAttendPolicy), handler.ListTimings)
		att.PUT("/timings", middleware.RequirePermission(perms, domain.PermAttendPolicy), handler.UpsertTiming)

		att.GET("/office-locations", middleware.RequirePermission(perms, domain.PermAttendManage), handler.ListOfficeLocations)
		att.POST("/office-locations", middleware.RequirePermission(perms, domain.PermAttendManage), handler.CreateOfficeLocation)
		att.DELETE("/office-locations/:id", middleware.RequirePermission(perms, domain.PermAttendManage), handler.DeleteOfficeLocation)
	}
}
