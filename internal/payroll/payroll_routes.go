package payroll

import (
	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, perms middleware.PermissionService, rdb *redis.Client) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.POST("/calculate", middleware.RequirePermission(perms, domain.PermPayrollRun), handler.Calculate)
		payrolls.POST("", middleware.RequirePermission(perms, domain.PermPayrollRun), middleware.Idempotency(rdb), handler.Create)
		payrolls.GET("/by-period", middleware.RequirePermission(perms, domain.PermPayrollView), handler.GetByPeriod)
		payrolls.GET("", middleware.RequirePermission(perms, domain.PermPayrollView), handler.ListByMonth)
		payrolls.GET("/:id", middleware.RequirePermission(perms, domain.PermPayrollView), handler.GetByID)
		payrolls.POST("/:id/approve", middleware.RequirePermission(perms, domain.PermPayrollApprove), handler.Approve)
		payrolls.POST("/:id/pay", middleware.RequirePermission(perms, domain.PermPayrollPay), handler.MarkPaid)
		payrolls.POST("/:id/cancel", middleware.RequirePermission(perms, domain.PermPayrollRun), handler.Cancel)
	}

	settings := r.Group("/payroll-settings")
	settings.Use(middleware.AuthMiddleware())
	{
		settings.GET("", middleware.RequirePermission(perms, domain.PermSysSettings), handler.GetSettings)
		settings.PUT("", middleware.RequirePermission(perms, domain.PermSysSettings), handler.UpdateSettings)
	}
}
