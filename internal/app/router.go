package app

import (
	"net/http"

	"go-hradmin/internal/advance"
	"go-hradmin/internal/attendance"
	"go-hradmin/internal/audit"
	"go-hradmin/internal/auth"
	"go-hradmin/internal/customer"
	"go-hradmin/internal/department"
	"go-hradmin/internal/invoice"
	"go-hradmin/internal/leave"
	"go-hradmin/internal/middleware"
	"go-hradmin/internal/payroll"
	"go-hradmin/internal/product"
	"go-hradmin/internal/quotation"
	"go-hradmin/internal/rbac"
	"go-hradmin/internal/salary"
	"go-hradmin/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func NewRouter(reg *Registry, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	perms := reg.RBACService
	auth.RegisterRoutes(api, reg.AuthHandler)
	user.RegisterRoutes(api, reg.UserHandler, perms)
	department.RegisterRoutes(api, reg.DepartmentHandler, perms)
	rbac.RegisterRoutes(api, reg.RBACHandler, perms)
	attendance.RegisterRoutes(api, reg.AttendanceHandler, perms)
	leave.RegisterRoutes(api, reg.LeaveHandler, perms)
	salary.RegisterRoutes(api, reg.SalaryHandler, perms)
	advance.RegisterRoutes(api, reg.AdvanceHandler, perms)
	payroll.RegisterRoutes(api, reg.PayrollHandler, perms, rdb)
	customer.RegisterRoutes(api, reg.CustomerHandler, perms)
	product.RegisterRoutes(api, reg.ProductHandler, perms)
	quotation.RegisterRoutes(api, reg.QuotationHandler, perms)
	invoice.RegisterRoutes(api, reg.InvoiceHandler, perms)
	audit.RegisterRoutes(api, reg.AuditHandler, perms)

	return r
}
