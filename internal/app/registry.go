package app

import (
	"context"
	"database/sql"

	"go-hradmin/internal/advance"
	"go-hradmin/internal/attendance"
	"go-hradmin/internal/audit"
	"go-hradmin/internal/auth"
	"go-hradmin/internal/customer"
	"go-hradmin/internal/department"
	"go-hradmin/internal/invoice"
	"go-hradmin/internal/leave"
	"go-hradmin/internal/messaging/kafka"
	"go-hradmin/internal/payroll"
	"go-hradmin/internal/product"
	"go-hradmin/internal/quotation"
	"go-hradmin/internal/rbac"
	"go-hradmin/internal/rbac/infra"
	"go-hradmin/internal/salary"
	"go-hradmin/internal/shared/counter"
	"go-hradmin/internal/user"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Registry wires repositories, services and handlers once so the api,
// worker and consumer binaries can share the same construction order.
type Registry struct {
	Outbox kafka.OutboxRepository

	RBACService    rbac.Service
	AuditService   audit.Service
	InvoiceService invoice.Service

	AuthHandler       *auth.Handler
	UserHandler       *user.Handler
	DepartmentHandler *department.Handler
	RBACHandler       *rbac.Handler
	AttendanceHandler *attendance.Handler
	LeaveHandler      *leave.Handler
	SalaryHandler     *salary.Handler
	AdvanceHandler    *advance.Handler
	PayrollHandler    *payroll.Handler
	CustomerHandler   *customer.Handler
	ProductHandler    *product.Handler
	QuotationHandler  *quotation.Handler
	InvoiceHandler    *invoice.Handler
	AuditHandler      *audit.Handler
}

// userDirectory adapts the user repository to the narrow lookup the
// attendance service needs.
type userDirectory struct {
	repo user.Repository
}

func (d *userDirectory) DepartmentIDOf(ctx context.Context, userID string) (string, error) {
	u, err := d.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if u.DepartmentID == nil {
		return "", nil
	}
	return u.DepartmentID.String(), nil
}

func BuildRegistry(gdb *gorm.DB, sqlDB *sql.DB, rdb *redis.Client) (*Registry, error) {
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}

	counterRepo := counter.NewRepository(gdb)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	userRepo := user.NewRepository(gdb)
	departmentRepo := department.NewRepository(gdb)
	rbacRepo := rbac.NewRepository(gdb)
	attendanceRepo := attendance.NewRepository(gdb)
	leaveRepo := leave.NewRepository(gdb)
	salaryRepo := salary.NewRepository(gdb)
	advanceRepo := advance.NewRepository(gdb)
	payrollRepo := payroll.NewRepository(gdb)
	customerRepo := customer.NewRepository(gdb)
	productRepo := product.NewRepository(gdb)
	quotationRepo := quotation.NewRepository(gdb)
	invoiceRepo := invoice.NewRepository(gdb)
	auditRepo := audit.NewRepository(gdb)

	auditService := audit.NewService(auditRepo)
	rbacService := rbac.NewService(rbacRepo, enforcer, auditService)
	userService := user.NewServiceWithOutbox(sqlDB, userRepo, counterRepo, outboxRepo, rdb)
	authService := auth.NewService(userRepo, rbacService)
	departmentService := department.NewService(sqlDB, departmentRepo)
	attendanceService := attendance.NewService(sqlDB, attendanceRepo, &userDirectory{repo: userRepo})
	leaveService := leave.NewService(sqlDB, leaveRepo, attendanceRepo)
	salaryService := salary.NewService(sqlDB, salaryRepo)
	advanceService := advance.NewService(sqlDB, advanceRepo)
	payrollService := payroll.NewService(sqlDB, payrollRepo, salaryRepo, attendanceRepo, advanceRepo, outboxRepo)
	customerService := customer.NewService(sqlDB, customerRepo)
	productService := product.NewService(sqlDB, productRepo)
	invoiceService := invoice.NewService(sqlDB, invoiceRepo, productRepo, counterRepo)
	quotationService := quotation.NewService(sqlDB, quotationRepo, productRepo, invoiceRepo, counterRepo)

	return &Registry{
		Outbox: outboxRepo,

		RBACService:    rbacService,
		AuditService:   auditService,
		InvoiceService: invoiceService,

		AuthHandler:       auth.NewHandler(authService),
		UserHandler:       user.NewHandler(userService),
		DepartmentHandler: department.NewHandler(departmentService),
		RBACHandler:       rbac.NewHandler(rbacService),
		AttendanceHandler: attendance.NewHandler(attendanceService),
		LeaveHandler:      leave.NewHandler(leaveService),
		SalaryHandler:     salary.NewHandler(salaryService),
		AdvanceHandler:    advance.NewHandler(advanceService),
		PayrollHandler:    payroll.NewHandler(payrollService, rdb),
		CustomerHandler:   customer.NewHandler(customerService),
		ProductHandler:    product.NewHandler(productService),
		QuotationHandler:  quotation.NewHandler(quotationService),
		InvoiceHandler:    invoice.NewHandler(invoiceService),
		AuditHandler:      audit.NewHandler(auditService),
	}, nil
}
