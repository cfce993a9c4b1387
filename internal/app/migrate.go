package app

import (
	"go-hradmin/internal/advance"
	"go-hradmin/internal/attendance"
	"go-hradmin/internal/audit"
	"go-hradmin/internal/customer"
	"go-hradmin/internal/department"
	"go-hradmin/internal/invoice"
	"go-hradmin/internal/leave"
	"go-hradmin/internal/payroll"
	"go-hradmin/internal/product"
	"go-hradmin/internal/quotation"
	"go-hradmin/internal/rbac"
	"go-hradmin/internal/salary"
	"go-hradmin/internal/user"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date. The counters and outbox tables
// are plain DDL because their repositories bypass gorm.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&department.Department{},
		&department.Designation{},
		&user.User{},
		&rbac.Role{},
		&rbac.UserRoleAssignment{},
		&rbac.PermissionOverride{},
		&attendance.Attendance{},
		&attendance.AttendancePolicy{},
		&attendance.DepartmentTiming{},
		&attendance.OfficeLocation{},
		&leave.Leave{},
		&salary.SalaryStructure{},
		&advance.SalaryAdvance{},
		&payroll.Payroll{},
		&payroll.PayrollSettings{},
		&customer.Customer{},
		&product.Product{},
		&quotation.Quotation{},
		&quotation.LineItem{},
		&invoice.Invoice{},
		&invoice.LineItem{},
		&audit.ActivityLog{},
	); err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS counters (
			counter_type varchar(64) PRIMARY KEY,
			last_value   bigint NOT NULL DEFAULT 0,
			updated_at   timestamptz NOT NULL DEFAULT now()
		)
	`).Error; err != nil {
		return err
	}

	return db.Exec(`
		CREATE TABLE IF NOT EXISTS outbox_events (
			id             uuid PRIMARY KEY,
			request_id     varchar(64),
			aggregate_type varchar(64) NOT NULL,
			aggregate_id   varchar(64) NOT NULL,
			event_type     varchar(64) NOT NULL,
			topic          varchar(128) NOT NULL,
			payload        jsonb NOT NULL,
			status         varchar(16) NOT NULL DEFAULT 'pending',
			retry_count    int NOT NULL DEFAULT 0,
			next_retry_at  timestamptz,
			processed_at   timestamptz,
			error_message  varchar(500),
			created_at     timestamptz NOT NULL DEFAULT now(),
			updated_at     timestamptz NOT NULL DEFAULT now()
		)
	`).Error
}
