package payroll

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// Payroll is one user's computed pay for a month. Persisting a period
// twice is allowed by the schema; callers query by-period first when
// they want at-most-one.
type Payroll struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_payroll_user_period"`
	Month  int       `gorm:"not null;index:idx_payroll_user_period"`
	Year   int       `gorm:"not null;index:idx_payroll_user_period"`

	WorkingDays   int     `gorm:"not null"`
	PresentDays   int     `gorm:"not null"`
	LeaveDays     int     `gorm:"not null;default:0"`
	OvertimeHours float64 `gorm:"not null;default:0"`

	FixedSalary       float64 `gorm:"not null"`
	BasicSalary       float64 `gorm:"not null"`
	HRA               float64 `gorm:"not null;default:0"`
	Allowances        float64 `gorm:"not null;default:0"`
	VariableComponent float64 `gorm:"not null;default:0"`

	AdjustedSalary   float64 `gorm:"not null"`
	OvertimePay      float64 `gorm:"not null;default:0"`
	GrossSalary      float64 `gorm:"not null"`
	PFDeduction      float64 `gorm:"not null;default:0"`
	ESIDeduction     float64 `gorm:"not null;default:0"`
	TDSDeduction     float64 `gorm:"not null;default:0"`
	AdvanceDeduction float64 `gorm:"not null;default:0"`
	NetSalary        float64 `gorm:"not null"`

	Status     string     `gorm:"type:varchar(16);not null;default:'draft';index"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time
	PaidBy     *uuid.UUID `gorm:"type:uuid"`
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Payroll) TableName() string {
	return "payrolls"
}

// PayrollSettings is a singleton row. When absent the service falls
// back to DefaultSettings.
type PayrollSettings struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PFRate              float64   `gorm:"not null"`
	PFGrossThreshold    float64   `gorm:"not null"`
	ESIRate             float64   `gorm:"not null"`
	ESIGrossThreshold   float64   `gorm:"not null"`
	TDSRate             float64   `gorm:"not null"`
	StandardWorkingDays int       `gorm:"not null"`
	StandardHours       float64   `gorm:"not null"`
	OvertimeMultiplier  float64   `gorm:"not null"`
	UpdatedAt           time.Time
}

func (PayrollSettings) TableName() string {
	return "payroll_settings"
}

// DefaultSettings returns the statutory defaults used when no settings
// row has been configured.
func DefaultSettings() PayrollSettings {
	return PayrollSettings{
		PFRate:              0.12,
		PFGrossThreshold:    15000,
		ESIRate:             0.0075,
		ESIGrossThreshold:   21000,
		TDSRate:             0.10,
		StandardWorkingDays: 22,
		StandardHours:       8,
		OvertimeMultiplier:  1.5,
	}
}
