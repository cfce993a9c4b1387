package advance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

// SalaryAdvance is a lump sum paid out early and recovered through
// monthly payroll deductions starting at the configured period.
type SalaryAdvance struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount              float64   `gorm:"not null"`
	MonthlyDeduction    float64   `gorm:"not null"`
	RemainingAmount     float64   `gorm:"not null"`
	DeductionStartMonth int       `gorm:"not null"`
	DeductionStartYear  int       `gorm:"not null"`
	Status              string    `gorm:"type:varchar(16);not null;default:'pending';index"`
	Reason              string    `gorm:"type:text"`
	ReviewedBy          *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt          *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (SalaryAdvance) TableName() string {
	return "salary_advances"
}
