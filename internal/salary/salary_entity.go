package salary

import (
	"time"

	"github.com/google/uuid"
)

// SalaryStructure is the versioned pay definition for a user. Only one
// structure is active per user; creating a new one retires the rest.
type SalaryStructure struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index"`
	FixedSalary       float64   `gorm:"not null"`
	BasicSalary       float64   `gorm:"not null"`
	HRA               float64   `gorm:"not null;default:0"`
	Allowances        float64   `gorm:"not null;default:0"`
	VariableComponent float64   `gorm:"not null;default:0"`
	EffectiveFrom     time.Time `gorm:"type:date;not null"`
	EffectiveTo       *time.Time `gorm:"type:date"`
	IsActive          bool      `gorm:"not null;default:true;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (SalaryStructure) TableName() string {
	return "salary_structures"
}
