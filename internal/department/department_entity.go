package department

import (
	"time"

	"go-hradmin/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string            `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string            `gorm:"type:text"`
	Permissions domain.StringList `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Department) TableName() string {
	return "departments"
}

type Designation struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DepartmentID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Name         string            `gorm:"type:varchar(120);not null"`
	Level        int               `gorm:"not null;default:1"`
	Permissions  domain.StringList `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Designation) TableName() string {
	return "designations"
}
