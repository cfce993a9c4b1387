package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email              string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Password           string     `gorm:"type:varchar(255);not null"`
	FullName           string     `gorm:"type:varchar(255);not null"`
	Role               string     `gorm:"type:varchar(20);not null;default:'employee';index"`
	EmployeeID         string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	DepartmentID       *uuid.UUID `gorm:"type:uuid;index"`
	DesignationID      *uuid.UUID `gorm:"type:uuid;index"`
	ReportingManagerID *uuid.UUID `gorm:"type:uuid"`
	JoinDate           time.Time  `gorm:"type:date;not null"`
	IsActive           bool       `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
