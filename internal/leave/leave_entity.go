package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeCasual    = "casual"
	TypeSick      = "sick"
	TypeEarned    = "earned"
	TypeUnpaid    = "unpaid"
	TypeMaternity = "maternity"
)

type Leave struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Type            string    `gorm:"type:varchar(24);not null"`
	StartDate       time.Time `gorm:"type:date;not null"`
	EndDate         time.Time `gorm:"type:date;not null"`
	Reason          string    `gorm:"type:text"`
	Status          string    `gorm:"type:varchar(16);not null;default:'pending';index"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Leave) TableName() string {
	return "leaves"
}
