package customer

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(160);not null"`
	Email     string    `gorm:"type:varchar(160);index"`
	Phone     string    `gorm:"type:varchar(32)"`
	Company   string    `gorm:"type:varchar(160)"`
	Address   string    `gorm:"type:text"`
	GSTNumber string    `gorm:"type:varchar(32)"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Customer) TableName() string {
	return "customers"
}
