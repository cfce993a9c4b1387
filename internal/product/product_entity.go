package product

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(160);not null"`
	SKU         string    `gorm:"type:varchar(64);uniqueIndex"`
	Description string    `gorm:"type:text"`
	UnitPrice   float64   `gorm:"not null"`
	Unit        string    `gorm:"type:varchar(32);default:'piece'"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}
