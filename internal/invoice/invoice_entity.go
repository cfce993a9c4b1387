package invoice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft   = "draft"
	StatusSent    = "sent"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

type Invoice struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNumber string     `gorm:"type:varchar(24);not null;uniqueIndex"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	QuotationID   *uuid.UUID `gorm:"type:uuid"`

	LineItems []LineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	Subtotal  float64 `gorm:"not null"`
	TaxRate   float64 `gorm:"not null;default:0"`
	TaxAmount float64 `gorm:"not null;default:0"`
	Total     float64 `gorm:"not null"`

	Status  string    `gorm:"type:varchar(16);not null;default:'draft';index"`
	DueDate time.Time `gorm:"type:date;not null"`
	PaidAt  *time.Time
	Notes   string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type LineItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"type:varchar(160);not null"`
	Quantity    float64   `gorm:"not null"`
	UnitPrice   float64   `gorm:"not null"`
	LineTotal   float64   `gorm:"not null"`
}

func (LineItem) TableName() string {
	return "invoice_line_items"
}
