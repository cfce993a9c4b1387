package quotation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

type Quotation struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	QuotationNumber string    `gorm:"type:varchar(24);not null;uniqueIndex"`
	CustomerID      uuid.UUID `gorm:"type:uuid;not null;index"`

	LineItems []LineItem `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`

	Subtotal  float64 `gorm:"not null"`
	TaxRate   float64 `gorm:"not null;default:0"`
	TaxAmount float64 `gorm:"not null;default:0"`
	Total     float64 `gorm:"not null"`

	Status     string    `gorm:"type:varchar(16);not null;default:'draft';index"`
	ValidUntil time.Time `gorm:"type:date;not null"`
	Notes      string    `gorm:"type:text"`

	// Set once the quotation has been converted, to block a second
	// invoice from the same quotation.
	InvoiceID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Quotation) TableName() string {
	return "quotations"
}

type LineItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	QuotationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"type:varchar(160);not null"`
	Quantity    float64   `gorm:"not null"`
	UnitPrice   float64   `gorm:"not null"`
	LineTotal   float64   `gorm:"not null"`
}

func (LineItem) TableName() string {
	return "quotation_line_items"
}
