package quotation

import "time"

type LineItemRequest struct {
	ProductID string  `json:"product_id" binding:"required,uuid"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
}

type CreateQuotationRequest struct {
	CustomerID string            `json:"customer_id" binding:"required,uuid"`
	Items      []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRate    float64           `json:"tax_rate" binding:"min=0,max=100"`
	ValidUntil string            `json:"valid_until" binding:"required,datetime=2006-01-02"`
	Notes      string            `json:"notes"`
}

type ConvertRequest struct {
	DueDate string `json:"due_date" binding:"required,datetime=2006-01-02"`
}

type LineItemResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

type QuotationResponse struct {
	ID              string             `json:"id"`
	QuotationNumber string             `json:"quotation_number"`
	CustomerID      string             `json:"customer_id"`
	Items           []LineItemResponse `json:"items"`
	Subtotal        float64            `json:"subtotal"`
	TaxRate         float64            `json:"tax_rate"`
	TaxAmount       float64            `json:"tax_amount"`
	Total           float64            `json:"total"`
	Status          string             `json:"status"`
	ValidUntil      string             `json:"valid_until"`
	InvoiceID       *string            `json:"invoice_id,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}
