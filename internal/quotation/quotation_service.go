package quotation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-hradmin/internal/invoice"
	"go-hradmin/internal/product"
	"go-hradmin/internal/shared/apperror"
	"go-hradmin/internal/shared/counter"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrQuotationNotFound = apperror.New(
		apperror.CodeNotFound,
		"quotation not found",
		http.StatusNotFound,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"quotation status does not allow this action",
		http.StatusUnprocessableEntity,
	)
	ErrQuotationExpired = apperror.New(
		apperror.CodeInvalidState,
		"quotation validity period has passed",
		http.StatusUnprocessableEntity,
	)
	ErrAlreadyConverted = apperror.New(
		apperror.CodeConflict,
		"quotation has already been converted to an invoice",
		http.StatusConflict,
	)
	ErrUnknownProduct = apperror.New(
		apperror.CodeInvalidInput,
		"line item references an unknown product",
		http.StatusBadRequest,
	)
)

type Service interface {
	Create(ctx context.Context, req CreateQuotationRequest) (QuotationResponse, error)
	GetAll(ctx context.Context, filter QueryFilter) ([]QuotationResponse, error)
	GetByID(ctx context.Context, id string) (QuotationResponse, error)
	MarkSent(ctx context.Context, id string) (QuotationResponse, error)
	Accept(ctx context.Context, id string) (QuotationResponse, error)
	Reject(ctx context.Context, id string) (QuotationResponse, error)
	ConvertToInvoice(ctx context.Context, id string, req ConvertRequest) (QuotationResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	productRepo product.Repository
	invoiceRepo invoice.Repository
	counter     counter.Repository
	now         func() time.Time
}

func NewService(db *sql.DB, repo Repository, productRepo product.Repository, invoiceRepo invoice.Repository, counterRepo counter.Repository) Service {
	return &service{
		db:          db,
		repo:        repo,
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		counter:     counterRepo,
		now:         time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateQuotationRequest) (QuotationResponse, error) {
	validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
	if err != nil {
		return QuotationResponse{}, apperror.InvalidField("valid_until")
	}

	items := make([]LineItem, 0, len(req.Items))
	subtotal := 0.0
	for _, item := range req.Items {
		p, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return QuotationResponse{}, ErrUnknownProduct
			}
			return QuotationResponse{}, err
		}
		lineTotal := item.Quantity * p.UnitPrice
		subtotal += lineTotal
		items = append(items, LineItem{
			ID:          uuid.New(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			UnitPrice:   p.UnitPrice,
			LineTotal:   lineTotal,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return QuotationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	next, err := s.counter.GetNextValue(ctx, "quotation_number")
	if err != nil {
		return QuotationResponse{}, err
	}

	taxAmount := subtotal * req.TaxRate / 100
	row := &Quotation{
		ID:              uuid.New(),
		QuotationNumber: fmt.Sprintf("QUO-%05d", next),
		CustomerID:      uuid.MustParse(req.CustomerID),
		LineItems:       items,
		Subtotal:        subtotal,
		TaxRate:         req.TaxRate,
		TaxAmount:       taxAmount,
		Total:           subtotal + taxAmount,
		Status:          StatusDraft,
		ValidUntil:      validUntil,
		Notes:           req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return QuotationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return QuotationResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, filter QueryFilter) ([]QuotationResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	res := make([]QuotationResponse, len(rows))
	for i, q := range rows {
		res[i] = mapToResponse(q)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (QuotationResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return QuotationResponse{}, ErrQuotationNotFound
		}
		return QuotationResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) MarkSent(ctx context.Context, id string) (QuotationResponse, error) {
	return s.transition(ctx, id, StatusDraft, StatusSent)
}

func (s *service) Accept(ctx context.Context, id string) (QuotationResponse, error) {
	return s.transition(ctx, id, StatusSent, StatusAccepted)
}

func (s *service) Reject(ctx context.Context, id string) (QuotationResponse, error) {
	return s.transition(ctx, id, StatusSent, StatusRejected)
}

func (s *service) transition(ctx context.Context, id, from, to string) (QuotationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return QuotationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return QuotationResponse{}, ErrQuotationNotFound
		}
		return QuotationResponse{}, err
	}
	if row.Status != from {
		return QuotationResponse{}, ErrInvalidTransition
	}
	if to == StatusAccepted && s.now().UTC().After(endOfDay(row.ValidUntil)) {
		return QuotationResponse{}, ErrQuotationExpired
	}

	row.Status = to
	if err := qtx.Update(ctx, row); err != nil {
		return QuotationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return QuotationResponse{}, err
	}
	return mapToResponse(*row), nil
}

// ConvertToInvoice writes the invoice and stamps the quotation in one
// transaction. Prices are carried over from the quotation as quoted,
// not re-read from the product catalogue.
func (s *service) ConvertToInvoice(ctx context.Context, id string, req ConvertRequest) (QuotationResponse, error) {
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return QuotationResponse{}, apperror.InvalidField("due_date")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return QuotationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return QuotationResponse{}, ErrQuotationNotFound
		}
		return QuotationResponse{}, err
	}
	if row.Status != StatusAccepted {
		return QuotationResponse{}, ErrInvalidTransition
	}
	if row.InvoiceID != nil {
		return QuotationResponse{}, ErrAlreadyConverted
	}

	next, err := s.counter.GetNextValue(ctx, "invoice_number")
	if err != nil {
		return QuotationResponse{}, err
	}

	items := make([]invoice.LineItem, len(row.LineItems))
	for i, item := range row.LineItems {
		items[i] = invoice.LineItem{
			ID:          uuid.New(),
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}

	quotationID := row.ID
	inv := &invoice.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: fmt.Sprintf("INV-%05d", next),
		CustomerID:    row.CustomerID,
		QuotationID:   &quotationID,
		LineItems:     items,
		Subtotal:      row.Subtotal,
		TaxRate:       row.TaxRate,
		TaxAmount:     row.TaxAmount,
		Total:         row.Total,
		Status:        invoice.StatusDraft,
		DueDate:       dueDate,
		Notes:         row.Notes,
	}

	if err := s.invoiceRepo.WithTx(tx).Create(ctx, inv); err != nil {
		return QuotationResponse{}, err
	}

	invoiceID := inv.ID
	row.InvoiceID = &invoiceID
	if err := qtx.Update(ctx, row); err != nil {
		return QuotationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return QuotationResponse{}, err
	}
	return mapToResponse(*row), nil
}

func endOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC)
}

func mapToResponse(q Quotation) QuotationResponse {
	items := make([]LineItemResponse, len(q.LineItems))
	for i, item := range q.LineItems {
		items[i] = LineItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}

	res := QuotationResponse{
		ID:              q.ID.String(),
		QuotationNumber: q.QuotationNumber,
		CustomerID:      q.CustomerID.String(),
		Items:           items,
		Subtotal:        q.Subtotal,
		TaxRate:         q.TaxRate,
		TaxAmount:       q.TaxAmount,
		Total:           q.Total,
		Status:          q.Status,
		ValidUntil:      q.ValidUntil.Format("2006-01-02"),
		Notes:           q.Notes,
		CreatedAt:       q.CreatedAt,
	}
	if q.InvoiceID != nil {
		id := q.InvoiceID.String()
		res.InvoiceID = &id
	}
	return res
}
