package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-hradmin/internal/product"
	"go-hradmin/internal/shared/apperror"
	"go-hradmin/internal/shared/counter"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound = apperror.New(
		apperror.CodeNotFound,
		"invoice not found",
		http.StatusNotFound,
	)
	ErrInvoiceAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"invoice is already paid",
		http.StatusUnprocessableEntity,
	)
	ErrUnknownProduct = apperror.New(
		apperror.CodeInvalidInput,
		"line item references an unknown product",
		http.StatusBadRequest,
	)
)

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error)
	GetAll(ctx context.Context, filter QueryFilter) ([]InvoiceResponse, error)
	GetByID(ctx context.Context, id string) (InvoiceResponse, error)
	MarkSent(ctx context.Context, id string) (InvoiceResponse, error)
	MarkPaid(ctx context.Context, id string) (InvoiceResponse, error)
	SweepOverdue(ctx context.Context) (int, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	productRepo product.Repository
	counter     counter.Repository
	now         func() time.Time
}

func NewService(db *sql.DB, repo Repository, productRepo product.Repository, counterRepo counter.Repository) Service {
	return &service{
		db:          db,
		repo:        repo,
		productRepo: productRepo,
		counter:     counterRepo,
		now:         time.Now,
	}
}

// computeTotals derives the financial fields from line items. The tax
// rate is a percentage.
func computeTotals(items []LineItem, taxRate float64) (subtotal, taxAmount, total float64) {
	for _, item := range items {
		subtotal += item.LineTotal
	}
	taxAmount = subtotal * taxRate / 100
	total = subtotal + taxAmount
	return subtotal, taxAmount, total
}

func (s *service) priceItems(ctx context.Context, reqs []LineItemRequest) ([]LineItem, error) {
	items := make([]LineItem, 0, len(reqs))
	for _, req := range reqs {
		p, err := s.productRepo.FindByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownProduct
			}
			return nil, err
		}
		items = append(items, LineItem{
			ID:          uuid.New(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    req.Quantity,
			UnitPrice:   p.UnitPrice,
			LineTotal:   req.Quantity * p.UnitPrice,
		})
	}
	return items, nil
}

func (s *service) nextNumber(ctx context.Context) (string, error) {
	next, err := s.counter.GetNextValue(ctx, "invoice_number")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%05d", next), nil
}

func (s *service) Create(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error) {
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return InvoiceResponse{}, apperror.InvalidField("due_date")
	}

	items, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return InvoiceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	number, err := s.nextNumber(ctx)
	if err != nil {
		return InvoiceResponse{}, err
	}

	subtotal, taxAmount, total := computeTotals(items, req.TaxRate)
	row := &Invoice{
		ID:            uuid.New(),
		InvoiceNumber: number,
		CustomerID:    uuid.MustParse(req.CustomerID),
		LineItems:     items,
		Subtotal:      subtotal,
		TaxRate:       req.TaxRate,
		TaxAmount:     taxAmount,
		Total:         total,
		Status:        StatusDraft,
		DueDate:       dueDate,
		Notes:         req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return InvoiceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, filter QueryFilter) ([]InvoiceResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	res := make([]InvoiceResponse, len(rows))
	for i, inv := range rows {
		res[i] = mapToResponse(inv)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (InvoiceResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, ErrInvoiceNotFound
		}
		return InvoiceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) MarkSent(ctx context.Context, id string) (InvoiceResponse, error) {
	return s.transition(ctx, id, StatusSent)
}

func (s *service) MarkPaid(ctx context.Context, id string) (InvoiceResponse, error) {
	return s.transition(ctx, id, StatusPaid)
}

func (s *service) transition(ctx context.Context, id, status string) (InvoiceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, ErrInvoiceNotFound
		}
		return InvoiceResponse{}, err
	}
	if row.Status == StatusPaid {
		return InvoiceResponse{}, ErrInvoiceAlreadyPaid
	}

	row.Status = status
	if status == StatusPaid {
		now := s.now().UTC()
		row.PaidAt = &now
	}

	if err := qtx.Update(ctx, row); err != nil {
		return InvoiceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, err
	}
	return mapToResponse(*row), nil
}

// SweepOverdue flips sent invoices past their due date to overdue.
// Called periodically by the background worker.
func (s *service) SweepOverdue(ctx context.Context) (int, error) {
	rows, err := s.repo.FindAll(ctx, QueryFilter{Status: StatusSent})
	if err != nil {
		return 0, err
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	flipped := 0
	for i := range rows {
		if rows[i].DueDate.Before(today) {
			rows[i].Status = StatusOverdue
			if err := s.repo.Update(ctx, &rows[i]); err != nil {
				return flipped, err
			}
			flipped++
		}
	}
	return flipped, nil
}

func mapToResponse(inv Invoice) InvoiceResponse {
	items := make([]LineItemResponse, len(inv.LineItems))
	for i, item := range inv.LineItems {
		items[i] = LineItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}

	res := InvoiceResponse{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID.String(),
		Items:         items,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		Status:        inv.Status,
		DueDate:       inv.DueDate.Format("2006-01-02"),
		PaidAt:        inv.PaidAt,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
	}
	if inv.QuotationID != nil {
		id := inv.QuotationID.String()
		res.QuotationID = &id
	}
	return res
}
