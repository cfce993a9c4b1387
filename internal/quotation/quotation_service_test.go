package quotation

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hradmin/internal/invoice"
	"go-hradmin/internal/product"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	rows map[string]*Quotation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[string]*Quotation{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, q *Quotation) error {
	cp := *q
	f.rows[q.ID.String()] = &cp
	return nil
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Quotation, error) {
	q, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *q
	return &cp, nil
}
func (f *fakeRepo) FindAll(ctx context.Context, filter QueryFilter) ([]Quotation, error) {
	var out []Quotation
	for _, q := range f.rows {
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		out = append(out, *q)
	}
	return out, nil
}
func (f *fakeRepo) Update(ctx context.Context, q *Quotation) error {
	cp := *q
	f.rows[q.ID.String()] = &cp
	return nil
}

type fakeProductRepo struct {
	product.Repository
	products map[string]*product.Product
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id string) (*product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type fakeInvoiceRepo struct {
	invoice.Repository
	created []invoice.Invoice
}

func (f *fakeInvoiceRepo) WithTx(tx *sql.Tx) invoice.Repository { return f }
func (f *fakeInvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	f.created = append(f.created, *inv)
	return nil
}

type fakeCounter struct {
	values map[string]int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	if f.values == nil {
		f.values = map[string]int64{}
	}
	f.values[counterType]++
	return f.values[counterType], nil
}

func newTestService(t *testing.T, products map[string]*product.Product) (Service, *fakeRepo, *fakeInvoiceRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := newFakeRepo()
	invRepo := &fakeInvoiceRepo{}
	svc := NewService(db, repo, &fakeProductRepo{products: products}, invRepo, &fakeCounter{})
	return svc, repo, invRepo, mock
}

func catalogue() (map[string]*product.Product, string, string) {
	laptopID := uuid.New()
	mouseID := uuid.New()
	products := map[string]*product.Product{
		laptopID.String(): {ID: laptopID, Name: "Laptop", UnitPrice: 52000},
		mouseID.String():  {ID: mouseID, Name: "Wireless Mouse", UnitPrice: 850},
	}
	return products, laptopID.String(), mouseID.String()
}

func TestService_Create_ComputesTotalsFromCatalogue(t *testing.T) {
	products, laptopID, mouseID := catalogue()
	svc, _, _, mock := newTestService(t, products)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(ctx, CreateQuotationRequest{
		CustomerID: uuid.New().String(),
		Items: []LineItemRequest{
			{ProductID: laptopID, Quantity: 2},
			{ProductID: mouseID, Quantity: 4},
		},
		TaxRate:    18,
		ValidUntil: "2026-10-15",
	})

	assert.NoError(t, err)
	assert.Equal(t, "QUO-00001", resp.QuotationNumber)
	assert.Equal(t, StatusDraft, resp.Status)
	assert.Equal(t, 107400.0, resp.Subtotal)
	assert.InDelta(t, 19332.0, resp.TaxAmount, 0.001)
	assert.InDelta(t, 126732.0, resp.Total, 0.001)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "Laptop", resp.Items[0].ProductName)
	assert.Equal(t, 104000.0, resp.Items[0].LineTotal)
}

func TestService_Create_UnknownProduct(t *testing.T) {
	products, _, _ := catalogue()
	svc, _, _, _ := newTestService(t, products)

	_, err := svc.Create(context.Background(), CreateQuotationRequest{
		CustomerID: uuid.New().String(),
		Items: []LineItemRequest{
			{ProductID: uuid.New().String(), Quantity: 1},
		},
		ValidUntil: "2026-10-15",
	})
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestService_ConvertToInvoice(t *testing.T) {
	products, laptopID, _ := catalogue()
	svc, repo, invRepo, mock := newTestService(t, products)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(ctx, CreateQuotationRequest{
		CustomerID: uuid.New().String(),
		Items:      []LineItemRequest{{ProductID: laptopID, Quantity: 1}},
		TaxRate:    18,
		ValidUntil: "2099-01-01",
	})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.MarkSent(ctx, created.ID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Accept(ctx, created.ID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.ConvertToInvoice(ctx, created.ID, ConvertRequest{DueDate: "2099-02-01"})
	assert.NoError(t, err)
	assert.NotNil(t, resp.InvoiceID)

	assert.Len(t, invRepo.created, 1)
	inv := invRepo.created[0]
	assert.Equal(t, "INV-00001", inv.InvoiceNumber)
	assert.Equal(t, created.ID, inv.QuotationID.String())
	assert.Equal(t, 52000.0, inv.Subtotal)
	assert.InDelta(t, 61360.0, inv.Total, 0.001)
	assert.Equal(t, invoice.StatusDraft, inv.Status)

	// A second conversion from the same quotation must be refused.
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.ConvertToInvoice(ctx, created.ID, ConvertRequest{DueDate: "2099-02-01"})
	assert.ErrorIs(t, err, ErrAlreadyConverted)
	assert.Len(t, invRepo.created, 1)

	stored := repo.rows[created.ID]
	assert.Equal(t, inv.ID, *stored.InvoiceID)
}

func TestService_Convert_RequiresAccepted(t *testing.T) {
	products, laptopID, _ := catalogue()
	svc, _, _, mock := newTestService(t, products)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(ctx, CreateQuotationRequest{
		CustomerID: uuid.New().String(),
		Items:      []LineItemRequest{{ProductID: laptopID, Quantity: 1}},
		ValidUntil: "2099-01-01",
	})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.ConvertToInvoice(ctx, created.ID, ConvertRequest{DueDate: "2099-02-01"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Accept_Expired(t *testing.T) {
	products, laptopID, _ := catalogue()
	svc, _, _, mock := newTestService(t, products)
	ctx := context.Background()

	svc.(*service).now = func() time.Time {
		return time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(ctx, CreateQuotationRequest{
		CustomerID: uuid.New().String(),
		Items:      []LineItemRequest{{ProductID: laptopID, Quantity: 1}},
		ValidUntil: "2026-10-15",
	})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.MarkSent(ctx, created.ID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Accept(ctx, created.ID)
	assert.ErrorIs(t, err, ErrQuotationExpired)
}

func TestService_Reject_OnlyFromSent(t *testing.T) {
	products, laptopID, _ := catalogue()
	svc, _, _, mock := newTestService(t, products)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(ctx, CreateQuotationRequest{
		CustomerID: uuid.New().String(),
		Items:      []LineItemRequest{{ProductID: laptopID, Quantity: 1}},
		ValidUntil: "2099-01-01",
	})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Reject(ctx, created.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
