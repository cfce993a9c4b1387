package invoice

import (
	"context"
	"database/sql"

	"go-hradmin/internal/shared/connection"

	"gorm.io/gorm"
)

type QueryFilter struct {
	CustomerID string
	Status     string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, inv *Invoice) error
	FindByID(ctx context.Context, id string) (*Invoice, error)
	FindAll(ctx context.Context, filter QueryFilter) ([]Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, inv *Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Invoice, error) {
	var inv Invoice
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *repository) FindAll(ctx context.Context, filter QueryFilter) ([]Invoice, error) {
	q := r.db.WithContext(ctx).Model(&Invoice{}).Preload("LineItems")
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var rows []Invoice
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, inv *Invoice) error {
	return r.db.WithContext(ctx).Save(inv).Error
}
