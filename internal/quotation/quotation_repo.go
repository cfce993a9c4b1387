package quotation

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
	Create(ctx context.Context, q *Quotation) error
	FindByID(ctx context.Context, id string) (*Quotation, error)
	FindAll(ctx context.Context, filter QueryFilter) ([]Quotation, error)
	Update(ctx context.Context, q *Quotation) error
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

func (r *repository) Create(ctx context.Context, q *Quotation) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Quotation, error) {
	var q Quotation
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&q, "id = ?", id).Error
	return &q, err
}

func (r *repository) FindAll(ctx context.Context, filter QueryFilter) ([]Quotation, error) {
	q := r.db.WithContext(ctx).Model(&Quotation{}).Preload("LineItems")
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var rows []Quotation
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, q *Quotation) error {
	return r.db.WithContext(ctx).Save(q).Error
}
