package customer

import (
	"context"
	"database/sql"

	"go-hradmin/internal/shared/connection"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Customer) error
	FindAll(ctx context.Context, search string) ([]Customer, error)
	FindByID(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, c *Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAll(ctx context.Context, search string) ([]Customer, error) {
	q := r.db.WithContext(ctx).Model(&Customer{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR company ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var rows []Customer
	err := q.Order("name").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Customer, error) {
	var c Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) Update(ctx context.Context, c *Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Customer{}, "id = ?", id).Error
}
