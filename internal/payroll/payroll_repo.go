package payroll

import (
	"context"
	"database/sql"

	"go-hradmin/internal/shared/connection"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindByID(ctx context.Context, id string) (*Payroll, error)
	FindByPeriod(ctx context.Context, userID string, month, year int) ([]Payroll, error)
	ListByMonth(ctx context.Context, month, year int) ([]Payroll, error)
	Update(ctx context.Context, p *Payroll) error

	GetSettings(ctx context.Context) (*PayrollSettings, error)
	SaveSettings(ctx context.Context, s *PayrollSettings) error
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

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByPeriod(ctx context.Context, userID string, month, year int) ([]Payroll, error) {
	var rows []Payroll
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Order("created_at").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListByMonth(ctx context.Context, month, year int) ([]Payroll, error) {
	var rows []Payroll
	err := r.db.WithContext(ctx).
		Where("month = ? AND year = ?", month, year).
		Order("created_at").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) GetSettings(ctx context.Context) (*PayrollSettings, error) {
	var s PayrollSettings
	err := r.db.WithContext(ctx).Order("updated_at DESC").First(&s).Error
	return &s, err
}

func (r *repository) SaveSettings(ctx context.Context, s *PayrollSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
