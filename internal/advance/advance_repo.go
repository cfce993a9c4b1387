package advance

import (
	"context"
	"database/sql"

	"go-hradmin/internal/shared/connection"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *SalaryAdvance) error
	FindByID(ctx context.Context, id string) (*SalaryAdvance, error)
	ListByUser(ctx context.Context, userID string) ([]SalaryAdvance, error)
	ListByStatus(ctx context.Context, status string) ([]SalaryAdvance, error)
	Update(ctx context.Context, a *SalaryAdvance) error
	FindDeductible(ctx context.Context, userID string, month, year int) ([]SalaryAdvance, error)
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

func (r *repository) Create(ctx context.Context, a *SalaryAdvance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryAdvance, error) {
	var a SalaryAdvance
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]SalaryAdvance, error) {
	var rows []SalaryAdvance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListByStatus(ctx context.Context, status string) ([]SalaryAdvance, error) {
	var rows []SalaryAdvance
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *SalaryAdvance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// FindDeductible returns approved advances with an outstanding balance
// whose deduction schedule has reached the given payroll period.
func (r *repository) FindDeductible(ctx context.Context, userID string, month, year int) ([]SalaryAdvance, error) {
	var rows []SalaryAdvance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND remaining_amount > 0", userID, StatusApproved).
		Where("(deduction_start_year < ?) OR (deduction_start_year = ? AND deduction_start_month <= ?)", year, year, month).
		Order("created_at").
		Find(&rows).Error
	return rows, err
}
