package salary

import (
	"context"
	"database/sql"
	"time"

	"go-hradmin/internal/shared/connection"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *SalaryStructure) error
	FindActiveByUser(ctx context.Context, userID string) (*SalaryStructure, error)
	ListByUser(ctx context.Context, userID string) ([]SalaryStructure, error)
	DeactivateByUser(ctx context.Context, userID string, closedAt time.Time) error
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

func (r *repository) Create(ctx context.Context, s *SalaryStructure) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindActiveByUser(ctx context.Context, userID string) (*SalaryStructure, error) {
	var s SalaryStructure
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("effective_from DESC").
		First(&s).Error
	return &s, err
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]SalaryStructure, error) {
	var rows []SalaryStructure
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("effective_from DESC").
		Find(&rows).Error
	return rows, err
}

// DeactivateByUser closes every active structure for the user in one
// batched update.
func (r *repository) DeactivateByUser(ctx context.Context, userID string, closedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&SalaryStructure{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Updates(map[string]interface{}{
			"is_active":    false,
			"effective_to": closedAt,
		}).Error
}
