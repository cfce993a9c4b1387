package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hradmin/internal/shared/connection"

	"gorm.io/gorm"
)

type QueryFilter struct {
	UserID string
	Status string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindAll(ctx context.Context, filter QueryFilter) ([]Leave, error)
	Update(ctx context.Context, l *Leave) error
	CountOverlapping(ctx context.Context, userID string, start, end time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAll(ctx context.Context, filter QueryFilter) ([]Leave, error) {
	q := r.db.WithContext(ctx).Model(&Leave{})
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var rows []Leave
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// CountOverlapping counts pending or approved requests whose date range
// intersects [start, end].
func (r *repository) CountOverlapping(ctx context.Context, userID string, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("user_id = ?", userID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&count).Error
	return count, err
}
