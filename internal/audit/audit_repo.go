package audit

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, entry *ActivityLog) error
	FindAll(ctx context.Context, filter QueryFilter) ([]ActivityLog, error)
}

type QueryFilter struct {
	ActorID    string
	Action     string
	EntityType string
	Limit      int
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindAll(ctx context.Context, filter QueryFilter) ([]ActivityLog, error) {
	db := r.db.WithContext(ctx).Model(&ActivityLog{})

	if filter.ActorID != "" {
		db = db.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Action != "" {
		db = db.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		db = db.Where("entity_type = ?", filter.EntityType)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var logs []ActivityLog
	err := db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
