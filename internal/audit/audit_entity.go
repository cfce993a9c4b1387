package audit

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorID    *uuid.UUID `gorm:"type:uuid;index"`
	Action     string     `gorm:"type:varchar(60);not null;index"`
	EntityType string     `gorm:"type:varchar(40);not null;index"`
	EntityID   string     `gorm:"type:varchar(60);not null"`
	Detail     string     `gorm:"type:text"`
	CreatedAt  time.Time  `gorm:"index"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
