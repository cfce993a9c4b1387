package rbac

import (
	"time"

	"go-hradmin/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EffectGrant  = "grant"
	EffectRevoke = "revoke"
)

type Role struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string            `gorm:"type:varchar(80);not null;uniqueIndex"`
	Description string            `gorm:"type:text"`
	Permissions domain.StringList `gorm:"type:jsonb;not null;default:'[]'"`
	IsActive    bool              `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

type UserRoleAssignment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	RoleID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	EffectiveFrom time.Time  `gorm:"type:date;not null"`
	EffectiveTo   *time.Time `gorm:"type:date"`
	IsActive      bool       `gorm:"not null;default:true"`
	AssignedBy    uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
}

type PermissionOverride struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Permission string    `gorm:"type:varchar(80);not null"`
	Effect     string    `gorm:"type:varchar(10);not null"` // grant | revoke
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time `gorm:"index"`
}
