package rbac

import (
	"context"
	"time"

	"go-hradmin/internal/domain"

	"gorm.io/gorm"
)

// UserAccessRow is the static permission side of a user: the coarse role
// plus the department and designation permission tables.
type UserAccessRow struct {
	Role             string
	DepartmentPerms  domain.StringList
	DesignationPerms domain.StringList
}

type Repository interface {
	GetUserAccess(ctx context.Context, userID string) (*UserAccessRow, error)
	GetActiveRolePermissions(ctx context.Context, userID string, at time.Time) ([]string, error)
	GetOverrides(ctx context.Context, userID string) ([]PermissionOverride, error)

	// Management
	ListRoles(ctx context.Context) ([]Role, error)
	GetRoleByID(ctx context.Context, id string) (*Role, error)
	CreateRole(ctx context.Context, role *Role) error
	UpdateRole(ctx context.Context, role *Role) error
	DeleteRole(ctx context.Context, id string) error

	CreateAssignment(ctx context.Context, assignment *UserRoleAssignment) error
	ListAssignmentsByUser(ctx context.Context, userID string) ([]UserRoleAssignment, error)
	DeactivateAssignment(ctx context.Context, id string) error

	CreateOverride(ctx context.Context, override *PermissionOverride) error
	DeleteOverride(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetUserAccess(ctx context.Context, userID string) (*UserAccessRow, error) {
	var row struct {
		Role             string
		DepartmentPerms  []byte
		DesignationPerms []byte
	}

	err := r.db.WithContext(ctx).
		Table("users").
		Select(`users.role,
			COALESCE(departments.permissions, '[]') AS department_perms,
			COALESCE(designations.permissions, '[]') AS designation_perms`).
		Joins("LEFT JOIN departments ON departments.id = users.department_id").
		Joins("LEFT JOIN designations ON designations.id = users.designation_id").
		Where("users.id = ?", userID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}

	access := &UserAccessRow{Role: row.Role}
	if err := access.DepartmentPerms.Scan(row.DepartmentPerms); err != nil {
		return nil, err
	}
	if err := access.DesignationPerms.Scan(row.DesignationPerms); err != nil {
		return nil, err
	}
	return access, nil
}

func (r *repository) GetActiveRolePermissions(ctx context.Context, userID string, at time.Time) ([]string, error) {
	var rows []struct {
		Permissions []byte
	}

	err := r.db.WithContext(ctx).
		Table("user_role_assignments").
		Select("roles.permissions").
		Joins("JOIN roles ON roles.id = user_role_assignments.role_id").
		Where("user_role_assignments.user_id = ?", userID).
		Where("user_role_assignments.is_active = true").
		Where("roles.is_active = true AND roles.deleted_at IS NULL").
		Where("user_role_assignments.effective_from <= ?", at).
		Where("user_role_assignments.effective_to IS NULL OR user_role_assignments.effective_to >= ?", at).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var perms []string
	for _, row := range rows {
		var list domain.StringList
		if err := list.Scan(row.Permissions); err != nil {
			return nil, err
		}
		perms = append(perms, list...)
	}
	return perms, nil
}

func (r *repository) GetOverrides(ctx context.Context, userID string) ([]PermissionOverride, error) {
	var overrides []PermissionOverride
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&overrides).Error
	return overrides, err
}

func (r *repository) ListRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	err := r.db.WithContext(ctx).Order("name").Find(&roles).Error
	return roles, err
}

func (r *repository) GetRoleByID(ctx context.Context, id string) (*Role, error) {
	var role Role
	err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) CreateRole(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *repository) UpdateRole(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

func (r *repository) DeleteRole(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Role{}, "id = ?", id).Error
}

func (r *repository) CreateAssignment(ctx context.Context, assignment *UserRoleAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *repository) ListAssignmentsByUser(ctx context.Context, userID string) ([]UserRoleAssignment, error) {
	var assignments []UserRoleAssignment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) DeactivateAssignment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&UserRoleAssignment{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *repository) CreateOverride(ctx context.Context, override *PermissionOverride) error {
	return r.db.WithContext(ctx).Create(override).Error
}

func (r *repository) DeleteOverride(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&PermissionOverride{}, "id = ?", id).Error
}
