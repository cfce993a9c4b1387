package rbac

import (
	"context"
	"testing"
	"time"

	"go-hradmin/internal/audit"
	"go-hradmin/internal/domain"
	rbacerrors "go-hradmin/internal/rbac/errors"
	"go-hradmin/internal/rbac/infra"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	Repository
	access      map[string]*UserAccessRow
	rolePerms   map[string][]string
	overrides   map[string][]PermissionOverride
	roles       map[string]*Role
	assignments []UserRoleAssignment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		access:    map[string]*UserAccessRow{},
		rolePerms: map[string][]string{},
		overrides: map[string][]PermissionOverride{},
		roles:     map[string]*Role{},
	}
}

func (f *fakeRepo) GetUserAccess(ctx context.Context, userID string) (*UserAccessRow, error) {
	row, ok := f.access[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (f *fakeRepo) GetActiveRolePermissions(ctx context.Context, userID string, at time.Time) ([]string, error) {
	return f.rolePerms[userID], nil
}

func (f *fakeRepo) GetOverrides(ctx context.Context, userID string) ([]PermissionOverride, error) {
	return f.overrides[userID], nil
}

func (f *fakeRepo) GetRoleByID(ctx context.Context, id string) (*Role, error) {
	role, ok := f.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

func (f *fakeRepo) CreateRole(ctx context.Context, role *Role) error {
	f.roles[role.ID.String()] = role
	return nil
}

func (f *fakeRepo) CreateAssignment(ctx context.Context, assignment *UserRoleAssignment) error {
	f.assignments = append(f.assignments, *assignment)
	return nil
}

func (f *fakeRepo) CreateOverride(ctx context.Context, override *PermissionOverride) error {
	f.overrides[override.UserID.String()] = append(f.overrides[override.UserID.String()], *override)
	return nil
}

type nopAuditor struct{}

func (nopAuditor) Record(ctx context.Context, actorID, action, entityType, entityID, detail string) error {
	return nil
}

func (nopAuditor) GetAll(ctx context.Context, filter audit.QueryFilter) ([]audit.ActivityLogResponse, error) {
	return nil, nil
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	return NewService(repo, enforcer, nopAuditor{})
}

func TestService_ResolvePermissions_UnionsSources(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New().String()
	repo.access[userID] = &UserAccessRow{
		Role:             domain.RoleEmployee,
		DepartmentPerms:  domain.StringList{domain.PermAttendView, domain.PermLeaveApply},
		DesignationPerms: domain.StringList{domain.PermLeaveView},
	}
	repo.rolePerms[userID] = []string{domain.PermPayrollView, domain.PermAttendView}

	svc := newTestService(t, repo)

	perms, err := svc.ResolvePermissions(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, []string{
		domain.PermAttendView,
		domain.PermLeaveApply,
		domain.PermLeaveView,
		domain.PermPayrollView,
	}, perms)
}

func TestService_ResolvePermissions_OverrideRevokeWins(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	repo.access[userID.String()] = &UserAccessRow{
		Role:            domain.RoleEmployee,
		DepartmentPerms: domain.StringList{domain.PermAttendView, domain.PermLeaveApply},
	}
	repo.rolePerms[userID.String()] = []string{domain.PermLeaveApply}
	repo.overrides[userID.String()] = []PermissionOverride{
		{UserID: userID, Permission: domain.PermLeaveApply, Effect: EffectRevoke},
		{UserID: userID, Permission: domain.PermPayrollView, Effect: EffectGrant},
	}

	svc := newTestService(t, repo)

	perms, err := svc.ResolvePermissions(context.Background(), userID.String())
	assert.NoError(t, err)

	// The revoke strips leave.apply even though both the department and
	// an assigned role grant it; the grant adds payroll.view.
	assert.NotContains(t, perms, domain.PermLeaveApply)
	assert.Contains(t, perms, domain.PermPayrollView)
	assert.Contains(t, perms, domain.PermAttendView)
}

func TestService_ResolvePermissions_LaterOverrideSupersedes(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	repo.access[userID.String()] = &UserAccessRow{Role: domain.RoleEmployee}
	repo.overrides[userID.String()] = []PermissionOverride{
		{UserID: userID, Permission: domain.PermCRMView, Effect: EffectGrant},
		{UserID: userID, Permission: domain.PermCRMView, Effect: EffectRevoke},
		{UserID: userID, Permission: domain.PermCRMView, Effect: EffectGrant},
	}

	svc := newTestService(t, repo)

	perms, err := svc.ResolvePermissions(context.Background(), userID.String())
	assert.NoError(t, err)
	assert.Equal(t, []string{domain.PermCRMView}, perms)
}

func TestService_ResolvePermissions_MasterAdmin(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New().String()
	repo.access[userID] = &UserAccessRow{Role: domain.RoleMasterAdmin}
	// Overrides must not dent the master admin set.
	repo.overrides[userID] = []PermissionOverride{
		{Permission: domain.PermSysSettings, Effect: EffectRevoke},
	}

	svc := newTestService(t, repo)

	perms, err := svc.ResolvePermissions(context.Background(), userID)
	assert.NoError(t, err)
	assert.Contains(t, perms, domain.PermSysSettings)
	assert.Contains(t, perms, domain.PermSysBackup)
	assert.Contains(t, perms, domain.PermSysAudit)
	assert.Contains(t, perms, domain.PermUsersDelete)
	assert.Contains(t, perms, domain.PermPermsAssign)
	assert.Len(t, perms, len(domain.AllPermissions))
}

func TestService_Enforce(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New().String()
	repo.access[userID] = &UserAccessRow{
		Role:            domain.RoleEmployee,
		DepartmentPerms: domain.StringList{domain.PermAttendView},
	}

	svc := newTestService(t, repo)

	allowed, err := svc.Enforce(userID, domain.PermAttendView)
	assert.NoError(t, err)
	assert.True(t, allowed)

	denied, err := svc.Enforce(userID, domain.PermPayrollPay)
	assert.NoError(t, err)
	assert.False(t, denied)

	// Unknown users resolve to no permissions instead of an error.
	missing, err := svc.Enforce(uuid.New().String(), domain.PermAttendView)
	assert.NoError(t, err)
	assert.False(t, missing)
}

func TestService_CreateRole_RejectsUnknownPermission(t *testing.T) {
	svc := newTestService(t, newFakeRepo())

	_, err := svc.CreateRole(context.Background(), uuid.New().String(), CreateRoleRequest{
		Name:        "Payroll Clerk",
		Permissions: []string{"payroll.everything"},
	})
	assert.ErrorIs(t, err, rbacerrors.ErrUnknownPermission)
}

func TestService_CreateOverride_RejectsBadEffect(t *testing.T) {
	svc := newTestService(t, newFakeRepo())

	_, err := svc.CreateOverride(context.Background(), uuid.New().String(), CreateOverrideRequest{
		UserID:     uuid.New().String(),
		Permission: domain.PermCRMView,
		Effect:     "maybe",
	})
	assert.ErrorIs(t, err, rbacerrors.ErrInvalidEffect)
}
