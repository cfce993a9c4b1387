package rbac

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go-hradmin/internal/audit"
	"go-hradmin/internal/domain"
	rbacerrors "go-hradmin/internal/rbac/errors"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	// ResolvePermissions returns the effective permission set for a user:
	// department+designation tables, unioned with active date-effective
	// role assignments, with per-user overrides applied last in creation
	// order. master_admin short-circuits to the full catalog plus the
	// fixed system permissions.
	ResolvePermissions(ctx context.Context, userID string) ([]string, error)
	Enforce(userID, permission string) (bool, error)

	ListRoles(ctx context.Context) ([]RoleResponse, error)
	CreateRole(ctx context.Context, actorID string, req CreateRoleRequest) (RoleResponse, error)
	UpdateRole(ctx context.Context, actorID, id string, req UpdateRoleRequest) (RoleResponse, error)
	DeleteRole(ctx context.Context, actorID, id string) error

	AssignRole(ctx context.Context, actorID string, req AssignRoleRequest) (AssignmentResponse, error)
	RevokeAssignment(ctx context.Context, actorID, id string) error

	CreateOverride(ctx context.Context, actorID string, req CreateOverrideRequest) (OverrideResponse, error)
	DeleteOverride(ctx context.Context, actorID, id string) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	auditor  audit.Service
	mu       sync.Mutex
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, auditor audit.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		auditor:  auditor,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

func (s *service) ResolvePermissions(ctx context.Context, userID string) ([]string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, rbacerrors.ErrInvalidUserID
	}

	access, err := s.repo.GetUserAccess(ctx, userID)
	if err != nil {
		return nil, err
	}

	if access.Role == domain.RoleMasterAdmin {
		return masterAdminPermissions(), nil
	}

	set := make(map[string]struct{})
	for _, p := range access.DepartmentPerms {
		set[p] = struct{}{}
	}
	for _, p := range access.DesignationPerms {
		set[p] = struct{}{}
	}

	rolePerms, err := s.repo.GetActiveRolePermissions(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	for _, p := range rolePerms {
		set[p] = struct{}{}
	}

	// Overrides apply last and win; ordered by creation so a later
	// grant/revoke of the same permission supersedes an earlier one.
	overrides, err := s.repo.GetOverrides(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		switch o.Effect {
		case EffectGrant:
			set[o.Permission] = struct{}{}
		case EffectRevoke:
			delete(set, o.Permission)
		}
	}

	perms := make([]string, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	sort.Strings(perms)
	return perms, nil
}

func masterAdminPermissions() []string {
	set := make(map[string]struct{}, len(domain.AllPermissions)+len(domain.SystemPermissions))
	for _, p := range domain.AllPermissions {
		set[p] = struct{}{}
	}
	for _, p := range domain.SystemPermissions {
		set[p] = struct{}{}
	}
	perms := make([]string, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	sort.Strings(perms)
	return perms
}

// Enforce loads the user's resolved set into the casbin enforcer and
// checks the single permission. The enforcer holds one user's policies
// at a time, hence the mutex.
func (s *service) Enforce(userID, permission string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	perms, err := s.ResolvePermissions(context.Background(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	s.enforcer.ClearPolicy()
	for _, p := range perms {
		if _, err := s.enforcer.AddPolicy(userID, p); err != nil {
			return false, err
		}
	}

	allowed, err := s.enforcer.Enforce(userID, permission)
	if err != nil {
		return false, err
	}

	s.logger.Debug("enforce result",
		zap.String("user_id", userID),
		zap.String("permission", permission),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]RoleResponse, len(roles))
	for i, r := range roles {
		res[i] = mapRoleToResponse(r)
	}
	return res, nil
}

func (s *service) CreateRole(ctx context.Context, actorID string, req CreateRoleRequest) (RoleResponse, error) {
	if err := validatePermissionNames(req.Permissions); err != nil {
		return RoleResponse{}, err
	}

	role := &Role{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Permissions: domain.StringList(req.Permissions),
		IsActive:    true,
	}

	if err := s.repo.CreateRole(ctx, role); err != nil {
		return RoleResponse{}, err
	}

	_ = s.auditor.Record(ctx, actorID, "ROLE_CREATED", "role", role.ID.String(), role.Name)
	return mapRoleToResponse(*role), nil
}

func (s *service) UpdateRole(ctx context.Context, actorID, id string, req UpdateRoleRequest) (RoleResponse, error) {
	role, err := s.repo.GetRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleResponse{}, rbacerrors.ErrRoleNotFound
		}
		return RoleResponse{}, err
	}

	if req.Name != "" {
		role.Name = req.Name
	}
	if req.Description != "" {
		role.Description = req.Description
	}
	if req.Permissions != nil {
		if err := validatePermissionNames(req.Permissions); err != nil {
			return RoleResponse{}, err
		}
		role.Permissions = domain.StringList(req.Permissions)
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateRole(ctx, role); err != nil {
		return RoleResponse{}, err
	}

	_ = s.auditor.Record(ctx, actorID, "ROLE_UPDATED", "role", role.ID.String(), role.Name)
	return mapRoleToResponse(*role), nil
}

func (s *service) DeleteRole(ctx context.Context, actorID, id string) error {
	if err := s.repo.DeleteRole(ctx, id); err != nil {
		return err
	}
	_ = s.auditor.Record(ctx, actorID, "ROLE_DELETED", "role", id, "")
	return nil
}

func (s *service) AssignRole(ctx context.Context, actorID string, req AssignRoleRequest) (AssignmentResponse, error) {
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return AssignmentResponse{}, rbacerrors.ErrInvalidUserID
	}
	roleUUID, err := uuid.Parse(req.RoleID)
	if err != nil {
		return AssignmentResponse{}, rbacerrors.ErrInvalidRoleID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return AssignmentResponse{}, rbacerrors.ErrInvalidUserID
	}

	if _, err := s.repo.GetRoleByID(ctx, req.RoleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, rbacerrors.ErrRoleNotFound
		}
		return AssignmentResponse{}, err
	}

	effectiveFrom := s.now()
	if req.EffectiveFrom != "" {
		effectiveFrom, err = time.Parse("2006-01-02", req.EffectiveFrom)
		if err != nil {
			return AssignmentResponse{}, rbacerrors.ErrInvalidDateFormat
		}
	}

	var effectiveTo *time.Time
	if req.EffectiveTo != "" {
		t, err := time.Parse("2006-01-02", req.EffectiveTo)
		if err != nil {
			return AssignmentResponse{}, rbacerrors.ErrInvalidDateFormat
		}
		effectiveTo = &t
	}

	assignment := &UserRoleAssignment{
		ID:            uuid.New(),
		UserID:        userUUID,
		RoleID:        roleUUID,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
		IsActive:      true,
		AssignedBy:    actorUUID,
	}

	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		return AssignmentResponse{}, err
	}

	_ = s.auditor.Record(ctx, actorID, "ROLE_ASSIGNED", "user", req.UserID,
		fmt.Sprintf("role %s assigned", req.RoleID))
	return mapAssignmentToResponse(*assignment), nil
}

func (s *service) RevokeAssignment(ctx context.Context, actorID, id string) error {
	if err := s.repo.DeactivateAssignment(ctx, id); err != nil {
		return err
	}
	_ = s.auditor.Record(ctx, actorID, "ROLE_ASSIGNMENT_REVOKED", "user_role_assignment", id, "")
	return nil
}

func (s *service) CreateOverride(ctx context.Context, actorID string, req CreateOverrideRequest) (OverrideResponse, error) {
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return OverrideResponse{}, rbacerrors.ErrInvalidUserID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return OverrideResponse{}, rbacerrors.ErrInvalidUserID
	}
	if req.Effect != EffectGrant && req.Effect != EffectRevoke {
		return OverrideResponse{}, rbacerrors.ErrInvalidEffect
	}
	if err := validatePermissionNames([]string{req.Permission}); err != nil {
		return OverrideResponse{}, err
	}

	override := &PermissionOverride{
		ID:         uuid.New(),
		UserID:     userUUID,
		Permission: req.Permission,
		Effect:     req.Effect,
		CreatedBy:  actorUUID,
		CreatedAt:  s.now(),
	}

	if err := s.repo.CreateOverride(ctx, override); err != nil {
		return OverrideResponse{}, err
	}

	_ = s.auditor.Record(ctx, actorID, "PERMISSION_OVERRIDE_CREATED", "user", req.UserID,
		fmt.Sprintf("%s %s", req.Effect, req.Permission))
	return mapOverrideToResponse(*override), nil
}

func (s *service) DeleteOverride(ctx context.Context, actorID, id string) error {
	if err := s.repo.DeleteOverride(ctx, id); err != nil {
		return err
	}
	_ = s.auditor.Record(ctx, actorID, "PERMISSION_OVERRIDE_DELETED", "permission_override", id, "")
	return nil
}

func validatePermissionNames(perms []string) error {
	known := make(map[string]struct{}, len(domain.AllPermissions))
	for _, p := range domain.AllPermissions {
		known[p] = struct{}{}
	}
	for _, p := range perms {
		if _, ok := known[p]; !ok {
			return rbacerrors.ErrUnknownPermission
		}
	}
	return nil
}

func mapRoleToResponse(r Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		Permissions: []string(r.Permissions),
		IsActive:    r.IsActive,
	}
}

func mapAssignmentToResponse(a UserRoleAssignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:            a.ID.String(),
		UserID:        a.UserID.String(),
		RoleID:        a.RoleID.String(),
		EffectiveFrom: a.EffectiveFrom.Format("2006-01-02"),
		IsActive:      a.IsActive,
		AssignedBy:    a.AssignedBy.String(),
	}
	if a.EffectiveTo != nil {
		v := a.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &v
	}
	return resp
}

func mapOverrideToResponse(o PermissionOverride) OverrideResponse {
	return OverrideResponse{
		ID:         o.ID.String(),
		UserID:     o.UserID.String(),
		Permission: o.Permission,
		Effect:     o.Effect,
		CreatedBy:  o.CreatedBy.String(),
	}
}
