package rbac

type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"is_active"`
}

type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type UpdateRoleRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
	IsActive    *bool    `json:"is_active"`
}

type AssignRoleRequest struct {
	UserID        string `json:"user_id" binding:"required,uuid"`
	RoleID        string `json:"role_id" binding:"required,uuid"`
	EffectiveFrom string `json:"effective_from"`
	EffectiveTo   string `json:"effective_to"`
}

type AssignmentResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	RoleID        string  `json:"role_id"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
	IsActive      bool    `json:"is_active"`
	AssignedBy    string  `json:"assigned_by"`
}

type CreateOverrideRequest struct {
	UserID     string `json:"user_id" binding:"required,uuid"`
	Permission string `json:"permission" binding:"required"`
	Effect     string `json:"effect" binding:"required,oneof=grant revoke"`
}

type OverrideResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Permission string `json:"permission"`
	Effect     string `json:"effect"`
	CreatedBy  string `json:"created_by"`
}

type EffectivePermissionsResponse struct {
	UserID      string   `json:"user_id"`
	Permissions []string `json:"permissions"`
}
