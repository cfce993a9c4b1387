package user

type CreateUserRequest struct {
	Email              string  `json:"email" binding:"required,email"`
	Password           string  `json:"password" binding:"required,min=8"`
	FullName           string  `json:"full_name" binding:"required"`
	Role               string  `json:"role" binding:"required,oneof=master_admin admin employee"`
	DepartmentID       *string `json:"department_id" binding:"omitempty,uuid"`
	DesignationID      *string `json:"designation_id" binding:"omitempty,uuid"`
	ReportingManagerID *string `json:"reporting_manager_id" binding:"omitempty,uuid"`
	JoinDate           string  `json:"join_date" binding:"required"`
}

type UpdateUserRequest struct {
	FullName           string  `json:"full_name"`
	Role               string  `json:"role" binding:"omitempty,oneof=master_admin admin employee"`
	DepartmentID       *string `json:"department_id" binding:"omitempty,uuid"`
	DesignationID      *string `json:"designation_id" binding:"omitempty,uuid"`
	ReportingManagerID *string `json:"reporting_manager_id" binding:"omitempty,uuid"`
	IsActive           *bool   `json:"is_active"`
}

type UserResponse struct {
	ID                 string  `json:"id"`
	Email              string  `json:"email"`
	FullName           string  `json:"full_name"`
	Role               string  `json:"role"`
	EmployeeID         string  `json:"employee_id"`
	DepartmentID       *string `json:"department_id,omitempty"`
	DesignationID      *string `json:"designation_id,omitempty"`
	ReportingManagerID *string `json:"reporting_manager_id,omitempty"`
	JoinDate           string  `json:"join_date"`
	IsActive           bool    `json:"is_active"`
}

// UserOption is the slim shape used by select inputs.
type UserOption struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	EmployeeID string `json:"employee_id"`
}
