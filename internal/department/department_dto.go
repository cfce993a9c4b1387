package department

type CreateDepartmentRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type UpdateDepartmentRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type DepartmentResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type CreateDesignationRequest struct {
	// DepartmentID comes from the route path, not the request body.
	DepartmentID string   `json:"-"`
	Name         string   `json:"name" binding:"required"`
	Level        int      `json:"level" binding:"required,min=1"`
	Permissions  []string `json:"permissions"`
}

type UpdateDesignationRequest struct {
	Name        string   `json:"name"`
	Level       int      `json:"level" binding:"omitempty,min=1"`
	Permissions []string `json:"permissions"`
}

type DesignationResponse struct {
	ID           string   `json:"id"`
	DepartmentID string   `json:"department_id"`
	Name         string   `json:"name"`
	Level        int      `json:"level"`
	Permissions  []string `json:"permissions"`
}
