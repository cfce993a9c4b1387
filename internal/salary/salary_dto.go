package salary

import "time"

type CreateStructureRequest struct {
	UserID            string  `json:"user_id" binding:"required,uuid"`
	FixedSalary       float64 `json:"fixed_salary" binding:"required,gt=0"`
	BasicSalary       float64 `json:"basic_salary" binding:"required,gt=0"`
	HRA               float64 `json:"hra" binding:"min=0"`
	Allowances        float64 `json:"allowances" binding:"min=0"`
	VariableComponent float64 `json:"variable_component" binding:"min=0"`
	EffectiveFrom     string  `json:"effective_from" binding:"required,datetime=2006-01-02"`
}

type StructureResponse struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	FixedSalary       float64    `json:"fixed_salary"`
	BasicSalary       float64    `json:"basic_salary"`
	HRA               float64    `json:"hra"`
	Allowances        float64    `json:"allowances"`
	VariableComponent float64    `json:"variable_component"`
	EffectiveFrom     string     `json:"effective_from"`
	EffectiveTo       *string    `json:"effective_to,omitempty"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
}
