package payroll

import "time"

type CalculateRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Month  int    `json:"month" binding:"required,min=1,max=12"`
	Year   int    `json:"year" binding:"required,min=2000"`
}

type CreatePayrollRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Month  int    `json:"month" binding:"required,min=1,max=12"`
	Year   int    `json:"year" binding:"required,min=2000"`
}

type UpdateSettingsRequest struct {
	PFRate              *float64 `json:"pf_rate" binding:"omitempty,min=0,max=1"`
	PFGrossThreshold    *float64 `json:"pf_gross_threshold" binding:"omitempty,min=0"`
	ESIRate             *float64 `json:"esi_rate" binding:"omitempty,min=0,max=1"`
	ESIGrossThreshold   *float64 `json:"esi_gross_threshold" binding:"omitempty,min=0"`
	TDSRate             *float64 `json:"tds_rate" binding:"omitempty,min=0,max=1"`
	StandardWorkingDays *int     `json:"standard_working_days" binding:"omitempty,min=1,max=31"`
	StandardHours       *float64 `json:"standard_hours" binding:"omitempty,gt=0"`
	OvertimeMultiplier  *float64 `json:"overtime_multiplier" binding:"omitempty,gte=1"`
}

type SettingsResponse struct {
	PFRate              float64 `json:"pf_rate"`
	PFGrossThreshold    float64 `json:"pf_gross_threshold"`
	ESIRate             float64 `json:"esi_rate"`
	ESIGrossThreshold   float64 `json:"esi_gross_threshold"`
	TDSRate             float64 `json:"tds_rate"`
	StandardWorkingDays int     `json:"standard_working_days"`
	StandardHours       float64 `json:"standard_hours"`
	OvertimeMultiplier  float64 `json:"overtime_multiplier"`
}

type PayrollResponse struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id"`
	Month  int    `json:"month"`
	Year   int    `json:"year"`

	WorkingDays   int     `json:"working_days"`
	PresentDays   int     `json:"present_days"`
	LeaveDays     int     `json:"leave_days"`
	OvertimeHours float64 `json:"overtime_hours"`

	FixedSalary       float64 `json:"fixed_salary"`
	BasicSalary       float64 `json:"basic_salary"`
	HRA               float64 `json:"hra"`
	Allowances        float64 `json:"allowances"`
	VariableComponent float64 `json:"variable_component"`

	AdjustedSalary   float64 `json:"adjusted_salary"`
	OvertimePay      float64 `json:"overtime_pay"`
	GrossSalary      float64 `json:"gross_salary"`
	PFDeduction      float64 `json:"pf_deduction"`
	ESIDeduction     float64 `json:"esi_deduction"`
	TDSDeduction     float64 `json:"tds_deduction"`
	AdvanceDeduction float64 `json:"advance_deduction"`
	NetSalary        float64 `json:"net_salary"`

	Status     string     `json:"status,omitempty"`
	ApprovedBy *string    `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	PaidBy     *string    `json:"paid_by,omitempty"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at,omitempty"`
}
