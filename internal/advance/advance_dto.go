package advance

import "time"

type CreateAdvanceRequest struct {
	UserID              string  `json:"user_id" binding:"required,uuid"`
	Amount              float64 `json:"amount" binding:"required,gt=0"`
	MonthlyDeduction    float64 `json:"monthly_deduction" binding:"required,gt=0"`
	DeductionStartMonth int     `json:"deduction_start_month" binding:"required,min=1,max=12"`
	DeductionStartYear  int     `json:"deduction_start_year" binding:"required,min=2000"`
	Reason              string  `json:"reason"`
}

type AdvanceResponse struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"user_id"`
	Amount              float64    `json:"amount"`
	MonthlyDeduction    float64    `json:"monthly_deduction"`
	RemainingAmount     float64    `json:"remaining_amount"`
	DeductionStartMonth int        `json:"deduction_start_month"`
	DeductionStartYear  int        `json:"deduction_start_year"`
	Status              string     `json:"status"`
	Reason              string     `json:"reason,omitempty"`
	ReviewedBy          *string    `json:"reviewed_by,omitempty"`
	ReviewedAt          *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}
