package events

import "time"

const PayrollPaidTopic = "hr.payroll.paid.v1"

type PayrollPaidEvent struct {
	EventType  string    `json:"event_type"`
	PayrollID  string    `json:"payroll_id"`
	UserID     string    `json:"user_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	NetSalary  float64   `json:"net_salary"`
	PaidBy     string    `json:"paid_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
