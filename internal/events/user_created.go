package events

import "time"

const UserCreatedTopic = "hr.user.lifecycle.v1"

type UserCreatedEvent struct {
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	EmployeeID string    `json:"employee_id"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}
