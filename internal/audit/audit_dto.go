package audit

type ActivityLogResponse struct {
	ID         string `json:"id"`
	ActorID    string `json:"actor_id,omitempty"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Detail     string `json:"detail,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type GetActivityLogsFilterRequest struct {
	ActorID    string `form:"actor_id"`
	Action     string `form:"action"`
	EntityType string `form:"entity_type"`
	Limit      int    `form:"limit"`
}
