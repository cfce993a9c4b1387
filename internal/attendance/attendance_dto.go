package attendance

import "time"

type CheckInRequest struct {
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	OfficeLocationID string   `json:"office_location_id" binding:"omitempty,uuid"`
	Notes            *string  `json:"notes"`
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     *string  `json:"notes"`
}

type AttendanceResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Date          string     `json:"date"`
	CheckInTime   *time.Time `json:"check_in_time"`
	CheckOutTime  *time.Time `json:"check_out_time"`
	Status        string     `json:"status"`
	OvertimeHours float64    `json:"overtime_hours"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

type MonthlySummary struct {
	WorkingDays   int     `json:"working_days"`
	PresentDays   int     `json:"present_days"`
	AbsentDays    int     `json:"absent_days"`
	OvertimeHours float64 `json:"overtime_hours"`
	LeaveDays     int     `json:"leave_days"`
}

type CreatePolicyRequest struct {
	Name                     string  `json:"name" binding:"required"`
	GraceMinutes             int     `json:"grace_minutes" binding:"min=0"`
	StandardHours            float64 `json:"standard_hours" binding:"required,gt=0"`
	OvertimeThresholdMinutes int     `json:"overtime_threshold_minutes" binding:"min=0"`
	IsActive                 bool    `json:"is_active"`
}

type UpdatePolicyRequest struct {
	Name                     string   `json:"name"`
	GraceMinutes             *int     `json:"grace_minutes"`
	StandardHours            *float64 `json:"standard_hours"`
	OvertimeThresholdMinutes *int     `json:"overtime_threshold_minutes"`
	IsActive                 *bool    `json:"is_active"`
}

type PolicyResponse struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	GraceMinutes             int     `json:"grace_minutes"`
	StandardHours            float64 `json:"standard_hours"`
	OvertimeThresholdMinutes int     `json:"overtime_threshold_minutes"`
	IsActive                 bool    `json:"is_active"`
}

type UpsertTimingRequest struct {
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
}

type TimingResponse struct {
	ID           string `json:"id"`
	DepartmentID string `json:"department_id"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

type CreateOfficeLocationRequest struct {
	Name         string  `json:"name" binding:"required"`
	Latitude     float64 `json:"latitude" binding:"required"`
	Longitude    float64 `json:"longitude" binding:"required"`
	RadiusMeters float64 `json:"radius_meters" binding:"required,gt=0"`
}

type OfficeLocationResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}
