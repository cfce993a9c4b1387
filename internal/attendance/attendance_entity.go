package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
	StatusLeave   = "leave"
)

// Attendance is one record per user per calendar date. Uniqueness is
// enforced by querying DateString before insert, not by a DB constraint,
// so imports and leave backfills can bypass it deliberately.
type Attendance struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_user_date"`
	Date             time.Time `gorm:"type:date;not null"`
	DateString       string    `gorm:"type:varchar(10);not null;index:idx_attendance_user_date"`
	CheckInTime      *time.Time
	CheckOutTime     *time.Time
	Status           string  `gorm:"type:varchar(16);not null"`
	OvertimeHours    float64 `gorm:"not null;default:0"`
	Latitude         *float64
	Longitude        *float64
	OfficeLocationID *uuid.UUID `gorm:"type:uuid"`
	Notes            *string    `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Attendance) TableName() string {
	return "attendance"
}

// AttendancePolicy holds the org-wide lateness and overtime rules. Only
// one policy is active at a time.
type AttendancePolicy struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                     string    `gorm:"type:varchar(120);not null"`
	GraceMinutes             int       `gorm:"not null;default:15"`
	StandardHours            float64   `gorm:"not null;default:8"`
	OvertimeThresholdMinutes int       `gorm:"not null;default:30"`
	IsActive                 bool      `gorm:"not null;default:false;index"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
	DeletedAt                gorm.DeletedAt `gorm:"index"`
}

func (AttendancePolicy) TableName() string {
	return "attendance_policies"
}

// DepartmentTiming stores the expected working window per department as
// HH:MM strings in the office's local clock.
type DepartmentTiming struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	StartTime    string    `gorm:"type:varchar(5);not null;default:'09:00'"`
	EndTime      string    `gorm:"type:varchar(5);not null;default:'18:00'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (DepartmentTiming) TableName() string {
	return "department_timings"
}

type OfficeLocation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(120);not null"`
	Latitude     float64   `gorm:"not null"`
	Longitude    float64   `gorm:"not null"`
	RadiusMeters float64   `gorm:"not null;default:100"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (OfficeLocation) TableName() string {
	return "office_locations"
}
