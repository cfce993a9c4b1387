package attendance

import (
	"context"
	"database/sql"
	"errors"

	"go-hradmin/internal/shared/connection"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByUserAndDateString(ctx context.Context, userID, dateString string) (*Attendance, error)
	ListBetweenDates(ctx context.Context, userID, fromDateString, toDateString string) ([]Attendance, error)
	ListByDateString(ctx context.Context, dateString string) ([]Attendance, error)

	CreatePolicy(ctx context.Context, p *AttendancePolicy) error
	FindActivePolicy(ctx context.Context) (*AttendancePolicy, error)
	FindPolicyByID(ctx context.Context, id string) (*AttendancePolicy, error)
	ListPolicies(ctx context.Context) ([]AttendancePolicy, error)
	UpdatePolicy(ctx context.Context, p *AttendancePolicy) error
	DeactivateOtherPolicies(ctx context.Context, keepID string) error
	DeletePolicy(ctx context.Context, id string) error

	UpsertTiming(ctx context.Context, t *DepartmentTiming) error
	FindTimingByDepartment(ctx context.Context, departmentID string) (*DepartmentTiming, error)
	ListTimings(ctx context.Context) ([]DepartmentTiming, error)

	CreateOfficeLocation(ctx context.Context, l *OfficeLocation) error
	FindOfficeLocationByID(ctx context.Context, id string) (*OfficeLocation, error)
	ListOfficeLocations(ctx context.Context) ([]OfficeLocation, error)
	DeleteOfficeLocation(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) FindByUserAndDateString(ctx context.Context, userID, dateString string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date_string = ?", userID, dateString).
		First(&a).Error
	return &a, err
}

func (r *repository) ListBetweenDates(ctx context.Context, userID, fromDateString, toDateString string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date_string >= ? AND date_string <= ?", userID, fromDateString, toDateString).
		Order("date_string").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListByDateString(ctx context.Context, dateString string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("date_string = ?", dateString).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreatePolicy(ctx context.Context, p *AttendancePolicy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindActivePolicy(ctx context.Context) (*AttendancePolicy, error) {
	var p AttendancePolicy
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		First(&p).Error
	return &p, err
}

func (r *repository) FindPolicyByID(ctx context.Context, id string) (*AttendancePolicy, error) {
	var p AttendancePolicy
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) ListPolicies(ctx context.Context) ([]AttendancePolicy, error) {
	var rows []AttendancePolicy
	err := r.db.WithContext(ctx).Order("created_at").Find(&rows).Error
	return rows, err
}

func (r *repository) UpdatePolicy(ctx context.Context, p *AttendancePolicy) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) DeactivateOtherPolicies(ctx context.Context, keepID string) error {
	return r.db.WithContext(ctx).
		Model(&AttendancePolicy{}).
		Where("id <> ?", keepID).
		Update("is_active", false).Error
}

func (r *repository) DeletePolicy(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&AttendancePolicy{}, "id = ?", id).Error
}

func (r *repository) UpsertTiming(ctx context.Context, t *DepartmentTiming) error {
	var existing DepartmentTiming
	err := r.db.WithContext(ctx).
		Where("department_id = ?", t.DepartmentID).
		First(&existing).Error
	if err == nil {
		existing.StartTime = t.StartTime
		existing.EndTime = t.EndTime
		*t = existing
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(t).Error
	}
	return err
}

func (r *repository) FindTimingByDepartment(ctx context.Context, departmentID string) (*DepartmentTiming, error) {
	var t DepartmentTiming
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		First(&t).Error
	return &t, err
}

func (r *repository) ListTimings(ctx context.Context) ([]DepartmentTiming, error) {
	var rows []DepartmentTiming
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

func (r *repository) CreateOfficeLocation(ctx context.Context, l *OfficeLocation) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindOfficeLocationByID(ctx context.Context, id string) (*OfficeLocation, error) {
	var l OfficeLocation
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) ListOfficeLocations(ctx context.Context) ([]OfficeLocation, error) {
	var rows []OfficeLocation
	err := r.db.WithContext(ctx).Order("name").Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteOfficeLocation(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&OfficeLocation{}, "id = ?", id).Error
}
