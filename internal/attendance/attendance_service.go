package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-hradmin/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"already checked in for today",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"no check-in found for today",
		http.StatusUnprocessableEntity,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"already checked out for today",
		http.StatusUnprocessableEntity,
	)
	ErrOutsideOfficeRadius = apperror.New(
		apperror.CodeInvalidInput,
		"check-in location is outside the office radius",
		http.StatusUnprocessableEntity,
	)
	ErrOfficeLocationNotFound = apperror.New(
		apperror.CodeNotFound,
		"office location not found",
		http.StatusNotFound,
	)
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance policy not found",
		http.StatusNotFound,
	)
	ErrCoordinatesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"latitude and longitude are required for office check-in",
		http.StatusBadRequest,
	)
)

// Fallbacks when no attendance policy or department timing is configured.
const (
	defaultStartTime         = "09:00"
	defaultGraceMinutes      = 15
	defaultStandardHours     = 8.0
	defaultOvertimeThreshold = 30
)

// UserDirectory resolves the department a user belongs to. Returns an
// empty string when the user has no department assigned.
type UserDirectory interface {
	DepartmentIDOf(ctx context.Context, userID string) (string, error)
}

type Service interface {
	CheckIn(ctx context.Context, userID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, userID string, req CheckOutRequest) (AttendanceResponse, error)
	ListForUser(ctx context.Context, userID string, month, year int) ([]AttendanceResponse, error)
	GetMonthlySummary(ctx context.Context, userID string, month, year int) (MonthlySummary, error)

	CreatePolicy(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error)
	ListPolicies(ctx context.Context) ([]PolicyResponse, error)
	UpdatePolicy(ctx context.Context, id string, req UpdatePolicyRequest) (PolicyResponse, error)
	DeletePolicy(ctx context.Context, id string) error

	UpsertTiming(ctx context.Context, req UpsertTimingRequest) (TimingResponse, error)
	ListTimings(ctx context.Context) ([]TimingResponse, error)

	CreateOfficeLocation(ctx context.Context, req CreateOfficeLocationRequest) (OfficeLocationResponse, error)
	ListOfficeLocations(ctx context.Context) ([]OfficeLocationResponse, error)
	DeleteOfficeLocation(ctx context.Context, id string) error
}

type service struct {
	db    *sql.DB
	repo  Repository
	users UserDirectory
	now   func() time.Time
}

func NewService(db *sql.DB, repo Repository, users UserDirectory) Service {
	return &service{
		db:    db,
		repo:  repo,
		users: users,
		now:   time.Now,
	}
}

func (s *service) CheckIn(ctx context.Context, userID string, req CheckInRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	dateString := now.Format("2006-01-02")

	existing, err := qtx.FindByUserAndDateString(ctx, userID, dateString)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, ErrAlreadyCheckedIn
	}

	var officeLocationID *uuid.UUID
	if req.OfficeLocationID != "" {
		office, err := qtx.FindOfficeLocationByID(ctx, req.OfficeLocationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return AttendanceResponse{}, ErrOfficeLocationNotFound
			}
			return AttendanceResponse{}, err
		}
		if req.Latitude == nil || req.Longitude == nil {
			return AttendanceResponse{}, ErrCoordinatesRequired
		}
		distance := haversineMeters(*req.Latitude, *req.Longitude, office.Latitude, office.Longitude)
		if distance > office.RadiusMeters {
			return AttendanceResponse{}, ErrOutsideOfficeRadius
		}
		officeLocationID = &office.ID
	}

	status, err := s.classifyCheckIn(ctx, qtx, userID, now)
	if err != nil {
		return AttendanceResponse{}, err
	}

	row := &Attendance{
		ID:               uuid.New(),
		UserID:           uuid.MustParse(userID),
		Date:             now.Truncate(24 * time.Hour),
		DateString:       dateString,
		CheckInTime:      &now,
		Status:           status,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		OfficeLocationID: officeLocationID,
		Notes:            req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

// classifyCheckIn compares the check-in instant against the department's
// start time plus the active policy's grace window.
func (s *service) classifyCheckIn(ctx context.Context, repo Repository, userID string, now time.Time) (string, error) {
	startTime := defaultStartTime
	grace := defaultGraceMinutes

	if policy, err := repo.FindActivePolicy(ctx); err == nil {
		grace = policy.GraceMinutes
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	deptID, err := s.users.DepartmentIDOf(ctx, userID)
	if err != nil {
		return "", err
	}
	if deptID != "" {
		if timing, err := repo.FindTimingByDepartment(ctx, deptID); err == nil {
			startTime = timing.StartTime
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
	}

	deadline, err := parseClock(startTime, now)
	if err != nil {
		return "", err
	}
	deadline = deadline.Add(time.Duration(grace) * time.Minute)

	if now.After(deadline) {
		return StatusLate, nil
	}
	return StatusPresent, nil
}

// parseClock anchors an HH:MM string on the calendar date of ref.
func parseClock(hhmm string, ref time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse clock time %q: %w", hhmm, err)
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour(), t.Minute(), 0, 0, ref.Location()), nil
}

func (s *service) CheckOut(ctx context.Context, userID string, req CheckOutRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	dateString := now.Format("2006-01-02")

	row, err := qtx.FindByUserAndDateString(ctx, userID, dateString)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, ErrNotCheckedIn
		}
		return AttendanceResponse{}, err
	}
	if row.CheckInTime == nil {
		return AttendanceResponse{}, ErrNotCheckedIn
	}
	if row.CheckOutTime != nil {
		return AttendanceResponse{}, ErrAlreadyCheckedOut
	}

	standardHours := defaultStandardHours
	thresholdMinutes := defaultOvertimeThreshold
	if policy, err := qtx.FindActivePolicy(ctx); err == nil {
		standardHours = policy.StandardHours
		thresholdMinutes = policy.OvertimeThresholdMinutes
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	row.CheckOutTime = &now
	row.OvertimeHours = overtimeHours(*row.CheckInTime, now, standardHours, thresholdMinutes)
	if req.Latitude != nil {
		row.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		row.Longitude = req.Longitude
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

// overtimeHours returns hours worked beyond standardHours, zeroed when
// the excess stays under the policy threshold.
func overtimeHours(checkIn, checkOut time.Time, standardHours float64, thresholdMinutes int) float64 {
	worked := checkOut.Sub(checkIn).Hours()
	extra := worked - standardHours
	if extra <= 0 {
		return 0
	}
	if extra*60 < float64(thresholdMinutes) {
		return 0
	}
	return extra
}

func (s *service) ListForUser(ctx context.Context, userID string, month, year int) ([]AttendanceResponse, error) {
	from, to := MonthDateRange(month, year)
	rows, err := s.repo.ListBetweenDates(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func (s *service) GetMonthlySummary(ctx context.Context, userID string, month, year int) (MonthlySummary, error) {
	from, to := MonthDateRange(month, year)
	rows, err := s.repo.ListBetweenDates(ctx, userID, from, to)
	if err != nil {
		return MonthlySummary{}, err
	}
	return Summarize(rows, month, year), nil
}

func (s *service) CreatePolicy(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error) {
	p := &AttendancePolicy{
		ID:                       uuid.New(),
		Name:                     req.Name,
		GraceMinutes:             req.GraceMinutes,
		StandardHours:            req.StandardHours,
		OvertimeThresholdMinutes: req.OvertimeThresholdMinutes,
		IsActive:                 req.IsActive,
	}
	if err := s.repo.CreatePolicy(ctx, p); err != nil {
		return PolicyResponse{}, err
	}
	if p.IsActive {
		if err := s.repo.DeactivateOtherPolicies(ctx, p.ID.String()); err != nil {
			return PolicyResponse{}, err
		}
	}
	return mapPolicyToResponse(*p), nil
}

func (s *service) ListPolicies(ctx context.Context) ([]PolicyResponse, error) {
	rows, err := s.repo.ListPolicies(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]PolicyResponse, len(rows))
	for i, p := range rows {
		res[i] = mapPolicyToResponse(p)
	}
	return res, nil
}

func (s *service) UpdatePolicy(ctx context.Context, id string, req UpdatePolicyRequest) (PolicyResponse, error) {
	p, err := s.repo.FindPolicyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PolicyResponse{}, ErrPolicyNotFound
		}
		return PolicyResponse{}, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.GraceMinutes != nil {
		p.GraceMinutes = *req.GraceMinutes
	}
	if req.StandardHours != nil {
		p.StandardHours = *req.StandardHours
	}
	if req.OvertimeThresholdMinutes != nil {
		p.OvertimeThresholdMinutes = *req.OvertimeThresholdMinutes
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.UpdatePolicy(ctx, p); err != nil {
		return PolicyResponse{}, err
	}
	if p.IsActive {
		if err := s.repo.DeactivateOtherPolicies(ctx, p.ID.String()); err != nil {
			return PolicyResponse{}, err
		}
	}
	return mapPolicyToResponse(*p), nil
}

func (s *service) DeletePolicy(ctx context.Context, id string) error {
	return s.repo.DeletePolicy(ctx, id)
}

func (s *service) UpsertTiming(ctx context.Context, req UpsertTimingRequest) (TimingResponse, error) {
	if _, err := parseClock(req.StartTime, time.Now()); err != nil {
		return TimingResponse{}, apperror.InvalidField("start_time")
	}
	if _, err := parseClock(req.EndTime, time.Now()); err != nil {
		return TimingResponse{}, apperror.InvalidField("end_time")
	}

	t := &DepartmentTiming{
		ID:           uuid.New(),
		DepartmentID: uuid.MustParse(req.DepartmentID),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}
	if err := s.repo.UpsertTiming(ctx, t); err != nil {
		return TimingResponse{}, err
	}
	return mapTimingToResponse(*t), nil
}

func (s *service) ListTimings(ctx context.Context) ([]TimingResponse, error) {
	rows, err := s.repo.ListTimings(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]TimingResponse, len(rows))
	for i, t := range rows {
		res[i] = mapTimingToResponse(t)
	}
	return res, nil
}

func (s *service) CreateOfficeLocation(ctx context.Context, req CreateOfficeLocationRequest) (OfficeLocationResponse, error) {
	l := &OfficeLocation{
		ID:           uuid.New(),
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
	}
	if err := s.repo.CreateOfficeLocation(ctx, l); err != nil {
		return OfficeLocationResponse{}, err
	}
	return mapOfficeLocationToResponse(*l), nil
}

func (s *service) ListOfficeLocations(ctx context.Context) ([]OfficeLocationResponse, error) {
	rows, err := s.repo.ListOfficeLocations(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]OfficeLocationResponse, len(rows))
	for i, l := range rows {
		res[i] = mapOfficeLocationToResponse(l)
	}
	return res, nil
}

func (s *service) DeleteOfficeLocation(ctx context.Context, id string) error {
	return s.repo.DeleteOfficeLocation(ctx, id)
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID.String(),
		UserID:        a.UserID.String(),
		Date:          a.DateString,
		CheckInTime:   a.CheckInTime,
		CheckOutTime:  a.CheckOutTime,
		Status:        a.Status,
		OvertimeHours: a.OvertimeHours,
		Latitude:      a.Latitude,
		Longitude:     a.Longitude,
		Notes:         a.Notes,
	}
}

func mapPolicyToResponse(p AttendancePolicy) PolicyResponse {
	return PolicyResponse{
		ID:                       p.ID.String(),
		Name:                     p.Name,
		GraceMinutes:             p.GraceMinutes,
		StandardHours:            p.StandardHours,
		OvertimeThresholdMinutes: p.OvertimeThresholdMinutes,
		IsActive:                 p.IsActive,
	}
}

func mapTimingToResponse(t DepartmentTiming) TimingResponse {
	return TimingResponse{
		ID:           t.ID.String(),
		DepartmentID: t.DepartmentID.String(),
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
	}
}

func mapOfficeLocationToResponse(l OfficeLocation) OfficeLocationResponse {
	return OfficeLocationResponse{
		ID:           l.ID.String(),
		Name:         l.Name,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		RadiusMeters: l.RadiusMeters,
	}
}
