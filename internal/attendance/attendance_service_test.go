package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	records   map[string]*Attendance
	policy    *AttendancePolicy
	timing    *DepartmentTiming
	locations map[string]*OfficeLocation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		records:   map[string]*Attendance{},
		locations: map[string]*OfficeLocation{},
	}
}

func (f *fakeRepo) key(userID, dateString string) string { return userID + "|" + dateString }

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error {
	f.records[f.key(a.UserID.String(), a.DateString)] = a
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error {
	f.records[f.key(a.UserID.String(), a.DateString)] = a
	return nil
}

func (f *fakeRepo) FindByUserAndDateString(ctx context.Context, userID, dateString string) (*Attendance, error) {
	if a, ok := f.records[f.key(userID, dateString)]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListBetweenDates(ctx context.Context, userID, from, to string) ([]Attendance, error) {
	var rows []Attendance
	for _, a := range f.records {
		if a.UserID.String() == userID && a.DateString >= from && a.DateString <= to {
			rows = append(rows, *a)
		}
	}
	return rows, nil
}

func (f *fakeRepo) ListByDateString(ctx context.Context, dateString string) ([]Attendance, error) {
	return nil, nil
}

func (f *fakeRepo) CreatePolicy(ctx context.Context, p *AttendancePolicy) error {
	f.policy = p
	return nil
}

func (f *fakeRepo) FindActivePolicy(ctx context.Context) (*AttendancePolicy, error) {
	if f.policy != nil && f.policy.IsActive {
		return f.policy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindPolicyByID(ctx context.Context, id string) (*AttendancePolicy, error) {
	if f.policy != nil && f.policy.ID.String() == id {
		return f.policy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListPolicies(ctx context.Context) ([]AttendancePolicy, error) {
	if f.policy == nil {
		return nil, nil
	}
	return []AttendancePolicy{*f.policy}, nil
}

func (f *fakeRepo) UpdatePolicy(ctx context.Context, p *AttendancePolicy) error {
	f.policy = p
	return nil
}

func (f *fakeRepo) DeactivateOtherPolicies(ctx context.Context, keepID string) error { return nil }

func (f *fakeRepo) DeletePolicy(ctx context.Context, id string) error {
	f.policy = nil
	return nil
}

func (f *fakeRepo) UpsertTiming(ctx context.Context, t *DepartmentTiming) error {
	f.timing = t
	return nil
}

func (f *fakeRepo) FindTimingByDepartment(ctx context.Context, departmentID string) (*DepartmentTiming, error) {
	if f.timing != nil && f.timing.DepartmentID.String() == departmentID {
		return f.timing, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListTimings(ctx context.Context) ([]DepartmentTiming, error) { return nil, nil }

func (f *fakeRepo) CreateOfficeLocation(ctx context.Context, l *OfficeLocation) error {
	f.locations[l.ID.String()] = l
	return nil
}

func (f *fakeRepo) FindOfficeLocationByID(ctx context.Context, id string) (*OfficeLocation, error) {
	if l, ok := f.locations[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListOfficeLocations(ctx context.Context) ([]OfficeLocation, error) {
	return nil, nil
}

func (f *fakeRepo) DeleteOfficeLocation(ctx context.Context, id string) error {
	delete(f.locations, id)
	return nil
}

type fakeDirectory struct {
	departmentID string
}

func (f *fakeDirectory) DepartmentIDOf(ctx context.Context, userID string) (string, error) {
	return f.departmentID, nil
}

func newTestService(t *testing.T, repo *fakeRepo, dir *fakeDirectory, now time.Time) (Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	svc := NewService(db, repo, dir).(*service)
	svc.now = func() time.Time { return now }
	return svc, mock, func() { db.Close() }
}

func TestService_CheckIn_OnTime(t *testing.T) {
	repo := newFakeRepo()
	deptID := uuid.New()
	repo.timing = &DepartmentTiming{ID: uuid.New(), DepartmentID: deptID, StartTime: "09:00", EndTime: "18:00"}
	dir := &fakeDirectory{departmentID: deptID.String()}

	now := mustTime(t, "2024-01-08T09:10:00Z")
	svc, mock, closeFn := newTestService(t, repo, dir, now)
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckIn(context.Background(), uuid.New().String(), CheckInRequest{})
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent, resp.Status)
	assert.Equal(t, "2024-01-08", resp.Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_LatePastGrace(t *testing.T) {
	repo := newFakeRepo()
	deptID := uuid.New()
	repo.timing = &DepartmentTiming{ID: uuid.New(), DepartmentID: deptID, StartTime: "09:00", EndTime: "18:00"}
	repo.policy = &AttendancePolicy{ID: uuid.New(), Name: "default", GraceMinutes: 10, StandardHours: 8, IsActive: true}
	dir := &fakeDirectory{departmentID: deptID.String()}

	now := mustTime(t, "2024-01-08T09:11:00Z")
	svc, mock, closeFn := newTestService(t, repo, dir, now)
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckIn(context.Background(), uuid.New().String(), CheckInRequest{})
	assert.NoError(t, err)
	assert.Equal(t, StatusLate, resp.Status)
}

func TestService_CheckIn_Duplicate(t *testing.T) {
	repo := newFakeRepo()
	dir := &fakeDirectory{}
	userID := uuid.New()

	now := mustTime(t, "2024-01-08T09:00:00Z")
	svc, mock, closeFn := newTestService(t, repo, dir, now)
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(context.Background(), userID.String(), CheckInRequest{})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckIn(context.Background(), userID.String(), CheckInRequest{})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestService_CheckIn_OutsideOfficeRadius(t *testing.T) {
	repo := newFakeRepo()
	office := &OfficeLocation{ID: uuid.New(), Name: "HQ", Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 100}
	repo.locations[office.ID.String()] = office
	dir := &fakeDirectory{}

	now := mustTime(t, "2024-01-08T09:00:00Z")
	svc, mock, closeFn := newTestService(t, repo, dir, now)
	defer closeFn()

	// Roughly 1.5km north of the office.
	lat, lng := 12.985, 77.5946
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckIn(context.Background(), uuid.New().String(), CheckInRequest{
		Latitude:         &lat,
		Longitude:        &lng,
		OfficeLocationID: office.ID.String(),
	})
	assert.ErrorIs(t, err, ErrOutsideOfficeRadius)
}

func TestService_CheckIn_InsideOfficeRadius(t *testing.T) {
	repo := newFakeRepo()
	office := &OfficeLocation{ID: uuid.New(), Name: "HQ", Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 100}
	repo.locations[office.ID.String()] = office
	dir := &fakeDirectory{}

	now := mustTime(t, "2024-01-08T09:00:00Z")
	svc, mock, closeFn := newTestService(t, repo, dir, now)
	defer closeFn()

	lat, lng := 12.97165, 77.59463
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckIn(context.Background(), uuid.New().String(), CheckInRequest{
		Latitude:         &lat,
		Longitude:        &lng,
		OfficeLocationID: office.ID.String(),
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent, resp.Status)
}

func TestService_CheckOut_Overtime(t *testing.T) {
	repo := newFakeRepo()
	repo.policy = &AttendancePolicy{
		ID: uuid.New(), Name: "default",
		GraceMinutes: 15, StandardHours: 8, OvertimeThresholdMinutes: 30, IsActive: true,
	}
	dir := &fakeDirectory{}
	userID := uuid.New()

	checkIn := mustTime(t, "2024-01-08T09:00:00Z")
	svc, mock, closeFn := newTestService(t, repo, dir, checkIn)
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(context.Background(), userID.String(), CheckInRequest{})
	assert.NoError(t, err)

	svc.(*service).now = func() time.Time { return mustTime(t, "2024-01-08T19:00:00Z") }
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckOut(context.Background(), userID.String(), CheckOutRequest{})
	assert.NoError(t, err)
	assert.InDelta(t, 2, resp.OvertimeHours, 1e-9)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckOut(context.Background(), userID.String(), CheckOutRequest{})
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
}

func TestService_CheckOut_WithoutCheckIn(t *testing.T) {
	repo := newFakeRepo()
	dir := &fakeDirectory{}

	now := mustTime(t, "2024-01-08T18:00:00Z")
	svc, mock, closeFn := newTestService(t, repo, dir, now)
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckOut(context.Background(), uuid.New().String(), CheckOutRequest{})
	assert.ErrorIs(t, err, ErrNotCheckedIn)
}

func TestService_GetMonthlySummary(t *testing.T) {
	repo := newFakeRepo()
	dir := &fakeDirectory{}
	userID := uuid.New()

	for day := 8; day <= 12; day++ {
		date := time.Date(2024, 1, day, 9, 0, 0, 0, time.UTC)
		repo.records[repo.key(userID.String(), date.Format("2006-01-02"))] = &Attendance{
			ID: uuid.New(), UserID: userID,
			Date: date, DateString: date.Format("2006-01-02"),
			Status: StatusPresent, OvertimeHours: 1,
		}
	}

	svc, _, closeFn := newTestService(t, repo, dir, time.Now())
	defer closeFn()

	s, err := svc.GetMonthlySummary(context.Background(), userID.String(), 1, 2024)
	assert.NoError(t, err)
	assert.Equal(t, 23, s.WorkingDays)
	assert.Equal(t, 5, s.PresentDays)
	assert.Equal(t, 18, s.AbsentDays)
	assert.InDelta(t, 5, s.OvertimeHours, 1e-9)
}
