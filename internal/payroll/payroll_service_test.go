package payroll

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hradmin/internal/advance"
	"go-hradmin/internal/attendance"
	"go-hradmin/internal/messaging/kafka"
	"go-hradmin/internal/salary"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byID     map[string]*Payroll
	settings *PayrollSettings
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*Payroll{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, p *Payroll) error {
	f.byID[p.ID.String()] = p
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Payroll, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByPeriod(ctx context.Context, userID string, month, year int) ([]Payroll, error) {
	var rows []Payroll
	for _, p := range f.byID {
		if p.UserID.String() == userID && p.Month == month && p.Year == year {
			rows = append(rows, *p)
		}
	}
	return rows, nil
}

func (f *fakeRepo) ListByMonth(ctx context.Context, month, year int) ([]Payroll, error) {
	var rows []Payroll
	for _, p := range f.byID {
		if p.Month == month && p.Year == year {
			rows = append(rows, *p)
		}
	}
	return rows, nil
}

func (f *fakeRepo) Update(ctx context.Context, p *Payroll) error {
	f.byID[p.ID.String()] = p
	return nil
}

func (f *fakeRepo) GetSettings(ctx context.Context) (*PayrollSettings, error) {
	if f.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.settings, nil
}

func (f *fakeRepo) SaveSettings(ctx context.Context, s *PayrollSettings) error {
	f.settings = s
	return nil
}

type fakeSalaryRepo struct {
	salary.Repository
	structure *salary.SalaryStructure
}

func (f *fakeSalaryRepo) FindActiveByUser(ctx context.Context, userID string) (*salary.SalaryStructure, error) {
	if f.structure == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.structure, nil
}

type fakeAttendanceRepo struct {
	attendance.Repository
	rows []attendance.Attendance
}

func (f *fakeAttendanceRepo) ListBetweenDates(ctx context.Context, userID, from, to string) ([]attendance.Attendance, error) {
	return f.rows, nil
}

type fakeAdvanceRepo struct {
	advance.Repository
	advances map[string]*advance.SalaryAdvance
}

func newFakeAdvanceRepo() *fakeAdvanceRepo {
	return &fakeAdvanceRepo{advances: map[string]*advance.SalaryAdvance{}}
}

func (f *fakeAdvanceRepo) WithTx(tx *sql.Tx) advance.Repository { return f }

func (f *fakeAdvanceRepo) FindDeductible(ctx context.Context, userID string, month, year int) ([]advance.SalaryAdvance, error) {
	var rows []advance.SalaryAdvance
	for _, a := range f.advances {
		if a.Status == advance.StatusApproved && a.RemainingAmount > 0 {
			rows = append(rows, *a)
		}
	}
	return rows, nil
}

func (f *fakeAdvanceRepo) Update(ctx context.Context, a *advance.SalaryAdvance) error {
	if existing, ok := f.advances[a.ID.String()]; ok {
		*existing = *a
		return nil
	}
	f.advances[a.ID.String()] = a
	return nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func presentRows(n int) []attendance.Attendance {
	rows := make([]attendance.Attendance, n)
	for i := range rows {
		rows[i] = attendance.Attendance{Status: attendance.StatusPresent}
	}
	return rows
}

func newTestService(t *testing.T, repo *fakeRepo, sr *fakeSalaryRepo, ar *fakeAttendanceRepo, adv *fakeAdvanceRepo, ob *fakeOutbox) (Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	svc := NewService(db, repo, sr, ar, adv, ob).(*service)
	svc.now = func() time.Time { return time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC) }
	return svc, mock, func() { db.Close() }
}

func TestService_Calculate_NoStructure(t *testing.T) {
	svc, _, closeFn := newTestService(t, newFakeRepo(), &fakeSalaryRepo{}, &fakeAttendanceRepo{}, newFakeAdvanceRepo(), &fakeOutbox{})
	defer closeFn()

	_, err := svc.Calculate(context.Background(), uuid.New().String(), 1, 2024)
	assert.ErrorIs(t, err, salary.ErrNoActiveStructure)
}

func TestService_CreateDraft(t *testing.T) {
	repo := newFakeRepo()
	sr := &fakeSalaryRepo{structure: &salary.SalaryStructure{
		UserID: uuid.New(), FixedSalary: 44000, BasicSalary: 22000, IsActive: true,
	}}
	ar := &fakeAttendanceRepo{rows: presentRows(23)}

	svc, mock, closeFn := newTestService(t, repo, sr, ar, newFakeAdvanceRepo(), &fakeOutbox{})
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreatePayrollRequest{
		UserID: uuid.New().String(), Month: 1, Year: 2024,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusDraft, resp.Status)
	assert.Equal(t, 23, resp.WorkingDays)
	assert.Equal(t, 23, resp.PresentDays)
	assert.InDelta(t, 46000, resp.AdjustedSalary, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_NoDuplicateGuard(t *testing.T) {
	repo := newFakeRepo()
	sr := &fakeSalaryRepo{structure: &salary.SalaryStructure{
		UserID: uuid.New(), FixedSalary: 22000, BasicSalary: 11000, IsActive: true,
	}}
	ar := &fakeAttendanceRepo{rows: presentRows(22)}

	svc, mock, closeFn := newTestService(t, repo, sr, ar, newFakeAdvanceRepo(), &fakeOutbox{})
	defer closeFn()

	userID := uuid.New().String()
	req := CreatePayrollRequest{UserID: userID, Month: 1, Year: 2024}

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)

	// A second insert for the same period succeeds; by-period lookups
	// are the caller's duplicate check.
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Create(context.Background(), req)
	assert.NoError(t, err)

	rows, err := svc.GetByPeriod(context.Background(), userID, 1, 2024)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestService_ApproveAndMarkPaid(t *testing.T) {
	repo := newFakeRepo()
	sr := &fakeSalaryRepo{structure: &salary.SalaryStructure{
		UserID: uuid.New(), FixedSalary: 44000, BasicSalary: 22000, IsActive: true,
	}}
	ar := &fakeAttendanceRepo{rows: presentRows(22)}
	advRepo := newFakeAdvanceRepo()
	adv := &advance.SalaryAdvance{
		ID: uuid.New(), UserID: uuid.New(),
		Amount: 5000, MonthlyDeduction: 2000, RemainingAmount: 1500,
		DeductionStartMonth: 1, DeductionStartYear: 2024,
		Status: advance.StatusApproved,
	}
	advRepo.advances[adv.ID.String()] = adv
	outbox := &fakeOutbox{}

	svc, mock, closeFn := newTestService(t, repo, sr, ar, advRepo, outbox)
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), CreatePayrollRequest{
		UserID: uuid.New().String(), Month: 1, Year: 2024,
	})
	assert.NoError(t, err)
	assert.InDelta(t, 1500, created.AdvanceDeduction, 1e-9)

	// Paying an unapproved draft is rejected.
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.MarkPaid(context.Background(), created.ID, uuid.New().String())
	assert.ErrorIs(t, err, ErrPayrollNotPayable)

	mock.ExpectBegin()
	mock.ExpectCommit()
	approved, err := svc.Approve(context.Background(), created.ID, uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	mock.ExpectBegin()
	mock.ExpectCommit()
	paid, err := svc.MarkPaid(context.Background(), created.ID, uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)

	// The advance was drawn down to zero and completed.
	assert.Zero(t, adv.RemainingAmount)
	assert.Equal(t, advance.StatusCompleted, adv.Status)

	// The payroll.paid event rides the outbox.
	assert.Len(t, outbox.events, 1)
	assert.Equal(t, "payroll.paid", outbox.events[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Cancel_PaidRejected(t *testing.T) {
	repo := newFakeRepo()
	row := &Payroll{ID: uuid.New(), UserID: uuid.New(), Month: 1, Year: 2024, Status: StatusPaid}
	repo.byID[row.ID.String()] = row

	svc, mock, closeFn := newTestService(t, repo, &fakeSalaryRepo{}, &fakeAttendanceRepo{}, newFakeAdvanceRepo(), &fakeOutbox{})
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Cancel(context.Background(), row.ID.String())
	assert.ErrorIs(t, err, ErrPayrollNotCancellable)
}

func TestService_Settings_DefaultsAndUpdate(t *testing.T) {
	repo := newFakeRepo()
	svc, _, closeFn := newTestService(t, repo, &fakeSalaryRepo{}, &fakeAttendanceRepo{}, newFakeAdvanceRepo(), &fakeOutbox{})
	defer closeFn()

	settings, err := svc.GetSettings(context.Background())
	assert.NoError(t, err)
	assert.InDelta(t, 0.12, settings.PFRate, 1e-9)
	assert.InDelta(t, 0.0075, settings.ESIRate, 1e-9)
	assert.Equal(t, 22, settings.StandardWorkingDays)

	newRate := 0.0175
	updated, err := svc.UpdateSettings(context.Background(), UpdateSettingsRequest{ESIRate: &newRate})
	assert.NoError(t, err)
	assert.InDelta(t, 0.0175, updated.ESIRate, 1e-9)
	// Untouched fields keep their defaults.
	assert.InDelta(t, 0.12, updated.PFRate, 1e-9)
}
