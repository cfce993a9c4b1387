package advance

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byID map[string]*SalaryAdvance
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*SalaryAdvance{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, a *SalaryAdvance) error {
	f.byID[a.ID.String()] = a
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*SalaryAdvance, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID string) ([]SalaryAdvance, error) {
	var rows []SalaryAdvance
	for _, a := range f.byID {
		if a.UserID.String() == userID {
			rows = append(rows, *a)
		}
	}
	return rows, nil
}

func (f *fakeRepo) ListByStatus(ctx context.Context, status string) ([]SalaryAdvance, error) {
	var rows []SalaryAdvance
	for _, a := range f.byID {
		if a.Status == status {
			rows = append(rows, *a)
		}
	}
	return rows, nil
}

func (f *fakeRepo) Update(ctx context.Context, a *SalaryAdvance) error {
	f.byID[a.ID.String()] = a
	return nil
}

func (f *fakeRepo) FindDeductible(ctx context.Context, userID string, month, year int) ([]SalaryAdvance, error) {
	var rows []SalaryAdvance
	for _, a := range f.byID {
		if a.UserID.String() != userID || a.Status != StatusApproved || a.RemainingAmount <= 0 {
			continue
		}
		if a.DeductionStartYear < year || (a.DeductionStartYear == year && a.DeductionStartMonth <= month) {
			rows = append(rows, *a)
		}
	}
	return rows, nil
}

func TestService_Create_InitializesRemaining(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo())
	resp, err := svc.Create(context.Background(), CreateAdvanceRequest{
		UserID:              uuid.New().String(),
		Amount:              12000,
		MonthlyDeduction:    2000,
		DeductionStartMonth: 2,
		DeductionStartYear:  2024,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.InDelta(t, 12000, resp.RemainingAmount, 1e-9)
}

func TestService_Create_DeductionTooLarge(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo())
	_, err := svc.Create(context.Background(), CreateAdvanceRequest{
		UserID:              uuid.New().String(),
		Amount:              1000,
		MonthlyDeduction:    2000,
		DeductionStartMonth: 2,
		DeductionStartYear:  2024,
	})
	assert.ErrorIs(t, err, ErrDeductionExceedsAmount)
}

func TestService_ApproveThenReject(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	svc := NewService(db, repo)

	created, err := svc.Create(context.Background(), CreateAdvanceRequest{
		UserID:              uuid.New().String(),
		Amount:              12000,
		MonthlyDeduction:    2000,
		DeductionStartMonth: 2,
		DeductionStartYear:  2024,
	})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	approved, err := svc.Approve(context.Background(), created.ID, uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
	assert.NotNil(t, approved.ReviewedBy)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Reject(context.Background(), created.ID, uuid.New().String())
	assert.ErrorIs(t, err, ErrAdvanceNotPending)
}
