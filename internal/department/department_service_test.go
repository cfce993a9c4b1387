package department

import (
	"context"
	"database/sql"
	"testing"

	"go-hradmin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                       func(tx *sql.Tx) Repository
	createFn                       func(ctx context.Context, dept *Department) error
	findAllFn                      func(ctx context.Context) ([]Department, error)
	findByIDFn                     func(ctx context.Context, id string) (*Department, error)
	updateFn                       func(ctx context.Context, dept *Department) error
	deleteFn                       func(ctx context.Context, id string) error
	createDesignationFn            func(ctx context.Context, d *Designation) error
	findDesignationsByDepartmentFn func(ctx context.Context, departmentID string) ([]Designation, error)
	findDesignationByIDFn          func(ctx context.Context, id string) (*Designation, error)
	updateDesignationFn            func(ctx context.Context, d *Designation) error
	deleteDesignationFn            func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, dept *Department) error {
	return f.createFn(ctx, dept)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Department, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Department, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, dept *Department) error {
	return f.updateFn(ctx, dept)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }
func (f *fakeRepo) CreateDesignation(ctx context.Context, d *Designation) error {
	return f.createDesignationFn(ctx, d)
}
func (f *fakeRepo) FindDesignationsByDepartment(ctx context.Context, departmentID string) ([]Designation, error) {
	return f.findDesignationsByDepartmentFn(ctx, departmentID)
}
func (f *fakeRepo) FindDesignationByID(ctx context.Context, id string) (*Designation, error) {
	return f.findDesignationByIDFn(ctx, id)
}
func (f *fakeRepo) UpdateDesignation(ctx context.Context, d *Designation) error {
	return f.updateDesignationFn(ctx, d)
}
func (f *fakeRepo) DeleteDesignation(ctx context.Context, id string) error {
	return f.deleteDesignationFn(ctx, id)
}

func TestService_CreateDepartment(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	var saved Department
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, dept *Department) error { saved = *dept; return nil }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(ctx, CreateDepartmentRequest{
		Name:        "Engineering",
		Description: "builds the product",
		Permissions: []string{domain.PermAttendView, domain.PermLeaveApply},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Engineering", resp.Name)
	assert.Equal(t, []string{domain.PermAttendView, domain.PermLeaveApply}, resp.Permissions)
	assert.Equal(t, saved.ID.String(), resp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Department, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)
	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, errDepartmentNotFound)
}

func TestService_UpdateDepartment_PartialFields(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	existing := Department{
		ID:          uuid.New(),
		Name:        "Sales",
		Description: "old",
		Permissions: domain.StringList{domain.PermCRMView},
	}

	var saved Department
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Department, error) {
		d := existing
		return &d, nil
	}
	repo.updateFn = func(ctx context.Context, dept *Department) error { saved = *dept; return nil }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), existing.ID.String(), UpdateDepartmentRequest{
		Description: "owns the pipeline",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Sales", resp.Name)
	assert.Equal(t, "owns the pipeline", resp.Description)
	assert.Equal(t, []string{domain.PermCRMView}, []string(saved.Permissions))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CreateDesignation_UnknownDepartment(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Department, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)
	_, err := svc.CreateDesignation(context.Background(), CreateDesignationRequest{
		DepartmentID: uuid.New().String(),
		Name:         "Senior Engineer",
		Level:        3,
	})
	assert.ErrorIs(t, err, errDepartmentNotFound)
}

func TestService_CreateDesignation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	deptID := uuid.New()
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Department, error) {
		return &Department{ID: deptID, Name: "Engineering"}, nil
	}
	var saved Designation
	repo.createDesignationFn = func(ctx context.Context, d *Designation) error { saved = *d; return nil }

	svc := NewService(db, repo)
	resp, err := svc.CreateDesignation(context.Background(), CreateDesignationRequest{
		DepartmentID: deptID.String(),
		Name:         "Team Lead",
		Level:        4,
		Permissions:  []string{domain.PermLeaveApprove},
	})
	assert.NoError(t, err)
	assert.Equal(t, deptID.String(), resp.DepartmentID)
	assert.Equal(t, 4, resp.Level)
	assert.Equal(t, []string{domain.PermLeaveApprove}, []string(saved.Permissions))
}
