package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	usererrors "go-hradmin/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*User{}, byEmail: map[string]*User{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	cp := *u
	f.byID[u.ID.String()] = &cp
	f.byEmail[u.Email] = &cp
	return nil
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}
func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}
func (f *fakeRepo) FindOptions(ctx context.Context) ([]User, error) {
	return f.FindAll(ctx)
}
func (f *fakeRepo) Update(ctx context.Context, u *User) error {
	cp := *u
	f.byID[u.ID.String()] = &cp
	f.byEmail[u.Email] = &cp
	return nil
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if u, ok := f.byID[id]; ok {
		delete(f.byEmail, u.Email)
		delete(f.byID, id)
	}
	return nil
}

type fakeCounter struct {
	last int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.last++
	return f.last, nil
}

func TestService_Create_AssignsEmployeeNumber(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	repo := newFakeRepo()
	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(ctx, "", CreateUserRequest{
		Email:    "asha@example.com",
		Password: "s3cret-pass",
		FullName: "Asha Verma",
		Role:     "employee",
		JoinDate: "2026-03-01",
	})
	assert.NoError(t, err)
	assert.Equal(t, "EMP-0001", resp.EmployeeID)
	assert.True(t, resp.IsActive)

	// The stored password must be a bcrypt hash of the request password.
	stored := repo.byEmail["asha@example.com"]
	assert.True(t, strings.HasPrefix(stored.Password, "$2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret-pass")))

	mock.ExpectBegin()
	mock.ExpectCommit()
	second, err := svc.Create(ctx, "", CreateUserRequest{
		Email:    "rohan@example.com",
		Password: "another-pass",
		FullName: "Rohan Iyer",
		Role:     "admin",
		JoinDate: "2026-03-02",
	})
	assert.NoError(t, err)
	assert.Equal(t, "EMP-0002", second.EmployeeID)
}

func TestService_Create_EmailTaken(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	repo := newFakeRepo()
	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Create(ctx, "", CreateUserRequest{
		Email:    "asha@example.com",
		Password: "s3cret-pass",
		FullName: "Asha Verma",
		Role:     "employee",
		JoinDate: "2026-03-01",
	})
	assert.NoError(t, err)

	_, err = svc.Create(ctx, "", CreateUserRequest{
		Email:    "asha@example.com",
		Password: "other-pass",
		FullName: "Someone Else",
		Role:     "employee",
		JoinDate: "2026-03-05",
	})
	assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
}

func TestService_Create_InvalidJoinDate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo(), &fakeCounter{}, nil)

	_, err := svc.Create(context.Background(), "", CreateUserRequest{
		Email:    "asha@example.com",
		Password: "s3cret-pass",
		FullName: "Asha Verma",
		Role:     "employee",
		JoinDate: "01-03-2026",
	})
	assert.ErrorIs(t, err, usererrors.ErrInvalidJoinDate)
}

func TestService_GetOptions_ServedFromCache(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rdb, rmock := redismock.NewClientMock()

	cached := []UserOption{
		{ID: uuid.New().String(), FullName: "Asha Verma", EmployeeID: "EMP-0001"},
	}
	payload, _ := json.Marshal(cached)
	rmock.ExpectGet(UserOptionsKey).SetVal(string(payload))

	// Repo is empty; a cache hit must not touch it.
	svc := NewService(db, newFakeRepo(), &fakeCounter{}, rdb)

	options, err := svc.GetOptions(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, cached, options)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestService_GetOptions_CacheMissFillsRedis(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rdb, rmock := redismock.NewClientMock()

	repo := newFakeRepo()
	u := &User{
		ID:         uuid.New(),
		Email:      "asha@example.com",
		FullName:   "Asha Verma",
		EmployeeID: "EMP-0001",
		JoinDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
	}
	assert.NoError(t, repo.Create(context.Background(), u))

	expected := []UserOption{
		{ID: u.ID.String(), FullName: "Asha Verma", EmployeeID: "EMP-0001"},
	}
	expectedPayload, _ := json.Marshal(expected)

	rmock.ExpectGet(UserOptionsKey).RedisNil()
	rmock.ExpectSet(UserOptionsKey, expectedPayload, 10*time.Minute).SetVal("OK")

	svc := NewService(db, repo, &fakeCounter{}, rdb)

	options, err := svc.GetOptions(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, options)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestService_Update_PartialFields(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	repo := newFakeRepo()
	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(ctx, "", CreateUserRequest{
		Email:    "asha@example.com",
		Password: "s3cret-pass",
		FullName: "Asha Verma",
		Role:     "employee",
		JoinDate: "2026-03-01",
	})
	assert.NoError(t, err)

	inactive := false
	mock.ExpectBegin()
	mock.ExpectCommit()
	updated, err := svc.Update(ctx, created.ID, UpdateUserRequest{
		Role:     "admin",
		IsActive: &inactive,
	})
	assert.NoError(t, err)
	assert.Equal(t, "admin", updated.Role)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Asha Verma", updated.FullName)
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo(), &fakeCounter{}, nil)

	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}
