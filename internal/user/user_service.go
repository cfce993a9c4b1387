package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hradmin/internal/events"
	"go-hradmin/internal/messaging/kafka"
	"go-hradmin/internal/shared/contextutil"
	"go-hradmin/internal/shared/counter"
	usererrors "go-hradmin/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const UserOptionsKey = "users:options"

type Service interface {
	Create(ctx context.Context, actorID string, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetOptions(ctx context.Context) ([]UserOption, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counterRepo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateUserRequest) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create user requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidJoinDate
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return UserResponse{}, usererrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	nextVal, err := s.counter.GetNextValue(ctx, "employee_number")
	if err != nil {
		s.logger.Error("create user generate employee number failed", zap.Error(err))
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		ID:         uuid.New(),
		Email:      req.Email,
		Password:   string(hashed),
		FullName:   req.FullName,
		Role:       req.Role,
		EmployeeID: fmt.Sprintf("EMP-%04d", nextVal),
		JoinDate:   joinDate,
		IsActive:   true,
	}
	if err := applyOptionalRefs(u, req.DepartmentID, req.DesignationID, req.ReportingManagerID); err != nil {
		return UserResponse{}, err
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	// Outbox entry rides the same transaction as the insert.
	if s.outbox != nil {
		payload, err := json.Marshal(events.UserCreatedEvent{
			EventType:  "user.created",
			UserID:     u.ID.String(),
			EmployeeID: u.EmployeeID,
			Role:       u.Role,
			OccurredAt: time.Now().UTC(),
		})
		if err != nil {
			return UserResponse{}, err
		}

		err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     rid,
			AggregateType: "user",
			AggregateID:   u.ID.String(),
			EventType:     "user.created",
			Topic:         events.UserCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
		if err != nil {
			s.logger.Error("create user outbox failed", zap.Error(err))
			return UserResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create user commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create user success",
		zap.String("user_id", u.ID.String()),
		zap.String("employee_id", u.EmployeeID),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = mapToResponse(u)
	}
	return res, nil
}

// GetOptions serves the select-input list from Redis; cache misses are
// coalesced through singleflight so one DB query refills the key.
func (s *service) GetOptions(ctx context.Context) ([]UserOption, error) {
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, UserOptionsKey).Result(); err == nil {
			var cached []UserOption
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	v, err, _ := s.sf.Do(UserOptionsKey, func() (interface{}, error) {
		users, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}

		options := make([]UserOption, len(users))
		for i, u := range users {
			options[i] = UserOption{
				ID:         u.ID.String(),
				FullName:   u.FullName,
				EmployeeID: u.EmployeeID,
			}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(options); err == nil {
				_ = s.rdb.Set(ctx, UserOptionsKey, payload, 10*time.Minute).Err()
			}
		}
		return options, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]UserOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Role != "" {
		u.Role = req.Role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if err := applyOptionalRefs(u, req.DepartmentID, req.DesignationID, req.ReportingManagerID); err != nil {
		return UserResponse{}, err
	}

	if err := qtx.Update(ctx, u); err != nil {
		return UserResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, UserOptionsKey).Err(); err != nil {
		s.logger.Warn("invalidate user options cache failed", zap.Error(err))
	}
}

func applyOptionalRefs(u *User, departmentID, designationID, managerID *string) error {
	if departmentID != nil && *departmentID != "" {
		id, err := uuid.Parse(*departmentID)
		if err != nil {
			return usererrors.ErrInvalidUserID
		}
		u.DepartmentID = &id
	}
	if designationID != nil && *designationID != "" {
		id, err := uuid.Parse(*designationID)
		if err != nil {
			return usererrors.ErrInvalidUserID
		}
		u.DesignationID = &id
	}
	if managerID != nil && *managerID != "" {
		id, err := uuid.Parse(*managerID)
		if err != nil {
			return usererrors.ErrInvalidUserID
		}
		u.ReportingManagerID = &id
	}
	return nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role,
		EmployeeID: u.EmployeeID,
		JoinDate:   u.JoinDate.Format("2006-01-02"),
		IsActive:   u.IsActive,
	}
	if u.DepartmentID != nil {
		v := u.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if u.DesignationID != nil {
		v := u.DesignationID.String()
		resp.DesignationID = &v
	}
	if u.ReportingManagerID != nil {
		v := u.ReportingManagerID.String()
		resp.ReportingManagerID = &v
	}
	return resp
}
