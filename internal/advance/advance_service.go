package advance

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"go-hradmin/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAdvanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary advance not found",
		http.StatusNotFound,
	)
	ErrAdvanceNotPending = apperror.New(
		apperror.CodeInvalidState,
		"salary advance is not pending",
		http.StatusUnprocessableEntity,
	)
	ErrDeductionExceedsAmount = apperror.New(
		apperror.CodeInvalidInput,
		"monthly_deduction cannot exceed the advance amount",
		http.StatusBadRequest,
	)
)

type Service interface {
	Create(ctx context.Context, req CreateAdvanceRequest) (AdvanceResponse, error)
	GetByID(ctx context.Context, id string) (AdvanceResponse, error)
	ListByUser(ctx context.Context, userID string) ([]AdvanceResponse, error)
	ListPending(ctx context.Context) ([]AdvanceResponse, error)
	Approve(ctx context.Context, id, actorID string) (AdvanceResponse, error)
	Reject(ctx context.Context, id, actorID string) (AdvanceResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
	now  func() time.Time
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateAdvanceRequest) (AdvanceResponse, error) {
	if req.MonthlyDeduction > req.Amount {
		return AdvanceResponse{}, ErrDeductionExceedsAmount
	}

	row := &SalaryAdvance{
		ID:                  uuid.New(),
		UserID:              uuid.MustParse(req.UserID),
		Amount:              req.Amount,
		MonthlyDeduction:    req.MonthlyDeduction,
		RemainingAmount:     req.Amount,
		DeductionStartMonth: req.DeductionStartMonth,
		DeductionStartYear:  req.DeductionStartYear,
		Status:              StatusPending,
		Reason:              req.Reason,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return AdvanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AdvanceResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdvanceResponse{}, ErrAdvanceNotFound
		}
		return AdvanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]AdvanceResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

func (s *service) ListPending(ctx context.Context) ([]AdvanceResponse, error) {
	rows, err := s.repo.ListByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

func (s *service) Approve(ctx context.Context, id, actorID string) (AdvanceResponse, error) {
	return s.review(ctx, id, actorID, StatusApproved)
}

func (s *service) Reject(ctx context.Context, id, actorID string) (AdvanceResponse, error) {
	return s.review(ctx, id, actorID, StatusRejected)
}

func (s *service) review(ctx context.Context, id, actorID, status string) (AdvanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AdvanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdvanceResponse{}, ErrAdvanceNotFound
		}
		return AdvanceResponse{}, err
	}
	if row.Status != StatusPending {
		return AdvanceResponse{}, ErrAdvanceNotPending
	}

	actor := uuid.MustParse(actorID)
	now := s.now().UTC()
	row.Status = status
	row.ReviewedBy = &actor
	row.ReviewedAt = &now

	if err := qtx.Update(ctx, row); err != nil {
		return AdvanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AdvanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func mapAll(rows []SalaryAdvance) []AdvanceResponse {
	res := make([]AdvanceResponse, len(rows))
	for i, a := range rows {
		res[i] = mapToResponse(a)
	}
	return res
}

func mapToResponse(a SalaryAdvance) AdvanceResponse {
	res := AdvanceResponse{
		ID:                  a.ID.String(),
		UserID:              a.UserID.String(),
		Amount:              a.Amount,
		MonthlyDeduction:    a.MonthlyDeduction,
		RemainingAmount:     a.RemainingAmount,
		DeductionStartMonth: a.DeductionStartMonth,
		DeductionStartYear:  a.DeductionStartYear,
		Status:              a.Status,
		Reason:              a.Reason,
		ReviewedAt:          a.ReviewedAt,
		CreatedAt:           a.CreatedAt,
	}
	if a.ReviewedBy != nil {
		id := a.ReviewedBy.String()
		res.ReviewedBy = &id
	}
	return res
}
