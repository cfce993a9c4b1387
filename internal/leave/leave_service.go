package leave

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"go-hradmin/internal/attendance"
	"go-hradmin/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"an overlapping leave request already exists",
		http.StatusConflict,
	)
	ErrLeaveNotPending = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not pending",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
)

type Service interface {
	Apply(ctx context.Context, userID string, req ApplyLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, filter QueryFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Approve(ctx context.Context, id, actorID string) (LeaveResponse, error)
	Reject(ctx context.Context, id, actorID string, req RejectLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db             *sql.DB
	repo           Repository
	attendanceRepo attendance.Repository
	now            func() time.Time
}

func NewService(db *sql.DB, repo Repository, attendanceRepo attendance.Repository) Service {
	return &service{
		db:             db,
		repo:           repo,
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

func (s *service) Apply(ctx context.Context, userID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return LeaveResponse{}, apperror.InvalidField("start_date")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return LeaveResponse{}, apperror.InvalidField("end_date")
	}
	if end.Before(start) {
		return LeaveResponse{}, ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlapping, err := qtx.CountOverlapping(ctx, userID, start, end)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlapping > 0 {
		return LeaveResponse{}, ErrLeaveOverlap
	}

	row := &Leave{
		ID:        uuid.New(),
		UserID:    uuid.MustParse(userID),
		Type:      req.Type,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Status:    StatusPending,
	}
	if err := qtx.Create(ctx, row); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, filter QueryFilter) ([]LeaveResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	res := make([]LeaveResponse, len(rows))
	for i, l := range rows {
		res[i] = mapToResponse(l)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Approve(ctx context.Context, id, actorID string) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if row.Status != StatusPending {
		return LeaveResponse{}, ErrLeaveNotPending
	}

	actor := uuid.MustParse(actorID)
	now := s.now().UTC()
	row.Status = StatusApproved
	row.ReviewedBy = &actor
	row.ReviewedAt = &now

	if err := qtx.Update(ctx, row); err != nil {
		return LeaveResponse{}, err
	}
	if err := s.backfillLeaveDays(ctx, s.attendanceRepo.WithTx(tx), row); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*row), nil
}

// backfillLeaveDays writes a leave-status attendance row for every
// working day the approved request covers, so monthly summaries count
// them. Days that already have an attendance record are left alone.
func (s *service) backfillLeaveDays(ctx context.Context, attRepo attendance.Repository, row *Leave) error {
	for d := row.StartDate; !d.After(row.EndDate); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		dateString := d.Format("2006-01-02")

		_, err := attRepo.FindByUserAndDateString(ctx, row.UserID.String(), dateString)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record := &attendance.Attendance{
			ID:         uuid.New(),
			UserID:     row.UserID,
			Date:       d,
			DateString: dateString,
			Status:     attendance.StatusLeave,
		}
		if err := attRepo.Create(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Reject(ctx context.Context, id, actorID string, req RejectLeaveRequest) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if row.Status != StatusPending {
		return LeaveResponse{}, ErrLeaveNotPending
	}

	actor := uuid.MustParse(actorID)
	now := s.now().UTC()
	row.Status = StatusRejected
	row.ReviewedBy = &actor
	row.ReviewedAt = &now
	row.RejectionReason = &req.Reason

	if err := qtx.Update(ctx, row); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*row), nil
}

func mapToResponse(l Leave) LeaveResponse {
	res := LeaveResponse{
		ID:              l.ID.String(),
		UserID:          l.UserID.String(),
		Type:            l.Type,
		StartDate:       l.StartDate.Format("2006-01-02"),
		EndDate:         l.EndDate.Format("2006-01-02"),
		Reason:          l.Reason,
		Status:          l.Status,
		ReviewedAt:      l.ReviewedAt,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt,
	}
	if l.ReviewedBy != nil {
		id := l.ReviewedBy.String()
		res.ReviewedBy = &id
	}
	return res
}
