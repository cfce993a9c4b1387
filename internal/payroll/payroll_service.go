package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-hradmin/internal/advance"
	"go-hradmin/internal/attendance"
	"go-hradmin/internal/events"
	"go-hradmin/internal/messaging/kafka"
	"go-hradmin/internal/salary"
	"go-hradmin/internal/shared/apperror"
	"go-hradmin/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrPayrollNotApprovable = apperror.New(
		apperror.CodeInvalidState,
		"payroll cannot be approved in its current status",
		http.StatusUnprocessableEntity,
	)
	ErrPayrollNotPayable = apperror.New(
		apperror.CodeInvalidState,
		"payroll must be approved before it can be paid",
		http.StatusUnprocessableEntity,
	)
	ErrPayrollNotCancellable = apperror.New(
		apperror.CodeInvalidState,
		"a paid payroll cannot be cancelled",
		http.StatusUnprocessableEntity,
	)
)

type Service interface {
	Calculate(ctx context.Context, userID string, month, year int) (PayrollResponse, error)
	Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	GetByPeriod(ctx context.Context, userID string, month, year int) ([]PayrollResponse, error)
	ListByMonth(ctx context.Context, month, year int) ([]PayrollResponse, error)
	Approve(ctx context.Context, id, actorID string) (PayrollResponse, error)
	MarkPaid(ctx context.Context, id, actorID string) (PayrollResponse, error)
	Cancel(ctx context.Context, id string) (PayrollResponse, error)

	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	salaryRepo  salary.Repository
	attRepo     attendance.Repository
	advanceRepo advance.Repository
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	salaryRepo salary.Repository,
	attRepo attendance.Repository,
	advanceRepo advance.Repository,
	outboxRepo kafka.OutboxRepository,
) Service {
	return &service{
		db:          db,
		repo:        repo,
		salaryRepo:  salaryRepo,
		attRepo:     attRepo,
		advanceRepo: advanceRepo,
		outbox:      outboxRepo,
		logger:      zap.L().Named("payroll"),
		now:         time.Now,
	}
}

// effectiveSettings falls back to the statutory defaults when no
// settings row exists.
func (s *service) effectiveSettings(ctx context.Context) (PayrollSettings, error) {
	row, err := s.repo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultSettings(), nil
		}
		return PayrollSettings{}, err
	}
	return *row, nil
}

// compute gathers the inputs for one user-period and runs the pure
// calculation. Nothing is persisted.
func (s *service) compute(ctx context.Context, userID string, month, year int) (Computation, error) {
	structure, err := s.salaryRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Computation{}, salary.ErrNoActiveStructure
		}
		return Computation{}, err
	}

	from, to := attendance.MonthDateRange(month, year)
	rows, err := s.attRepo.ListBetweenDates(ctx, userID, from, to)
	if err != nil {
		return Computation{}, err
	}
	summary := attendance.Summarize(rows, month, year)

	settings, err := s.effectiveSettings(ctx)
	if err != nil {
		return Computation{}, err
	}

	advances, err := s.advanceRepo.FindDeductible(ctx, userID, month, year)
	if err != nil {
		return Computation{}, err
	}

	return Calculate(*structure, summary, settings, advances), nil
}

func (s *service) Calculate(ctx context.Context, userID string, month, year int) (PayrollResponse, error) {
	c, err := s.compute(ctx, userID, month, year)
	if err != nil {
		return PayrollResponse{}, err
	}

	res := computationToResponse(c)
	res.UserID = userID
	res.Month = month
	res.Year = year
	return res, nil
}

func (s *service) Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
	c, err := s.compute(ctx, req.UserID, req.Month, req.Year)
	if err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &Payroll{
		ID:     uuid.New(),
		UserID: uuid.MustParse(req.UserID),
		Month:  req.Month,
		Year:   req.Year,

		WorkingDays:   c.WorkingDays,
		PresentDays:   c.PresentDays,
		LeaveDays:     c.LeaveDays,
		OvertimeHours: c.OvertimeHours,

		FixedSalary:       c.FixedSalary,
		BasicSalary:       c.BasicSalary,
		HRA:               c.HRA,
		Allowances:        c.Allowances,
		VariableComponent: c.VariableComponent,

		AdjustedSalary:   c.AdjustedSalary,
		OvertimePay:      c.OvertimePay,
		GrossSalary:      c.GrossSalary,
		PFDeduction:      c.PFDeduction,
		ESIDeduction:     c.ESIDeduction,
		TDSDeduction:     c.TDSDeduction,
		AdvanceDeduction: c.AdvanceDeduction,
		NetSalary:        c.NetSalary,

		Status: StatusDraft,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("persist payroll draft failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByPeriod(ctx context.Context, userID string, month, year int) ([]PayrollResponse, error) {
	rows, err := s.repo.FindByPeriod(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

func (s *service) ListByMonth(ctx context.Context, month, year int) ([]PayrollResponse, error) {
	rows, err := s.repo.ListByMonth(ctx, month, year)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

func (s *service) Approve(ctx context.Context, id, actorID string) (PayrollResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	if row.Status != StatusDraft && row.Status != StatusPending {
		return PayrollResponse{}, ErrPayrollNotApprovable
	}

	actor := uuid.MustParse(actorID)
	now := s.now().UTC()
	row.Status = StatusApproved
	row.ApprovedBy = &actor
	row.ApprovedAt = &now

	if err := qtx.Update(ctx, row); err != nil {
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*row), nil
}

// MarkPaid finalizes an approved payroll: advance balances are drawn
// down and a payroll.paid event joins the same transaction through the
// outbox.
func (s *service) MarkPaid(ctx context.Context, id, actorID string) (PayrollResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	if row.Status != StatusApproved {
		return PayrollResponse{}, ErrPayrollNotPayable
	}

	actor := uuid.MustParse(actorID)
	now := s.now().UTC()
	row.Status = StatusPaid
	row.PaidBy = &actor
	row.PaidAt = &now

	if err := qtx.Update(ctx, row); err != nil {
		return PayrollResponse{}, err
	}

	if err := s.applyAdvanceDeductions(ctx, tx, row); err != nil {
		return PayrollResponse{}, err
	}

	if s.outbox != nil {
		payload, err := json.Marshal(events.PayrollPaidEvent{
			EventType:  "payroll.paid",
			PayrollID:  row.ID.String(),
			UserID:     row.UserID.String(),
			Month:      row.Month,
			Year:       row.Year,
			NetSalary:  row.NetSalary,
			PaidBy:     actorID,
			OccurredAt: now,
		})
		if err != nil {
			return PayrollResponse{}, err
		}

		err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "payroll",
			AggregateID:   row.ID.String(),
			EventType:     "payroll.paid",
			Topic:         events.PayrollPaidTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
		if err != nil {
			s.logger.Error("payroll paid outbox failed", zap.Error(err))
			return PayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*row), nil
}

// applyAdvanceDeductions draws one installment from each deductible
// advance, completing any that reach zero.
func (s *service) applyAdvanceDeductions(ctx context.Context, tx *sql.Tx, row *Payroll) error {
	advRepo := s.advanceRepo.WithTx(tx)
	advances, err := advRepo.FindDeductible(ctx, row.UserID.String(), row.Month, row.Year)
	if err != nil {
		return err
	}

	for i := range advances {
		a := advances[i]
		installment := a.MonthlyDeduction
		if installment > a.RemainingAmount {
			installment = a.RemainingAmount
		}
		a.RemainingAmount -= installment
		if a.RemainingAmount <= 0 {
			a.RemainingAmount = 0
			a.Status = advance.StatusCompleted
		}
		if err := advRepo.Update(ctx, &a); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Cancel(ctx context.Context, id string) (PayrollResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	if row.Status == StatusPaid {
		return PayrollResponse{}, ErrPayrollNotCancellable
	}

	row.Status = StatusCancelled
	if err := qtx.Update(ctx, row); err != nil {
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetSettings(ctx context.Context) (SettingsResponse, error) {
	settings, err := s.effectiveSettings(ctx)
	if err != nil {
		return SettingsResponse{}, err
	}
	return mapSettingsToResponse(settings), nil
}

func (s *service) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error) {
	row, err := s.repo.GetSettings(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return SettingsResponse{}, err
		}
		defaults := DefaultSettings()
		defaults.ID = uuid.New()
		row = &defaults
	}

	if req.PFRate != nil {
		row.PFRate = *req.PFRate
	}
	if req.PFGrossThreshold != nil {
		row.PFGrossThreshold = *req.PFGrossThreshold
	}
	if req.ESIRate != nil {
		row.ESIRate = *req.ESIRate
	}
	if req.ESIGrossThreshold != nil {
		row.ESIGrossThreshold = *req.ESIGrossThreshold
	}
	if req.TDSRate != nil {
		row.TDSRate = *req.TDSRate
	}
	if req.StandardWorkingDays != nil {
		row.StandardWorkingDays = *req.StandardWorkingDays
	}
	if req.StandardHours != nil {
		row.StandardHours = *req.StandardHours
	}
	if req.OvertimeMultiplier != nil {
		row.OvertimeMultiplier = *req.OvertimeMultiplier
	}

	if err := s.repo.SaveSettings(ctx, row); err != nil {
		return SettingsResponse{}, err
	}
	return mapSettingsToResponse(*row), nil
}

func mapAll(rows []Payroll) []PayrollResponse {
	res := make([]PayrollResponse, len(rows))
	for i, p := range rows {
		res[i] = mapToResponse(p)
	}
	return res
}

func computationToResponse(c Computation) PayrollResponse {
	return PayrollResponse{
		WorkingDays:   c.WorkingDays,
		PresentDays:   c.PresentDays,
		LeaveDays:     c.LeaveDays,
		OvertimeHours: c.OvertimeHours,

		FixedSalary:       c.FixedSalary,
		BasicSalary:       c.BasicSalary,
		HRA:               c.HRA,
		Allowances:        c.Allowances,
		VariableComponent: c.VariableComponent,

		AdjustedSalary:   c.AdjustedSalary,
		OvertimePay:      c.OvertimePay,
		GrossSalary:      c.GrossSalary,
		PFDeduction:      c.PFDeduction,
		ESIDeduction:     c.ESIDeduction,
		TDSDeduction:     c.TDSDeduction,
		AdvanceDeduction: c.AdvanceDeduction,
		NetSalary:        c.NetSalary,
	}
}

func mapToResponse(p Payroll) PayrollResponse {
	res := PayrollResponse{
		ID:     p.ID.String(),
		UserID: p.UserID.String(),
		Month:  p.Month,
		Year:   p.Year,

		WorkingDays:   p.WorkingDays,
		PresentDays:   p.PresentDays,
		LeaveDays:     p.LeaveDays,
		OvertimeHours: p.OvertimeHours,

		FixedSalary:       p.FixedSalary,
		BasicSalary:       p.BasicSalary,
		HRA:               p.HRA,
		Allowances:        p.Allowances,
		VariableComponent: p.VariableComponent,

		AdjustedSalary:   p.AdjustedSalary,
		OvertimePay:      p.OvertimePay,
		GrossSalary:      p.GrossSalary,
		PFDeduction:      p.PFDeduction,
		ESIDeduction:     p.ESIDeduction,
		TDSDeduction:     p.TDSDeduction,
		AdvanceDeduction: p.AdvanceDeduction,
		NetSalary:        p.NetSalary,

		Status:     p.Status,
		ApprovedAt: p.ApprovedAt,
		PaidAt:     p.PaidAt,
		CreatedAt:  p.CreatedAt,
	}
	if p.ApprovedBy != nil {
		id := p.ApprovedBy.String()
		res.ApprovedBy = &id
	}
	if p.PaidBy != nil {
		id := p.PaidBy.String()
		res.PaidBy = &id
	}
	return res
}

func mapSettingsToResponse(s PayrollSettings) SettingsResponse {
	return SettingsResponse{
		PFRate:              s.PFRate,
		PFGrossThreshold:    s.PFGrossThreshold,
		ESIRate:             s.ESIRate,
		ESIGrossThreshold:   s.ESIGrossThreshold,
		TDSRate:             s.TDSRate,
		StandardWorkingDays: s.StandardWorkingDays,
		StandardHours:       s.StandardHours,
		OvertimeMultiplier:  s.OvertimeMultiplier,
	}
}
