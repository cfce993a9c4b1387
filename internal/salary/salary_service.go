package salary

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

var ErrNoActiveStructure = apperror.New(
	apperror.CodeNotFound,
	"no active salary structure for user",
	http.StatusNotFound,
)

type Service interface {
	Create(ctx context.Context, req CreateStructureRequest) (StructureResponse, error)
	GetActiveByUser(ctx context.Context, userID string) (StructureResponse, error)
	ListByUser(ctx context.Context, userID string) ([]StructureResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

// Create persists a new structure and retires the user's previous
// active ones in the same transaction.
func (s *service) Create(ctx context.Context, req CreateStructureRequest) (StructureResponse, error) {
	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return StructureResponse{}, apperror.InvalidField("effective_from")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.DeactivateByUser(ctx, req.UserID, effectiveFrom); err != nil {
		return StructureResponse{}, err
	}

	row := &SalaryStructure{
		ID:                uuid.New(),
		UserID:            uuid.MustParse(req.UserID),
		FixedSalary:       req.FixedSalary,
		BasicSalary:       req.BasicSalary,
		HRA:               req.HRA,
		Allowances:        req.Allowances,
		VariableComponent: req.VariableComponent,
		EffectiveFrom:     effectiveFrom,
		IsActive:          true,
	}
	if err := qtx.Create(ctx, row); err != nil {
		return StructureResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return StructureResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetActiveByUser(ctx context.Context, userID string) (StructureResponse, error) {
	row, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StructureResponse{}, ErrNoActiveStructure
		}
		return StructureResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]StructureResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]StructureResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func mapToResponse(s SalaryStructure) StructureResponse {
	res := StructureResponse{
		ID:                s.ID.String(),
		UserID:            s.UserID.String(),
		FixedSalary:       s.FixedSalary,
		BasicSalary:       s.BasicSalary,
		HRA:               s.HRA,
		Allowances:        s.Allowances,
		VariableComponent: s.VariableComponent,
		EffectiveFrom:     s.EffectiveFrom.Format("2006-01-02"),
		IsActive:          s.IsActive,
		CreatedAt:         s.CreatedAt,
	}
	if s.EffectiveTo != nil {
		v := s.EffectiveTo.Format("2006-01-02")
		res.EffectiveTo = &v
	}
	return res
}
