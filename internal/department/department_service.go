package department

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"go-hradmin/internal/domain"
	"go-hradmin/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	errDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	errDesignationNotFound = apperror.New(
		apperror.CodeNotFound,
		"designation not found",
		http.StatusNotFound,
	)
)

type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error

	CreateDesignation(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error)
	GetDesignations(ctx context.Context, departmentID string) ([]DesignationResponse, error)
	UpdateDesignation(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error)
	DeleteDesignation(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Permissions: domain.StringList(req.Permissions),
	}

	if err := qtx.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, errDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, errDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	if req.Name != "" {
		dept.Name = req.Name
	}
	if req.Description != "" {
		dept.Description = req.Description
	}
	if req.Permissions != nil {
		dept.Permissions = domain.StringList(req.Permissions)
	}

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
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

	return tx.Commit()
}

func (s *service) CreateDesignation(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error) {
	if _, err := s.repo.FindByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DesignationResponse{}, errDepartmentNotFound
		}
		return DesignationResponse{}, err
	}

	d := &Designation{
		ID:           uuid.New(),
		DepartmentID: uuid.MustParse(req.DepartmentID),
		Name:         req.Name,
		Level:        req.Level,
		Permissions:  domain.StringList(req.Permissions),
	}

	if err := s.repo.CreateDesignation(ctx, d); err != nil {
		return DesignationResponse{}, err
	}

	return mapDesignationToResponse(*d), nil
}

func (s *service) GetDesignations(ctx context.Context, departmentID string) ([]DesignationResponse, error) {
	designations, err := s.repo.FindDesignationsByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	res := make([]DesignationResponse, len(designations))
	for i, d := range designations {
		res[i] = mapDesignationToResponse(d)
	}
	return res, nil
}

func (s *service) UpdateDesignation(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error) {
	d, err := s.repo.FindDesignationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DesignationResponse{}, errDesignationNotFound
		}
		return DesignationResponse{}, err
	}

	if req.Name != "" {
		d.Name = req.Name
	}
	if req.Level > 0 {
		d.Level = req.Level
	}
	if req.Permissions != nil {
		d.Permissions = domain.StringList(req.Permissions)
	}

	if err := s.repo.UpdateDesignation(ctx, d); err != nil {
		return DesignationResponse{}, err
	}

	return mapDesignationToResponse(*d), nil
}

func (s *service) DeleteDesignation(ctx context.Context, id string) error {
	return s.repo.DeleteDesignation(ctx, id)
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          dept.ID.String(),
		Name:        dept.Name,
		Description: dept.Description,
		Permissions: []string(dept.Permissions),
	}
}

func mapDesignationToResponse(d Designation) DesignationResponse {
	return DesignationResponse{
		ID:           d.ID.String(),
		DepartmentID: d.DepartmentID.String(),
		Name:         d.Name,
		Level:        d.Level,
		Permissions:  []string(d.Permissions),
	}
}
