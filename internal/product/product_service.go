package product

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"go-hradmin/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProductNotFound = apperror.New(
	apperror.CodeNotFound,
	"product not found",
	http.StatusNotFound,
)

type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	GetAll(ctx context.Context, activeOnly bool) ([]ProductResponse, error)
	GetByID(ctx context.Context, id string) (ProductResponse, error)
	Update(ctx context.Context, id string, req UpdateProductRequest) (ProductResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error) {
	unit := req.Unit
	if unit == "" {
		unit = "piece"
	}

	row := &Product{
		ID:          uuid.New(),
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Unit:        unit,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return ProductResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, activeOnly bool) ([]ProductResponse, error) {
	rows, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	res := make([]ProductResponse, len(rows))
	for i, p := range rows {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProductResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductResponse{}, ErrProductNotFound
		}
		return ProductResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProductRequest) (ProductResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductResponse{}, ErrProductNotFound
		}
		return ProductResponse{}, err
	}

	if req.Name != "" {
		row.Name = req.Name
	}
	if req.SKU != "" {
		row.SKU = req.SKU
	}
	if req.Description != "" {
		row.Description = req.Description
	}
	if req.UnitPrice != nil {
		row.UnitPrice = *req.UnitPrice
	}
	if req.Unit != "" {
		row.Unit = req.Unit
	}
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return ProductResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func mapToResponse(p Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		Unit:        p.Unit,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}
