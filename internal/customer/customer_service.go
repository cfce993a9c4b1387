package customer

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"go-hradmin/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCustomerNotFound = apperror.New(
	apperror.CodeNotFound,
	"customer not found",
	http.StatusNotFound,
)

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error)
	GetAll(ctx context.Context, search string) ([]CustomerResponse, error)
	GetByID(ctx context.Context, id string) (CustomerResponse, error)
	Update(ctx context.Context, id string, req UpdateCustomerRequest) (CustomerResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error) {
	row := &Customer{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Address:   req.Address,
		GSTNumber: req.GSTNumber,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return CustomerResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, search string) ([]CustomerResponse, error) {
	rows, err := s.repo.FindAll(ctx, search)
	if err != nil {
		return nil, err
	}
	res := make([]CustomerResponse, len(rows))
	for i, c := range rows {
		res[i] = mapToResponse(c)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CustomerResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CustomerResponse{}, ErrCustomerNotFound
		}
		return CustomerResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCustomerRequest) (CustomerResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CustomerResponse{}, ErrCustomerNotFound
		}
		return CustomerResponse{}, err
	}

	if req.Name != "" {
		row.Name = req.Name
	}
	if req.Email != "" {
		row.Email = req.Email
	}
	if req.Phone != "" {
		row.Phone = req.Phone
	}
	if req.Company != "" {
		row.Company = req.Company
	}
	if req.Address != "" {
		row.Address = req.Address
	}
	if req.GSTNumber != "" {
		row.GSTNumber = req.GSTNumber
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return CustomerResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func mapToResponse(c Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Address:   c.Address,
		GSTNumber: c.GSTNumber,
		CreatedAt: c.CreatedAt,
	}
}
