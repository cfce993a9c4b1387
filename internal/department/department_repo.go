package department

import (
	"context"
	"database/sql"

	"go-hradmin/internal/shared/connection"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id string) (*Department, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id string) error

	CreateDesignation(ctx context.Context, d *Designation) error
	FindDesignationsByDepartment(ctx context.Context, departmentID string) ([]Designation, error)
	FindDesignationByID(ctx context.Context, id string) (*Designation, error)
	UpdateDesignation(ctx context.Context, d *Designation) error
	DeleteDesignation(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).Order("name").Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Department{}, "id = ?", id).Error
}

func (r *repository) CreateDesignation(ctx context.Context, d *Designation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindDesignationsByDepartment(ctx context.Context, departmentID string) ([]Designation, error) {
	var designations []Designation
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("level, name").
		Find(&designations).Error
	return designations, err
}

func (r *repository) FindDesignationByID(ctx context.Context, id string) (*Designation, error) {
	var d Designation
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) UpdateDesignation(ctx context.Context, d *Designation) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) DeleteDesignation(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Designation{}, "id = ?", id).Error
}
