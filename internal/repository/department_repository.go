package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"e-county-api/internal/domain"
)

type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	GetActiveByName(ctx context.Context, name string) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Count(ctx context.Context) (int64, error)
}

type departmentRepository struct {
	db *sqlx.DB
}

func NewDepartmentRepository(db *sqlx.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	query := `
		INSERT INTO departments (department_id, name, description, email, phone, manager_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		dept.ID, dept.Name, dept.Description, dept.Email, dept.Phone, dept.ManagerID, dept.IsActive,
	).Scan(&dept.CreatedAt, &dept.UpdatedAt)
}

func (r *departmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	var dept domain.Department
	query := `SELECT * FROM departments WHERE department_id = $1`

	err := r.db.GetContext(ctx, &dept, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) GetActiveByName(ctx context.Context, name string) (*domain.Department, error) {
	var dept domain.Department
	query := `SELECT * FROM departments WHERE name = $1 AND is_active = TRUE`

	err := r.db.GetContext(ctx, &dept, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	var depts []domain.Department
	query := `SELECT * FROM departments WHERE is_active = TRUE ORDER BY name ASC`
	err := r.db.SelectContext(ctx, &depts, query)
	return depts, err
}

func (r *departmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM departments`)
	return count, err
}
