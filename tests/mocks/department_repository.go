package mocks

import (
	"context"

	"e-county-api/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type DepartmentRepository struct {
	mock.Mock
}

func (m *DepartmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	args := m.Called(ctx, dept)
	return args.Error(0)
}

func (m *DepartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *DepartmentRepository) GetActiveByName(ctx context.Context, name string) (*domain.Department, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *DepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *DepartmentRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
