package mocks

import (
	"context"

	"e-county-api/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepository) List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *UserRepository) ListOfficers(ctx context.Context, departmentID *uuid.UUID) ([]domain.User, error) {
	args := m.Called(ctx, departmentID)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *UserRepository) FirstActiveOfficer(ctx context.Context, departmentID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) SetAnnouncementPermission(ctx context.Context, id uuid.UUID, allowed bool) error {
	args := m.Called(ctx, id, allowed)
	return args.Error(0)
}

func (m *UserRepository) CountByRole(ctx context.Context, role *domain.UserRole) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}
