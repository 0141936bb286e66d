package mocks

import (
	"context"

	"e-county-api/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type AnnouncementRepository struct {
	mock.Mock
}

func (m *AnnouncementRepository) Create(ctx context.Context, ann *domain.Announcement) error {
	args := m.Called(ctx, ann)
	return args.Error(0)
}

func (m *AnnouncementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Announcement), args.Error(1)
}

func (m *AnnouncementRepository) IncrementViewAndGet(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Announcement), args.Error(1)
}

func (m *AnnouncementRepository) Update(ctx context.Context, ann *domain.Announcement) error {
	args := m.Called(ctx, ann)
	return args.Error(0)
}

func (m *AnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AnnouncementRepository) ListPublished(ctx context.Context, visibleTo []domain.Visibility, params domain.PaginationParams) ([]domain.Announcement, int64, error) {
	args := m.Called(ctx, visibleTo, params)
	return args.Get(0).([]domain.Announcement), args.Get(1).(int64), args.Error(2)
}

func (m *AnnouncementRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, params domain.PaginationParams) ([]domain.Announcement, int64, error) {
	args := m.Called(ctx, authorID, params)
	return args.Get(0).([]domain.Announcement), args.Get(1).(int64), args.Error(2)
}
