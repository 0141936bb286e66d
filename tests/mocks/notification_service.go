package mocks

import (
	"context"

	"e-county-api/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, recipient uuid.UUID, isRead *bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, recipient, isRead, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) UnreadCount(ctx context.Context, recipient uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipient)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id, recipient uuid.UUID) error {
	args := m.Called(ctx, id, recipient)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, recipient uuid.UUID) error {
	args := m.Called(ctx, recipient)
	return args.Error(0)
}

func (m *NotificationService) Delete(ctx context.Context, id, recipient uuid.UUID) error {
	args := m.Called(ctx, id, recipient)
	return args.Error(0)
}

func (m *NotificationService) NotifyIssueSubmitted(ctx context.Context, issue *domain.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *NotificationService) NotifyIssueAssigned(ctx context.Context, issue *domain.Issue, officerID uuid.UUID) error {
	args := m.Called(ctx, issue, officerID)
	return args.Error(0)
}

func (m *NotificationService) NotifyStatusUpdated(ctx context.Context, issue *domain.Issue, status domain.IssueStatus, comment string) error {
	args := m.Called(ctx, issue, status, comment)
	return args.Error(0)
}
