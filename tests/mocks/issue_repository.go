package mocks

import (
	"context"

	"e-county-api/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type IssueRepository struct {
	mock.Mock
}

func (m *IssueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *IssueRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *IssueRepository) AppendUpdate(ctx context.Context, update *domain.IssueUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *IssueRepository) SetFeedback(ctx context.Context, issueID uuid.UUID, fb domain.IssueFeedback) error {
	args := m.Called(ctx, issueID, fb)
	return args.Error(0)
}

func (m *IssueRepository) List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams) ([]domain.Issue, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Issue), args.Get(1).(int64), args.Error(2)
}

func (m *IssueRepository) ListForOfficer(ctx context.Context, officerID uuid.UUID, departmentID *uuid.UUID, status *domain.IssueStatus, params domain.PaginationParams) ([]domain.Issue, int64, error) {
	args := m.Called(ctx, officerID, departmentID, status, params)
	return args.Get(0).([]domain.Issue), args.Get(1).(int64), args.Error(2)
}

func (m *IssueRepository) ListAll(ctx context.Context) ([]domain.Issue, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Issue), args.Error(1)
}

func (m *IssueRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *IssueRepository) CountByStatuses(ctx context.Context, statuses []domain.IssueStatus) (int64, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func (m *IssueRepository) CountForOfficer(ctx context.Context, officerID uuid.UUID, status *domain.IssueStatus) (int64, error) {
	args := m.Called(ctx, officerID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *IssueRepository) AvgResolutionDays(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}
