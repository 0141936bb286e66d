package mocks

import (
	"context"

	"e-county-api/internal/domain"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendIssueConfirmation(ctx context.Context, toEmail, name string, issue *domain.Issue) error {
	args := m.Called(ctx, toEmail, name, issue)
	return args.Error(0)
}

func (m *EmailService) SendIssueAssignment(ctx context.Context, toEmail, name string, issue *domain.Issue) error {
	args := m.Called(ctx, toEmail, name, issue)
	return args.Error(0)
}

func (m *EmailService) SendStatusUpdate(ctx context.Context, toEmail, name string, issue *domain.Issue, status domain.IssueStatus, comment string) error {
	args := m.Called(ctx, toEmail, name, issue, status, comment)
	return args.Error(0)
}

func (m *EmailService) SendWelcome(ctx context.Context, toEmail, name string, role domain.UserRole) error {
	args := m.Called(ctx, toEmail, name, role)
	return args.Error(0)
}

func (m *EmailService) SendAccountCredentials(ctx context.Context, toEmail, name, email, tempPassword string) error {
	args := m.Called(ctx, toEmail, name, email, tempPassword)
	return args.Error(0)
}

func (m *EmailService) SendAnnouncementPermission(ctx context.Context, toEmail, name string, enabled bool) error {
	args := m.Called(ctx, toEmail, name, enabled)
	return args.Error(0)
}
