package unit_test

import (
	"context"
	"testing"
	"time"

	"e-county-api/internal/domain"
	"e-county-api/internal/service/notification"
	"e-county-api/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotificationService_NotifyIssueSubmitted(t *testing.T) {
	ctx := context.Background()

	mockNotifRepo := new(mocks.NotificationRepository)
	mockUserRepo := new(mocks.UserRepository)
	mockEmail := new(mocks.EmailService)
	svc := notification.NewService(mockNotifRepo, mockUserRepo, mockEmail)

	reporterID := uuid.New()
	reporter := &domain.User{ID: reporterID, Email: "jane@example.com", FirstName: "Jane", LastName: "Moraa"}
	issue := &domain.Issue{ID: uuid.New(), Title: "Pothole", ReportedBy: reporterID}

	mockUserRepo.On("GetByID", ctx, reporterID).Return(reporter, nil).Once()
	mockNotifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Recipient == reporterID &&
			n.Type == domain.NotifIssueSubmitted &&
			n.IssueID != nil && *n.IssueID == issue.ID
	})).Return(nil).Once()
	mockEmail.On("SendIssueConfirmation", mock.Anything, "jane@example.com", "Jane", issue).Return(nil).Maybe()
	mockNotifRepo.On("MarkEmailSent", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil).Maybe()

	err := svc.NotifyIssueSubmitted(ctx, issue)

	assert.NoError(t, err)
	mockNotifRepo.AssertExpectations(t)
}

func TestNotificationService_NotifyStatusUpdated_Resolved(t *testing.T) {
	ctx := context.Background()

	mockNotifRepo := new(mocks.NotificationRepository)
	mockUserRepo := new(mocks.UserRepository)
	mockEmail := new(mocks.EmailService)
	svc := notification.NewService(mockNotifRepo, mockUserRepo, mockEmail)

	reporterID := uuid.New()
	reporter := &domain.User{ID: reporterID, Email: "jane@example.com", FirstName: "Jane", LastName: "Moraa"}
	now := time.Now()
	issue := &domain.Issue{ID: uuid.New(), Title: "Pothole", ReportedBy: reporterID, Status: domain.StatusResolved, ResolvedAt: &now}

	mockUserRepo.On("GetByID", ctx, reporterID).Return(reporter, nil).Once()

	// Resolution produces both a resolved notification and a feedback
	// request.
	mockNotifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotifResolved
	})).Return(nil).Once()
	mockNotifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotifFeedbackRequested
	})).Return(nil).Once()
	mockEmail.On("SendStatusUpdate", mock.Anything, "jane@example.com", "Jane", issue, domain.StatusResolved, "All patched").Return(nil).Maybe()
	mockNotifRepo.On("MarkEmailSent", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil).Maybe()

	err := svc.NotifyStatusUpdated(ctx, issue, domain.StatusResolved, "All patched")

	assert.NoError(t, err)
	mockNotifRepo.AssertExpectations(t)
}

func TestNotificationService_Ownership(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	notifID := uuid.New()

	t.Run("owner can mark as read", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, new(mocks.UserRepository), new(mocks.EmailService))

		mockNotifRepo.On("GetByID", ctx, notifID).Return(&domain.Notification{ID: notifID, Recipient: owner}, nil).Once()
		mockNotifRepo.On("MarkAsRead", ctx, notifID).Return(nil).Once()

		assert.NoError(t, svc.MarkAsRead(ctx, notifID, owner))
		mockNotifRepo.AssertExpectations(t)
	})

	t.Run("other user sees not found", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, new(mocks.UserRepository), new(mocks.EmailService))

		mockNotifRepo.On("GetByID", ctx, notifID).Return(&domain.Notification{ID: notifID, Recipient: owner}, nil).Once()

		err := svc.Delete(ctx, notifID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
		mockNotifRepo.AssertNotCalled(t, "Delete")
	})
}
