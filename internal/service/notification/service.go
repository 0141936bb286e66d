package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"e-county-api/internal/domain"
	"e-county-api/internal/repository"
	"e-county-api/internal/service/email"
)

// Service is the single producer of notification records. Lifecycle
// events persist a Notification row and then attempt the matching email
// from a detached goroutine; neither step ever fails the operation that
// triggered it.
type Service interface {
	List(ctx context.Context, recipient uuid.UUID, isRead *bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	UnreadCount(ctx context.Context, recipient uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id, recipient uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipient uuid.UUID) error
	Delete(ctx context.Context, id, recipient uuid.UUID) error

	NotifyIssueSubmitted(ctx context.Context, issue *domain.Issue) error
	NotifyIssueAssigned(ctx context.Context, issue *domain.Issue, officerID uuid.UUID) error
	NotifyStatusUpdated(ctx context.Context, issue *domain.Issue, status domain.IssueStatus, comment string) error
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	emailSvc  email.Service
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, emailSvc email.Service) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
	}
}

func (s *service) List(ctx context.Context, recipient uuid.UUID, isRead *bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByRecipient(ctx, recipient, isRead, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.Limit, total), nil
}

func (s *service) UnreadCount(ctx context.Context, recipient uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, recipient)
}

func (s *service) MarkAsRead(ctx context.Context, id, recipient uuid.UUID) error {
	if err := s.ownedBy(ctx, id, recipient); err != nil {
		return err
	}
	return s.notifRepo.MarkAsRead(ctx, id)
}

func (s *service) MarkAllAsRead(ctx context.Context, recipient uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, recipient)
}

func (s *service) Delete(ctx context.Context, id, recipient uuid.UUID) error {
	if err := s.ownedBy(ctx, id, recipient); err != nil {
		return err
	}
	return s.notifRepo.Delete(ctx, id)
}

// ownedBy hides other users' notifications behind a not-found error.
func (s *service) ownedBy(ctx context.Context, id, recipient uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notif == nil || notif.Recipient != recipient {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (s *service) NotifyIssueSubmitted(ctx context.Context, issue *domain.Issue) error {
	reporter, err := s.userRepo.GetByID(ctx, issue.ReportedBy)
	if err != nil || reporter == nil {
		return fmt.Errorf("failed to get reporter: %w", err)
	}

	notif := &domain.Notification{
		ID:        uuid.New(),
		Recipient: reporter.ID,
		Type:      domain.NotifIssueSubmitted,
		IssueID:   &issue.ID,
		Title:     "Issue Report Submitted",
		Message:   fmt.Sprintf("Your report %q has been received. Category: %s. Status: %s", issue.Title, issue.Category, issue.Status),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		log.Printf("notification: failed to create record for user %s: %v", reporter.ID, err)
	}

	s.sendAsync(notif.ID, func(ctx context.Context) error {
		return s.emailSvc.SendIssueConfirmation(ctx, reporter.Email, reporter.FirstName, issue)
	})
	return nil
}

func (s *service) NotifyIssueAssigned(ctx context.Context, issue *domain.Issue, officerID uuid.UUID) error {
	officer, err := s.userRepo.GetByID(ctx, officerID)
	if err != nil || officer == nil {
		return fmt.Errorf("failed to get officer: %w", err)
	}

	notif := &domain.Notification{
		ID:        uuid.New(),
		Recipient: officer.ID,
		Type:      domain.NotifIssueAssigned,
		IssueID:   &issue.ID,
		Title:     fmt.Sprintf("New Issue Assigned: %s", issue.Title),
		Message:   fmt.Sprintf("A new issue has been assigned to you. Category: %s. Priority: %s", issue.Category, issue.Priority),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		log.Printf("notification: failed to create record for user %s: %v", officer.ID, err)
	}

	s.sendAsync(notif.ID, func(ctx context.Context) error {
		return s.emailSvc.SendIssueAssignment(ctx, officer.Email, officer.FirstName, issue)
	})
	return nil
}

func (s *service) NotifyStatusUpdated(ctx context.Context, issue *domain.Issue, status domain.IssueStatus, comment string) error {
	reporter, err := s.userRepo.GetByID(ctx, issue.ReportedBy)
	if err != nil || reporter == nil {
		return fmt.Errorf("failed to get reporter: %w", err)
	}

	notifType := domain.NotifStatusUpdated
	if status == domain.StatusResolved {
		notifType = domain.NotifResolved
	}

	notif := &domain.Notification{
		ID:        uuid.New(),
		Recipient: reporter.ID,
		Type:      notifType,
		IssueID:   &issue.ID,
		Title:     fmt.Sprintf("Issue Status Update: %s", issue.Title),
		Message:   fmt.Sprintf("Your issue status has been updated to: %s", status),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		log.Printf("notification: failed to create record for user %s: %v", reporter.ID, err)
	}

	// A resolved issue also invites the reporter to rate the service.
	if status == domain.StatusResolved {
		feedback := &domain.Notification{
			ID:        uuid.New(),
			Recipient: reporter.ID,
			Type:      domain.NotifFeedbackRequested,
			IssueID:   &issue.ID,
			Title:     "How did we do?",
			Message:   fmt.Sprintf("Your issue %q has been resolved. Please rate the service you received.", issue.Title),
		}
		if err := s.notifRepo.Create(ctx, feedback); err != nil {
			log.Printf("notification: failed to create feedback request for user %s: %v", reporter.ID, err)
		}
	}

	s.sendAsync(notif.ID, func(ctx context.Context) error {
		return s.emailSvc.SendStatusUpdate(ctx, reporter.Email, reporter.FirstName, issue, status, comment)
	})
	return nil
}

// sendAsync fires the email from its own goroutine. The request context
// is long gone by the time delivery happens, so a fresh background
// context is used. Failures are logged and swallowed.
func (s *service) sendAsync(notifID uuid.UUID, send func(ctx context.Context) error) {
	if s.emailSvc == nil {
		return
	}
	go func() {
		ctx := context.Background()
		if err := send(ctx); err != nil {
			log.Printf("notification: email delivery failed: %v", err)
			return
		}
		if err := s.notifRepo.MarkEmailSent(ctx, notifID); err != nil {
			log.Printf("notification: failed to flag email_sent: %v", err)
		}
	}()
}
