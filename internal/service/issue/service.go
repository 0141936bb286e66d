package issue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"e-county-api/internal/domain"
	"e-county-api/internal/repository"
	"e-county-api/internal/service/notification"
	"e-county-api/internal/service/routing"
)

var (
	ErrInvalidStatus  = errors.New("invalid status value")
	ErrVerifyStatus   = errors.New("status must be pending, verified, or assigned")
	ErrOfficerMissing = errors.New("officer ID is required")
	ErrInvalidOfficer = errors.New("invalid officer")
	ErrEmptyComment   = errors.New("comment is required")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrNotReporter    = errors.New("only the reporter may submit feedback")
)

type Service interface {
	Create(ctx context.Context, reporterID uuid.UUID, input domain.CreateIssueInput) (*domain.Issue, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error)
	List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Issue], error)
	ListMine(ctx context.Context, reporterID uuid.UUID, status *domain.IssueStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Issue], error)
	ListAssigned(ctx context.Context, officerID uuid.UUID, status *domain.IssueStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Issue], error)
	UpdateStatus(ctx context.Context, issueID, actorID uuid.UUID, input domain.UpdateIssueStatusInput) (*domain.Issue, error)
	AddComment(ctx context.Context, issueID, actorID uuid.UUID, input domain.AddCommentInput) (*domain.Issue, error)
	Verify(ctx context.Context, issueID uuid.UUID, status domain.IssueStatus) (*domain.Issue, error)
	Assign(ctx context.Context, issueID, officerID uuid.UUID) (*domain.Issue, error)
	OfficerStats(ctx context.Context, officerID uuid.UUID) (*domain.OfficerStats, error)
	SubmitFeedback(ctx context.Context, issueID, actorID uuid.UUID, input domain.SubmitFeedbackInput) (*domain.Issue, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	issueRepo  repository.IssueRepository
	userRepo   repository.UserRepository
	routingSvc routing.Service
	notifSvc   notification.Service
}

func NewService(issueRepo repository.IssueRepository, userRepo repository.UserRepository, routingSvc routing.Service) Service {
	return &service{
		issueRepo:  issueRepo,
		userRepo:   userRepo,
		routingSvc: routingSvc,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

// Create validates the report, routes it to a department, and assigns
// the first available officer. The report starts as "assigned" when an
// officer was found, otherwise "pending". Notifications fire after the
// record is persisted and never affect the outcome.
func (s *service) Create(ctx context.Context, reporterID uuid.UUID, input domain.CreateIssueInput) (*domain.Issue, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	departmentID, officerID := s.routingSvc.Resolve(ctx, input.Category)

	status := domain.StatusPending
	if officerID != nil {
		status = domain.StatusAssigned
	}

	issue := &domain.Issue{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Status:       status,
		Priority:     domain.PriorityMedium,
		ReportedBy:   reporterID,
		AssignedTo:   officerID,
		DepartmentID: departmentID,
		Longitude:    *input.Longitude,
		Latitude:     *input.Latitude,
		Address:      input.Address,
	}
	for _, url := range input.Photos {
		issue.Photos = append(issue.Photos, domain.IssuePhoto{URL: url})
	}

	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, err
	}

	created, err := s.issueRepo.GetByID(ctx, issue.ID)
	if err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		go func() {
			_ = s.notifSvc.NotifyIssueSubmitted(context.Background(), created)
		}()
		if officerID != nil {
			officer := *officerID
			go func() {
				_ = s.notifSvc.NotifyIssueAssigned(context.Background(), created, officer)
			}()
		}
	}

	return created, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrIssueNotFound
	}
	return issue, nil
}

func (s *service) List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Issue], error) {
	params.Validate()
	issues, total, err := s.issueRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Issue]{}, err
	}
	return domain.NewPaginatedResponse(issues, params.Page, params.Limit, total), nil
}

func (s *service) ListMine(ctx context.Context, reporterID uuid.UUID, status *domain.IssueStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Issue], error) {
	params.Validate()
	filter := domain.IssueFilter{ReportedBy: &reporterID, Status: status}
	issues, total, err := s.issueRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Issue]{}, err
	}
	return domain.NewPaginatedResponse(issues, params.Page, params.Limit, total), nil
}

// ListAssigned returns the officer's queue: issues assigned directly to
// them plus unclaimed issues routed to their department.
func (s *service) ListAssigned(ctx context.Context, officerID uuid.UUID, status *domain.IssueStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Issue], error) {
	params.Validate()

	officer, err := s.userRepo.GetByID(ctx, officerID)
	if err != nil {
		return domain.PaginatedResponse[domain.Issue]{}, err
	}
	if officer == nil {
		return domain.PaginatedResponse[domain.Issue]{}, domain.ErrUserNotFound
	}

	issues, total, err := s.issueRepo.ListForOfficer(ctx, officerID, officer.DepartmentID, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Issue]{}, err
	}
	return domain.NewPaginatedResponse(issues, params.Page, params.Limit, total), nil
}

// UpdateStatus appends exactly one entry to the audit trail whether or
// not the status actually changed. Any of the six statuses is accepted
// at any time; transition order is not enforced.
func (s *service) UpdateStatus(ctx context.Context, issueID, actorID uuid.UUID, input domain.UpdateIssueStatusInput) (*domain.Issue, error) {
	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrIssueNotFound
	}

	newStatus := issue.Status
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		newStatus = *input.Status
	}

	update := &domain.IssueUpdate{
		ID:        uuid.New(),
		IssueID:   issue.ID,
		Status:    &newStatus,
		Comment:   input.Comment,
		UpdatedBy: actorID,
		Photos:    input.Photos,
	}
	if err := s.issueRepo.AppendUpdate(ctx, update); err != nil {
		return nil, err
	}

	issue.Status = newStatus
	if newStatus == domain.StatusResolved && issue.ResolvedAt == nil {
		now := time.Now()
		issue.ResolvedAt = &now
	}
	if err := s.issueRepo.Update(ctx, issue); err != nil {
		return nil, err
	}

	updated, err := s.issueRepo.GetByID(ctx, issue.ID)
	if err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		status, comment := newStatus, input.Comment
		go func() {
			_ = s.notifSvc.NotifyStatusUpdated(context.Background(), updated, status, comment)
		}()
	}

	return updated, nil
}

// AddComment is restricted to the officer currently assigned to the
// issue. The entry carries no status snapshot.
func (s *service) AddComment(ctx context.Context, issueID, actorID uuid.UUID, input domain.AddCommentInput) (*domain.Issue, error) {
	if input.Comment == "" {
		return nil, ErrEmptyComment
	}

	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrIssueNotFound
	}

	if issue.AssignedTo == nil || *issue.AssignedTo != actorID {
		return nil, domain.ErrNotAssignedOfficer
	}

	update := &domain.IssueUpdate{
		ID:        uuid.New(),
		IssueID:   issue.ID,
		Comment:   input.Comment,
		UpdatedBy: actorID,
		Photos:    input.Photos,
	}
	if err := s.issueRepo.AppendUpdate(ctx, update); err != nil {
		return nil, err
	}

	return s.issueRepo.GetByID(ctx, issue.ID)
}

// Verify is the admin review step: it may only move an issue between
// pending, verified and assigned.
func (s *service) Verify(ctx context.Context, issueID uuid.UUID, status domain.IssueStatus) (*domain.Issue, error) {
	switch status {
	case domain.StatusPending, domain.StatusVerified, domain.StatusAssigned:
	default:
		return nil, ErrVerifyStatus
	}

	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrIssueNotFound
	}

	issue.Status = status
	if err := s.issueRepo.Update(ctx, issue); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		go func() {
			_ = s.notifSvc.NotifyStatusUpdated(context.Background(), issue, status, "")
		}()
	}

	return issue, nil
}

// Assign lets an admin hand an issue to a specific officer, overriding
// whatever auto-assignment decided at creation.
func (s *service) Assign(ctx context.Context, issueID, officerID uuid.UUID) (*domain.Issue, error) {
	if officerID == uuid.Nil {
		return nil, ErrOfficerMissing
	}

	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrIssueNotFound
	}

	officer, err := s.userRepo.GetByID(ctx, officerID)
	if err != nil {
		return nil, err
	}
	if officer == nil || officer.Role != domain.RoleOfficer || !officer.IsActive {
		return nil, ErrInvalidOfficer
	}

	issue.AssignedTo = &officer.ID
	// An officer always belongs to a department; keep the issue's
	// department in step with the assignee.
	if officer.DepartmentID != nil {
		issue.DepartmentID = officer.DepartmentID
	}
	issue.Status = domain.StatusAssigned
	if err := s.issueRepo.Update(ctx, issue); err != nil {
		return nil, err
	}

	updated, err := s.issueRepo.GetByID(ctx, issue.ID)
	if err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		go func() {
			_ = s.notifSvc.NotifyIssueAssigned(context.Background(), updated, officer.ID)
		}()
	}

	return updated, nil
}

func (s *service) OfficerStats(ctx context.Context, officerID uuid.UUID) (*domain.OfficerStats, error) {
	total, err := s.issueRepo.CountForOfficer(ctx, officerID, nil)
	if err != nil {
		return nil, err
	}
	enRoute, err := s.countForOfficer(ctx, officerID, domain.StatusEnRoute)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.countForOfficer(ctx, officerID, domain.StatusInProgress)
	if err != nil {
		return nil, err
	}
	resolved, err := s.countForOfficer(ctx, officerID, domain.StatusResolved)
	if err != nil {
		return nil, err
	}

	return &domain.OfficerStats{
		Total:      total,
		EnRoute:    enRoute,
		InProgress: inProgress,
		Resolved:   resolved,
		Pending:    total - enRoute - inProgress - resolved,
	}, nil
}

func (s *service) countForOfficer(ctx context.Context, officerID uuid.UUID, status domain.IssueStatus) (int64, error) {
	return s.issueRepo.CountForOfficer(ctx, officerID, &status)
}

func (s *service) SubmitFeedback(ctx context.Context, issueID, actorID uuid.UUID, input domain.SubmitFeedbackInput) (*domain.Issue, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrIssueNotFound
	}
	if issue.ReportedBy != actorID {
		return nil, ErrNotReporter
	}
	if issue.Status != domain.StatusResolved {
		return nil, domain.ErrIssueNotResolved
	}
	if issue.Feedback != nil {
		return nil, domain.ErrFeedbackExists
	}

	now := time.Now()
	fb := domain.IssueFeedback{
		Rating:      input.Rating,
		Comment:     input.Comment,
		SubmittedAt: &now,
	}
	if err := s.issueRepo.SetFeedback(ctx, issue.ID, fb); err != nil {
		return nil, err
	}

	return s.issueRepo.GetByID(ctx, issue.ID)
}
