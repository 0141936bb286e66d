package unit_test

import (
	"context"
	"testing"
	"time"

	"e-county-api/internal/domain"
	"e-county-api/internal/service/issue"
	"e-county-api/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func float64Ptr(v float64) *float64 { return &v }

func validCreateInput() domain.CreateIssueInput {
	return domain.CreateIssueInput{
		Title:       "Burst water pipe",
		Description: "Water flooding the street near the market",
		Category:    domain.CategoryWater,
		Longitude:   float64Ptr(34.77),
		Latitude:    float64Ptr(-0.68),
		Address:     "Market Road, Kisii",
	}
}

func TestIssueService_Create(t *testing.T) {
	ctx := context.Background()
	reporterID := uuid.New()

	t.Run("assigns officer when one is available", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockRouting := new(mocks.RoutingService)
		svc := issue.NewService(mockIssueRepo, mockUserRepo, mockRouting)

		deptID := uuid.New()
		officerID := uuid.New()
		mockRouting.On("Resolve", ctx, domain.CategoryWater).Return(&deptID, &officerID).Once()

		mockIssueRepo.On("Create", ctx, mock.MatchedBy(func(i *domain.Issue) bool {
			return i.Status == domain.StatusAssigned &&
				i.AssignedTo != nil && *i.AssignedTo == officerID &&
				i.DepartmentID != nil && *i.DepartmentID == deptID &&
				i.Priority == domain.PriorityMedium
		})).Return(nil).Once()
		mockIssueRepo.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID")).
			Return(&domain.Issue{ID: uuid.New(), Status: domain.StatusAssigned}, nil).Once()

		created, err := svc.Create(ctx, reporterID, validCreateInput())

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, domain.StatusAssigned, created.Status)
		mockIssueRepo.AssertExpectations(t)
		mockRouting.AssertExpectations(t)
	})

	t.Run("stays pending when no officer is available", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockRouting := new(mocks.RoutingService)
		svc := issue.NewService(mockIssueRepo, mockUserRepo, mockRouting)

		deptID := uuid.New()
		mockRouting.On("Resolve", ctx, domain.CategoryWater).Return(&deptID, nil).Once()

		mockIssueRepo.On("Create", ctx, mock.MatchedBy(func(i *domain.Issue) bool {
			return i.Status == domain.StatusPending && i.AssignedTo == nil &&
				i.DepartmentID != nil && *i.DepartmentID == deptID
		})).Return(nil).Once()
		mockIssueRepo.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID")).
			Return(&domain.Issue{ID: uuid.New(), Status: domain.StatusPending}, nil).Once()

		created, err := svc.Create(ctx, reporterID, validCreateInput())

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, created.Status)
		mockIssueRepo.AssertExpectations(t)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		svc := issue.NewService(new(mocks.IssueRepository), new(mocks.UserRepository), new(mocks.RoutingService))

		input := validCreateInput()
		input.Title = ""

		created, err := svc.Create(ctx, reporterID, input)
		assert.Error(t, err)
		assert.Nil(t, created)
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		svc := issue.NewService(new(mocks.IssueRepository), new(mocks.UserRepository), new(mocks.RoutingService))

		input := validCreateInput()
		input.Latitude = float64Ptr(95)

		created, err := svc.Create(ctx, reporterID, input)
		assert.Error(t, err)
		assert.Nil(t, created)
	})
}

func TestIssueService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()
	issueID := uuid.New()

	t.Run("always appends exactly one update entry", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		svc := issue.NewService(mockIssueRepo, new(mocks.UserRepository), new(mocks.RoutingService))

		current := &domain.Issue{ID: issueID, Status: domain.StatusAssigned}
		mockIssueRepo.On("GetByID", ctx, issueID).Return(current, nil).Twice()

		newStatus := domain.StatusInProgress
		mockIssueRepo.On("AppendUpdate", ctx, mock.MatchedBy(func(u *domain.IssueUpdate) bool {
			return u.IssueID == issueID && u.Status != nil && *u.Status == newStatus && u.UpdatedBy == actorID
		})).Return(nil).Once()
		mockIssueRepo.On("Update", ctx, mock.MatchedBy(func(i *domain.Issue) bool {
			return i.Status == newStatus
		})).Return(nil).Once()

		_, err := svc.UpdateStatus(ctx, issueID, actorID, domain.UpdateIssueStatusInput{
			Status:  &newStatus,
			Comment: "Crew on site",
		})

		assert.NoError(t, err)
		mockIssueRepo.AssertExpectations(t)
	})

	t.Run("appends comment-only entry with current status snapshot", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		svc := issue.NewService(mockIssueRepo, new(mocks.UserRepository), new(mocks.RoutingService))

		current := &domain.Issue{ID: issueID, Status: domain.StatusEnRoute}
		mockIssueRepo.On("GetByID", ctx, issueID).Return(current, nil).Twice()

		mockIssueRepo.On("AppendUpdate", ctx, mock.MatchedBy(func(u *domain.IssueUpdate) bool {
			return u.Status != nil && *u.Status == domain.StatusEnRoute
		})).Return(nil).Once()
		mockIssueRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.UpdateStatus(ctx, issueID, actorID, domain.UpdateIssueStatusInput{Comment: "Still traveling"})

		assert.NoError(t, err)
		mockIssueRepo.AssertExpectations(t)
	})

	t.Run("sets resolvedAt on first resolution only", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		svc := issue.NewService(mockIssueRepo, new(mocks.UserRepository), new(mocks.RoutingService))

		firstResolved := time.Now().Add(-48 * time.Hour)
		current := &domain.Issue{ID: issueID, Status: domain.StatusResolved, ResolvedAt: &firstResolved}
		mockIssueRepo.On("GetByID", ctx, issueID).Return(current, nil).Twice()
		mockIssueRepo.On("AppendUpdate", ctx, mock.Anything).Return(nil).Once()
		mockIssueRepo.On("Update", ctx, mock.MatchedBy(func(i *domain.Issue) bool {
			return i.ResolvedAt != nil && i.ResolvedAt.Equal(firstResolved)
		})).Return(nil).Once()

		resolved := domain.StatusResolved
		_, err := svc.UpdateStatus(ctx, issueID, actorID, domain.UpdateIssueStatusInput{Status: &resolved})

		assert.NoError(t, err)
		mockIssueRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		svc := issue.NewService(mockIssueRepo, new(mocks.UserRepository), new(mocks.RoutingService))

		mockIssueRepo.On("GetByID", ctx, issueID).Return(&domain.Issue{ID: issueID, Status: domain.StatusPending}, nil).Once()

		bogus := domain.IssueStatus("closed")
		_, err := svc.UpdateStatus(ctx, issueID, actorID, domain.UpdateIssueStatusInput{Status: &bogus})

		assert.ErrorIs(t, err, issue.ErrInvalidStatus)
	})

	t.Run("not found", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		svc := issue.NewService(mockIssueRepo, new(mocks.UserRepository), new(mocks.RoutingService))

		mockIssueRepo.On("GetByID", ctx, issueID).Return(nil, nil).Once()

		status := domain.StatusResolved
		_, err := svc.UpdateStatus(ctx, issueID, actorID, domain.UpdateIssueStatusInput{Status: &status})

		assert.ErrorIs(t, err, domain.ErrIssueNotFound)
	})
}

func TestIssueService_AddComment(t *testing.T) {
	ctx := context.Background()
	issueID := uuid.New()
	officerID := uuid.New()

	t.Run("assigned officer can comment", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		svc := issue.NewService(mockIssueRepo, new(mocks.UserRepository), new(mocks.RoutingService))

		current := &domain.Issue{ID: issueID, Status: domain.StatusInProgress, AssignedTo: &officerID}
		mockIssueRepo.On("GetByID", ctx, issueID).Return(current, nil).Twice()
		mockIssueRepo.On("AppendUpdate", ctx, mock.MatchedBy(func(u *domain.IssueUpdate) bool {
			return u.Status == nil && u.Comment == "Parts ordered"
		})).Return(nil).Once()

		_, err := svc.AddComment(ctx, issueID, officerID, domain.AddCommentInput{Comment: "Parts ordered"})

		assert.NoError(t, err)
		mockIssueRepo.AssertExpectations(t)
	})

	t.Run("other officer is rejected", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		svc := issue.NewService(mockIssueRepo, new(mocks.UserRepository), new(mocks.RoutingService))

		current := &domain.Issue{ID: issueID, AssignedTo: &officerID}
		mockIssueRepo.On("GetByID", ctx, issueID).Return(current, nil).Once()

		_, err := svc.AddComment(ctx, issueID, uuid.New(), domain.AddCommentInput{Comment: "hello"})

		assert.ErrorIs(t, err, domain.ErrNotAssignedOfficer)
	})

	t.Run("unassigned issue rejects everyone", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		svc := issue.NewService(mockIssueRepo, new(mocks.UserRepository), new(mocks.RoutingService))

		mockIssueRepo.On("GetByID", ctx, issueID).Return(&domain.Issue{ID: issueID}, nil).Once()

		_, err := svc.AddComment(ctx, issueID, officerID, domain.AddCommentInput{Comment: "hello"})

		assert.ErrorIs(t, err, domain.ErrNotAssignedOfficer)
	})

	t.Run("empty comment is rejected", func(t *testing.T) {
		svc := issue.NewService(new(mocks.IssueRepository), new(mocks.UserRepository), new(mocks.RoutingService))

		_, err := svc.AddComment(ctx, issueID, officerID, domain.AddCommentInput{})

		assert.ErrorIs(t, err, issue.ErrEmptyComment)
	})
}

func TestIssueService_Verify(t *testing.T) {
	ctx := context.Background()
	issueID := uuid.New()

	t.Run("accepts review statuses", func(t *testing.T) {
		for _, status := range []domain.IssueStatus{domain.StatusPending, domain.StatusVerified, domain.StatusAssigned} {
			mockIssueRepo := new(mocks.IssueRepository)
			svc := issue.NewService(mockIssueRepo, new(mocks.UserRepository), new(mocks.RoutingService))

			mockIssueRepo.On("GetByID", ctx, issueID).Return(&domain.Issue{ID: issueID, Status: domain.StatusPending}, nil).Once()
			mockIssueRepo.On("Update", ctx, mock.MatchedBy(func(i *domain.Issue) bool {
				return i.Status == status
			})).Return(nil).Once()

			verified, err := svc.Verify(ctx, issueID, status)

			assert.NoError(t, err)
			assert.Equal(t, status, verified.Status)
			mockIssueRepo.AssertExpectations(t)
		}
	})

	t.Run("rejects workflow statuses", func(t *testing.T) {
		svc := issue.NewService(new(mocks.IssueRepository), new(mocks.UserRepository), new(mocks.RoutingService))

		for _, status := range []domain.IssueStatus{domain.StatusEnRoute, domain.StatusInProgress, domain.StatusResolved} {
			_, err := svc.Verify(ctx, issueID, status)
			assert.ErrorIs(t, err, issue.ErrVerifyStatus)
		}
	})
}

func TestIssueService_Assign(t *testing.T) {
	ctx := context.Background()
	issueID := uuid.New()
	deptID := uuid.New()

	t.Run("assigns active officer and syncs department", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := issue.NewService(mockIssueRepo, mockUserRepo, new(mocks.RoutingService))

		officer := &domain.User{ID: uuid.New(), Role: domain.RoleOfficer, IsActive: true, DepartmentID: &deptID}
		mockIssueRepo.On("GetByID", ctx, issueID).Return(&domain.Issue{ID: issueID, Status: domain.StatusVerified}, nil).Twice()
		mockUserRepo.On("GetByID", ctx, officer.ID).Return(officer, nil).Once()
		mockIssueRepo.On("Update", ctx, mock.MatchedBy(func(i *domain.Issue) bool {
			return i.Status == domain.StatusAssigned &&
				i.AssignedTo != nil && *i.AssignedTo == officer.ID &&
				i.DepartmentID != nil && *i.DepartmentID == deptID
		})).Return(nil).Once()

		_, err := svc.Assign(ctx, issueID, officer.ID)

		assert.NoError(t, err)
		mockIssueRepo.AssertExpectations(t)
	})

	t.Run("rejects citizens and inactive officers", func(t *testing.T) {
		cases := []*domain.User{
			{ID: uuid.New(), Role: domain.RoleCitizen, IsActive: true},
			{ID: uuid.New(), Role: domain.RoleOfficer, IsActive: false},
		}
		for _, target := range cases {
			mockIssueRepo := new(mocks.IssueRepository)
			mockUserRepo := new(mocks.UserRepository)
			svc := issue.NewService(mockIssueRepo, mockUserRepo, new(mocks.RoutingService))

			mockIssueRepo.On("GetByID", ctx, issueID).Return(&domain.Issue{ID: issueID}, nil).Once()
			mockUserRepo.On("GetByID", ctx, target.ID).Return(target, nil).Once()

			_, err := svc.Assign(ctx, issueID, target.ID)
			assert.ErrorIs(t, err, issue.ErrInvalidOfficer)
		}
	})
}

func TestIssueService_SubmitFeedback(t *testing.T) {
	ctx := context.Background()
	issueID := uuid.New()
	reporterID := uuid.New()

	resolvedIssue := func() *domain.Issue {
		now := time.Now()
		return &domain.Issue{
			ID:         issueID,
			Status:     domain.StatusResolved,
			ReportedBy: reporterID,
			ResolvedAt: &now,
		}
	}

	t.Run("reporter rates a resolved issue", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		svc := issue.NewService(mockIssueRepo, new(mocks.UserRepository), new(mocks.RoutingService))

		mockIssueRepo.On("GetByID", ctx, issueID).Return(resolvedIssue(), nil).Twice()
		mockIssueRepo.On("SetFeedback", ctx, issueID, mock.MatchedBy(func(fb domain.IssueFeedback) bool {
			return fb.Rating == 4 && fb.SubmittedAt != nil
		})).Return(nil).Once()

		_, err := svc.SubmitFeedback(ctx, issueID, reporterID, domain.SubmitFeedbackInput{Rating: 4, Comment: "Quick fix"})

		assert.NoError(t, err)
		mockIssueRepo.AssertExpectations(t)
	})

	t.Run("only the reporter may rate", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		svc := issue.NewService(mockIssueRepo, new(mocks.UserRepository), new(mocks.RoutingService))

		mockIssueRepo.On("GetByID", ctx, issueID).Return(resolvedIssue(), nil).Once()

		_, err := svc.SubmitFeedback(ctx, issueID, uuid.New(), domain.SubmitFeedbackInput{Rating: 4})

		assert.ErrorIs(t, err, issue.ErrNotReporter)
	})

	t.Run("unresolved issue is rejected", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		svc := issue.NewService(mockIssueRepo, new(mocks.UserRepository), new(mocks.RoutingService))

		open := resolvedIssue()
		open.Status = domain.StatusInProgress
		mockIssueRepo.On("GetByID", ctx, issueID).Return(open, nil).Once()

		_, err := svc.SubmitFeedback(ctx, issueID, reporterID, domain.SubmitFeedbackInput{Rating: 4})

		assert.ErrorIs(t, err, domain.ErrIssueNotResolved)
	})

	t.Run("second submission is rejected", func(t *testing.T) {
		mockIssueRepo := new(mocks.IssueRepository)
		svc := issue.NewService(mockIssueRepo, new(mocks.UserRepository), new(mocks.RoutingService))

		rated := resolvedIssue()
		rated.Feedback = &domain.IssueFeedback{Rating: 5}
		mockIssueRepo.On("GetByID", ctx, issueID).Return(rated, nil).Once()

		_, err := svc.SubmitFeedback(ctx, issueID, reporterID, domain.SubmitFeedbackInput{Rating: 3})

		assert.ErrorIs(t, err, domain.ErrFeedbackExists)
	})

	t.Run("rating range is enforced", func(t *testing.T) {
		svc := issue.NewService(new(mocks.IssueRepository), new(mocks.UserRepository), new(mocks.RoutingService))

		for _, rating := range []int{0, 6, -1} {
			_, err := svc.SubmitFeedback(ctx, issueID, reporterID, domain.SubmitFeedbackInput{Rating: rating})
			assert.ErrorIs(t, err, issue.ErrInvalidRating)
		}
	})
}
