package unit_test

import (
	"context"
	"testing"

	"e-county-api/internal/domain"
	"e-county-api/internal/service/user"
	"e-county-api/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("officer account gets a temp password and credentials email", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockDeptRepo := new(mocks.DepartmentRepository)
		mockEmail := new(mocks.EmailService)
		svc := user.NewService(mockUserRepo, mockDeptRepo, mockEmail)

		deptID := uuid.New()
		mockDeptRepo.On("GetByID", ctx, deptID).Return(&domain.Department{ID: deptID, IsActive: true}, nil).Once()
		mockUserRepo.On("ExistsByEmail", ctx, "officer@kisii.go.ke").Return(false, nil).Once()
		mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleOfficer &&
				u.DepartmentID != nil && *u.DepartmentID == deptID &&
				u.IsActive && u.PasswordHash != ""
		})).Return(nil).Once()
		mockEmail.On("SendAccountCredentials", mock.Anything, "officer@kisii.go.ke", mock.Anything, "officer@kisii.go.ke", mock.AnythingOfType("string")).Return(nil).Maybe()

		created, err := svc.CreateUser(ctx, domain.CreateUserInput{
			FirstName:    "Peter",
			LastName:     "Ongeri",
			Email:        "Officer@kisii.go.ke",
			Role:         domain.RoleOfficer,
			DepartmentID: &deptID,
		})

		assert.NoError(t, err)
		assert.Equal(t, "officer@kisii.go.ke", created.Email)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("officer without department is rejected", func(t *testing.T) {
		svc := user.NewService(new(mocks.UserRepository), new(mocks.DepartmentRepository), new(mocks.EmailService))

		_, err := svc.CreateUser(ctx, domain.CreateUserInput{
			FirstName: "Peter",
			LastName:  "Ongeri",
			Email:     "officer@kisii.go.ke",
			Role:      domain.RoleOfficer,
		})

		assert.ErrorIs(t, err, user.ErrNoDepartment)
	})
}

func TestUserService_SetAnnouncementPermission(t *testing.T) {
	ctx := context.Background()
	officerID := uuid.New()

	t.Run("grants permission to an officer", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockEmail := new(mocks.EmailService)
		svc := user.NewService(mockUserRepo, new(mocks.DepartmentRepository), mockEmail)

		officer := &domain.User{ID: officerID, Role: domain.RoleOfficer, Email: "officer@kisii.go.ke"}
		mockUserRepo.On("GetByID", ctx, officerID).Return(officer, nil).Once()
		mockUserRepo.On("SetAnnouncementPermission", ctx, officerID, true).Return(nil).Once()
		mockEmail.On("SendAnnouncementPermission", mock.Anything, "officer@kisii.go.ke", mock.Anything, true).Return(nil).Maybe()

		updated, err := svc.SetAnnouncementPermission(ctx, officerID, true)

		assert.NoError(t, err)
		assert.True(t, updated.CanCreateAnnouncement)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("citizens cannot hold the permission", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := user.NewService(mockUserRepo, new(mocks.DepartmentRepository), new(mocks.EmailService))

		citizen := &domain.User{ID: officerID, Role: domain.RoleCitizen}
		mockUserRepo.On("GetByID", ctx, officerID).Return(citizen, nil).Once()

		_, err := svc.SetAnnouncementPermission(ctx, officerID, true)

		assert.ErrorIs(t, err, domain.ErrNotAnOfficer)
	})
}

func TestUserService_Deactivate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("deactivates existing user", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := user.NewService(mockUserRepo, new(mocks.DepartmentRepository), new(mocks.EmailService))

		mockUserRepo.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, IsActive: true}, nil).Once()
		mockUserRepo.On("Deactivate", ctx, userID).Return(nil).Once()

		assert.NoError(t, svc.Deactivate(ctx, userID))
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := user.NewService(mockUserRepo, new(mocks.DepartmentRepository), new(mocks.EmailService))

		mockUserRepo.On("GetByID", ctx, userID).Return(nil, nil).Once()

		assert.ErrorIs(t, svc.Deactivate(ctx, userID), domain.ErrUserNotFound)
	})
}
