package unit_test

import (
	"context"
	"testing"
	"time"

	"e-county-api/internal/config"
	"e-county-api/internal/domain"
	"e-county-api/internal/service/auth"
	"e-county-api/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func registerInput() domain.RegisterInput {
	return domain.RegisterInput{
		FirstName:       "Jane",
		LastName:        "Moraa",
		Email:           "jane@example.com",
		Phone:           "0712345678",
		Password:        "password123",
		ConfirmPassword: "password123",
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	newService := func() (auth.Service, *mocks.UserRepository, *mocks.DepartmentRepository, *mocks.SessionRepository, *mocks.EmailService) {
		mockUserRepo := new(mocks.UserRepository)
		mockDeptRepo := new(mocks.DepartmentRepository)
		mockSessionRepo := new(mocks.SessionRepository)
		mockEmail := new(mocks.EmailService)
		svc := auth.NewService(mockUserRepo, mockDeptRepo, mockSessionRepo, mockEmail, testConfig())
		return svc, mockUserRepo, mockDeptRepo, mockSessionRepo, mockEmail
	}

	t.Run("citizen registers without a department", func(t *testing.T) {
		svc, mockUserRepo, _, mockSessionRepo, mockEmail := newService()

		mockUserRepo.On("ExistsByEmail", ctx, "jane@example.com").Return(false, nil).Once()
		mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleCitizen && u.IsActive && u.DepartmentID == nil
		})).Return(nil).Once()
		mockSessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockEmail.On("SendWelcome", mock.Anything, "jane@example.com", "Jane Moraa", domain.RoleCitizen).Return(nil).Maybe()

		user, tokens, err := svc.Register(ctx, registerInput())

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("officer requires a department", func(t *testing.T) {
		svc, _, _, _, _ := newService()

		input := registerInput()
		input.Role = domain.RoleOfficer

		_, _, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, auth.ErrDepartmentRequired)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc, mockUserRepo, _, _, _ := newService()

		mockUserRepo.On("ExistsByEmail", ctx, "jane@example.com").Return(true, nil).Once()

		_, _, err := svc.Register(ctx, registerInput())
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})

	t.Run("password confirmation must match", func(t *testing.T) {
		svc, _, _, _, _ := newService()

		input := registerInput()
		input.ConfirmPassword = "different"

		_, _, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, auth.ErrPasswordMismatch)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		svc, _, _, _, _ := newService()

		input := registerInput()
		input.Password = "short"
		input.ConfirmPassword = "short"

		_, _, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	activeUser := func() *domain.User {
		return &domain.User{
			ID:           uuid.New(),
			Email:        "jane@example.com",
			PasswordHash: string(hash),
			Role:         domain.RoleCitizen,
			IsActive:     true,
		}
	}

	newService := func() (auth.Service, *mocks.UserRepository, *mocks.SessionRepository) {
		mockUserRepo := new(mocks.UserRepository)
		mockSessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(mockUserRepo, new(mocks.DepartmentRepository), mockSessionRepo, new(mocks.EmailService), testConfig())
		return svc, mockUserRepo, mockSessionRepo
	}

	t.Run("valid credentials produce a token pair", func(t *testing.T) {
		svc, mockUserRepo, mockSessionRepo := newService()

		mockUserRepo.On("GetByEmail", ctx, "jane@example.com").Return(activeUser(), nil).Once()
		mockSessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		user, tokens, err := svc.Login(ctx, domain.LoginInput{Email: "jane@example.com", Password: "password123"})

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEmpty(t, tokens.AccessToken)

		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, domain.RoleCitizen, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, mockUserRepo, _ := newService()

		mockUserRepo.On("GetByEmail", ctx, "jane@example.com").Return(activeUser(), nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "jane@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, mockUserRepo, _ := newService()

		mockUserRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "nobody@example.com", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		svc, mockUserRepo, _ := newService()

		user := activeUser()
		user.IsActive = false
		mockUserRepo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "jane@example.com", Password: "password123"})
		assert.ErrorIs(t, err, domain.ErrUserDeactivated)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	svc := auth.NewService(new(mocks.UserRepository), new(mocks.DepartmentRepository), new(mocks.SessionRepository), new(mocks.EmailService), testConfig())

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.ValidateAccessToken("")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		ctx := context.Background()
		hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		mockUserRepo := new(mocks.UserRepository)
		mockSessionRepo := new(mocks.SessionRepository)
		mockUserRepo.On("GetByEmail", ctx, "jane@example.com").Return(&domain.User{
			ID: uuid.New(), Email: "jane@example.com", PasswordHash: string(hash),
			Role: domain.RoleCitizen, IsActive: true,
		}, nil).Once()
		mockSessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		otherSvc := auth.NewService(mockUserRepo, new(mocks.DepartmentRepository), mockSessionRepo, new(mocks.EmailService), &config.Config{
			JWTSecret:        "different-secret",
			JWTAccessExpiry:  time.Minute,
			JWTRefreshExpiry: time.Hour,
		})
		_, tokens, err := otherSvc.Login(ctx, domain.LoginInput{Email: "jane@example.com", Password: "password123"})
		assert.NoError(t, err)

		_, err = svc.ValidateAccessToken(tokens.AccessToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
