package user

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"e-county-api/internal/domain"
	"e-county-api/internal/repository"
	"e-county-api/internal/service/email"
)

var (
	ErrMissingFields = errors.New("please provide all required fields")
	ErrInvalidRole   = errors.New("invalid role")
	ErrNoDepartment  = errors.New("department is required for officer and admin accounts")
)

type Service interface {
	List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	CreateUser(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	ListOfficers(ctx context.Context, departmentID *uuid.UUID) ([]domain.User, error)
	SetAnnouncementPermission(ctx context.Context, officerID uuid.UUID, allowed bool) (*domain.User, error)
}

type service struct {
	userRepo repository.UserRepository
	deptRepo repository.DepartmentRepository
	emailSvc email.Service
}

func NewService(userRepo repository.UserRepository, deptRepo repository.DepartmentRepository, emailSvc email.Service) Service {
	return &service{
		userRepo: userRepo,
		deptRepo: deptRepo,
		emailSvc: emailSvc,
	}
}

func (s *service) List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error) {
	params.Validate()
	users, total, err := s.userRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}
	return domain.NewPaginatedResponse(users, params.Page, params.Limit, total), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// CreateUser provisions a staff account with a generated temporary
// password. The password reaches the user only through the credentials
// email; the API response never contains it.
func (s *service) CreateUser(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" {
		return nil, ErrMissingFields
	}

	role := input.Role
	if role == "" {
		role = domain.RoleCitizen
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	var departmentID *uuid.UUID
	if role == domain.RoleOfficer || role == domain.RoleAdmin {
		if input.DepartmentID == nil {
			return nil, ErrNoDepartment
		}
		dept, err := s.deptRepo.GetByID(ctx, *input.DepartmentID)
		if err != nil {
			return nil, err
		}
		if dept == nil || !dept.IsActive {
			return nil, domain.ErrDepartmentNotFound
		}
		departmentID = &dept.ID
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, normalizedEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	tempPassword, err := generatePassword()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        normalizedEmail,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Role:         role,
		DepartmentID: departmentID,
		IsActive:     true,
		IsVerified:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	go func() {
		if err := s.emailSvc.SendAccountCredentials(context.Background(), user.Email, user.FullName(), user.Email, tempPassword); err != nil {
			log.Printf("failed to send credentials email to %s: %v", user.Email, err)
		}
	}()

	return user, nil
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return s.userRepo.Deactivate(ctx, id)
}

func (s *service) ListOfficers(ctx context.Context, departmentID *uuid.UUID) ([]domain.User, error) {
	return s.userRepo.ListOfficers(ctx, departmentID)
}

// SetAnnouncementPermission grants or revokes an officer's right to
// publish announcements. Citizens and admins are rejected: admins can
// always publish and citizens never can.
func (s *service) SetAnnouncementPermission(ctx context.Context, officerID uuid.UUID, allowed bool) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, officerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Role != domain.RoleOfficer {
		return nil, domain.ErrNotAnOfficer
	}

	if err := s.userRepo.SetAnnouncementPermission(ctx, officerID, allowed); err != nil {
		return nil, err
	}
	user.CanCreateAnnouncement = allowed

	go func() {
		if err := s.emailSvc.SendAnnouncementPermission(context.Background(), user.Email, user.FullName(), allowed); err != nil {
			log.Printf("failed to send permission email to %s: %v", user.Email, err)
		}
	}()

	return user, nil
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generatePassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = passwordAlphabet[int(b)%len(passwordAlphabet)]
	}
	return string(buf), nil
}
