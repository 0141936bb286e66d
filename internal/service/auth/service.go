package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"e-county-api/internal/config"
	"e-county-api/internal/domain"
	"e-county-api/internal/repository"
	"e-county-api/internal/service/email"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")
	ErrMissingFields       = errors.New("please provide all required fields")
	ErrInvalidRole         = errors.New("invalid role")
	ErrDepartmentRequired  = errors.New("department is required for officer and admin accounts")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// Claims is the payload carried in access tokens. Role is embedded so
// middleware can authorize without a database round trip.
type Claims struct {
	UserID uuid.UUID       `json:"uid"`
	Role   domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type Service interface {
	Register(ctx context.Context, input domain.RegisterInput) (*domain.User, *domain.TokenPair, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type service struct {
	userRepo    repository.UserRepository
	deptRepo    repository.DepartmentRepository
	sessionRepo repository.SessionRepository
	emailSvc    email.Service
	config      *config.Config
}

func NewService(
	userRepo repository.UserRepository,
	deptRepo repository.DepartmentRepository,
	sessionRepo repository.SessionRepository,
	emailSvc email.Service,
	cfg *config.Config,
) Service {
	return &service{
		userRepo:    userRepo,
		deptRepo:    deptRepo,
		sessionRepo: sessionRepo,
		emailSvc:    emailSvc,
		config:      cfg,
	}
}

func (s *service) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, *domain.TokenPair, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Password == "" {
		return nil, nil, ErrMissingFields
	}
	if input.Password != input.ConfirmPassword {
		return nil, nil, ErrPasswordMismatch
	}
	if len(input.Password) < 8 {
		return nil, nil, ErrPasswordTooShort
	}

	role := input.Role
	if role == "" {
		role = domain.RoleCitizen
	}
	if !role.IsValid() {
		return nil, nil, ErrInvalidRole
	}

	// Staff accounts must belong to a real department.
	var departmentID *uuid.UUID
	if role == domain.RoleOfficer || role == domain.RoleAdmin {
		if input.DepartmentID == nil {
			return nil, nil, ErrDepartmentRequired
		}
		dept, err := s.deptRepo.GetByID(ctx, *input.DepartmentID)
		if err != nil {
			return nil, nil, err
		}
		if dept == nil || !dept.IsActive {
			return nil, nil, domain.ErrDepartmentNotFound
		}
		departmentID = &dept.ID
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, normalizedEmail)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, domain.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
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
		IsVerified:   false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	go func() {
		if err := s.emailSvc.SendWelcome(context.Background(), user.Email, user.FullName(), user.Role); err != nil {
			log.Printf("failed to send welcome email to %s: %v", user.Email, err)
		}
	}()

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error) {
	if input.Email == "" || input.Password == "" {
		return nil, nil, ErrMissingFields
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, domain.ErrUserDeactivated
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidRefreshToken
	}

	// Rotation: the presented token is single use.
	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	return s.issueTokenPair(ctx, user)
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.sessionRepo.Revoke(ctx, session.ID)
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *service) issueTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWTAccessExpiry)),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateToken()
	if err != nil {
		return nil, err
	}

	session := &repository.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: now.Add(s.config.JWTRefreshExpiry),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWTAccessExpiry.Seconds()),
	}, nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
