package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"payroll_backend/internal/models"
	"payroll_backend/internal/repositories"
	"payroll_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the weak-password policy threshold.
const MinPasswordLength = 6

// --- Custom Service Errors ---
//
// One error per entry of the credential taxonomy. Handlers map each onto a
// distinct user-facing message; none are retried automatically.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailExists         = errors.New("email already in use")
	ErrWeakPassword        = errors.New("password must be at least 6 characters")
	ErrOperationNotAllowed = errors.New("sign-in method is not enabled")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrTokenGeneration     = errors.New("failed to generate token")
)

// --- Data Transfer Objects (DTOs) ---

// RegisterRequest DTO
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

// LoginRequest DTO
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// --- AuthService Interface ---
type AuthService interface {
	Register(req RegisterRequest) (*AuthResponse, error)
	Login(req LoginRequest) (*AuthResponse, error)
	GuestLogin() (*AuthResponse, error)
	GetUserProfile(userID string) (*models.User, error)
}

type authService struct {
	authRepo       repositories.AuthRepository
	db             *sql.DB
	jwtSecret      []byte
	jwtExpiration  time.Duration
	allowAnonymous bool
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, db *sql.DB, jwtSecret string, jwtExp time.Duration, allowAnonymous bool) AuthService {
	return &authService{
		authRepo:       authRepo,
		db:             db,
		jwtSecret:      []byte(jwtSecret),
		jwtExpiration:  jwtExp,
		allowAnonymous: allowAnonymous,
	}
}

func (s *authService) issueToken(user *models.User) (*AuthResponse, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	token, err := utils.GenerateAccessToken(s.jwtSecret, s.jwtExpiration, user.ID, email, user.IsAnonymous)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	user.PasswordHash = ""
	return &AuthResponse{User: user, AccessToken: token}, nil
}

// Register creates a credentialed account and signs it in. The password
// policy is the minimum-length check; duplicate emails surface as
// ErrEmailExists.
func (s *authService) Register(req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !utils.IsValidPasswordLength(req.Password, MinPasswordLength) {
		return nil, ErrWeakPassword
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        &email,
		PasswordHash: string(hashedPasswordBytes),
		DisplayName:  utils.NewNullString(strings.TrimSpace(req.DisplayName)),
	}

	createdUser, err := s.authRepo.CreateUser(s.db, user)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return s.issueToken(createdUser)
}

// Login verifies credentials. A missing account and a wrong password produce
// the same ErrInvalidCredentials so the two cases are indistinguishable.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.authRepo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// GuestLogin creates a fresh anonymous account. Each guest gets its own
// owner id and therefore its own empty dataset.
func (s *authService) GuestLogin() (*AuthResponse, error) {
	if !s.allowAnonymous {
		return nil, ErrOperationNotAllowed
	}

	user := &models.User{IsAnonymous: true}
	createdUser, err := s.authRepo.CreateUser(s.db, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest account: %w", err)
	}
	return s.issueToken(createdUser)
}

func (s *authService) GetUserProfile(userID string) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}
