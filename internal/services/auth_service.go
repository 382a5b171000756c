package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tokoadmin/internal/apperror"
	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// errInvalidCredentials is returned for every failed login so callers cannot
// tell an unknown email from a wrong password.
var errInvalidCredentials = apperror.Unauthorized("invalid credentials")

// RegisterInput is the payload of a registration request. Length limits
// follow the users table columns; passwords stop at bcrypt's 72 bytes.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"required,max=32"`
	Zipcode  string `json:"zipcode" validate:"required,max=16"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput is the payload of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminInput describes the administrator created by the bootstrap command.
type AdminInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// AuthResult is a user together with a freshly issued session token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *TokenService
	validate *validator.Validate
	cost     int
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		validate: newValidator(),
		cost:     bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.cost = cost
	return s
}

// Tokens exposes the token service used to sign sessions.
func (s *AuthService) Tokens() *TokenService {
	return s.tokens
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with the "user" role and signs them in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Zipcode = strings.TrimSpace(in.Zipcode)
	if fields := fieldErrors(s.validate, in); fields != nil {
		return nil, validationError(fields)
	}

	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.Conflict("email already registered")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Zipcode:  in.Zipcode,
		Password: hash,
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.signIn(user)
}

// Login verifies credentials of an active user and signs them in.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if fields := fieldErrors(s.validate, in); fields != nil {
		return nil, validationError(fields)
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	return s.signIn(user)
}

// CurrentUser returns the active user a verified token belongs to.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("user no longer exists")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("user is inactive")
	}
	return user, nil
}

// EnsureAdmin creates an administrator, or promotes, reactivates and resets
// the password of the account already using that email.
func (s *AuthService) EnsureAdmin(ctx context.Context, in AdminInput) (*models.User, bool, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if fields := fieldErrors(s.validate, in); fields != nil {
		return nil, false, validationError(fields)
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, false, err
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		user.Name = in.Name
		user.Password = hash
		user.Role = models.RoleAdmin
		user.IsActive = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, false, err
		}
		return user, false, nil
	case errors.Is(err, apperror.ErrNotFound):
		user = &models.User{
			Name:     in.Name,
			Email:    in.Email,
			Password: hash,
			Role:     models.RoleAdmin,
			IsActive: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, false, err
		}
		return user, true, nil
	default:
		return nil, false, err
	}
}

func (s *AuthService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", validationError(map[string]string{"password": "must be at most 72 bytes"})
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *AuthService) signIn(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}
