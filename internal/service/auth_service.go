// Package service provides business logic services for the folio server.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/adityarama/folio/internal/domain"
	"github.com/adityarama/folio/internal/repository"
	"github.com/adityarama/folio/internal/session"
)

// AuthService handles registration, credential verification, and session
// establishment.
type AuthService struct {
	userRepo repository.UserRepository
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, sessions *session.Manager, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// RegisterInput contains the data needed to register a user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new user with a hashed password. It does not
// authenticate the caller; login is a separate step.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := s.validateRegisterInput(input); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}

	user := domain.NewUser(input.Name, input.Email, string(passwordHash))

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("user registered")

	return user, nil
}

// LoginInput contains the data needed to log in.
type LoginInput struct {
	Email    string
	Password string

	// PriorToken is the caller's current session token, if any. It is
	// destroyed on success so identity always lives on a fresh token.
	PriorToken string
}

// Login verifies credentials and establishes a new session bound to the
// identity. The two failure modes are distinct so the caller can show
// "User not found" vs. "Incorrect password".
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*session.Context, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Debug().Str("email", input.Email).Msg("login for unknown email")
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to look up user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.logger.Debug().Str("email", input.Email).Msg("password mismatch")
		return nil, domain.ErrIncorrectPassword
	}

	// Fresh context on login; the anonymous one the caller held is gone.
	sess, err := s.sessions.Load(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	sess.SetIdentity(user.ID, user.Email, user.Name)
	sess.SetFlash(session.FlashSuccess, "Login successful!")

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if input.PriorToken != "" {
		if err := s.sessions.Destroy(ctx, input.PriorToken); err != nil {
			s.logger.Warn().Err(err).Msg("failed to discard prior session")
		}
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("user logged in")

	return sess, nil
}

// Logout invalidates the whole session context. Idempotent: a missing or
// already destroyed session is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// GetUser retrieves a user by ID, for ownership display.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to get user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return user, nil
}

// validateRegisterInput validates the input for registration.
func (s *AuthService) validateRegisterInput(input RegisterInput) error {
	if input.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if input.Email == "" {
		return domain.NewValidationError("email", "is required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return domain.NewValidationError("email", "is not a valid address")
	}
	if input.Password == "" {
		return domain.NewValidationError("password", "is required")
	}
	return nil
}
