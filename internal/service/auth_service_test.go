package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/adityarama/folio/internal/domain"
	"github.com/adityarama/folio/internal/repository"
	"github.com/adityarama/folio/internal/session"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	users     map[string]*domain.User // keyed by email
	nextID    int64
	createErr error
	getErr    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[string]*domain.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.users[user.Email]; exists {
		return domain.ErrEmailTaken
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, exists := m.users[email]; exists {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, exists := m.users[email]
	return exists, nil
}

func newTestAuthService(repo repository.UserRepository) (*AuthService, *session.Manager, func()) {
	store := session.NewMemoryStore()
	sessions := session.NewManager(store, time.Hour, zerolog.Nop())
	svc := NewAuthService(repo, sessions, zerolog.Nop())
	return svc, sessions, func() { store.Close() }
}

// =============================================================================
// Tests
// =============================================================================

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		input     RegisterInput
		wantErr   error
		setupRepo func(*MockUserRepository)
	}{
		{
			name: "success",
			input: RegisterInput{
				Name:     "Ana",
				Email:    "ana@example.com",
				Password: "secret",
			},
			wantErr: nil,
		},
		{
			name: "missing name",
			input: RegisterInput{
				Email:    "ana@example.com",
				Password: "secret",
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "missing email",
			input: RegisterInput{
				Name:     "Ana",
				Password: "secret",
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "malformed email",
			input: RegisterInput{
				Name:     "Ana",
				Email:    "not-an-address",
				Password: "secret",
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "missing password",
			input: RegisterInput{
				Name:  "Ana",
				Email: "ana@example.com",
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "email taken",
			input: RegisterInput{
				Name:     "Ana",
				Email:    "taken@example.com",
				Password: "secret",
			},
			wantErr: domain.ErrEmailTaken,
			setupRepo: func(m *MockUserRepository) {
				m.users["taken@example.com"] = &domain.User{
					ID:    1,
					Name:  "Other",
					Email: "taken@example.com",
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockUserRepository()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}

			svc, _, cleanup := newTestAuthService(repo)
			defer cleanup()

			user, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID == 0 {
				t.Error("expected assigned user ID")
			}
			if user.PasswordHash == tt.input.Password {
				t.Error("expected password to be hashed, not stored raw")
			}
		})
	}
}

func TestAuthService_RegisterDoesNotAuthenticate(t *testing.T) {
	repo := NewMockUserRepository()
	svc, sessions, cleanup := newTestAuthService(repo)
	defer cleanup()

	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Registration creates no session; a subsequent load is anonymous.
	sess, err := sessions.Load(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.IsAuthenticated() {
		t.Error("expected anonymous session after register")
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   LoginInput
		wantErr error
	}{
		{
			name:    "success",
			input:   LoginInput{Email: "ana@example.com", Password: "secret"},
			wantErr: nil,
		},
		{
			name:    "unknown email",
			input:   LoginInput{Email: "nobody@example.com", Password: "secret"},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name:    "wrong password",
			input:   LoginInput{Email: "ana@example.com", Password: "wrong"},
			wantErr: domain.ErrIncorrectPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockUserRepository()
			svc, _, cleanup := newTestAuthService(repo)
			defer cleanup()

			if _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			sess, err := svc.Login(ctx, tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !sess.IsAuthenticated() {
				t.Fatal("expected authenticated session")
			}
			if sess.User.Email != "ana@example.com" {
				t.Errorf("expected identity bound to ana@example.com, got %s", sess.User.Email)
			}
			if sess.SuccessFlash != "Login successful!" {
				t.Errorf("expected login flash, got %q", sess.SuccessFlash)
			}
		})
	}
}

func TestAuthService_LoginRotatesToken(t *testing.T) {
	repo := NewMockUserRepository()
	svc, sessions, cleanup := newTestAuthService(repo)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// An anonymous session exists before login.
	prior, _ := sessions.Load(ctx, "")
	if err := sessions.Save(ctx, prior); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sess, err := svc.Login(ctx, LoginInput{
		Email:      "ana@example.com",
		Password:   "secret",
		PriorToken: prior.Token,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sess.Token == prior.Token {
		t.Error("expected a fresh token on login")
	}

	// The prior session is gone.
	got, err := sessions.Load(ctx, prior.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Token == prior.Token {
		t.Error("expected prior session destroyed after login")
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := NewMockUserRepository()
	svc, sessions, cleanup := newTestAuthService(repo)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Logout(ctx, sess.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := sessions.Load(ctx, sess.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsAuthenticated() {
		t.Error("expected anonymous session after logout")
	}

	// Logout is idempotent.
	if err := svc.Logout(ctx, sess.Token); err != nil {
		t.Errorf("expected second logout to be a no-op, got %v", err)
	}
}

func TestAuthService_GetUser(t *testing.T) {
	repo := NewMockUserRepository()
	svc, _, cleanup := newTestAuthService(repo)
	defer cleanup()

	ctx := context.Background()
	user, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "ana@example.com" {
		t.Errorf("expected ana@example.com, got %s", got.Email)
	}

	if _, err := svc.GetUser(ctx, 999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
