package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/clothing-shop/internal/auth"
	"github.com/spec-kit/clothing-shop/internal/config"
	"github.com/spec-kit/clothing-shop/internal/domain"
	"github.com/spec-kit/clothing-shop/internal/events"
	"github.com/spec-kit/clothing-shop/internal/repository"
	apperrors "github.com/spec-kit/clothing-shop/pkg/util"
)

// Seeded role ids, fixed by the initial migration.
const (
	RoleIDAdmin  int64 = 1
	RoleIDStaff  int64 = 2
	RoleIDMember int64 = 3
)

// RegisterInput carries the fields accepted at registration. Role is never
// caller-supplied; every new account is a member.
type RegisterInput struct {
	Username    string
	Password    string
	FullName    string
	Gender      string
	DateOfBirth *time.Time
	Address     string
	Phone       string
	Email       string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	limiter    *auth.LoginLimiter
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, limiter *auth.LoginLimiter, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth),
		limiter:    limiter,
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new member account. The login name must be unused; the
// storage layer enforces the same guarantee with a unique index.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict("this account name has been used", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewDependencyFailure(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		FullName:     input.FullName,
		Gender:       input.Gender,
		DateOfBirth:  input.DateOfBirth,
		Address:      input.Address,
		Phone:        input.Phone,
		Email:        input.Email,
		RoleID:       RoleIDMember,
		RoleName:     domain.RoleMember,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, apperrors.NewConflict("this account name has been used", nil)
		}
		return nil, apperrors.NewDependencyFailure(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		UserID:  user.ID,
		Payload: events.UserRegisteredPayload{Username: user.Username, Role: user.RoleName},
	})
	return user, nil
}

// Login verifies credentials and issues an access token. Unknown usernames,
// wrong passwords and deactivated accounts are indistinguishable to callers.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	if !s.limiter.Allow(ctx, username) {
		return nil, "", time.Time{}, apperrors.NewRateLimited("too many login attempts")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewDependencyFailure(err)
	}
	if user.Deactivated {
		return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
	}

	token, exp, err := s.tokenMgr.Issue(user.ID, user.RoleName)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.limiter.Reset(ctx, username)
	return user, token, exp, nil
}

// Logout acknowledges a client-side token discard. Tokens are self-contained
// and unrevocable; expiry forces re-authentication.
func (s *AuthService) Logout(_ context.Context, _ domain.Identity) error {
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
