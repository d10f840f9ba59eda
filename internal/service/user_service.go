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

// ProfileUpdate carries the mutable profile fields. Username, role, password
// and the active flag are never updated through this path.
type ProfileUpdate struct {
	FullName    string
	Gender      string
	DateOfBirth *time.Time
	Address     string
	Phone       string
	Email       string
	Avatar      string
}

// UserService applies the access policy to every user-record operation.
// Authorization always runs before any write.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{
		users:      users,
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Get returns a user record when the caller may see it.
func (s *UserService) Get(ctx context.Context, caller domain.Identity, id int64) (*domain.User, error) {
	user, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(caller, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns every account; admin only.
func (s *UserService) List(ctx context.Context, caller domain.Identity) ([]domain.User, error) {
	if !auth.CanListUsers(caller) {
		return nil, apperrors.NewForbidden("admin role required")
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewDependencyFailure(err)
	}
	return users, nil
}

// UpdateProfile replaces the profile fields of the target account.
func (s *UserService) UpdateProfile(ctx context.Context, caller domain.Identity, id int64, update ProfileUpdate) (*domain.User, error) {
	user, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(caller, user); err != nil {
		return nil, err
	}

	user.FullName = update.FullName
	user.Gender = update.Gender
	user.DateOfBirth = update.DateOfBirth
	user.Address = update.Address
	user.Phone = update.Phone
	user.Email = update.Email
	user.Avatar = update.Avatar

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.NewDependencyFailure(err)
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new hash.
// A wrong current password is a failed proof of ownership, so it is rejected
// as forbidden and the stored hash stays untouched.
func (s *UserService) ChangePassword(ctx context.Context, caller domain.Identity, id int64, currentPassword, newPassword string) error {
	user, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(caller, user); err != nil {
		return err
	}

	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewForbidden("current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash

	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.NewDependencyFailure(err)
	}

	s.publish(ctx, events.Event{Type: events.EventPasswordChanged, UserID: user.ID, Actor: actor(caller)})
	return nil
}

// Deactivate marks the account inactive. Deactivating twice is a conflict.
func (s *UserService) Deactivate(ctx context.Context, caller domain.Identity, id int64) error {
	user, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(caller, user); err != nil {
		return err
	}
	if user.Deactivated {
		return apperrors.NewConflict("user is already deactivated", nil)
	}

	user.Deactivated = true
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.NewDependencyFailure(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserDeactivated,
		UserID:  user.ID,
		Actor:   actor(caller),
		Payload: events.AccountStateChangedPayload{Deactivated: true},
	})
	return nil
}

// Reactivate restores a deactivated account. Reactivating an active account
// is a conflict.
func (s *UserService) Reactivate(ctx context.Context, caller domain.Identity, id int64) error {
	user, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(caller, user); err != nil {
		return err
	}
	if !user.Deactivated {
		return apperrors.NewConflict("user is already active", nil)
	}

	user.Deactivated = false
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.NewDependencyFailure(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserReactivated,
		UserID:  user.ID,
		Actor:   actor(caller),
		Payload: events.AccountStateChangedPayload{Deactivated: false},
	})
	return nil
}

func (s *UserService) fetch(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.NewDependencyFailure(err)
	}
	return user, nil
}

func (s *UserService) authorize(caller domain.Identity, target *domain.User) error {
	var t *auth.Target
	if target != nil {
		t = &auth.Target{OwnerID: target.ID, OwnerRole: target.RoleName}
	}
	switch auth.Decide(caller, t) {
	case auth.DecisionAllow:
		return nil
	case auth.DecisionNotFound:
		return apperrors.NewNotFound("user", nil)
	default:
		return apperrors.NewForbidden("insufficient privileges")
	}
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func actor(caller domain.Identity) events.Actor {
	return events.Actor{SubjectID: caller.SubjectID, Role: caller.Role}
}
