package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/clothing-shop/internal/domain"
	"github.com/spec-kit/clothing-shop/internal/query"
	"github.com/spec-kit/clothing-shop/internal/repository"
	apperrors "github.com/spec-kit/clothing-shop/pkg/util"
)

const roleCacheTTL = 5 * time.Minute

// RoleService reads the fixed role set, fronted by a redis cache. Cache
// failures fall through to the directory and never surface to callers.
type RoleService struct {
	roles  repository.RoleRepository
	cache  *redis.Client
	logger *zap.Logger
}

// NewRoleService builds the service. The cache client may be nil.
func NewRoleService(roles repository.RoleRepository, cache *redis.Client, logger *zap.Logger) *RoleService {
	return &RoleService{roles: roles, cache: cache, logger: logger}
}

// Get fetches a single role by id.
func (s *RoleService) Get(ctx context.Context, id int64) (*domain.Role, error) {
	if role := s.cached(ctx, id); role != nil {
		return role, nil
	}

	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("role", map[string]any{"id": id})
		}
		return nil, apperrors.NewDependencyFailure(err)
	}

	s.store(ctx, role)
	return role, nil
}

// List returns roles matching the listing spec: filter, sort, paginate.
func (s *RoleService) List(ctx context.Context, spec query.Spec) ([]domain.Role, error) {
	roles, err := s.roles.List(ctx, spec)
	if err != nil {
		if errors.Is(err, query.ErrInvalidSortField) || errors.Is(err, query.ErrInvalidPage) {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		return nil, apperrors.NewDependencyFailure(err)
	}
	return roles, nil
}

func (s *RoleService) cached(ctx context.Context, id int64) *domain.Role {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, roleCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var role domain.Role
	if err := json.Unmarshal(raw, &role); err != nil {
		return nil
	}
	return &role
}

func (s *RoleService) store(ctx context.Context, role *domain.Role) {
	if s.cache == nil || role == nil {
		return
	}
	raw, err := json.Marshal(role)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, roleCacheKey(role.ID), raw, roleCacheTTL).Err(); err != nil {
		s.logger.Debug("role cache write failed", zap.Error(err))
	}
}

func roleCacheKey(id int64) string {
	return fmt.Sprintf("role:%d", id)
}
