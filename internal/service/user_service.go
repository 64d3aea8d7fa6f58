package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"authapi/internal/cache"
	apperrors "authapi/internal/errors"
	"authapi/internal/model"
	"authapi/internal/repository"
)

// DefaultUserCacheTTL is used when no TTL is configured.
const DefaultUserCacheTTL = 5 * time.Minute

// UserService exposes profile lookups.
type UserService interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
	ttl   time.Duration
}

// NewUserService builds a UserService with repository and cache. A nil cache
// disables caching.
func NewUserService(repo repository.UserRepository, cache *cache.Client, ttl time.Duration) UserService {
	if ttl <= 0 {
		ttl = DefaultUserCacheTTL
	}
	return &userService{repo: repo, cache: cache, ttl: ttl}
}

func (s *userService) cacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

// GetUser returns the user without its password hash. Users are never
// modified after creation, so cached profiles do not go stale.
func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id, repository.WithoutPassword())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	user.PasswordHash = ""

	_ = s.cache.SetJSON(ctx, s.cacheKey(id), user, s.ttl)
	return user, nil
}
