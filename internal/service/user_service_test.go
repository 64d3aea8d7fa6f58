package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"authapi/internal/cache"
	apperrors "authapi/internal/errors"
	"authapi/internal/model"
	"authapi/internal/repository"
)

func TestUserService_GetUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, "u1", mock.Anything).
		Return(&model.User{ID: "u1", Name: "Ana", Email: "ana@example.com"}, nil)

	user, err := NewUserService(mockRepo, nil, 0).GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.Empty(t, user.PasswordHash)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetUser_ExcludesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, "u1", mock.MatchedBy(func(opts []repository.FindOption) bool {
		var o repository.FindOptions
		for _, opt := range opts {
			opt(&o)
		}
		return o.OmitPassword
	})).Return(&model.User{ID: "u1", Name: "Ana"}, nil)

	_, err := NewUserService(mockRepo, nil, 0).GetUser(context.Background(), "u1")
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, "missing", mock.Anything).Return(nil, repository.ErrNotFound)

	_, err := NewUserService(mockRepo, nil, 0).GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_GetUser_StoreError(t *testing.T) {
	boom := errors.New("connection reset")
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, "u1", mock.Anything).Return(nil, boom)

	_, err := NewUserService(mockRepo, nil, 0).GetUser(context.Background(), "u1")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_GetUser_Cached(t *testing.T) {
	mr := miniredis.RunT(t)
	cacheClient := cache.New(mr.Addr(), "", 0)
	defer cacheClient.Close()

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, "u1", mock.Anything).
		Return(&model.User{ID: "u1", Name: "Ana", Email: "ana@example.com", PasswordHash: "leaked?"}, nil).Once()

	svc := NewUserService(mockRepo, cacheClient, time.Minute)
	ctx := context.Background()

	first, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	second, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, first.Email, second.Email)
	assert.Empty(t, second.PasswordHash)
	assert.True(t, mr.Exists("user:u1"))
	assert.NotContains(t, mustGet(t, mr, "user:u1"), "leaked?")
	mockRepo.AssertNumberOfCalls(t, "FindByID", 1)
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
