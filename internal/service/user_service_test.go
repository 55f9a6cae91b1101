package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

func TestUserService_UpdateUser(t *testing.T) {
	t.Run("success keeps password when empty", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		ctx := context.Background()

		stored := &domain.User{ID: 3, Name: "Thor Odinson", Username: "thor", Email: "thor@asgard.com", Password: "mjolnir"}
		repo.On("GetByID", mock.Anything, "3").Return(stored, nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == 3 && u.Username == "godofthunder" && u.Password == ""
		})).Return(nil).Once()
		repo.On("GetByID", mock.Anything, "3").Return(&domain.User{ID: 3, Username: "godofthunder", Password: "mjolnir"}, nil).Once()

		user, err := svc.UpdateUser(ctx, "3", domain.UserUpdate{Name: "Thor", Username: " godofthunder ", Email: "thor@asgard.com"})
		require.NoError(t, err)
		assert.Equal(t, "godofthunder", user.Username)
		repo.AssertExpectations(t)
	})

	t.Run("username required", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		_, err := svc.UpdateUser(context.Background(), "3", domain.UserUpdate{Username: "  "})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("malformed email", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository))

		_, err := svc.UpdateUser(context.Background(), "3", domain.UserUpdate{Username: "thor", Email: "asgard"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("user not found", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("GetByID", mock.Anything, "9").Return(nil, domain.NewNotFoundError("user")).Once()

		_, err := svc.UpdateUser(context.Background(), "9", domain.UserUpdate{Username: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("username taken", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("GetByID", mock.Anything, "1").Return(&domain.User{ID: 1, Username: "ironman"}, nil).Once()
		repo.On("Update", mock.Anything, mock.Anything).Return(domain.ErrUsernameTaken).Once()

		_, err := svc.UpdateUser(context.Background(), "1", domain.UserUpdate{Username: "batman"})
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})
}

func TestUserService_ListUsers(t *testing.T) {
	t.Run("unbounded page counts the rows", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("List", mock.Anything, domain.Page{}).Return([]*domain.User{{ID: 1}, {ID: 2}}, nil).Once()

		users, total, err := svc.ListUsers(context.Background(), domain.Page{})
		require.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, 2, total)
		repo.AssertNotCalled(t, "Count", mock.Anything)
	})

	t.Run("bounded page asks for the total", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		page := domain.Page{Limit: 1, Offset: 1}
		repo.On("List", mock.Anything, page).Return([]*domain.User{{ID: 2}}, nil).Once()
		repo.On("Count", mock.Anything).Return(8, nil).Once()

		users, total, err := svc.ListUsers(context.Background(), page)
		require.NoError(t, err)
		assert.Len(t, users, 1)
		assert.Equal(t, 8, total)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("List", mock.Anything, domain.Page{}).Return(nil, errors.New("db down")).Once()

		_, _, err := svc.ListUsers(context.Background(), domain.Page{})
		assert.Error(t, err)
	})
}
