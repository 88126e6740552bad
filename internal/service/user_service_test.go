package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"techcom/internal/domain"
	"techcom/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")))

	_, err = HashPassword(strings.Repeat("x", 73))
	assert.True(t, domain.HasCode(err, domain.CodeValidation))
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@example.com" && u.PasswordHash != "password123" && u.Role == domain.RoleEmployee
		})).Return(nil)

		resp, err := svc.CreateUser(ctx, dto.CreateUserRequest{
			Email:    "New@Example.com",
			Password: "password123",
			FullName: "New Hire",
			Role:     "employee",
		})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", resp.Email)
		repo.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
			Email: "dup@example.com", Password: "password123", FullName: "Dup", Role: "hr",
		})
		assert.True(t, domain.HasCode(err, domain.CodeConflict))
	})

	t.Run("unknown role", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository))
		_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
			Email: "x@example.com", Password: "password123", FullName: "X", Role: "root",
		})
		assert.True(t, domain.HasCode(err, domain.CodeValidation))
	})
}

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()

	repo := new(MockUserRepository)
	svc := NewUserService(repo)
	repo.On("GetByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", Role: domain.RoleHR}, nil)
	repo.On("GetByID", mock.Anything, "u2").Return(nil, nil)
	repo.On("GetByID", mock.Anything, "u3").Return(nil, errors.New("database error"))

	resp, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "hr", resp.Role)

	_, err = svc.GetUser(ctx, "u2")
	assert.True(t, domain.HasCode(err, domain.CodeNotFound))

	_, err = svc.GetUser(ctx, "u3")
	assert.True(t, domain.HasCode(err, domain.CodeInternal))
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	repo := new(MockUserRepository)
	svc := NewUserService(repo)
	user := domain.NewUser("u1", "u1@example.com", "old-hash", "Old Name", domain.RoleEmployee)
	repo.On("GetByID", mock.Anything, "u1").Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	resp, err := svc.UpdateUser(ctx, "u1", dto.UpdateUserRequest{
		FullName: strPtr(" New Name "),
		Role:     strPtr("hr"),
		Password: strPtr("new-password"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", resp.FullName)
	assert.Equal(t, "hr", resp.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password")))
}

func TestUserService_DeactivateRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("cannot deactivate self", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		err := svc.DeactivateUser(ctx, "admin1", "admin1")
		assert.True(t, domain.HasCode(err, domain.CodeValidation))
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("deactivate then restore", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		user := &domain.User{ID: "u1", Role: domain.RoleEmployee}
		repo.On("GetByID", mock.Anything, "u1").Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)

		require.NoError(t, svc.DeactivateUser(ctx, "admin1", "u1"))
		assert.True(t, user.Deleted)

		err := svc.DeactivateUser(ctx, "admin1", "u1")
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))

		_, err = svc.UpdateUser(ctx, "u1", dto.UpdateUserRequest{FullName: strPtr("x")})
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))

		resp, err := svc.RestoreUser(ctx, "u1")
		require.NoError(t, err)
		assert.False(t, resp.IsDeleted)
	})
}

func TestUserService_SearchUsers(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	_, err := svc.SearchUsers(ctx, domain.SearchFilter{Role: "root"})
	assert.True(t, domain.HasCode(err, domain.CodeValidation))

	filter := domain.SearchFilter{Role: "hr", Archived: true}
	repo.On("Search", mock.Anything, filter).Return([]*domain.User{{ID: "u1", Role: domain.RoleHR}}, nil)
	resp, err := svc.SearchUsers(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, resp, 1)
}
