package service

import (
	"context"
	"errors"

	"techcom/internal/domain"
	"techcom/internal/dto"
	"techcom/internal/logger"
	"techcom/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService defines the interface for account administration.
type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	SearchUsers(ctx context.Context, filter domain.SearchFilter) ([]dto.UserResponse, error)
	UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeactivateUser(ctx context.Context, actorID, id string) error
	RestoreUser(ctx context.Context, id string) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo domain.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

// HashPassword hashes a plain password with bcrypt's default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.NewValidationError("password is too long")
		}
		return "", domain.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}

func (s *userServiceImpl) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := domain.NewUser(util.NewULID(), req.Email, hash, req.FullName, role)
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, duplicateAsConflict(err, "email is already registered: "+user.Email)
	}
	logger.Get().Info("User created", zap.String("userID", user.ID), zap.String("role", string(role)))
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// GetUser retrieves an account, deactivated ones included.
func (s *userServiceImpl) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := findUser(ctx, s.userRepo, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *userServiceImpl) SearchUsers(ctx context.Context, filter domain.SearchFilter) ([]dto.UserResponse, error) {
	if filter.Role != "" {
		if _, err := domain.ParseRole(filter.Role); err != nil {
			return nil, err
		}
	}
	users, err := s.userRepo.Search(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError("failed to search users", err)
	}
	return dto.ToUserResponses(users), nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := findUser(ctx, s.userRepo, id)
	if err != nil {
		return nil, err
	}
	if user.Deleted {
		return nil, domain.NewNotFoundError("user", id)
	}
	setTrimmed(&user.FullName, req.FullName)
	if req.Role != nil {
		role, err := domain.ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, passThrough("failed to update user", err)
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// DeactivateUser soft-deletes an account. Admins cannot deactivate themselves.
func (s *userServiceImpl) DeactivateUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.NewValidationError("you cannot deactivate your own account")
	}
	user, err := findUser(ctx, s.userRepo, id)
	if err != nil {
		return err
	}
	if err := user.SoftDelete.Delete(); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return passThrough("failed to deactivate user", err)
	}
	logger.Get().Info("User deactivated", zap.String("userID", id), zap.String("by", actorID))
	return nil
}

func (s *userServiceImpl) RestoreUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := findUser(ctx, s.userRepo, id)
	if err != nil {
		return nil, err
	}
	if err := user.SoftDelete.Restore(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, passThrough("failed to restore user", err)
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}
