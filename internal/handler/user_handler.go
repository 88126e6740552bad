package handler

import (
	"techcom/internal/dto"
	"techcom/internal/logger"
	"techcom/internal/service"
	"techcom/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler exposes account administration.
type UserHandler struct {
	userService service.UserService
	validator   *validation.Validator
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validation.NewValidator()}
}

// Create godoc
// @Summary Create a user account
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Account"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /users/create [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	user, err := h.userService.CreateUser(c.UserContext(), req)
	if err != nil {
		return err
	}
	return created(c, user)
}

// GetAll godoc
// @Summary List active users
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.UserResponse]
// @Router /users/get-all [get]
func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	return h.list(c, false)
}

// Search godoc
// @Summary Search users
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param q query string false "Name or email substring"
// @Param role query string false "Role"
// @Success 200 {object} dto.ListResponse[dto.UserResponse]
// @Router /users/search [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	return h.list(c, false)
}

// GetDeleted godoc
// @Summary List deactivated users
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.UserResponse]
// @Router /users/get-deleted [get]
func (h *UserHandler) GetDeleted(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *UserHandler) list(c *fiber.Ctx, deleted bool) error {
	filter, err := parseSearch(c, h.validator, deleted)
	if err != nil {
		return err
	}
	users, err := h.userService.SearchUsers(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(users))
}

// Get godoc
// @Summary Get a user
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /users/get/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	user, err := h.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Update godoc
// @Summary Update a user
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Changes"
// @Success 200 {object} dto.UserResponse
// @Router /users/update/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	user, err := h.userService.UpdateUser(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Delete godoc
// @Summary Deactivate a user
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Router /users/delete/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	if err := h.userService.DeactivateUser(c.UserContext(), p.UserID, id); err != nil {
		return err
	}
	logger.Get().Info("User deactivated", zap.String("userID", id), zap.String("by", p.UserID))
	return message(c, "user deactivated")
}

// Restore godoc
// @Summary Reactivate a user
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /users/restore/{id} [post]
func (h *UserHandler) Restore(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	user, err := h.userService.RestoreUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}
