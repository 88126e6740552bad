package handler

import (
	"techcom/internal/domain"
	"techcom/internal/dto"
	"techcom/internal/middleware"
	"techcom/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes the request body into dst and validates its tags.
func parseBody(c *fiber.Ctx, v *validation.Validator, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	return v.ValidateStruct(dst)
}

func parseSearch(c *fiber.Ctx, v *validation.Validator, archived bool) (domain.SearchFilter, error) {
	var q dto.SearchQuery
	if err := c.QueryParser(&q); err != nil {
		return domain.SearchFilter{}, domain.NewValidationError("invalid query parameters")
	}
	if err := v.ValidateStruct(&q); err != nil {
		return domain.SearchFilter{}, err
	}
	return q.Filter(archived), nil
}

// pathID reads and validates an id path parameter.
func pathID(c *fiber.Ctx, v *validation.Validator, param string) (string, error) {
	id := c.Params(param)
	if err := v.ValidateID(param, id); err != nil {
		return "", err
	}
	return id, nil
}

func principal(c *fiber.Ctx) (middleware.Principal, error) {
	p, ok := middleware.CurrentUser(c)
	if !ok {
		return p, domain.NewUnauthorizedError("authentication required")
	}
	return p, nil
}

func created(c *fiber.Ctx, body interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(body)
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(dto.MessageResponse{Message: msg})
}
