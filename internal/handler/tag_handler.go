package handler

import (
	"techcom/internal/dto"
	"techcom/internal/service"
	"techcom/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TagHandler handles tag CRUD and list-by-tag.
type TagHandler struct {
	tagService service.TagService
	validator  *validation.Validator
}

func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService, validator: validation.NewValidator()}
}

// Create godoc
// @Summary Create a tag
// @Tags tags
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.TagRequest true "Tag"
// @Success 201 {object} dto.TagResponse
// @Failure 409 {object} middleware.ErrorResponse "Duplicate name"
// @Router /tags/create [post]
func (h *TagHandler) Create(c *fiber.Ctx) error {
	var req dto.TagRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	tag, err := h.tagService.CreateTag(c.UserContext(), req)
	if err != nil {
		return err
	}
	return created(c, tag)
}

// GetAll godoc
// @Summary List tags
// @Tags tags
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.TagResponse]
// @Router /tags/get-all [get]
func (h *TagHandler) GetAll(c *fiber.Ctx) error {
	tags, err := h.tagService.ListTags(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(tags))
}

// Get godoc
// @Summary Get a tag
// @Tags tags
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} dto.TagResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /tags/get/{id} [get]
func (h *TagHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	tag, err := h.tagService.GetTag(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(tag)
}

// Update godoc
// @Summary Rename a tag
// @Tags tags
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param request body dto.TagRequest true "Tag"
// @Success 200 {object} dto.TagResponse
// @Failure 409 {object} middleware.ErrorResponse "Duplicate name"
// @Router /tags/update/{id} [put]
func (h *TagHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	var req dto.TagRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	tag, err := h.tagService.UpdateTag(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(tag)
}

// Delete godoc
// @Summary Delete a tag
// @Description Removes the tag and its links to materials and quizzes
// @Tags tags
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} dto.MessageResponse
// @Router /tags/delete/{id} [delete]
func (h *TagHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	if err := h.tagService.DeleteTag(c.UserContext(), id); err != nil {
		return err
	}
	return message(c, "tag deleted")
}

// Items godoc
// @Summary Materials and quizzes linked to a tag
// @Tags tags
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} dto.TagItemsResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /tags/{id}/items [get]
func (h *TagHandler) Items(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	items, err := h.tagService.ListByTag(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(items)
}
