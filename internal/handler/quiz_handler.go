package handler

import (
	"techcom/internal/dto"
	"techcom/internal/service"
	"techcom/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz CRUD, archival and tagging.
type QuizHandler struct {
	quizService service.QuizService
	validator   *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService, validator: validation.NewValidator()}
}

// Create godoc
// @Summary Create a quiz
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Unknown tag"
// @Router /quizzes/create [post]
func (h *QuizHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateQuizRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	quiz, err := h.quizService.CreateQuiz(c.UserContext(), p.UserID, req)
	if err != nil {
		return err
	}
	return created(c, quiz)
}

// GetAll godoc
// @Summary List quizzes
// @Description Lists draft and active quizzes
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.QuizResponse]
// @Router /quizzes/get-all [get]
func (h *QuizHandler) GetAll(c *fiber.Ctx) error {
	return h.list(c, false)
}

// Search godoc
// @Summary Search quizzes
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param q query string false "Title substring"
// @Param creator query string false "Creator name substring"
// @Param status query string false "draft or active"
// @Success 200 {object} dto.ListResponse[dto.QuizResponse]
// @Router /quizzes/search [get]
func (h *QuizHandler) Search(c *fiber.Ctx) error {
	return h.list(c, false)
}

// GetArchived godoc
// @Summary List archived quizzes
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param q query string false "Title substring"
// @Success 200 {object} dto.ListResponse[dto.QuizResponse]
// @Router /quizzes/get-archived [get]
func (h *QuizHandler) GetArchived(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *QuizHandler) list(c *fiber.Ctx, archived bool) error {
	filter, err := parseSearch(c, h.validator, archived)
	if err != nil {
		return err
	}
	quizzes, err := h.quizService.SearchQuizzes(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(quizzes))
}

// Get godoc
// @Summary Get a quiz
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/get/{id} [get]
func (h *QuizHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	quiz, err := h.quizService.GetQuiz(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// Update godoc
// @Summary Update a quiz
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.UpdateQuizRequest true "Changes"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse "Archived quizzes cannot be edited"
// @Router /quizzes/update/{id} [put]
func (h *QuizHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateQuizRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	quiz, err := h.quizService.UpdateQuiz(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// Archive godoc
// @Summary Archive a quiz
// @Description DELETE /quizzes/delete/{id} is an alias
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 409 {object} middleware.ErrorResponse "Already archived"
// @Router /quizzes/archive/{id} [post]
func (h *QuizHandler) Archive(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	quiz, err := h.quizService.ArchiveQuiz(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// Restore godoc
// @Summary Restore an archived quiz
// @Description Returns the quiz to the status it had before archival
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 409 {object} middleware.ErrorResponse "Not archived"
// @Router /quizzes/restore/{id} [post]
func (h *QuizHandler) Restore(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	quiz, err := h.quizService.RestoreQuiz(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// AssignTags godoc
// @Summary Replace a quiz's tags
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.TagIDsRequest true "Tag IDs"
// @Success 200 {object} dto.QuizResponse
// @Router /quizzes/assign-tags/{id} [post]
func (h *QuizHandler) AssignTags(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	var req dto.TagIDsRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	quiz, err := h.quizService.AssignTags(c.UserContext(), id, req.TagIDs)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// RemoveTags godoc
// @Summary Unlink tags from a quiz
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.RemoveTagIDsRequest true "Tag IDs"
// @Success 200 {object} dto.QuizResponse
// @Router /quizzes/remove-tags/{id} [post]
func (h *QuizHandler) RemoveTags(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	var req dto.RemoveTagIDsRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	quiz, err := h.quizService.RemoveTags(c.UserContext(), id, req.TagIDs)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}
