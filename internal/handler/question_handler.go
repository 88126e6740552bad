package handler

import (
	"techcom/internal/dto"
	"techcom/internal/service"
	"techcom/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles the question bank.
type QuestionHandler struct {
	questionService service.QuestionService
	validator       *validation.Validator
}

func NewQuestionHandler(questionService service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, validator: validation.NewValidator()}
}

// Create godoc
// @Summary Add a question to the bank
// @Tags quiz-questions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "Question"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Answer does not fit the question type"
// @Router /quiz-questions/create [post]
func (h *QuestionHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateQuestionRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	question, err := h.questionService.CreateQuestion(c.UserContext(), p.UserID, req)
	if err != nil {
		return err
	}
	return created(c, question)
}

// GetAll godoc
// @Summary List bank questions
// @Tags quiz-questions
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.QuestionResponse]
// @Router /quiz-questions/get-all [get]
func (h *QuestionHandler) GetAll(c *fiber.Ctx) error {
	return h.Search(c)
}

// Search godoc
// @Summary Search bank questions
// @Tags quiz-questions
// @Security ApiKeyAuth
// @Produce json
// @Param q query string false "Question text substring"
// @Param type query string false "Question type"
// @Success 200 {object} dto.ListResponse[dto.QuestionResponse]
// @Router /quiz-questions/search [get]
func (h *QuestionHandler) Search(c *fiber.Ctx) error {
	filter, err := parseSearch(c, h.validator, false)
	if err != nil {
		return err
	}
	questions, err := h.questionService.SearchQuestions(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(questions))
}

// Get godoc
// @Summary Get a bank question
// @Tags quiz-questions
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz-questions/get/{id} [get]
func (h *QuestionHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	question, err := h.questionService.GetQuestion(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(question)
}

// Update godoc
// @Summary Update a bank question
// @Tags quiz-questions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Changes"
// @Success 200 {object} dto.QuestionResponse
// @Router /quiz-questions/update/{id} [put]
func (h *QuestionHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateQuestionRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	question, err := h.questionService.UpdateQuestion(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(question)
}

// Delete godoc
// @Summary Delete a bank question
// @Description Removes the question and its quiz links
// @Tags quiz-questions
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Router /quiz-questions/delete/{id} [delete]
func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	if err := h.questionService.DeleteQuestion(c.UserContext(), id); err != nil {
		return err
	}
	return message(c, "question deleted")
}
