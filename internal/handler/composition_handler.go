package handler

import (
	"techcom/internal/dto"
	"techcom/internal/service"
	"techcom/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CompositionHandler manages which questions a quiz holds and in what order.
type CompositionHandler struct {
	compositionService service.CompositionService
	validator          *validation.Validator
}

func NewCompositionHandler(compositionService service.CompositionService) *CompositionHandler {
	return &CompositionHandler{compositionService: compositionService, validator: validation.NewValidator()}
}

// Add godoc
// @Summary Link a bank question to a quiz
// @Description The question is appended after the quiz's last question
// @Tags question-to-quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.AddQuestionRequest true "Quiz and question"
// @Success 201 {object} dto.MessageResponse
// @Failure 409 {object} middleware.ErrorResponse "Already linked"
// @Router /question-to-quiz/add [post]
func (h *CompositionHandler) Add(c *fiber.Ctx) error {
	var req dto.AddQuestionRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	if err := h.compositionService.AddQuestion(c.UserContext(), req.QuizID, req.QuestionID); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "question added"})
}

// AutoAdd godoc
// @Summary Add questions matching tags
// @Description Adds up to count unlinked questions found through quizzes or materials carrying the tags
// @Tags question-to-quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.AutoAddRequest true "Quiz, tags and count"
// @Success 200 {object} dto.AutoAddResponse
// @Router /question-to-quiz/auto-add [post]
func (h *CompositionHandler) AutoAdd(c *fiber.Ctx) error {
	var req dto.AutoAddRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	result, err := h.compositionService.AutoAddByTags(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Reorder godoc
// @Summary Reorder a quiz's questions
// @Description question_ids must list every question of the quiz exactly once
// @Tags question-to-quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Param request body dto.ReorderRequest true "New order"
// @Success 200 {object} dto.ListResponse[dto.QuizQuestionResponse]
// @Failure 400 {object} middleware.ErrorResponse "Not a permutation"
// @Router /question-to-quiz/reorder/{quizId} [put]
func (h *CompositionHandler) Reorder(c *fiber.Ctx) error {
	quizID, err := pathID(c, h.validator, "quizId")
	if err != nil {
		return err
	}
	var req dto.ReorderRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	questions, err := h.compositionService.Reorder(c.UserContext(), quizID, req.QuestionIDs)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(questions))
}

// Remove godoc
// @Summary Unlink a question from a quiz
// @Description The question stays in the bank
// @Tags question-to-quiz
// @Security ApiKeyAuth
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Param questionId path string true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "Not linked"
// @Router /question-to-quiz/remove/{quizId}/{questionId} [delete]
func (h *CompositionHandler) Remove(c *fiber.Ctx) error {
	quizID, err := pathID(c, h.validator, "quizId")
	if err != nil {
		return err
	}
	questionID, err := pathID(c, h.validator, "questionId")
	if err != nil {
		return err
	}
	if err := h.compositionService.RemoveQuestion(c.UserContext(), quizID, questionID); err != nil {
		return err
	}
	return message(c, "question removed")
}

// List godoc
// @Summary Questions of a quiz in order
// @Tags question-to-quiz
// @Security ApiKeyAuth
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} dto.ListResponse[dto.QuizQuestionResponse]
// @Router /question-to-quiz/get/{quizId} [get]
func (h *CompositionHandler) List(c *fiber.Ctx) error {
	quizID, err := pathID(c, h.validator, "quizId")
	if err != nil {
		return err
	}
	questions, err := h.compositionService.ListQuestions(c.UserContext(), quizID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(questions))
}

// Stats godoc
// @Summary Quiz statistics
// @Tags question-to-quiz
// @Security ApiKeyAuth
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} dto.QuizStatsResponse
// @Router /question-to-quiz/stats/{quizId} [get]
func (h *CompositionHandler) Stats(c *fiber.Ctx) error {
	quizID, err := pathID(c, h.validator, "quizId")
	if err != nil {
		return err
	}
	stats, err := h.compositionService.Stats(c.UserContext(), quizID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// CreateInQuiz godoc
// @Summary Create a question and append it to a quiz
// @Tags question-to-quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Param request body dto.CreateQuestionRequest true "Question"
// @Success 201 {object} dto.QuizQuestionResponse
// @Router /question-to-quiz/create/{quizId} [post]
func (h *CompositionHandler) CreateInQuiz(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	quizID, err := pathID(c, h.validator, "quizId")
	if err != nil {
		return err
	}
	var req dto.CreateQuestionRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	question, err := h.compositionService.CreateQuestionInQuiz(c.UserContext(), p.UserID, quizID, req)
	if err != nil {
		return err
	}
	return created(c, question)
}
