package handler

import (
	"techcom/internal/dto"
	"techcom/internal/service"
	"techcom/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CandidateHandler struct {
	candidateService service.CandidateService
	validator        *validation.Validator
}

func NewCandidateHandler(candidateService service.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidateService: candidateService, validator: validation.NewValidator()}
}

// Create godoc
// @Summary Register a candidate
// @Tags candidates
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CandidateRequest true "Candidate"
// @Success 201 {object} dto.CandidateResponse
// @Router /candidates/create [post]
func (h *CandidateHandler) Create(c *fiber.Ctx) error {
	var req dto.CandidateRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	candidate, err := h.candidateService.CreateCandidate(c.UserContext(), req)
	if err != nil {
		return err
	}
	return created(c, candidate)
}

// GetAll godoc
// @Summary List candidates
// @Tags candidates
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.CandidateResponse]
// @Router /candidates/get-all [get]
func (h *CandidateHandler) GetAll(c *fiber.Ctx) error {
	return h.list(c, false)
}

// Search godoc
// @Summary Search candidates
// @Tags candidates
// @Security ApiKeyAuth
// @Produce json
// @Param q query string false "Name or email substring"
// @Param status query string false "Pipeline status"
// @Param job_id query string false "Job ID"
// @Success 200 {object} dto.ListResponse[dto.CandidateResponse]
// @Router /candidates/search [get]
func (h *CandidateHandler) Search(c *fiber.Ctx) error {
	return h.list(c, false)
}

// GetDeleted godoc
// @Summary List deleted candidates
// @Tags candidates
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.CandidateResponse]
// @Router /candidates/get-deleted [get]
func (h *CandidateHandler) GetDeleted(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *CandidateHandler) list(c *fiber.Ctx, deleted bool) error {
	filter, err := parseSearch(c, h.validator, deleted)
	if err != nil {
		return err
	}
	candidates, err := h.candidateService.SearchCandidates(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(candidates))
}

// Get godoc
// @Summary Get a candidate
// @Tags candidates
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} dto.CandidateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /candidates/get/{id} [get]
func (h *CandidateHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	candidate, err := h.candidateService.GetCandidate(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(candidate)
}

// Update godoc
// @Summary Update a candidate
// @Tags candidates
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Candidate ID"
// @Param request body dto.UpdateCandidateRequest true "Changes"
// @Success 200 {object} dto.CandidateResponse
// @Router /candidates/update/{id} [put]
func (h *CandidateHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCandidateRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	candidate, err := h.candidateService.UpdateCandidate(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(candidate)
}

// Delete godoc
// @Summary Delete a candidate
// @Tags candidates
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} dto.MessageResponse
// @Router /candidates/delete/{id} [delete]
func (h *CandidateHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	if err := h.candidateService.DeleteCandidate(c.UserContext(), id); err != nil {
		return err
	}
	return message(c, "candidate deleted")
}

// Restore godoc
// @Summary Restore a deleted candidate
// @Tags candidates
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} dto.CandidateResponse
// @Failure 409 {object} middleware.ErrorResponse "Not deleted"
// @Router /candidates/restore/{id} [post]
func (h *CandidateHandler) Restore(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	candidate, err := h.candidateService.RestoreCandidate(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(candidate)
}
