package handler

import (
	"techcom/internal/dto"
	"techcom/internal/service"
	"techcom/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// JobDescriptionHandler handles job postings. Readers without recruitment
// rights only see active postings.
type JobDescriptionHandler struct {
	jobService service.JobDescriptionService
	validator  *validation.Validator
}

func NewJobDescriptionHandler(jobService service.JobDescriptionService) *JobDescriptionHandler {
	return &JobDescriptionHandler{jobService: jobService, validator: validation.NewValidator()}
}

// Create godoc
// @Summary Create a job description
// @Tags job-descriptions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.JobDescriptionRequest true "Job"
// @Success 201 {object} dto.JobDescriptionResponse
// @Router /job-descriptions/create [post]
func (h *JobDescriptionHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.JobDescriptionRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	job, err := h.jobService.CreateJob(c.UserContext(), p.UserID, req)
	if err != nil {
		return err
	}
	return created(c, job)
}

// GetAll godoc
// @Summary List job descriptions
// @Tags job-descriptions
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.JobDescriptionResponse]
// @Router /job-descriptions/get-all [get]
func (h *JobDescriptionHandler) GetAll(c *fiber.Ctx) error {
	return h.list(c, false)
}

// Search godoc
// @Summary Search job descriptions
// @Tags job-descriptions
// @Security ApiKeyAuth
// @Produce json
// @Param q query string false "Title substring"
// @Param department query string false "Department substring"
// @Param status query string false "draft, active, paused or closed"
// @Success 200 {object} dto.ListResponse[dto.JobDescriptionResponse]
// @Router /job-descriptions/search [get]
func (h *JobDescriptionHandler) Search(c *fiber.Ctx) error {
	return h.list(c, false)
}

// GetDeleted godoc
// @Summary List deleted job descriptions
// @Tags job-descriptions
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.JobDescriptionResponse]
// @Failure 403 {object} middleware.ErrorResponse
// @Router /job-descriptions/get-deleted [get]
func (h *JobDescriptionHandler) GetDeleted(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *JobDescriptionHandler) list(c *fiber.Ctx, deleted bool) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	filter, err := parseSearch(c, h.validator, deleted)
	if err != nil {
		return err
	}
	jobs, err := h.jobService.SearchJobs(c.UserContext(), filter, p.Role)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(jobs))
}

// Get godoc
// @Summary Get a job description
// @Tags job-descriptions
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobDescriptionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /job-descriptions/get/{id} [get]
func (h *JobDescriptionHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	job, err := h.jobService.GetJob(c.UserContext(), id, p.Role)
	if err != nil {
		return err
	}
	return c.JSON(job)
}

// Update godoc
// @Summary Update a job description
// @Tags job-descriptions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body dto.UpdateJobDescriptionRequest true "Changes"
// @Success 200 {object} dto.JobDescriptionResponse
// @Router /job-descriptions/update/{id} [put]
func (h *JobDescriptionHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateJobDescriptionRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	job, err := h.jobService.UpdateJob(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(job)
}

// Delete godoc
// @Summary Delete a job description
// @Tags job-descriptions
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.MessageResponse
// @Router /job-descriptions/delete/{id} [delete]
func (h *JobDescriptionHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	if err := h.jobService.DeleteJob(c.UserContext(), id); err != nil {
		return err
	}
	return message(c, "job description deleted")
}

// Restore godoc
// @Summary Restore a deleted job description
// @Tags job-descriptions
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobDescriptionResponse
// @Failure 409 {object} middleware.ErrorResponse "Not deleted"
// @Router /job-descriptions/restore/{id} [post]
func (h *JobDescriptionHandler) Restore(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	job, err := h.jobService.RestoreJob(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(job)
}
