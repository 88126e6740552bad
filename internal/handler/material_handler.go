package handler

import (
	"mime/multipart"
	"strings"

	"techcom/internal/domain"
	"techcom/internal/dto"
	"techcom/internal/logger"
	"techcom/internal/service"
	"techcom/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const uploadField = "files"

// MaterialHandler handles training materials, their files, tags and quiz links.
type MaterialHandler struct {
	materialService service.MaterialService
	validator       *validation.Validator
}

func NewMaterialHandler(materialService service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService, validator: validation.NewValidator()}
}

// openUploads opens every file of the multipart field. The returned func
// closes them and is safe to call when no files were sent.
func openUploads(c *fiber.Ctx) ([]domain.FileUpload, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, noop, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, noop, domain.NewValidationError("invalid multipart form")
	}

	headers := form.File[uploadField]
	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	uploads := make([]domain.FileUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, noop, domain.NewInternalError("failed to read uploaded file", err)
		}
		opened = append(opened, f)
		uploads = append(uploads, domain.FileUpload{Filename: fh.Filename, Size: fh.Size, Content: f})
	}
	return uploads, closeAll, nil
}

// Create godoc
// @Summary Upload a training material
// @Tags training-materials
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param status formData string false "draft or active"
// @Param tag_ids formData []string false "Tag IDs"
// @Param files formData file false "Video or document files"
// @Success 201 {object} dto.MaterialResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /training-materials/create [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateMaterialRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	files, closeFiles, err := openUploads(c)
	if err != nil {
		return err
	}
	defer closeFiles()

	material, err := h.materialService.CreateMaterial(c.UserContext(), p.UserID, req, files)
	if err != nil {
		return err
	}
	return created(c, material)
}

// GetAll godoc
// @Summary List training materials
// @Tags training-materials
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.MaterialResponse]
// @Router /training-materials/get-all [get]
func (h *MaterialHandler) GetAll(c *fiber.Ctx) error {
	return h.list(c, false)
}

// Search godoc
// @Summary Search training materials
// @Tags training-materials
// @Security ApiKeyAuth
// @Produce json
// @Param q query string false "Title substring"
// @Param creator query string false "Creator name substring"
// @Param status query string false "draft or active"
// @Param type query string false "video, document or both"
// @Success 200 {object} dto.ListResponse[dto.MaterialResponse]
// @Router /training-materials/search [get]
func (h *MaterialHandler) Search(c *fiber.Ctx) error {
	return h.list(c, false)
}

// GetArchived godoc
// @Summary List archived training materials
// @Tags training-materials
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.MaterialResponse]
// @Router /training-materials/get-archived [get]
func (h *MaterialHandler) GetArchived(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *MaterialHandler) list(c *fiber.Ctx, archived bool) error {
	filter, err := parseSearch(c, h.validator, archived)
	if err != nil {
		return err
	}
	materials, err := h.materialService.SearchMaterials(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(materials))
}

// Get godoc
// @Summary Get a training material with its tags and quizzes
// @Tags training-materials
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} dto.MaterialDetailResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /training-materials/get/{id} [get]
func (h *MaterialHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	material, err := h.materialService.GetMaterial(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(material)
}

// Update godoc
// @Summary Update a training material
// @Description New files are appended to the existing ones
// @Tags training-materials
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Material ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param status formData string false "draft or active"
// @Param files formData file false "Additional files"
// @Success 200 {object} dto.MaterialResponse
// @Router /training-materials/update/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateMaterialRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	files, closeFiles, err := openUploads(c)
	if err != nil {
		return err
	}
	defer closeFiles()

	material, err := h.materialService.UpdateMaterial(c.UserContext(), id, req, files)
	if err != nil {
		return err
	}
	return c.JSON(material)
}

// Archive godoc
// @Summary Archive a training material
// @Description DELETE /training-materials/delete/{id} is an alias
// @Tags training-materials
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} dto.MaterialResponse
// @Failure 409 {object} middleware.ErrorResponse "Already archived"
// @Router /training-materials/archive/{id} [post]
func (h *MaterialHandler) Archive(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	material, err := h.materialService.ArchiveMaterial(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(material)
}

// Restore godoc
// @Summary Restore an archived training material
// @Tags training-materials
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} dto.MaterialResponse
// @Failure 409 {object} middleware.ErrorResponse "Not archived"
// @Router /training-materials/restore/{id} [post]
func (h *MaterialHandler) Restore(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	material, err := h.materialService.RestoreMaterial(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(material)
}

// AssignTags godoc
// @Summary Replace a material's tags
// @Tags training-materials
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param request body dto.TagIDsRequest true "Tag IDs"
// @Success 200 {object} dto.MaterialResponse
// @Failure 404 {object} middleware.ErrorResponse "Unknown material or tag"
// @Router /training-materials/assign-tags/{id} [post]
func (h *MaterialHandler) AssignTags(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	var req dto.TagIDsRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	material, err := h.materialService.AssignTags(c.UserContext(), id, req.TagIDs)
	if err != nil {
		return err
	}
	return c.JSON(material)
}

// RemoveTags godoc
// @Summary Unlink tags from a material
// @Tags training-materials
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param request body dto.RemoveTagIDsRequest true "Tag IDs"
// @Success 200 {object} dto.MaterialResponse
// @Router /training-materials/remove-tags/{id} [post]
func (h *MaterialHandler) RemoveTags(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	var req dto.RemoveTagIDsRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	material, err := h.materialService.RemoveTags(c.UserContext(), id, req.TagIDs)
	if err != nil {
		return err
	}
	return c.JSON(material)
}

// RelevantQuizzes godoc
// @Summary Quizzes sharing a tag with the material
// @Description A material without tags makes every quiz relevant. Archived and already attached quizzes are left out.
// @Tags training-materials
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} dto.ListResponse[dto.QuizResponse]
// @Router /training-materials/relevant-quizzes/{id} [get]
func (h *MaterialHandler) RelevantQuizzes(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	quizzes, err := h.materialService.RelevantQuizzes(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(quizzes))
}

// Quizzes godoc
// @Summary Quizzes attached to a material
// @Tags training-materials
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} dto.ListResponse[dto.QuizResponse]
// @Router /training-materials/quizzes/{id} [get]
func (h *MaterialHandler) Quizzes(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	quizzes, err := h.materialService.MaterialQuizzes(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(quizzes))
}

// AttachQuiz godoc
// @Summary Attach a quiz to a material
// @Tags training-materials
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param request body dto.AttachQuizRequest true "Quiz"
// @Success 200 {object} dto.MessageResponse
// @Failure 409 {object} middleware.ErrorResponse "Already attached"
// @Router /training-materials/attach-quiz/{id} [post]
func (h *MaterialHandler) AttachQuiz(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	var req dto.AttachQuizRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	if err := h.materialService.AttachQuiz(c.UserContext(), id, req.QuizID); err != nil {
		return err
	}
	return message(c, "quiz attached")
}

// DetachQuiz godoc
// @Summary Detach a quiz from a material
// @Tags training-materials
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Material ID"
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "Not attached"
// @Router /training-materials/detach-quiz/{id}/{quizId} [delete]
func (h *MaterialHandler) DetachQuiz(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	quizID, err := pathID(c, h.validator, "quizId")
	if err != nil {
		return err
	}
	if err := h.materialService.DetachQuiz(c.UserContext(), id, quizID); err != nil {
		return err
	}
	return message(c, "quiz detached")
}

// Download godoc
// @Summary Download a stored training file
// @Tags training-materials
// @Security ApiKeyAuth
// @Produce octet-stream
// @Param filename path string true "Stored file name"
// @Success 200 {file} file
// @Failure 400 {object} middleware.ErrorResponse "Invalid file name"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /training-materials/download/{filename} [get]
func (h *MaterialHandler) Download(c *fiber.Ctx) error {
	name := c.Params("filename")
	path, err := h.materialService.ResolveFile(name)
	if err != nil {
		return err
	}
	logger.Get().Debug("Serving training file", zap.String("file", name))
	return c.Download(path, name)
}
