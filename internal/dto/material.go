package dto

import (
	"time"

	"techcom/internal/domain"
)

// CreateMaterialRequest holds the non-file fields of the multipart create form
type CreateMaterialRequest struct {
	Title       string   `form:"title" validate:"required,max=255"`
	Description string   `form:"description" validate:"max=5000"`
	Status      string   `form:"status" validate:"omitempty,oneof=draft active"`
	TagIDs      []string `form:"tag_ids" validate:"dive,required,ulid"`
}

// UpdateMaterialRequest holds the multipart update form; empty fields are left unchanged
type UpdateMaterialRequest struct {
	Title       string `form:"title" validate:"max=255"`
	Description string `form:"description" validate:"max=5000"`
	Status      string `form:"status" validate:"omitempty,oneof=draft active"`
}

// AttachQuizRequest represents the request body for attaching a quiz to a material
type AttachQuizRequest struct {
	QuizID string `json:"quiz_id" validate:"required,ulid"`
}

// MaterialResponse represents a training material in the API response
// @Description Training material information
type MaterialResponse struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Type         string        `json:"type"`
	ContentPaths []string      `json:"content_paths"`
	Status       string        `json:"status"`
	CreatedBy    string        `json:"created_by"`
	CreatorName  string        `json:"creator_name"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Tags         []TagResponse `json:"tags"`
}

// MaterialDetailResponse adds the attached quizzes
type MaterialDetailResponse struct {
	MaterialResponse
	Quizzes []QuizResponse `json:"quizzes"`
}

func ToMaterialResponse(m *domain.TrainingMaterial) MaterialResponse {
	paths := m.ContentPaths
	if paths == nil {
		paths = []string{}
	}
	return MaterialResponse{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Type:         string(m.Type),
		ContentPaths: paths,
		Status:       string(m.Status),
		CreatedBy:    m.CreatedBy,
		CreatorName:  m.CreatorName,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		Tags:         ToTagResponses(m.Tags),
	}
}

func ToMaterialResponses(materials []*domain.TrainingMaterial) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, ToMaterialResponse(m))
	}
	return out
}
