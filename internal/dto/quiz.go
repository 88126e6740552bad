package dto

import (
	"time"

	"techcom/internal/domain"
)

// CreateQuizRequest represents the request body for creating a quiz
// @Description Request body for a new quiz
type CreateQuizRequest struct {
	Title               string   `json:"title" validate:"required,max=255"`
	Description         string   `json:"description" validate:"max=5000"`
	DurationMinutes     int      `json:"duration_minutes" validate:"required,min=1,max=600"`
	PassingScorePercent *int     `json:"passing_score_percent" validate:"omitempty,min=0,max=100"`
	Status              string   `json:"status" validate:"omitempty,oneof=draft active"`
	TagIDs              []string `json:"tag_ids" validate:"dive,required,ulid"`
}

// UpdateQuizRequest changes only the fields that are set
type UpdateQuizRequest struct {
	Title               *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description         *string `json:"description" validate:"omitempty,max=5000"`
	DurationMinutes     *int    `json:"duration_minutes" validate:"omitempty,min=1,max=600"`
	PassingScorePercent *int    `json:"passing_score_percent" validate:"omitempty,min=0,max=100"`
	Status              *string `json:"status" validate:"omitempty,oneof=draft active"`
}

// QuizResponse represents a quiz in the API response
// @Description Quiz information
type QuizResponse struct {
	ID                  string        `json:"id"`
	Title               string        `json:"title"`
	Description         string        `json:"description"`
	DurationMinutes     int           `json:"duration_minutes"`
	PassingScorePercent int           `json:"passing_score_percent"`
	Status              string        `json:"status"`
	CreatedBy           string        `json:"created_by"`
	CreatorName         string        `json:"creator_name"`
	CreationDate        time.Time     `json:"creation_date"`
	UpdatedAt           time.Time     `json:"updated_at"`
	Tags                []TagResponse `json:"tags"`
}

func ToQuizResponse(q *domain.Quiz) QuizResponse {
	return QuizResponse{
		ID:                  q.ID,
		Title:               q.Title,
		Description:         q.Description,
		DurationMinutes:     q.DurationMinutes,
		PassingScorePercent: q.PassingScorePercent,
		Status:              string(q.Status),
		CreatedBy:           q.CreatedBy,
		CreatorName:         q.CreatorName,
		CreationDate:        q.CreationDate,
		UpdatedAt:           q.UpdatedAt,
		Tags:                ToTagResponses(q.Tags),
	}
}

func ToQuizResponses(quizzes []*domain.Quiz) []QuizResponse {
	out := make([]QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, ToQuizResponse(q))
	}
	return out
}
