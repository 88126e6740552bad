package dto

import (
	"time"

	"techcom/internal/domain"
)

// TagRequest represents the request body for creating or renaming a tag
// @Description Request body for a tag
type TagRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// TagResponse represents a tag in the API response
type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TagItemsResponse lists everything linked to a tag
// @Description Materials and quizzes carrying a tag
type TagItemsResponse struct {
	Tag       TagResponse        `json:"tag"`
	Materials []MaterialResponse `json:"materials"`
	Quizzes   []QuizResponse     `json:"quizzes"`
}

func ToTagResponse(t *domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

func ToTagResponses(tags []*domain.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, ToTagResponse(t))
	}
	return out
}

func ToTagItemsResponse(items *domain.TagItems) TagItemsResponse {
	return TagItemsResponse{
		Tag:       ToTagResponse(items.Tag),
		Materials: ToMaterialResponses(items.Materials),
		Quizzes:   ToQuizResponses(items.Quizzes),
	}
}
