package dto

import "techcom/internal/domain"

// ListResponse wraps a collection result
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}

// SearchQuery carries the common search query parameters
type SearchQuery struct {
	Text       string `query:"q" validate:"max=255"`
	Creator    string `query:"creator" validate:"max=255"`
	Status     string `query:"status" validate:"max=30"`
	Department string `query:"department" validate:"max=255"`
	JobID      string `query:"job_id" validate:"omitempty,ulid"`
	Type       string `query:"type" validate:"max=30"`
	Role       string `query:"role" validate:"omitempty,oneof=admin hr employee candidate"`
}

// Filter converts the query into a repository filter over the live or archived set.
func (q SearchQuery) Filter(archived bool) domain.SearchFilter {
	return domain.SearchFilter{
		Text:        q.Text,
		CreatorName: q.Creator,
		Status:      q.Status,
		Department:  q.Department,
		JobID:       q.JobID,
		Type:        q.Type,
		Role:        q.Role,
		Archived:    archived,
	}
}

// TagIDsRequest replaces a tag set; an empty list clears it.
// @Description Request body for assigning tags
type TagIDsRequest struct {
	TagIDs []string `json:"tag_ids" validate:"dive,required,ulid"`
}

// RemoveTagIDsRequest lists tags to unlink.
type RemoveTagIDsRequest struct {
	TagIDs []string `json:"tag_ids" validate:"required,min=1,dive,required,ulid"`
}
