package dto

import (
	"time"

	"techcom/internal/domain"
)

// CreateQuestionRequest represents the request body for a bank question
// @Description Request body for a new question
type CreateQuestionRequest struct {
	QuestionText  string   `json:"question_text" validate:"required,max=5000"`
	QuestionType  string   `json:"question_type" validate:"required,oneof=multiple_choice multiple_response true_false"`
	Options       []string `json:"options" validate:"max=20"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Points        int      `json:"points" validate:"omitempty,min=1,max=100"`
}

// UpdateQuestionRequest changes only the fields that are set
type UpdateQuestionRequest struct {
	QuestionText  *string   `json:"question_text" validate:"omitempty,min=1,max=5000"`
	QuestionType  *string   `json:"question_type" validate:"omitempty,oneof=multiple_choice multiple_response true_false"`
	Options       *[]string `json:"options" validate:"omitempty,max=20"`
	CorrectAnswer *string   `json:"correct_answer" validate:"omitempty,min=1"`
	Points        *int      `json:"points" validate:"omitempty,min=1,max=100"`
}

// QuestionResponse represents a bank question in the API response
type QuestionResponse struct {
	ID            string    `json:"id"`
	QuestionText  string    `json:"question_text"`
	QuestionType  string    `json:"question_type"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Points        int       `json:"points"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// QuizQuestionResponse is a question at its position in a quiz
type QuizQuestionResponse struct {
	QuestionResponse
	OrderIndex int `json:"order_index"`
}

// AddQuestionRequest links an existing question to a quiz
type AddQuestionRequest struct {
	QuizID     string `json:"quiz_id" validate:"required,ulid"`
	QuestionID string `json:"question_id" validate:"required,ulid"`
}

// AutoAddRequest adds up to Count tag-matched questions to a quiz
// @Description Request body for adding questions by tag
type AutoAddRequest struct {
	QuizID string   `json:"quiz_id" validate:"required,ulid"`
	TagIDs []string `json:"tag_ids" validate:"required,min=1,dive,required,ulid"`
	Count  int      `json:"count" validate:"required,min=1,max=100"`
}

// AutoAddResponse reports which questions were linked
type AutoAddResponse struct {
	QuizID    string   `json:"quiz_id"`
	Requested int      `json:"requested"`
	Added     []string `json:"added"`
}

// ReorderRequest lists every question of the quiz in its new order
type ReorderRequest struct {
	QuestionIDs []string `json:"question_ids" validate:"required,dive,required,ulid"`
}

// QuizStatsResponse summarises a quiz's questions
type QuizStatsResponse struct {
	QuizID         string         `json:"quiz_id"`
	TotalQuestions int            `json:"total_questions"`
	TotalPoints    int            `json:"total_points"`
	CountByType    map[string]int `json:"count_by_type"`
}

func ToQuestionResponse(q *domain.Question) QuestionResponse {
	options := q.Options
	if options == nil {
		options = []string{}
	}
	return QuestionResponse{
		ID:            q.ID,
		QuestionText:  q.Text,
		QuestionType:  string(q.Type),
		Options:       options,
		CorrectAnswer: q.CorrectAnswer,
		Points:        q.Points,
		CreatedBy:     q.CreatedBy,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func ToQuestionResponses(questions []*domain.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, ToQuestionResponse(q))
	}
	return out
}

func ToQuizQuestionResponses(questions []*domain.QuizQuestion) []QuizQuestionResponse {
	out := make([]QuizQuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, QuizQuestionResponse{
			QuestionResponse: ToQuestionResponse(&q.Question),
			OrderIndex:       q.OrderIndex,
		})
	}
	return out
}

func ToQuizStatsResponse(s *domain.QuizStats) QuizStatsResponse {
	counts := make(map[string]int, len(s.CountByType))
	for t, n := range s.CountByType {
		counts[string(t)] = n
	}
	return QuizStatsResponse{
		QuizID:         s.QuizID,
		TotalQuestions: s.TotalQuestions,
		TotalPoints:    s.TotalPoints,
		CountByType:    counts,
	}
}
