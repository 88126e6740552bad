package domain

import (
	"strings"
	"time"
)

const (
	MaxQuizDurationMinutes = 600
	DefaultPassingScore    = 70
)

// Quiz is an ordered set of questions with a time limit and pass mark.
type Quiz struct {
	ID                  string
	Title               string
	Description         string
	DurationMinutes     int
	PassingScorePercent int
	Lifecycle
	CreatedBy    string
	CreatorName  string
	CreationDate time.Time
	UpdatedAt    time.Time
	Tags         []*Tag
}

func NewQuiz(id, title, description, createdBy string, duration, passingScore int, status Status) *Quiz {
	now := time.Now().UTC()
	return &Quiz{
		ID:                  id,
		Title:               strings.TrimSpace(title),
		Description:         strings.TrimSpace(description),
		DurationMinutes:     duration,
		PassingScorePercent: passingScore,
		Lifecycle:           NewLifecycle(status),
		CreatedBy:           createdBy,
		CreationDate:        now,
		UpdatedAt:           now,
	}
}

// Validate checks if the quiz is valid
func (q *Quiz) Validate() error {
	if q.Title == "" {
		return NewValidationError("title is required")
	}
	if len(q.Title) > 255 {
		return NewValidationError("title is too long")
	}
	if q.DurationMinutes <= 0 || q.DurationMinutes > MaxQuizDurationMinutes {
		return NewValidationError("duration_minutes must be between 1 and 600")
	}
	if q.PassingScorePercent < 0 || q.PassingScorePercent > 100 {
		return NewValidationError("passing_score_percent must be between 0 and 100")
	}
	if q.CreatedBy == "" {
		return NewValidationError("created_by is required")
	}
	return nil
}
