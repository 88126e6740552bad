package domain

import (
	"testing"
)

func TestQuiz_Validate(t *testing.T) {
	base := func() *Quiz {
		return NewQuiz("q1", "  Go basics  ", "intro", "u1", 30, 70, StatusDraft)
	}

	tests := []struct {
		name    string
		mutate  func(q *Quiz)
		wantErr bool
		errText string
	}{
		{"valid quiz", func(q *Quiz) {}, false, ""},
		{"missing title", func(q *Quiz) { q.Title = "" }, true, "title is required"},
		{"zero duration", func(q *Quiz) { q.DurationMinutes = 0 }, true, "duration_minutes must be between 1 and 600"},
		{"duration too long", func(q *Quiz) { q.DurationMinutes = 601 }, true, "duration_minutes must be between 1 and 600"},
		{"passing score above 100", func(q *Quiz) { q.PassingScorePercent = 101 }, true, "passing_score_percent must be between 0 and 100"},
		{"missing creator", func(q *Quiz) { q.CreatedBy = "" }, true, "created_by is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := base()
			tt.mutate(q)
			err := q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Quiz.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && tt.errText != "" {
				de, ok := err.(*DomainError)
				if !ok {
					t.Errorf("Quiz.Validate() error type = %T, want *DomainError", err)
				} else if de.Message != tt.errText || de.Code != CodeValidation {
					t.Errorf("Quiz.Validate() error = %s/%s, want %s/%s", de.Code, de.Message, CodeValidation, tt.errText)
				}
			}
		})
	}
}

func TestNewQuiz(t *testing.T) {
	q := NewQuiz("q1", "  Go basics ", " intro ", "u1", 30, 70, "")

	if q.Title != "Go basics" {
		t.Errorf("NewQuiz() Title = %q, want %q", q.Title, "Go basics")
	}
	if q.Description != "intro" {
		t.Errorf("NewQuiz() Description = %q, want %q", q.Description, "intro")
	}
	if q.Status != StatusDraft {
		t.Errorf("NewQuiz() Status = %s, want %s", q.Status, StatusDraft)
	}
	if q.CreationDate.IsZero() || !q.CreationDate.Equal(q.UpdatedAt) {
		t.Errorf("NewQuiz() timestamps not initialised: %v / %v", q.CreationDate, q.UpdatedAt)
	}
}
