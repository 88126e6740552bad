package domain

import (
	"strings"
	"time"
)

// QuestionType is the answer format of a question.
type QuestionType string

const (
	QuestionMultipleChoice   QuestionType = "multiple_choice"
	QuestionMultipleResponse QuestionType = "multiple_response"
	QuestionTrueFalse        QuestionType = "true_false"
)

// QuestionTypes lists every question type in display order.
var QuestionTypes = []QuestionType{QuestionMultipleChoice, QuestionMultipleResponse, QuestionTrueFalse}

const (
	AnswerTrue  = "True"
	AnswerFalse = "False"

	answerSeparator = ","
)

func ParseQuestionType(s string) (QuestionType, error) {
	qt := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	switch qt {
	case QuestionMultipleChoice, QuestionMultipleResponse, QuestionTrueFalse:
		return qt, nil
	}
	return "", NewValidationError("invalid question_type: " + s)
}

// Question lives in the question bank and can be linked into many quizzes.
type Question struct {
	ID            string
	Text          string
	Type          QuestionType
	Options       []string
	CorrectAnswer string
	Points        int
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewQuestion(id, text string, qType QuestionType, options []string, correct string, points int, createdBy string) *Question {
	now := time.Now().UTC()
	q := &Question{
		ID:        id,
		Text:      strings.TrimSpace(text),
		Type:      qType,
		Points:    points,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	q.SetAnswer(options, correct)
	return q
}

// SetAnswer stores trimmed options and a canonical correct answer.
func (q *Question) SetAnswer(options []string, correct string) {
	q.Options = make([]string, 0, len(options))
	for _, o := range options {
		q.Options = append(q.Options, strings.TrimSpace(o))
	}
	switch q.Type {
	case QuestionMultipleResponse:
		q.CorrectAnswer = strings.Join(splitAnswers(correct), answerSeparator)
	case QuestionTrueFalse:
		q.Options = []string{}
		q.CorrectAnswer = canonicalTrueFalse(correct)
	default:
		q.CorrectAnswer = strings.TrimSpace(correct)
	}
}

// CorrectAnswers returns the correct answer as a set.
func (q *Question) CorrectAnswers() []string {
	if q.Type == QuestionMultipleResponse {
		return splitAnswers(q.CorrectAnswer)
	}
	if q.CorrectAnswer == "" {
		return nil
	}
	return []string{q.CorrectAnswer}
}

// Validate enforces the per-type answer invariants.
func (q *Question) Validate() error {
	if q.Text == "" {
		return NewValidationError("question_text is required")
	}
	if q.Points <= 0 {
		return NewValidationError("points must be greater than 0")
	}

	switch q.Type {
	case QuestionMultipleChoice:
		if err := validateOptions(q.Options); err != nil {
			return err
		}
		if !containsString(q.Options, q.CorrectAnswer) {
			return NewValidationError("correct_answer must be one of the options")
		}
	case QuestionMultipleResponse:
		if err := validateOptions(q.Options); err != nil {
			return err
		}
		for _, o := range q.Options {
			if strings.Contains(o, answerSeparator) {
				return NewValidationError("multiple_response options cannot contain commas")
			}
		}
		answers := q.CorrectAnswers()
		if len(answers) == 0 {
			return NewValidationError("correct_answer must select at least one option")
		}
		seen := make(map[string]struct{}, len(answers))
		for _, a := range answers {
			if _, dup := seen[a]; dup {
				return NewValidationError("correct_answer contains a duplicate option")
			}
			seen[a] = struct{}{}
			if !containsString(q.Options, a) {
				return NewValidationError("correct_answer must be a subset of the options")
			}
		}
	case QuestionTrueFalse:
		if len(q.Options) != 0 {
			return NewValidationError("true_false questions take no options")
		}
		if q.CorrectAnswer != AnswerTrue && q.CorrectAnswer != AnswerFalse {
			return NewValidationError("correct_answer must be True or False")
		}
	default:
		return NewValidationError("invalid question_type: " + string(q.Type))
	}
	return nil
}

func validateOptions(options []string) error {
	if len(options) < 2 {
		return NewValidationError("at least two options are required")
	}
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		if o == "" {
			return NewValidationError("options cannot be empty")
		}
		if _, dup := seen[o]; dup {
			return NewValidationError("options must be unique")
		}
		seen[o] = struct{}{}
	}
	return nil
}

func splitAnswers(s string) []string {
	parts := strings.Split(s, answerSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func canonicalTrueFalse(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return AnswerTrue
	case "false":
		return AnswerFalse
	}
	return strings.TrimSpace(s)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
