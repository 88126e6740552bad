package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name     string
		qType    QuestionType
		options  []string
		correct  string
		points   int
		wantErr  bool
		wantText string
	}{
		{name: "multiple choice ok", qType: QuestionMultipleChoice, options: []string{"Go", "Rust"}, correct: " Go ", points: 1},
		{name: "multiple choice answer not an option", qType: QuestionMultipleChoice, options: []string{"Go", "Rust"}, correct: "C", points: 1, wantErr: true, wantText: "correct_answer must be one of the options"},
		{name: "multiple choice single option", qType: QuestionMultipleChoice, options: []string{"Go"}, correct: "Go", points: 1, wantErr: true, wantText: "at least two options are required"},
		{name: "multiple choice duplicate options", qType: QuestionMultipleChoice, options: []string{"Go", "Go "}, correct: "Go", points: 1, wantErr: true, wantText: "options must be unique"},
		{name: "multiple response ok", qType: QuestionMultipleResponse, options: []string{"a", "b", "c"}, correct: "a, c", points: 2},
		{name: "multiple response empty set", qType: QuestionMultipleResponse, options: []string{"a", "b"}, correct: " , ", points: 2, wantErr: true, wantText: "correct_answer must select at least one option"},
		{name: "multiple response outside options", qType: QuestionMultipleResponse, options: []string{"a", "b"}, correct: "a,z", points: 2, wantErr: true, wantText: "correct_answer must be a subset of the options"},
		{name: "multiple response duplicate answer", qType: QuestionMultipleResponse, options: []string{"a", "b"}, correct: "a,a", points: 2, wantErr: true, wantText: "correct_answer contains a duplicate option"},
		{name: "true false ok", qType: QuestionTrueFalse, options: []string{"ignored"}, correct: "true", points: 1},
		{name: "true false bad answer", qType: QuestionTrueFalse, correct: "yes", points: 1, wantErr: true, wantText: "correct_answer must be True or False"},
		{name: "zero points", qType: QuestionTrueFalse, correct: "False", points: 0, wantErr: true, wantText: "points must be greater than 0"},
		{name: "unknown type", qType: QuestionType("essay"), correct: "x", points: 1, wantErr: true, wantText: "invalid question_type: essay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuestion("id", "What?", tt.qType, tt.options, tt.correct, tt.points, "u1")
			err := q.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				de, ok := err.(*DomainError)
				if assert.True(t, ok) {
					assert.Equal(t, CodeValidation, de.Code)
					assert.Equal(t, tt.wantText, de.Message)
				}
			}
		})
	}
}

func TestQuestion_SetAnswerCanonicalises(t *testing.T) {
	mr := NewQuestion("id", "Pick", QuestionMultipleResponse, []string{" a ", "b"}, " a ,b ,", 1, "u1")
	assert.Equal(t, []string{"a", "b"}, mr.Options)
	assert.Equal(t, "a,b", mr.CorrectAnswer)
	assert.Equal(t, []string{"a", "b"}, mr.CorrectAnswers())

	tf := NewQuestion("id", "Sky is blue", QuestionTrueFalse, []string{"True", "False"}, "FALSE", 1, "u1")
	assert.Empty(t, tf.Options)
	assert.Equal(t, AnswerFalse, tf.CorrectAnswer)
	assert.Equal(t, []string{AnswerFalse}, tf.CorrectAnswers())
}

func TestParseQuestionType(t *testing.T) {
	qt, err := ParseQuestionType("TRUE_FALSE")
	assert.NoError(t, err)
	assert.Equal(t, QuestionTrueFalse, qt)

	_, err = ParseQuestionType("essay")
	assert.True(t, HasCode(err, CodeValidation))
}
