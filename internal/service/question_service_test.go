package service

import (
	"context"
	"testing"

	"techcom/internal/domain"
	"techcom/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newQuestionServiceForTest(c domain.Cache) (QuestionService, *MockQuestionRepository, *MockQuizQuestionRepository) {
	questions := new(MockQuestionRepository)
	links := new(MockQuizQuestionRepository)
	return NewQuestionService(questions, links, &fakeTx{}, NewResultCacheService(c, 0)), questions, links
}

func TestQuestionService_CreateQuestion(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     dto.CreateQuestionRequest
		wantErr bool
		check   func(t *testing.T, q *dto.QuestionResponse)
	}{
		{
			name: "multiple choice",
			req: dto.CreateQuestionRequest{
				QuestionText: "2 + 2?", QuestionType: "multiple_choice",
				Options: []string{"3", " 4 "}, CorrectAnswer: "4", Points: 2,
			},
			check: func(t *testing.T, q *dto.QuestionResponse) {
				assert.Equal(t, []string{"3", "4"}, q.Options)
				assert.Equal(t, 2, q.Points)
			},
		},
		{
			name: "multiple response canonicalizes the answer",
			req: dto.CreateQuestionRequest{
				QuestionText: "Pick primes", QuestionType: "multiple_response",
				Options: []string{"2", "3", "4"}, CorrectAnswer: " 2 , 3",
			},
			check: func(t *testing.T, q *dto.QuestionResponse) {
				assert.Equal(t, "2,3", q.CorrectAnswer)
				assert.Equal(t, 1, q.Points)
			},
		},
		{
			name: "true false drops options",
			req: dto.CreateQuestionRequest{
				QuestionText: "The sky is blue", QuestionType: "true_false",
				Options: []string{"x"}, CorrectAnswer: "TRUE",
			},
			check: func(t *testing.T, q *dto.QuestionResponse) {
				assert.Empty(t, q.Options)
				assert.Equal(t, "True", q.CorrectAnswer)
			},
		},
		{
			name: "answer outside options",
			req: dto.CreateQuestionRequest{
				QuestionText: "2 + 2?", QuestionType: "multiple_choice",
				Options: []string{"3", "5"}, CorrectAnswer: "4",
			},
			wantErr: true,
		},
		{
			name: "duplicate options",
			req: dto.CreateQuestionRequest{
				QuestionText: "Pick", QuestionType: "multiple_response",
				Options: []string{"a", "a"}, CorrectAnswer: "a",
			},
			wantErr: true,
		},
		{
			name:    "unknown type",
			req:     dto.CreateQuestionRequest{QuestionText: "?", QuestionType: "essay", CorrectAnswer: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, questions, _ := newQuestionServiceForTest(nil)
			questions.On("Create", mock.Anything, mock.Anything).Return(nil)

			resp, err := svc.CreateQuestion(ctx, "u1", tt.req)
			if tt.wantErr {
				assert.True(t, domain.HasCode(err, domain.CodeValidation))
				questions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.ID)
			assert.Equal(t, "u1", resp.CreatedBy)
			tt.check(t, resp)
		})
	}
}

func TestQuestionService_UpdateQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("changing type revalidates the stored answer", func(t *testing.T) {
		svc, questions, _ := newQuestionServiceForTest(nil)
		q := domain.NewQuestion("q1", "2 + 2?", domain.QuestionMultipleChoice, []string{"3", "4"}, "4", 1, "u1")
		questions.On("GetByID", mock.Anything, "q1").Return(q, nil)

		_, err := svc.UpdateQuestion(ctx, "q1", dto.UpdateQuestionRequest{QuestionType: strPtr("true_false")})
		assert.True(t, domain.HasCode(err, domain.CodeValidation))
		questions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("invalidates stats of every containing quiz", func(t *testing.T) {
		c := new(MockCache)
		svc, questions, links := newQuestionServiceForTest(c)
		q := domain.NewQuestion("q1", "2 + 2?", domain.QuestionMultipleChoice, []string{"3", "4"}, "4", 1, "u1")
		questions.On("GetByID", mock.Anything, "q1").Return(q, nil)
		questions.On("Update", mock.Anything, q).Return(nil)
		links.On("ListQuizIDsByQuestion", mock.Anything, "q1").Return([]string{"qa", "qb"}, nil)
		c.On("Delete", mock.Anything, []string{"techcom:composition:stats:qa", "techcom:composition:stats:qb"}).Return(nil)

		resp, err := svc.UpdateQuestion(ctx, "q1", dto.UpdateQuestionRequest{Points: intPtr(5)})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.Points)
		c.AssertExpectations(t)
	})
}

func TestQuestionService_DeleteQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("unlinks then deletes", func(t *testing.T) {
		svc, questions, links := newQuestionServiceForTest(nil)
		questions.On("GetByID", mock.Anything, "q1").Return(&domain.Question{ID: "q1"}, nil)
		links.On("ListQuizIDsByQuestion", mock.Anything, "q1").Return([]string{"qa"}, nil)
		links.On("DeleteByQuestion", mock.Anything, "q1").Return(nil)
		questions.On("Delete", mock.Anything, "q1").Return(nil)

		require.NoError(t, svc.DeleteQuestion(ctx, "q1"))
		links.AssertExpectations(t)
		questions.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc, questions, links := newQuestionServiceForTest(nil)
		questions.On("GetByID", mock.Anything, "q1").Return(nil, nil)

		err := svc.DeleteQuestion(ctx, "q1")
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
		links.AssertNotCalled(t, "DeleteByQuestion", mock.Anything, mock.Anything)
	})
}

func TestQuestionService_SearchQuestions(t *testing.T) {
	ctx := context.Background()
	svc, questions, _ := newQuestionServiceForTest(nil)

	_, err := svc.SearchQuestions(ctx, domain.SearchFilter{Type: "essay"})
	assert.True(t, domain.HasCode(err, domain.CodeValidation))

	filter := domain.SearchFilter{Type: "true_false"}
	questions.On("Search", mock.Anything, filter).Return([]*domain.Question{{ID: "q1", Type: domain.QuestionTrueFalse}}, nil)
	resp, err := svc.SearchQuestions(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, resp, 1)
}
