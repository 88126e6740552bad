package service

import (
	"context"
	"errors"
	"testing"

	"techcom/internal/domain"
	"techcom/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func noTags() map[string][]*domain.Tag { return map[string][]*domain.Tag{} }

func TestQuizService_CreateQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		quizzes, tags := new(MockQuizRepository), new(MockTagRepository)
		svc := NewQuizService(quizzes, tags, &fakeTx{}, NewResultCacheService(nil, 0))
		quizzes.On("Create", mock.Anything, mock.MatchedBy(func(q *domain.Quiz) bool {
			return q.PassingScorePercent == domain.DefaultPassingScore && q.Status == domain.StatusDraft
		})).Return(nil)

		resp, err := svc.CreateQuiz(ctx, "u1", dto.CreateQuizRequest{Title: " Fire drill ", DurationMinutes: 15})
		require.NoError(t, err)
		assert.Equal(t, "Fire drill", resp.Title)
		assert.Equal(t, "u1", resp.CreatedBy)
		assert.Empty(t, resp.Tags)
		quizzes.AssertExpectations(t)
	})

	t.Run("explicit zero passing score and tags", func(t *testing.T) {
		quizzes, tags := new(MockQuizRepository), new(MockTagRepository)
		svc := NewQuizService(quizzes, tags, &fakeTx{}, NewResultCacheService(nil, 0))
		tags.On("GetByIDs", mock.Anything, []string{"t1"}).Return([]*domain.Tag{{ID: "t1", Name: "safety"}}, nil)
		quizzes.On("Create", mock.Anything, mock.Anything).Return(nil)
		tags.On("ReplaceQuizTags", mock.Anything, mock.Anything, []string{"t1"}).Return(nil)

		resp, err := svc.CreateQuiz(ctx, "u1", dto.CreateQuizRequest{
			Title:               "Fire drill",
			DurationMinutes:     15,
			PassingScorePercent: intPtr(0),
			Status:              "active",
			TagIDs:              []string{"t1"},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.PassingScorePercent)
		assert.Equal(t, "active", resp.Status)
		require.Len(t, resp.Tags, 1)
	})

	t.Run("duration out of range", func(t *testing.T) {
		svc := NewQuizService(new(MockQuizRepository), new(MockTagRepository), &fakeTx{}, NewResultCacheService(nil, 0))
		_, err := svc.CreateQuiz(ctx, "u1", dto.CreateQuizRequest{Title: "x", DurationMinutes: 601})
		assert.True(t, domain.HasCode(err, domain.CodeValidation))
	})

	t.Run("repository failure is internal", func(t *testing.T) {
		quizzes := new(MockQuizRepository)
		svc := NewQuizService(quizzes, new(MockTagRepository), &fakeTx{}, NewResultCacheService(nil, 0))
		quizzes.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		_, err := svc.CreateQuiz(ctx, "u1", dto.CreateQuizRequest{Title: "x", DurationMinutes: 5})
		assert.True(t, domain.HasCode(err, domain.CodeInternal))
	})
}

func TestQuizService_UpdateQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		quizzes, tags := new(MockQuizRepository), new(MockTagRepository)
		svc := NewQuizService(quizzes, tags, &fakeTx{}, NewResultCacheService(nil, 0))
		quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		quizzes.On("Update", mock.Anything, mock.MatchedBy(func(q *domain.Quiz) bool {
			return q.DurationMinutes == 45 && q.Title == "Safety basics" && q.Status == domain.StatusDraft
		})).Return(nil)
		tags.On("ListByQuizzes", mock.Anything, []string{"qz"}).Return(noTags(), nil)

		resp, err := svc.UpdateQuiz(ctx, "qz", dto.UpdateQuizRequest{DurationMinutes: intPtr(45), Status: strPtr("draft")})
		require.NoError(t, err)
		assert.Equal(t, 45, resp.DurationMinutes)
		quizzes.AssertExpectations(t)
	})

	t.Run("archived status cannot be set directly", func(t *testing.T) {
		quizzes := new(MockQuizRepository)
		svc := NewQuizService(quizzes, new(MockTagRepository), &fakeTx{}, NewResultCacheService(nil, 0))
		quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)

		_, err := svc.UpdateQuiz(ctx, "qz", dto.UpdateQuizRequest{Status: strPtr("archived")})
		assert.True(t, domain.HasCode(err, domain.CodeValidation))
		quizzes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		quizzes := new(MockQuizRepository)
		svc := NewQuizService(quizzes, new(MockTagRepository), &fakeTx{}, NewResultCacheService(nil, 0))
		quizzes.On("GetByID", mock.Anything, "qz").Return(nil, nil)

		_, err := svc.UpdateQuiz(ctx, "qz", dto.UpdateQuizRequest{})
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
	})
}

func TestQuizService_ArchiveRestore(t *testing.T) {
	ctx := context.Background()

	quizzes, tags := new(MockQuizRepository), new(MockTagRepository)
	svc := NewQuizService(quizzes, tags, &fakeTx{}, NewResultCacheService(nil, 0))
	quiz := domain.NewQuiz("qz", "Draft quiz", "", "u1", 10, 70, domain.StatusDraft)
	quizzes.On("GetByID", mock.Anything, "qz").Return(quiz, nil)
	quizzes.On("Update", mock.Anything, quiz).Return(nil)
	tags.On("ListByQuizzes", mock.Anything, []string{"qz"}).Return(noTags(), nil)

	resp, err := svc.ArchiveQuiz(ctx, "qz")
	require.NoError(t, err)
	assert.Equal(t, "archived", resp.Status)

	resp, err = svc.RestoreQuiz(ctx, "qz")
	require.NoError(t, err)
	assert.Equal(t, "draft", resp.Status)

	_, err = svc.RestoreQuiz(ctx, "qz")
	assert.True(t, domain.HasCode(err, domain.CodeConflict))
}

func TestQuizService_Tags(t *testing.T) {
	ctx := context.Background()

	t.Run("assign with unknown tag", func(t *testing.T) {
		quizzes, tags := new(MockQuizRepository), new(MockTagRepository)
		svc := NewQuizService(quizzes, tags, &fakeTx{}, NewResultCacheService(nil, 0))
		quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		tags.On("GetByIDs", mock.Anything, []string{"t9"}).Return([]*domain.Tag{}, nil)

		_, err := svc.AssignTags(ctx, "qz", []string{"t9"})
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
		tags.AssertNotCalled(t, "ReplaceQuizTags", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("assign empty set clears tags", func(t *testing.T) {
		quizzes, tags := new(MockQuizRepository), new(MockTagRepository)
		svc := NewQuizService(quizzes, tags, &fakeTx{}, NewResultCacheService(nil, 0))
		quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		tags.On("ListByQuizzes", mock.Anything, []string{"qz"}).
			Return(map[string][]*domain.Tag{"qz": {{ID: "t1"}}}, nil)
		tags.On("ReplaceQuizTags", mock.Anything, "qz", []string{}).Return(nil)

		resp, err := svc.AssignTags(ctx, "qz", nil)
		require.NoError(t, err)
		assert.Empty(t, resp.Tags)
	})

	t.Run("remove", func(t *testing.T) {
		quizzes, tags := new(MockQuizRepository), new(MockTagRepository)
		results := newRecordingResults()
		svc := NewQuizService(quizzes, tags, &fakeTx{}, results)
		quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		tags.On("RemoveQuizTags", mock.Anything, "qz", []string{"t1"}).Return(nil)
		tags.On("ListByQuizzes", mock.Anything, []string{"qz"}).
			Return(map[string][]*domain.Tag{"qz": {{ID: "t2", Name: "ppe"}}}, nil)

		resp, err := svc.RemoveTags(ctx, "qz", []string{"t1"})
		require.NoError(t, err)
		require.Len(t, resp.Tags, 1)
		assert.Equal(t, "t2", resp.Tags[0].ID)
		// listings of the kept tag embed the quiz's tag set too
		assert.ElementsMatch(t, []string{"t1", "t2"}, results.invalidatedTags)
	})
}

func TestQuizService_SearchQuizzes(t *testing.T) {
	ctx := context.Background()

	quizzes, tags := new(MockQuizRepository), new(MockTagRepository)
	svc := NewQuizService(quizzes, tags, &fakeTx{}, NewResultCacheService(nil, 0))
	filter := domain.SearchFilter{Text: "fire", Archived: true}
	quizzes.On("Search", mock.Anything, filter).Return([]*domain.Quiz{archivedQuiz("q1")}, nil)
	tags.On("ListByQuizzes", mock.Anything, []string{"q1"}).Return(noTags(), nil)

	resp, err := svc.SearchQuizzes(ctx, filter)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "archived", resp[0].Status)
}
