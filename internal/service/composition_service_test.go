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

type compositionFixture struct {
	quizzes   *MockQuizRepository
	questions *MockQuestionRepository
	links     *MockQuizQuestionRepository
	tags      *MockTagRepository
	tx        *fakeTx
	svc       CompositionService
}

func newCompositionFixture() *compositionFixture {
	f := &compositionFixture{
		quizzes:   new(MockQuizRepository),
		questions: new(MockQuestionRepository),
		links:     new(MockQuizQuestionRepository),
		tags:      new(MockTagRepository),
		tx:        &fakeTx{},
	}
	f.svc = NewCompositionService(f.quizzes, f.questions, f.links, f.tags, f.tx, NewResultCacheService(nil, 0))
	return f
}

func activeQuiz(id string) *domain.Quiz {
	return domain.NewQuiz(id, "Safety basics", "", "u1", 30, 70, domain.StatusActive)
}

func archivedQuiz(id string) *domain.Quiz {
	q := activeQuiz(id)
	_ = q.Archive()
	return q
}

func links(quizID string, questionIDs ...string) []domain.QuizQuestionLink {
	out := make([]domain.QuizQuestionLink, 0, len(questionIDs))
	for i, id := range questionIDs {
		out = append(out, domain.QuizQuestionLink{QuizID: quizID, QuestionID: id, OrderIndex: i})
	}
	return out
}

func TestCompositionService_AddQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("appends after the last position", func(t *testing.T) {
		f := newCompositionFixture()
		f.quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		f.questions.On("GetByID", mock.Anything, "q3").Return(&domain.Question{ID: "q3"}, nil)
		f.links.On("ListLinks", mock.Anything, "qz").Return(links("qz", "q1", "q2"), nil)
		f.links.On("AddLinks", mock.Anything, mock.MatchedBy(func(l []domain.QuizQuestionLink) bool {
			return len(l) == 1 && l[0].QuestionID == "q3" && l[0].OrderIndex == 2
		})).Return(nil)

		require.NoError(t, f.svc.AddQuestion(ctx, "qz", "q3"))
		assert.Equal(t, 1, f.tx.calls)
		f.links.AssertExpectations(t)
	})

	t.Run("already linked is a conflict", func(t *testing.T) {
		f := newCompositionFixture()
		f.quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		f.questions.On("GetByID", mock.Anything, "q1").Return(&domain.Question{ID: "q1"}, nil)
		f.links.On("ListLinks", mock.Anything, "qz").Return(links("qz", "q1"), nil)

		err := f.svc.AddQuestion(ctx, "qz", "q1")
		assert.True(t, domain.HasCode(err, domain.CodeConflict))
		f.links.AssertNotCalled(t, "AddLinks", mock.Anything, mock.Anything)
	})

	t.Run("duplicate key from a concurrent insert is a conflict", func(t *testing.T) {
		f := newCompositionFixture()
		f.quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		f.questions.On("GetByID", mock.Anything, "q1").Return(&domain.Question{ID: "q1"}, nil)
		f.links.On("ListLinks", mock.Anything, "qz").Return([]domain.QuizQuestionLink{}, nil)
		f.links.On("AddLinks", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		err := f.svc.AddQuestion(ctx, "qz", "q1")
		assert.True(t, domain.HasCode(err, domain.CodeConflict))
	})

	t.Run("archived quiz is rejected", func(t *testing.T) {
		f := newCompositionFixture()
		f.quizzes.On("GetByID", mock.Anything, "qz").Return(archivedQuiz("qz"), nil)

		err := f.svc.AddQuestion(ctx, "qz", "q1")
		assert.True(t, domain.HasCode(err, domain.CodeValidation))
	})

	t.Run("unknown question", func(t *testing.T) {
		f := newCompositionFixture()
		f.quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		f.questions.On("GetByID", mock.Anything, "missing").Return(nil, nil)

		err := f.svc.AddQuestion(ctx, "qz", "missing")
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
	})
}

func TestCompositionService_AutoAddByTags(t *testing.T) {
	ctx := context.Background()

	t.Run("never adds more than count and skips linked questions", func(t *testing.T) {
		f := newCompositionFixture()
		f.quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		f.tags.On("GetByIDs", mock.Anything, []string{"t1"}).Return([]*domain.Tag{{ID: "t1", Name: "safety"}}, nil)
		f.questions.On("FindIDsByTags", mock.Anything, []string{"t1"}).
			Return([]string{"q5", "q1", "q4", "q2", "q3"}, nil)
		f.links.On("ListLinks", mock.Anything, "qz").Return(links("qz", "q1"), nil)

		var added []domain.QuizQuestionLink
		f.links.On("AddLinks", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			added = args.Get(1).([]domain.QuizQuestionLink)
		}).Return(nil)

		resp, err := f.svc.AutoAddByTags(ctx, dto.AutoAddRequest{QuizID: "qz", TagIDs: []string{"t1", "t1"}, Count: 3})
		require.NoError(t, err)
		assert.Equal(t, []string{"q2", "q3", "q4"}, resp.Added)
		assert.Equal(t, 3, resp.Requested)
		require.Len(t, added, 3)
		for i, l := range added {
			assert.Equal(t, i+1, l.OrderIndex)
			assert.Equal(t, "qz", l.QuizID)
		}
	})

	t.Run("nothing left to add", func(t *testing.T) {
		f := newCompositionFixture()
		f.quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		f.tags.On("GetByIDs", mock.Anything, []string{"t1"}).Return([]*domain.Tag{{ID: "t1"}}, nil)
		f.questions.On("FindIDsByTags", mock.Anything, []string{"t1"}).Return([]string{"q1"}, nil)
		f.links.On("ListLinks", mock.Anything, "qz").Return(links("qz", "q1"), nil)

		resp, err := f.svc.AutoAddByTags(ctx, dto.AutoAddRequest{QuizID: "qz", TagIDs: []string{"t1"}, Count: 5})
		require.NoError(t, err)
		assert.Empty(t, resp.Added)
		f.links.AssertNotCalled(t, "AddLinks", mock.Anything, mock.Anything)
	})

	t.Run("unknown tag", func(t *testing.T) {
		f := newCompositionFixture()
		f.quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		f.tags.On("GetByIDs", mock.Anything, []string{"t1", "t9"}).Return([]*domain.Tag{{ID: "t1"}}, nil)

		_, err := f.svc.AutoAddByTags(ctx, dto.AutoAddRequest{QuizID: "qz", TagIDs: []string{"t1", "t9"}, Count: 1})
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
	})

	t.Run("invalid count", func(t *testing.T) {
		f := newCompositionFixture()
		_, err := f.svc.AutoAddByTags(ctx, dto.AutoAddRequest{QuizID: "qz", TagIDs: []string{"t1"}, Count: 0})
		assert.True(t, domain.HasCode(err, domain.CodeValidation))
		assert.Equal(t, 0, f.tx.calls)
	})
}

func TestCompositionService_Reorder(t *testing.T) {
	ctx := context.Background()

	t.Run("rewrites every position", func(t *testing.T) {
		f := newCompositionFixture()
		f.quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		f.links.On("ListLinks", mock.Anything, "qz").Return(links("qz", "q1", "q2", "q3"), nil)
		f.links.On("UpdateOrder", mock.Anything, "qz", "q3", 0).Return(nil).Once()
		f.links.On("UpdateOrder", mock.Anything, "qz", "q1", 1).Return(nil).Once()
		f.links.On("UpdateOrder", mock.Anything, "qz", "q2", 2).Return(nil).Once()
		f.links.On("ListQuestions", mock.Anything, "qz").Return([]*domain.QuizQuestion{
			{Question: domain.Question{ID: "q3"}, OrderIndex: 0},
			{Question: domain.Question{ID: "q1"}, OrderIndex: 1},
			{Question: domain.Question{ID: "q2"}, OrderIndex: 2},
		}, nil)

		resp, err := f.svc.Reorder(ctx, "qz", []string{"q3", "q1", "q2"})
		require.NoError(t, err)
		require.Len(t, resp, 3)
		assert.Equal(t, "q3", resp[0].ID)
		f.links.AssertExpectations(t)
	})

	cases := map[string][]string{
		"missing member":  {"q1", "q2"},
		"unknown member":  {"q1", "q2", "q9"},
		"repeated member": {"q1", "q1", "q2"},
		"extra member":    {"q1", "q2", "q3", "q4"},
	}
	for name, ordered := range cases {
		t.Run(name, func(t *testing.T) {
			f := newCompositionFixture()
			f.quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
			f.links.On("ListLinks", mock.Anything, "qz").Return(links("qz", "q1", "q2", "q3"), nil)

			_, err := f.svc.Reorder(ctx, "qz", ordered)
			assert.True(t, domain.HasCode(err, domain.CodeValidation))
			f.links.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCompositionService_RemoveQuestion(t *testing.T) {
	ctx := context.Background()

	f := newCompositionFixture()
	f.quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
	f.links.On("RemoveLink", mock.Anything, "qz", "q1").Return(true, nil)
	f.links.On("RemoveLink", mock.Anything, "qz", "q9").Return(false, nil)

	require.NoError(t, f.svc.RemoveQuestion(ctx, "qz", "q1"))
	err := f.svc.RemoveQuestion(ctx, "qz", "q9")
	assert.True(t, domain.HasCode(err, domain.CodeNotFound))
}

func TestCompositionService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("computes and caches on a miss", func(t *testing.T) {
		f := newCompositionFixture()
		c := new(MockCache)
		f.svc = NewCompositionService(f.quizzes, f.questions, f.links, f.tags, f.tx, NewResultCacheService(c, 0))

		c.On("Get", mock.Anything, "techcom:composition:stats:qz").Return("", domain.ErrCacheMiss)
		c.On("Set", mock.Anything, "techcom:composition:stats:qz", mock.AnythingOfType("string"), mock.Anything).Return(nil)
		f.quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		f.links.On("ListQuestions", mock.Anything, "qz").Return([]*domain.QuizQuestion{
			{Question: domain.Question{ID: "q1", Type: domain.QuestionTrueFalse, Points: 2}},
			{Question: domain.Question{ID: "q2", Type: domain.QuestionMultipleChoice, Points: 3}},
		}, nil)

		stats, err := f.svc.Stats(ctx, "qz")
		require.NoError(t, err)
		assert.Equal(t, 2, stats.TotalQuestions)
		assert.Equal(t, 5, stats.TotalPoints)
		assert.Equal(t, 0, stats.CountByType["multiple_response"])
		c.AssertExpectations(t)
	})

	t.Run("served from cache", func(t *testing.T) {
		f := newCompositionFixture()
		c := new(MockCache)
		f.svc = NewCompositionService(f.quizzes, f.questions, f.links, f.tags, f.tx, NewResultCacheService(c, 0))
		c.On("Get", mock.Anything, "techcom:composition:stats:qz").
			Return(`{"quiz_id":"qz","total_questions":4,"total_points":9,"count_by_type":{"true_false":4}}`, nil)

		stats, err := f.svc.Stats(ctx, "qz")
		require.NoError(t, err)
		assert.Equal(t, 4, stats.TotalQuestions)
		f.quizzes.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("load ignores the caller's cancellation", func(t *testing.T) {
		f := newCompositionFixture()
		live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
		f.quizzes.On("GetByID", live, "qz").Return(activeQuiz("qz"), nil)
		f.links.On("ListQuestions", live, "qz").Return([]*domain.QuizQuestion{
			{Question: domain.Question{ID: "q1", Type: domain.QuestionTrueFalse, Points: 1}},
		}, nil)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		stats, err := f.svc.Stats(cancelled, "qz")
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalQuestions)
		f.links.AssertExpectations(t)
	})

	t.Run("cache failure falls back to the database", func(t *testing.T) {
		f := newCompositionFixture()
		c := new(MockCache)
		f.svc = NewCompositionService(f.quizzes, f.questions, f.links, f.tags, f.tx, NewResultCacheService(c, 0))
		c.On("Get", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))
		c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))
		f.quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
		f.links.On("ListQuestions", mock.Anything, "qz").Return([]*domain.QuizQuestion{}, nil)

		stats, err := f.svc.Stats(ctx, "qz")
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalQuestions)
	})
}

func TestCompositionService_CreateQuestionInQuiz(t *testing.T) {
	ctx := context.Background()

	f := newCompositionFixture()
	f.quizzes.On("GetByID", mock.Anything, "qz").Return(activeQuiz("qz"), nil)
	f.questions.On("Create", mock.Anything, mock.AnythingOfType("*domain.Question")).Return(nil)
	f.links.On("ListLinks", mock.Anything, "qz").Return(links("qz", "q1"), nil)
	f.links.On("AddLinks", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.CreateQuestionInQuiz(ctx, "u1", "qz", dto.CreateQuestionRequest{
		QuestionText:  "Helmets are optional on site",
		QuestionType:  "true_false",
		CorrectAnswer: "false",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.OrderIndex)
	assert.Equal(t, "False", resp.CorrectAnswer)
	assert.Equal(t, 1, resp.Points)

	_, err = f.svc.CreateQuestionInQuiz(ctx, "u1", "qz", dto.CreateQuestionRequest{
		QuestionText:  "Pick one",
		QuestionType:  "multiple_choice",
		Options:       []string{"a", "b"},
		CorrectAnswer: "c",
	})
	assert.True(t, domain.HasCode(err, domain.CodeValidation))
}
