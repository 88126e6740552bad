package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"techcom/internal/domain"
	"techcom/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResultCacheService_QuizStats(t *testing.T) {
	ctx := context.Background()
	ttl := 10 * time.Minute

	t.Run("round trip", func(t *testing.T) {
		c := new(MockCache)
		svc := NewResultCacheService(c, ttl)

		var stored string
		c.On("Set", mock.Anything, "techcom:composition:stats:qz", mock.AnythingOfType("string"), ttl).
			Run(func(args mock.Arguments) { stored = args.String(2) }).Return(nil)
		require.NoError(t, svc.PutQuizStats(ctx, &domain.QuizStats{
			QuizID:         "qz",
			TotalQuestions: 2,
			TotalPoints:    4,
			CountByType:    map[domain.QuestionType]int{domain.QuestionTrueFalse: 2},
		}))

		c.On("Get", mock.Anything, "techcom:composition:stats:qz").Return(stored, nil)
		got, err := svc.GetQuizStats(ctx, "qz")
		require.NoError(t, err)
		assert.Equal(t, 4, got.TotalPoints)
		assert.Equal(t, 2, got.CountByType[domain.QuestionTrueFalse])
	})

	t.Run("miss", func(t *testing.T) {
		c := new(MockCache)
		svc := NewResultCacheService(c, ttl)
		c.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)

		_, err := svc.GetQuizStats(ctx, "qz")
		assert.ErrorIs(t, err, ErrResultNotCached)
	})

	t.Run("corrupt entry", func(t *testing.T) {
		c := new(MockCache)
		svc := NewResultCacheService(c, ttl)
		c.On("Get", mock.Anything, mock.Anything).Return("{not json", nil)

		_, err := svc.GetQuizStats(ctx, "qz")
		assert.True(t, domain.HasCode(err, domain.CodeInternal))
	})

	t.Run("nil stats", func(t *testing.T) {
		svc := NewResultCacheService(new(MockCache), ttl)
		err := svc.PutQuizStats(ctx, nil)
		assert.True(t, domain.HasCode(err, domain.CodeValidation))
	})

	t.Run("invalidate swallows cache errors", func(t *testing.T) {
		c := new(MockCache)
		svc := NewResultCacheService(c, ttl)
		c.On("Delete", mock.Anything, []string{"techcom:composition:stats:a", "techcom:composition:stats:b"}).
			Return(errors.New("connection reset"))

		svc.InvalidateQuizStats(ctx, "a", "b")
		c.AssertExpectations(t)
	})
}

func TestResultCacheService_TagItems(t *testing.T) {
	ctx := context.Background()

	c := new(MockCache)
	svc := NewResultCacheService(c, time.Minute)
	c.On("Set", mock.Anything, "techcom:tag:items:t1", mock.AnythingOfType("string"), time.Minute).Return(nil)
	c.On("Delete", mock.Anything, []string{"techcom:tag:items:t1", "techcom:tag:items:t2"}).Return(nil)

	require.NoError(t, svc.PutTagItems(ctx, "t1", &dto.TagItemsResponse{Tag: dto.TagResponse{ID: "t1"}}))
	svc.InvalidateTagItems(ctx, "t1", "t2", "t1", "")
	svc.InvalidateTagItems(ctx)
	c.AssertExpectations(t)
	c.AssertNumberOfCalls(t, "Delete", 1)
}

func TestResultCacheService_NilCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	svc := NewResultCacheService(nil, time.Minute)

	_, err := svc.GetTagItems(ctx, "t1")
	assert.ErrorIs(t, err, ErrResultNotCached)
	assert.NoError(t, svc.PutTagItems(ctx, "t1", &dto.TagItemsResponse{}))
	svc.InvalidateTagItems(ctx, "t1")
}
