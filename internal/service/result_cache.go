package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"techcom/internal/cache"
	"techcom/internal/domain"
	"techcom/internal/dto"
	"techcom/internal/logger"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// ErrResultNotCached is returned when a cached result is not found.
var ErrResultNotCached = errors.New("result not found in cache")

// ResultCacheService caches read-heavy results: quiz statistics and tag item listings.
type ResultCacheService interface {
	GetQuizStats(ctx context.Context, quizID string) (*domain.QuizStats, error)
	PutQuizStats(ctx context.Context, stats *domain.QuizStats) error
	InvalidateQuizStats(ctx context.Context, quizIDs ...string)

	GetTagItems(ctx context.Context, tagID string) (*dto.TagItemsResponse, error)
	PutTagItems(ctx context.Context, tagID string, items *dto.TagItemsResponse) error
	InvalidateTagItems(ctx context.Context, tagIDs ...string)
}

type resultCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewResultCacheService returns a no-op implementation when cache is nil.
func NewResultCacheService(c domain.Cache, ttl time.Duration) ResultCacheService {
	if c == nil {
		logger.Get().Warn("ResultCacheService initialized with nil cache. Service will be no-op.")
		return &noopResultCacheService{}
	}
	return &resultCacheServiceImpl{cache: c, ttl: ttl}
}

func (s *resultCacheServiceImpl) GetQuizStats(ctx context.Context, quizID string) (*domain.QuizStats, error) {
	var stats domain.QuizStats
	if err := s.get(ctx, cache.QuizStatsKey(quizID), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *resultCacheServiceImpl) PutQuizStats(ctx context.Context, stats *domain.QuizStats) error {
	if stats == nil {
		return domain.NewValidationError("cannot cache nil quiz stats")
	}
	return s.put(ctx, cache.QuizStatsKey(stats.QuizID), stats)
}

func (s *resultCacheServiceImpl) InvalidateQuizStats(ctx context.Context, quizIDs ...string) {
	keys := make([]string, 0, len(quizIDs))
	for _, id := range quizIDs {
		keys = append(keys, cache.QuizStatsKey(id))
	}
	s.delete(ctx, keys)
}

func (s *resultCacheServiceImpl) GetTagItems(ctx context.Context, tagID string) (*dto.TagItemsResponse, error) {
	var items dto.TagItemsResponse
	if err := s.get(ctx, cache.TagItemsKey(tagID), &items); err != nil {
		return nil, err
	}
	return &items, nil
}

func (s *resultCacheServiceImpl) PutTagItems(ctx context.Context, tagID string, items *dto.TagItemsResponse) error {
	if items == nil {
		return domain.NewValidationError("cannot cache nil tag items")
	}
	return s.put(ctx, cache.TagItemsKey(tagID), items)
}

func (s *resultCacheServiceImpl) InvalidateTagItems(ctx context.Context, tagIDs ...string) {
	keys := make([]string, 0, len(tagIDs))
	for _, id := range domain.UniqueIDs(tagIDs) {
		keys = append(keys, cache.TagItemsKey(id))
	}
	s.delete(ctx, keys)
}

func (s *resultCacheServiceImpl) get(ctx context.Context, key string, out interface{}) error {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Result cache miss", zap.String("key", key))
			return ErrResultNotCached
		}
		logger.Get().Error("Failed to get result from cache", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to get result from cache for key %s", key), err)
	}
	if data == "" {
		return ErrResultNotCached
	}
	if err := sonic.UnmarshalString(data, out); err != nil {
		logger.Get().Error("Failed to unmarshal cached result", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to unmarshal result from cache for key %s", key), err)
	}
	return nil
}

func (s *resultCacheServiceImpl) put(ctx context.Context, key string, v interface{}) error {
	data, err := sonic.MarshalString(v)
	if err != nil {
		logger.Get().Error("Failed to marshal result for caching", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError("failed to marshal result for caching", err)
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		logger.Get().Error("Failed to cache result", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set result to cache for key %s", key), err)
	}
	logger.Get().Debug("Cached result", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

// delete never fails the caller; a stale entry expires with the ttl.
func (s *resultCacheServiceImpl) delete(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Get().Warn("Failed to invalidate cached results", zap.Error(err), zap.Strings("keys", keys))
	}
}

type noopResultCacheService struct{}

func (noopResultCacheService) GetQuizStats(context.Context, string) (*domain.QuizStats, error) {
	return nil, ErrResultNotCached
}

func (noopResultCacheService) PutQuizStats(context.Context, *domain.QuizStats) error { return nil }

func (noopResultCacheService) InvalidateQuizStats(context.Context, ...string) {}

func (noopResultCacheService) GetTagItems(context.Context, string) (*dto.TagItemsResponse, error) {
	return nil, ErrResultNotCached
}

func (noopResultCacheService) PutTagItems(context.Context, string, *dto.TagItemsResponse) error {
	return nil
}

func (noopResultCacheService) InvalidateTagItems(context.Context, ...string) {}
