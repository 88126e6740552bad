package service

import (
	"context"
	"errors"
	"time"

	"techcom/internal/domain"
	"techcom/internal/dto"
	"techcom/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CompositionService manages which bank questions a quiz contains and in what order.
type CompositionService interface {
	AddQuestion(ctx context.Context, quizID, questionID string) error
	AutoAddByTags(ctx context.Context, req dto.AutoAddRequest) (*dto.AutoAddResponse, error)
	Reorder(ctx context.Context, quizID string, orderedIDs []string) ([]dto.QuizQuestionResponse, error)
	RemoveQuestion(ctx context.Context, quizID, questionID string) error
	ListQuestions(ctx context.Context, quizID string) ([]dto.QuizQuestionResponse, error)
	Stats(ctx context.Context, quizID string) (*dto.QuizStatsResponse, error)
	CreateQuestionInQuiz(ctx context.Context, actorID, quizID string, req dto.CreateQuestionRequest) (*dto.QuizQuestionResponse, error)
}

type compositionService struct {
	quizzes   domain.QuizRepository
	questions domain.QuestionRepository
	links     domain.QuizQuestionRepository
	tags      domain.TagRepository
	tx        domain.TransactionManager
	results   ResultCacheService
	statsSF   singleflight.Group
}

func NewCompositionService(
	quizzes domain.QuizRepository,
	questions domain.QuestionRepository,
	links domain.QuizQuestionRepository,
	tags domain.TagRepository,
	tx domain.TransactionManager,
	results ResultCacheService,
) CompositionService {
	return &compositionService{
		quizzes:   quizzes,
		questions: questions,
		links:     links,
		tags:      tags,
		tx:        tx,
		results:   results,
	}
}

// editableQuiz loads a quiz whose membership may change.
func (s *compositionService) editableQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	quiz, err := findQuiz(ctx, s.quizzes, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.IsArchived() {
		return nil, domain.NewValidationError("archived quizzes must be restored before editing questions")
	}
	return quiz, nil
}

// AddQuestion appends the question after the current last position.
func (s *compositionService) AddQuestion(ctx context.Context, quizID, questionID string) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.editableQuiz(ctx, quizID); err != nil {
			return err
		}
		if _, err := findQuestion(ctx, s.questions, questionID); err != nil {
			return err
		}
		links, err := s.links.ListLinks(ctx, quizID)
		if err != nil {
			return err
		}
		for _, l := range links {
			if l.QuestionID == questionID {
				return domain.NewConflictError("question is already part of the quiz")
			}
		}
		return s.links.AddLinks(ctx, []domain.QuizQuestionLink{{
			QuizID:     quizID,
			QuestionID: questionID,
			OrderIndex: domain.NextOrderIndex(links),
			CreatedAt:  time.Now().UTC(),
		}})
	})
	if err != nil {
		return duplicateAsConflict(err, "question is already part of the quiz")
	}
	s.results.InvalidateQuizStats(ctx, quizID)
	return nil
}

// AutoAddByTags links up to req.Count unlinked questions that match the tags.
func (s *compositionService) AutoAddByTags(ctx context.Context, req dto.AutoAddRequest) (*dto.AutoAddResponse, error) {
	if req.Count <= 0 {
		return nil, domain.NewValidationError("count must be greater than 0")
	}
	tagIDs := domain.UniqueIDs(req.TagIDs)
	if len(tagIDs) == 0 {
		return nil, domain.NewValidationError("tag_ids must not be empty")
	}

	var added []string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.editableQuiz(ctx, req.QuizID); err != nil {
			return err
		}
		if _, err := requireTags(ctx, s.tags, tagIDs); err != nil {
			return err
		}
		candidates, err := s.questions.FindIDsByTags(ctx, tagIDs)
		if err != nil {
			return err
		}
		links, err := s.links.ListLinks(ctx, req.QuizID)
		if err != nil {
			return err
		}
		added = domain.SelectAutoAddCandidates(candidates, domain.LinkedQuestionIDs(links), req.Count)
		if len(added) == 0 {
			return nil
		}

		next := domain.NextOrderIndex(links)
		now := time.Now().UTC()
		newLinks := make([]domain.QuizQuestionLink, 0, len(added))
		for i, id := range added {
			newLinks = append(newLinks, domain.QuizQuestionLink{
				QuizID:     req.QuizID,
				QuestionID: id,
				OrderIndex: next + i,
				CreatedAt:  now,
			})
		}
		return s.links.AddLinks(ctx, newLinks)
	})
	if err != nil {
		return nil, passThrough("failed to add questions by tags", err)
	}

	if len(added) > 0 {
		s.results.InvalidateQuizStats(ctx, req.QuizID)
	}
	logger.Get().Info("Questions auto-added",
		zap.String("quizID", req.QuizID), zap.Int("requested", req.Count), zap.Int("added", len(added)))
	return &dto.AutoAddResponse{QuizID: req.QuizID, Requested: req.Count, Added: added}, nil
}

// Reorder rewrites every position; orderedIDs must be a permutation of the current members.
func (s *compositionService) Reorder(ctx context.Context, quizID string, orderedIDs []string) ([]dto.QuizQuestionResponse, error) {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.editableQuiz(ctx, quizID); err != nil {
			return err
		}
		links, err := s.links.ListLinks(ctx, quizID)
		if err != nil {
			return err
		}
		if err := domain.ValidatePermutation(domain.LinkedQuestionIDs(links), orderedIDs); err != nil {
			return err
		}
		for i, id := range orderedIDs {
			if err := s.links.UpdateOrder(ctx, quizID, id, i); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, passThrough("failed to reorder questions", err)
	}
	return s.ListQuestions(ctx, quizID)
}

// RemoveQuestion deletes the link only; the question stays in the bank.
func (s *compositionService) RemoveQuestion(ctx context.Context, quizID, questionID string) error {
	if _, err := s.editableQuiz(ctx, quizID); err != nil {
		return err
	}
	removed, err := s.links.RemoveLink(ctx, quizID, questionID)
	if err != nil {
		return domain.NewInternalError("failed to remove question from quiz", err)
	}
	if !removed {
		return domain.NewNotFoundError("quiz question", quizID+"/"+questionID)
	}
	s.results.InvalidateQuizStats(ctx, quizID)
	return nil
}

func (s *compositionService) ListQuestions(ctx context.Context, quizID string) ([]dto.QuizQuestionResponse, error) {
	if _, err := findQuiz(ctx, s.quizzes, quizID); err != nil {
		return nil, err
	}
	questions, err := s.links.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quiz questions", err)
	}
	return dto.ToQuizQuestionResponses(questions), nil
}

func (s *compositionService) Stats(ctx context.Context, quizID string) (*dto.QuizStatsResponse, error) {
	cached, err := s.results.GetQuizStats(ctx, quizID)
	if err == nil {
		resp := dto.ToQuizStatsResponse(cached)
		return &resp, nil
	}
	if !errors.Is(err, ErrResultNotCached) {
		logger.Get().Warn("Quiz stats cache read failed", zap.Error(err), zap.String("quizID", quizID))
	}

	// Concurrent misses for one quiz share a single load, which must outlive
	// the request that started it.
	res, err, _ := s.statsSF.Do(quizID, func() (interface{}, error) {
		ctx := context.WithoutCancel(ctx)
		if _, err := findQuiz(ctx, s.quizzes, quizID); err != nil {
			return nil, err
		}
		questions, err := s.links.ListQuestions(ctx, quizID)
		if err != nil {
			return nil, domain.NewInternalError("failed to list quiz questions", err)
		}
		stats := domain.ComputeQuizStats(quizID, questions)
		if err := s.results.PutQuizStats(ctx, stats); err != nil {
			logger.Get().Warn("Quiz stats cache write failed", zap.Error(err), zap.String("quizID", quizID))
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToQuizStatsResponse(res.(*domain.QuizStats))
	return &resp, nil
}

// CreateQuestionInQuiz adds a new bank question and appends it to the quiz atomically.
func (s *compositionService) CreateQuestionInQuiz(ctx context.Context, actorID, quizID string, req dto.CreateQuestionRequest) (*dto.QuizQuestionResponse, error) {
	q, err := buildQuestion(actorID, req)
	if err != nil {
		return nil, err
	}

	var orderIndex int
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.editableQuiz(ctx, quizID); err != nil {
			return err
		}
		if err := s.questions.Create(ctx, q); err != nil {
			return err
		}
		links, err := s.links.ListLinks(ctx, quizID)
		if err != nil {
			return err
		}
		orderIndex = domain.NextOrderIndex(links)
		return s.links.AddLinks(ctx, []domain.QuizQuestionLink{{
			QuizID:     quizID,
			QuestionID: q.ID,
			OrderIndex: orderIndex,
			CreatedAt:  time.Now().UTC(),
		}})
	})
	if err != nil {
		return nil, passThrough("failed to create question in quiz", err)
	}

	s.results.InvalidateQuizStats(ctx, quizID)
	return &dto.QuizQuestionResponse{
		QuestionResponse: dto.ToQuestionResponse(q),
		OrderIndex:       orderIndex,
	}, nil
}
