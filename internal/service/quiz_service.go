package service

import (
	"context"

	"techcom/internal/domain"
	"techcom/internal/dto"
	"techcom/internal/logger"
	"techcom/internal/util"

	"go.uber.org/zap"
)

// QuizService manages quizzes, their lifecycle and tags.
type QuizService interface {
	CreateQuiz(ctx context.Context, actorID string, req dto.CreateQuizRequest) (*dto.QuizResponse, error)
	GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)
	SearchQuizzes(ctx context.Context, filter domain.SearchFilter) ([]dto.QuizResponse, error)
	UpdateQuiz(ctx context.Context, id string, req dto.UpdateQuizRequest) (*dto.QuizResponse, error)
	ArchiveQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)
	RestoreQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)
	AssignTags(ctx context.Context, id string, tagIDs []string) (*dto.QuizResponse, error)
	RemoveTags(ctx context.Context, id string, tagIDs []string) (*dto.QuizResponse, error)
}

type quizService struct {
	quizzes domain.QuizRepository
	tags    domain.TagRepository
	tx      domain.TransactionManager
	results ResultCacheService
}

func NewQuizService(
	quizzes domain.QuizRepository,
	tags domain.TagRepository,
	tx domain.TransactionManager,
	results ResultCacheService,
) QuizService {
	return &quizService{quizzes: quizzes, tags: tags, tx: tx, results: results}
}

func (s *quizService) CreateQuiz(ctx context.Context, actorID string, req dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	passing := domain.DefaultPassingScore
	if req.PassingScorePercent != nil {
		passing = *req.PassingScorePercent
	}
	quiz := domain.NewQuiz(util.NewULID(), req.Title, req.Description, actorID, req.DurationMinutes, passing, domain.StatusDraft)
	if req.Status != "" {
		st, err := domain.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		if err := quiz.SetStatus(st); err != nil {
			return nil, err
		}
	}
	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	tagIDs := domain.UniqueIDs(req.TagIDs)

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		tags, err := requireTags(ctx, s.tags, tagIDs)
		if err != nil {
			return err
		}
		if err := s.quizzes.Create(ctx, quiz); err != nil {
			return err
		}
		if len(tagIDs) > 0 {
			if err := s.tags.ReplaceQuizTags(ctx, quiz.ID, tagIDs); err != nil {
				return err
			}
		}
		quiz.Tags = tags
		return nil
	})
	if err != nil {
		return nil, passThrough("failed to create quiz", err)
	}

	s.results.InvalidateTagItems(ctx, tagIDs...)
	logger.Get().Info("Quiz created", zap.String("quizID", quiz.ID), zap.String("createdBy", actorID))
	resp := dto.ToQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	quiz, err := findQuiz(ctx, s.quizzes, id)
	if err != nil {
		return nil, err
	}
	return s.respondWithTags(ctx, quiz)
}

func (s *quizService) SearchQuizzes(ctx context.Context, filter domain.SearchFilter) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizzes.Search(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError("failed to search quizzes", err)
	}
	if err := withQuizTags(ctx, s.tags, quizzes...); err != nil {
		return nil, err
	}
	return dto.ToQuizResponses(quizzes), nil
}

func (s *quizService) UpdateQuiz(ctx context.Context, id string, req dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	quiz, err := findQuiz(ctx, s.quizzes, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		quiz.DurationMinutes = *req.DurationMinutes
	}
	if req.PassingScorePercent != nil {
		quiz.PassingScorePercent = *req.PassingScorePercent
	}
	if req.Status != nil {
		st, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		if err := quiz.SetStatus(st); err != nil {
			return nil, err
		}
	}
	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	if err := s.quizzes.Update(ctx, quiz); err != nil {
		return nil, passThrough("failed to update quiz", err)
	}
	return s.respondChanged(ctx, quiz)
}

func (s *quizService) ArchiveQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	return s.transition(ctx, id, func(q *domain.Quiz) error { return q.Archive() })
}

func (s *quizService) RestoreQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	return s.transition(ctx, id, func(q *domain.Quiz) error { return q.Restore() })
}

func (s *quizService) transition(ctx context.Context, id string, apply func(*domain.Quiz) error) (*dto.QuizResponse, error) {
	quiz, err := findQuiz(ctx, s.quizzes, id)
	if err != nil {
		return nil, err
	}
	if err := apply(quiz); err != nil {
		return nil, err
	}
	if err := s.quizzes.Update(ctx, quiz); err != nil {
		return nil, passThrough("failed to update quiz", err)
	}
	logger.Get().Info("Quiz status changed", zap.String("quizID", id), zap.String("status", string(quiz.Status)))
	return s.respondChanged(ctx, quiz)
}

func (s *quizService) AssignTags(ctx context.Context, id string, tagIDs []string) (*dto.QuizResponse, error) {
	tagIDs = domain.UniqueIDs(tagIDs)
	var (
		quiz     *domain.Quiz
		previous []*domain.Tag
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if quiz, err = findQuiz(ctx, s.quizzes, id); err != nil {
			return err
		}
		tags, err := requireTags(ctx, s.tags, tagIDs)
		if err != nil {
			return err
		}
		current, err := s.tags.ListByQuizzes(ctx, []string{id})
		if err != nil {
			return err
		}
		previous = current[id]
		if err := s.tags.ReplaceQuizTags(ctx, id, tagIDs); err != nil {
			return err
		}
		quiz.Tags = tags
		return nil
	})
	if err != nil {
		return nil, passThrough("failed to assign tags", err)
	}
	s.results.InvalidateTagItems(ctx, append(domain.TagIDs(previous), tagIDs...)...)
	resp := dto.ToQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) RemoveTags(ctx context.Context, id string, tagIDs []string) (*dto.QuizResponse, error) {
	tagIDs = domain.UniqueIDs(tagIDs)
	if len(tagIDs) == 0 {
		return nil, domain.NewValidationError("tag_ids must not be empty")
	}
	var quiz *domain.Quiz
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if quiz, err = findQuiz(ctx, s.quizzes, id); err != nil {
			return err
		}
		return s.tags.RemoveQuizTags(ctx, id, tagIDs)
	})
	if err != nil {
		return nil, passThrough("failed to remove tags", err)
	}
	s.results.InvalidateTagItems(ctx, tagIDs...)
	return s.respondChanged(ctx, quiz)
}

// respondChanged also drops cached tag listings that include the quiz.
func (s *quizService) respondChanged(ctx context.Context, quiz *domain.Quiz) (*dto.QuizResponse, error) {
	resp, err := s.respondWithTags(ctx, quiz)
	if err != nil {
		return nil, err
	}
	s.results.InvalidateTagItems(ctx, domain.TagIDs(quiz.Tags)...)
	return resp, nil
}

func (s *quizService) respondWithTags(ctx context.Context, quiz *domain.Quiz) (*dto.QuizResponse, error) {
	if err := withQuizTags(ctx, s.tags, quiz); err != nil {
		return nil, err
	}
	resp := dto.ToQuizResponse(quiz)
	return &resp, nil
}
