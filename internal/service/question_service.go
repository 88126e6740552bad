package service

import (
	"context"

	"techcom/internal/domain"
	"techcom/internal/dto"
	"techcom/internal/logger"
	"techcom/internal/util"

	"go.uber.org/zap"
)

const defaultQuestionPoints = 1

// QuestionService manages the question bank.
type QuestionService interface {
	CreateQuestion(ctx context.Context, actorID string, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error)
	SearchQuestions(ctx context.Context, filter domain.SearchFilter) ([]dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, id string, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, id string) error
}

type questionService struct {
	questions domain.QuestionRepository
	links     domain.QuizQuestionRepository
	tx        domain.TransactionManager
	results   ResultCacheService
}

func NewQuestionService(
	questions domain.QuestionRepository,
	links domain.QuizQuestionRepository,
	tx domain.TransactionManager,
	results ResultCacheService,
) QuestionService {
	return &questionService{questions: questions, links: links, tx: tx, results: results}
}

// buildQuestion turns a create request into a validated bank question.
func buildQuestion(actorID string, req dto.CreateQuestionRequest) (*domain.Question, error) {
	qType, err := domain.ParseQuestionType(req.QuestionType)
	if err != nil {
		return nil, err
	}
	points := req.Points
	if points == 0 {
		points = defaultQuestionPoints
	}
	q := domain.NewQuestion(util.NewULID(), req.QuestionText, qType, req.Options, req.CorrectAnswer, points, actorID)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *questionService) CreateQuestion(ctx context.Context, actorID string, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	q, err := buildQuestion(actorID, req)
	if err != nil {
		return nil, err
	}
	if err := s.questions.Create(ctx, q); err != nil {
		return nil, passThrough("failed to create question", err)
	}
	logger.Get().Info("Question created", zap.String("questionID", q.ID), zap.String("type", string(q.Type)))
	resp := dto.ToQuestionResponse(q)
	return &resp, nil
}

func (s *questionService) GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error) {
	q, err := findQuestion(ctx, s.questions, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToQuestionResponse(q)
	return &resp, nil
}

func (s *questionService) SearchQuestions(ctx context.Context, filter domain.SearchFilter) ([]dto.QuestionResponse, error) {
	if filter.Type != "" {
		if _, err := domain.ParseQuestionType(filter.Type); err != nil {
			return nil, err
		}
	}
	questions, err := s.questions.Search(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError("failed to search questions", err)
	}
	return dto.ToQuestionResponses(questions), nil
}

// UpdateQuestion re-validates the answer against the resulting type and options.
func (s *questionService) UpdateQuestion(ctx context.Context, id string, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	q, err := findQuestion(ctx, s.questions, id)
	if err != nil {
		return nil, err
	}
	if req.QuestionText != nil {
		q.Text = *req.QuestionText
	}
	if req.QuestionType != nil {
		qType, err := domain.ParseQuestionType(*req.QuestionType)
		if err != nil {
			return nil, err
		}
		q.Type = qType
	}
	if req.Points != nil {
		q.Points = *req.Points
	}
	options := q.Options
	if req.Options != nil {
		options = *req.Options
	}
	answer := q.CorrectAnswer
	if req.CorrectAnswer != nil {
		answer = *req.CorrectAnswer
	}
	q.SetAnswer(options, answer)
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if err := s.questions.Update(ctx, q); err != nil {
		return nil, passThrough("failed to update question", err)
	}
	s.invalidateStats(ctx, id)
	resp := dto.ToQuestionResponse(q)
	return &resp, nil
}

// DeleteQuestion unlinks the question from every quiz and removes it from the bank.
func (s *questionService) DeleteQuestion(ctx context.Context, id string) error {
	var quizIDs []string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := findQuestion(ctx, s.questions, id); err != nil {
			return err
		}
		var err error
		if quizIDs, err = s.links.ListQuizIDsByQuestion(ctx, id); err != nil {
			return err
		}
		if err := s.links.DeleteByQuestion(ctx, id); err != nil {
			return err
		}
		return s.questions.Delete(ctx, id)
	})
	if err != nil {
		return passThrough("failed to delete question", err)
	}
	s.results.InvalidateQuizStats(ctx, quizIDs...)
	logger.Get().Info("Question deleted", zap.String("questionID", id), zap.Int("unlinkedQuizzes", len(quizIDs)))
	return nil
}

func (s *questionService) invalidateStats(ctx context.Context, questionID string) {
	quizIDs, err := s.links.ListQuizIDsByQuestion(ctx, questionID)
	if err != nil {
		logger.Get().Warn("Failed to list quizzes for stats invalidation", zap.Error(err), zap.String("questionID", questionID))
		return
	}
	s.results.InvalidateQuizStats(ctx, quizIDs...)
}
