package main

import (
	"context"

	"techcom/internal/dto"
	"techcom/internal/service"
	"techcom/internal/validation"

	"go.uber.org/zap"
)

type importSummary struct {
	Imported int
	Failed   int
}

// questionImporter writes questions one at a time so a bad entry does not
// abort the rest of the file.
type questionImporter struct {
	questions   service.QuestionService
	composition service.CompositionService
	log         *zap.Logger
}

func (i *questionImporter) Import(ctx context.Context, authorID, quizID string, reqs []dto.CreateQuestionRequest) importSummary {
	v := validation.NewValidator()
	var summary importSummary
	for n, req := range reqs {
		if err := v.ValidateStruct(&req); err != nil {
			i.log.Warn("Skipping invalid question", zap.Int("index", n), zap.Error(err))
			summary.Failed++
			continue
		}

		var err error
		if quizID != "" {
			_, err = i.composition.CreateQuestionInQuiz(ctx, authorID, quizID, req)
		} else {
			_, err = i.questions.CreateQuestion(ctx, authorID, req)
		}
		if err != nil {
			i.log.Warn("Failed to import question", zap.Int("index", n), zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Imported++
	}
	return summary
}
