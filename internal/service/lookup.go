package service

import (
	"context"
	"errors"
	"sort"

	"techcom/internal/domain"
)

// Shared lookups used by several services. Each one maps the repositories'
// (nil, nil) not-found result onto a NotFound domain error.

func findMaterial(ctx context.Context, repo domain.MaterialRepository, id string) (*domain.TrainingMaterial, error) {
	m, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get training material", err)
	}
	if m == nil {
		return nil, domain.NewNotFoundError("training material", id)
	}
	return m, nil
}

func findQuiz(ctx context.Context, repo domain.QuizRepository, id string) (*domain.Quiz, error) {
	q, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get quiz", err)
	}
	if q == nil {
		return nil, domain.NewNotFoundError("quiz", id)
	}
	return q, nil
}

func findQuestion(ctx context.Context, repo domain.QuestionRepository, id string) (*domain.Question, error) {
	q, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get question", err)
	}
	if q == nil {
		return nil, domain.NewNotFoundError("question", id)
	}
	return q, nil
}

func findJob(ctx context.Context, repo domain.JobDescriptionRepository, id string) (*domain.JobDescription, error) {
	j, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get job description", err)
	}
	if j == nil {
		return nil, domain.NewNotFoundError("job description", id)
	}
	return j, nil
}

func findUser(ctx context.Context, repo domain.UserRepository, id string) (*domain.User, error) {
	u, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get user", err)
	}
	if u == nil {
		return nil, domain.NewNotFoundError("user", id)
	}
	return u, nil
}

// requireTags loads every id or fails with NotFound naming the first unknown one.
func requireTags(ctx context.Context, repo domain.TagRepository, ids []string) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return []*domain.Tag{}, nil
	}
	tags, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, domain.NewInternalError("failed to get tags", err)
	}
	found := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		found[t.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, domain.NewNotFoundError("tag", id)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func withMaterialTags(ctx context.Context, repo domain.TagRepository, materials ...*domain.TrainingMaterial) error {
	if len(materials) == 0 {
		return nil
	}
	ids := make([]string, 0, len(materials))
	for _, m := range materials {
		ids = append(ids, m.ID)
	}
	byMaterial, err := repo.ListByMaterials(ctx, ids)
	if err != nil {
		return domain.NewInternalError("failed to load material tags", err)
	}
	for _, m := range materials {
		m.Tags = byMaterial[m.ID]
	}
	return nil
}

func withQuizTags(ctx context.Context, repo domain.TagRepository, quizzes ...*domain.Quiz) error {
	if len(quizzes) == 0 {
		return nil
	}
	ids := make([]string, 0, len(quizzes))
	for _, q := range quizzes {
		ids = append(ids, q.ID)
	}
	byQuiz, err := repo.ListByQuizzes(ctx, ids)
	if err != nil {
		return domain.NewInternalError("failed to load quiz tags", err)
	}
	for _, q := range quizzes {
		q.Tags = byQuiz[q.ID]
	}
	return nil
}

// passThrough keeps domain errors as they are and wraps anything else as internal.
func passThrough(msg string, err error) error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return err
	}
	return domain.NewInternalError(msg, err)
}

// duplicateAsConflict turns a unique-key violation into a Conflict.
func duplicateAsConflict(err error, msg string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.NewConflictError(msg)
	}
	return passThrough("failed to save record", err)
}
