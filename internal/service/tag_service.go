package service

import (
	"context"
	"errors"

	"techcom/internal/domain"
	"techcom/internal/dto"
	"techcom/internal/logger"
	"techcom/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TagService manages tags and lists what is filed under them.
type TagService interface {
	CreateTag(ctx context.Context, req dto.TagRequest) (*dto.TagResponse, error)
	GetTag(ctx context.Context, id string) (*dto.TagResponse, error)
	ListTags(ctx context.Context) ([]dto.TagResponse, error)
	UpdateTag(ctx context.Context, id string, req dto.TagRequest) (*dto.TagResponse, error)
	DeleteTag(ctx context.Context, id string) error
	ListByTag(ctx context.Context, id string) (*dto.TagItemsResponse, error)
}

type tagService struct {
	tags      domain.TagRepository
	materials domain.MaterialRepository
	quizzes   domain.QuizRepository
	tx        domain.TransactionManager
	results   ResultCacheService
}

func NewTagService(
	tags domain.TagRepository,
	materials domain.MaterialRepository,
	quizzes domain.QuizRepository,
	tx domain.TransactionManager,
	results ResultCacheService,
) TagService {
	return &tagService{tags: tags, materials: materials, quizzes: quizzes, tx: tx, results: results}
}

func (s *tagService) CreateTag(ctx context.Context, req dto.TagRequest) (*dto.TagResponse, error) {
	tag := domain.NewTag(util.NewULID(), req.Name)
	if err := tag.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, tag.Name, ""); err != nil {
		return nil, err
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, duplicateAsConflict(err, "tag name already exists: "+tag.Name)
	}
	logger.Get().Info("Tag created", zap.String("tagID", tag.ID), zap.String("name", tag.Name))
	resp := dto.ToTagResponse(tag)
	return &resp, nil
}

func (s *tagService) GetTag(ctx context.Context, id string) (*dto.TagResponse, error) {
	tag, err := s.findTag(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToTagResponse(tag)
	return &resp, nil
}

func (s *tagService) ListTags(ctx context.Context) ([]dto.TagResponse, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list tags", err)
	}
	return dto.ToTagResponses(tags), nil
}

func (s *tagService) UpdateTag(ctx context.Context, id string, req dto.TagRequest) (*dto.TagResponse, error) {
	tag, err := s.findTag(ctx, id)
	if err != nil {
		return nil, err
	}
	tag.Name = domain.NormalizeTagName(req.Name)
	if err := tag.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, tag.Name, tag.ID); err != nil {
		return nil, err
	}
	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, duplicateAsConflict(err, "tag name already exists: "+tag.Name)
	}
	affected, err := s.coTaggedIDs(ctx, tag.ID)
	if err != nil {
		logger.Get().Warn("Failed to collect co-tagged listings", zap.Error(err), zap.String("tagID", tag.ID))
		affected = []string{tag.ID}
	}
	s.results.InvalidateTagItems(ctx, affected...)
	resp := dto.ToTagResponse(tag)
	return &resp, nil
}

// DeleteTag removes the tag and every link to it.
func (s *tagService) DeleteTag(ctx context.Context, id string) error {
	var affected []string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.findTag(ctx, id); err != nil {
			return err
		}
		var err error
		if affected, err = s.coTaggedIDs(ctx, id); err != nil {
			return err
		}
		return s.tags.Delete(ctx, id)
	})
	if err != nil {
		return passThrough("failed to delete tag", err)
	}
	s.results.InvalidateTagItems(ctx, affected...)
	logger.Get().Info("Tag deleted", zap.String("tagID", id))
	return nil
}

// ListByTag returns the non-archived materials and quizzes carrying the tag.
func (s *tagService) ListByTag(ctx context.Context, id string) (*dto.TagItemsResponse, error) {
	cached, err := s.results.GetTagItems(ctx, id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrResultNotCached) {
		logger.Get().Warn("Tag items cache read failed", zap.Error(err), zap.String("tagID", id))
	}

	tag, err := s.findTag(ctx, id)
	if err != nil {
		return nil, err
	}

	items := &domain.TagItems{Tag: tag}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		materials, err := s.materials.ListByTag(gctx, id)
		if err != nil {
			return err
		}
		items.Materials = materials
		return withMaterialTags(gctx, s.tags, materials...)
	})
	g.Go(func() error {
		quizzes, err := s.quizzes.ListByTag(gctx, id)
		if err != nil {
			return err
		}
		items.Quizzes = quizzes
		return withQuizTags(gctx, s.tags, quizzes...)
	})
	if err := g.Wait(); err != nil {
		return nil, passThrough("failed to list items by tag", err)
	}

	resp := dto.ToTagItemsResponse(items)
	if err := s.results.PutTagItems(ctx, id, &resp); err != nil {
		logger.Get().Warn("Tag items cache write failed", zap.Error(err), zap.String("tagID", id))
	}
	return &resp, nil
}

func (s *tagService) findTag(ctx context.Context, id string) (*domain.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get tag", err)
	}
	if tag == nil {
		return nil, domain.NewNotFoundError("tag", id)
	}
	return tag, nil
}

// ensureNameFree fails with Conflict when another tag already uses name.
func (s *tagService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.tags.GetByName(ctx, name)
	if err != nil {
		return domain.NewInternalError("failed to check tag name", err)
	}
	if existing != nil && existing.ID != selfID {
		return domain.NewConflictError("tag name already exists: " + name)
	}
	return nil
}

// coTaggedIDs returns the tag and every other tag carried by its materials and
// quizzes. Cached listings of those tags embed the owners' tag sets.
func (s *tagService) coTaggedIDs(ctx context.Context, id string) ([]string, error) {
	materials, err := s.materials.ListByTag(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to list materials by tag", err)
	}
	quizzes, err := s.quizzes.ListByTag(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes by tag", err)
	}
	if err := withMaterialTags(ctx, s.tags, materials...); err != nil {
		return nil, err
	}
	if err := withQuizTags(ctx, s.tags, quizzes...); err != nil {
		return nil, err
	}

	ids := []string{id}
	for _, m := range materials {
		ids = append(ids, domain.TagIDs(m.Tags)...)
	}
	for _, q := range quizzes {
		ids = append(ids, domain.TagIDs(q.Tags)...)
	}
	return domain.UniqueIDs(ids), nil
}
