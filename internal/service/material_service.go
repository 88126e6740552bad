package service

import (
	"context"

	"techcom/internal/domain"
	"techcom/internal/dto"
	"techcom/internal/logger"
	"techcom/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MaterialService manages training materials, their files, tags and quizzes.
type MaterialService interface {
	CreateMaterial(ctx context.Context, actorID string, req dto.CreateMaterialRequest, files []domain.FileUpload) (*dto.MaterialResponse, error)
	GetMaterial(ctx context.Context, id string) (*dto.MaterialDetailResponse, error)
	SearchMaterials(ctx context.Context, filter domain.SearchFilter) ([]dto.MaterialResponse, error)
	UpdateMaterial(ctx context.Context, id string, req dto.UpdateMaterialRequest, files []domain.FileUpload) (*dto.MaterialResponse, error)
	ArchiveMaterial(ctx context.Context, id string) (*dto.MaterialResponse, error)
	RestoreMaterial(ctx context.Context, id string) (*dto.MaterialResponse, error)

	AssignTags(ctx context.Context, id string, tagIDs []string) (*dto.MaterialResponse, error)
	RemoveTags(ctx context.Context, id string, tagIDs []string) (*dto.MaterialResponse, error)
	RelevantQuizzes(ctx context.Context, id string) ([]dto.QuizResponse, error)
	AttachQuiz(ctx context.Context, id, quizID string) error
	DetachQuiz(ctx context.Context, id, quizID string) error
	MaterialQuizzes(ctx context.Context, id string) ([]dto.QuizResponse, error)

	ResolveFile(name string) (string, error)
}

type materialService struct {
	materials domain.MaterialRepository
	quizzes   domain.QuizRepository
	tags      domain.TagRepository
	storage   domain.FileStorage
	tx        domain.TransactionManager
	results   ResultCacheService
}

func NewMaterialService(
	materials domain.MaterialRepository,
	quizzes domain.QuizRepository,
	tags domain.TagRepository,
	storage domain.FileStorage,
	tx domain.TransactionManager,
	results ResultCacheService,
) MaterialService {
	return &materialService{
		materials: materials,
		quizzes:   quizzes,
		tags:      tags,
		storage:   storage,
		tx:        tx,
		results:   results,
	}
}

func (s *materialService) CreateMaterial(ctx context.Context, actorID string, req dto.CreateMaterialRequest, files []domain.FileUpload) (*dto.MaterialResponse, error) {
	status := domain.StatusDraft
	if req.Status != "" {
		st, err := domain.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}
	material := domain.NewTrainingMaterial(util.NewULID(), req.Title, req.Description, actorID, domain.StatusDraft, nil)
	if err := material.SetStatus(status); err != nil {
		return nil, err
	}
	if err := material.Validate(); err != nil {
		return nil, err
	}
	tagIDs := domain.UniqueIDs(req.TagIDs)

	stored, err := s.saveFiles(ctx, files)
	if err != nil {
		return nil, err
	}
	material.AddContent(stored...)

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		tags, err := requireTags(ctx, s.tags, tagIDs)
		if err != nil {
			return err
		}
		if err := s.materials.Create(ctx, material); err != nil {
			return err
		}
		if len(tagIDs) > 0 {
			if err := s.tags.ReplaceMaterialTags(ctx, material.ID, tagIDs); err != nil {
				return err
			}
		}
		material.Tags = tags
		return nil
	})
	if err != nil {
		s.discardFiles(stored)
		return nil, passThrough("failed to create training material", err)
	}

	s.results.InvalidateTagItems(ctx, tagIDs...)
	logger.Get().Info("Training material created",
		zap.String("materialID", material.ID), zap.Int("files", len(stored)), zap.String("createdBy", actorID))
	resp := dto.ToMaterialResponse(material)
	return &resp, nil
}

// GetMaterial loads the material, its tags and attached quizzes concurrently.
func (s *materialService) GetMaterial(ctx context.Context, id string) (*dto.MaterialDetailResponse, error) {
	var (
		material *domain.TrainingMaterial
		tags     map[string][]*domain.Tag
		quizzes  []*domain.Quiz
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		material, err = s.materials.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = s.tags.ListByMaterials(gctx, []string{id})
		return err
	})
	g.Go(func() error {
		var err error
		quizzes, err = s.quizzes.ListByMaterial(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to get training material", err)
	}
	if material == nil {
		return nil, domain.NewNotFoundError("training material", id)
	}
	material.Tags = tags[id]
	if err := withQuizTags(ctx, s.tags, quizzes...); err != nil {
		return nil, err
	}

	return &dto.MaterialDetailResponse{
		MaterialResponse: dto.ToMaterialResponse(material),
		Quizzes:          dto.ToQuizResponses(quizzes),
	}, nil
}

func (s *materialService) SearchMaterials(ctx context.Context, filter domain.SearchFilter) ([]dto.MaterialResponse, error) {
	materials, err := s.materials.Search(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError("failed to search training materials", err)
	}
	if err := withMaterialTags(ctx, s.tags, materials...); err != nil {
		return nil, err
	}
	return dto.ToMaterialResponses(materials), nil
}

// UpdateMaterial applies the non-empty fields and appends any new files.
func (s *materialService) UpdateMaterial(ctx context.Context, id string, req dto.UpdateMaterialRequest, files []domain.FileUpload) (*dto.MaterialResponse, error) {
	material, err := findMaterial(ctx, s.materials, id)
	if err != nil {
		return nil, err
	}
	if req.Title != "" {
		material.Title = req.Title
	}
	if req.Description != "" {
		material.Description = req.Description
	}
	if req.Status != "" {
		st, err := domain.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		if err := material.SetStatus(st); err != nil {
			return nil, err
		}
	}
	if err := material.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.saveFiles(ctx, files)
	if err != nil {
		return nil, err
	}
	material.AddContent(stored...)

	if err := s.materials.Update(ctx, material); err != nil {
		s.discardFiles(stored)
		return nil, passThrough("failed to update training material", err)
	}
	return s.respondWithTags(ctx, material)
}

func (s *materialService) ArchiveMaterial(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	return s.transition(ctx, id, func(m *domain.TrainingMaterial) error { return m.Archive() })
}

func (s *materialService) RestoreMaterial(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	return s.transition(ctx, id, func(m *domain.TrainingMaterial) error { return m.Restore() })
}

func (s *materialService) transition(ctx context.Context, id string, apply func(*domain.TrainingMaterial) error) (*dto.MaterialResponse, error) {
	material, err := findMaterial(ctx, s.materials, id)
	if err != nil {
		return nil, err
	}
	if err := apply(material); err != nil {
		return nil, err
	}
	if err := s.materials.Update(ctx, material); err != nil {
		return nil, passThrough("failed to update training material", err)
	}
	logger.Get().Info("Training material status changed",
		zap.String("materialID", id), zap.String("status", string(material.Status)))
	return s.respondWithTags(ctx, material)
}

// AssignTags replaces the material's tag set in one transaction.
func (s *materialService) AssignTags(ctx context.Context, id string, tagIDs []string) (*dto.MaterialResponse, error) {
	tagIDs = domain.UniqueIDs(tagIDs)
	var (
		material *domain.TrainingMaterial
		previous []*domain.Tag
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if material, err = findMaterial(ctx, s.materials, id); err != nil {
			return err
		}
		tags, err := requireTags(ctx, s.tags, tagIDs)
		if err != nil {
			return err
		}
		current, err := s.tags.ListByMaterials(ctx, []string{id})
		if err != nil {
			return err
		}
		previous = current[id]
		if err := s.tags.ReplaceMaterialTags(ctx, id, tagIDs); err != nil {
			return err
		}
		material.Tags = tags
		return nil
	})
	if err != nil {
		return nil, passThrough("failed to assign tags", err)
	}
	s.results.InvalidateTagItems(ctx, append(domain.TagIDs(previous), tagIDs...)...)
	resp := dto.ToMaterialResponse(material)
	return &resp, nil
}

func (s *materialService) RemoveTags(ctx context.Context, id string, tagIDs []string) (*dto.MaterialResponse, error) {
	tagIDs = domain.UniqueIDs(tagIDs)
	if len(tagIDs) == 0 {
		return nil, domain.NewValidationError("tag_ids must not be empty")
	}
	var material *domain.TrainingMaterial
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if material, err = findMaterial(ctx, s.materials, id); err != nil {
			return err
		}
		return s.tags.RemoveMaterialTags(ctx, id, tagIDs)
	})
	if err != nil {
		return nil, passThrough("failed to remove tags", err)
	}
	s.results.InvalidateTagItems(ctx, tagIDs...)
	return s.respondWithTags(ctx, material)
}

// RelevantQuizzes lists live quizzes sharing a tag with the material that are not attached yet.
func (s *materialService) RelevantQuizzes(ctx context.Context, id string) ([]dto.QuizResponse, error) {
	material, err := findMaterial(ctx, s.materials, id)
	if err != nil {
		return nil, err
	}
	if err := withMaterialTags(ctx, s.tags, material); err != nil {
		return nil, err
	}
	quizzes, err := s.quizzes.Search(ctx, domain.SearchFilter{})
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}
	if err := withQuizTags(ctx, s.tags, quizzes...); err != nil {
		return nil, err
	}
	attached, err := s.materials.ListAttachedQuizIDs(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to list attached quizzes", err)
	}
	return dto.ToQuizResponses(domain.RelevantQuizzes(material, quizzes, attached)), nil
}

func (s *materialService) AttachQuiz(ctx context.Context, id, quizID string) error {
	material, err := findMaterial(ctx, s.materials, id)
	if err != nil {
		return err
	}
	quiz, err := findQuiz(ctx, s.quizzes, quizID)
	if err != nil {
		return err
	}
	if material.IsArchived() || quiz.IsArchived() {
		return domain.NewValidationError("archived records cannot be attached")
	}
	if err := s.materials.AttachQuiz(ctx, id, quizID); err != nil {
		return duplicateAsConflict(err, "quiz is already attached to this material")
	}
	return nil
}

func (s *materialService) DetachQuiz(ctx context.Context, id, quizID string) error {
	removed, err := s.materials.DetachQuiz(ctx, id, quizID)
	if err != nil {
		return domain.NewInternalError("failed to detach quiz", err)
	}
	if !removed {
		return domain.NewNotFoundError("material quiz", id+"/"+quizID)
	}
	return nil
}

func (s *materialService) MaterialQuizzes(ctx context.Context, id string) ([]dto.QuizResponse, error) {
	if _, err := findMaterial(ctx, s.materials, id); err != nil {
		return nil, err
	}
	quizzes, err := s.quizzes.ListByMaterial(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to list material quizzes", err)
	}
	if err := withQuizTags(ctx, s.tags, quizzes...); err != nil {
		return nil, err
	}
	return dto.ToQuizResponses(quizzes), nil
}

func (s *materialService) ResolveFile(name string) (string, error) {
	return s.storage.Resolve(name)
}

func (s *materialService) respondWithTags(ctx context.Context, material *domain.TrainingMaterial) (*dto.MaterialResponse, error) {
	if err := withMaterialTags(ctx, s.tags, material); err != nil {
		return nil, err
	}
	s.results.InvalidateTagItems(ctx, domain.TagIDs(material.Tags)...)
	resp := dto.ToMaterialResponse(material)
	return &resp, nil
}

// saveFiles stores every upload or none of them.
func (s *materialService) saveFiles(ctx context.Context, files []domain.FileUpload) ([]string, error) {
	stored := make([]string, 0, len(files))
	for _, f := range files {
		name, err := s.storage.Save(ctx, f.Filename, f.Content)
		if err != nil {
			s.discardFiles(stored)
			return nil, passThrough("failed to store uploaded file", err)
		}
		stored = append(stored, name)
	}
	return stored, nil
}

func (s *materialService) discardFiles(names []string) {
	for _, name := range names {
		if err := s.storage.Delete(name); err != nil {
			logger.Get().Warn("Failed to remove stored file", zap.String("file", name), zap.Error(err))
		}
	}
}
