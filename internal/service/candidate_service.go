package service

import (
	"context"
	"strings"
	"time"

	"techcom/internal/domain"
	"techcom/internal/dto"
	"techcom/internal/logger"
	"techcom/internal/util"

	"go.uber.org/zap"
)

// CandidateService manages applicants. Pipeline status and deletion are independent.
type CandidateService interface {
	CreateCandidate(ctx context.Context, req dto.CandidateRequest) (*dto.CandidateResponse, error)
	GetCandidate(ctx context.Context, id string) (*dto.CandidateResponse, error)
	SearchCandidates(ctx context.Context, filter domain.SearchFilter) ([]dto.CandidateResponse, error)
	UpdateCandidate(ctx context.Context, id string, req dto.UpdateCandidateRequest) (*dto.CandidateResponse, error)
	DeleteCandidate(ctx context.Context, id string) error
	RestoreCandidate(ctx context.Context, id string) (*dto.CandidateResponse, error)
}

type candidateService struct {
	candidates domain.CandidateRepository
	jobs       domain.JobDescriptionRepository
}

func NewCandidateService(candidates domain.CandidateRepository, jobs domain.JobDescriptionRepository) CandidateService {
	return &candidateService{candidates: candidates, jobs: jobs}
}

func (s *candidateService) CreateCandidate(ctx context.Context, req dto.CandidateRequest) (*dto.CandidateResponse, error) {
	status := domain.CandidateNew
	if req.Status != "" {
		st, err := domain.ParseCandidateStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}
	now := time.Now().UTC()
	c := &domain.Candidate{
		ID:         util.NewULID(),
		JobID:      strings.TrimSpace(req.JobID),
		FullName:   strings.TrimSpace(req.FullName),
		Email:      domain.NormalizeEmail(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		ResumePath: strings.TrimSpace(req.ResumePath),
		Status:     status,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireOpenJob(ctx, c.JobID); err != nil {
		return nil, err
	}
	if err := s.candidates.Create(ctx, c); err != nil {
		return nil, passThrough("failed to create candidate", err)
	}
	logger.Get().Info("Candidate created", zap.String("candidateID", c.ID), zap.String("jobID", c.JobID))
	resp := dto.ToCandidateResponse(c)
	return &resp, nil
}

func (s *candidateService) GetCandidate(ctx context.Context, id string) (*dto.CandidateResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToCandidateResponse(c)
	return &resp, nil
}

func (s *candidateService) SearchCandidates(ctx context.Context, filter domain.SearchFilter) ([]dto.CandidateResponse, error) {
	if filter.Status != "" {
		if _, err := domain.ParseCandidateStatus(filter.Status); err != nil {
			return nil, err
		}
	}
	candidates, err := s.candidates.Search(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError("failed to search candidates", err)
	}
	return dto.ToCandidateResponses(candidates), nil
}

func (s *candidateService) UpdateCandidate(ctx context.Context, id string, req dto.UpdateCandidateRequest) (*dto.CandidateResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Deleted {
		return nil, domain.NewNotFoundError("candidate", id)
	}
	if req.JobID != nil && strings.TrimSpace(*req.JobID) != c.JobID {
		c.JobID = strings.TrimSpace(*req.JobID)
		if err := s.requireOpenJob(ctx, c.JobID); err != nil {
			return nil, err
		}
	}
	setTrimmed(&c.FullName, req.FullName)
	setTrimmed(&c.Phone, req.Phone)
	setTrimmed(&c.ResumePath, req.ResumePath)
	if req.Email != nil {
		c.Email = domain.NormalizeEmail(*req.Email)
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.Status != nil {
		st, err := domain.ParseCandidateStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		c.Status = st
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.candidates.Update(ctx, c); err != nil {
		return nil, passThrough("failed to update candidate", err)
	}
	resp := dto.ToCandidateResponse(c)
	return &resp, nil
}

func (s *candidateService) DeleteCandidate(ctx context.Context, id string) error {
	_, err := s.toggle(ctx, id, func(c *domain.Candidate) error { return c.SoftDelete.Delete() })
	return err
}

func (s *candidateService) RestoreCandidate(ctx context.Context, id string) (*dto.CandidateResponse, error) {
	return s.toggle(ctx, id, func(c *domain.Candidate) error { return c.SoftDelete.Restore() })
}

func (s *candidateService) toggle(ctx context.Context, id string, apply func(*domain.Candidate) error) (*dto.CandidateResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(c); err != nil {
		return nil, err
	}
	if err := s.candidates.Update(ctx, c); err != nil {
		return nil, passThrough("failed to update candidate", err)
	}
	logger.Get().Info("Candidate deleted flag changed", zap.String("candidateID", id), zap.Bool("deleted", c.Deleted))
	resp := dto.ToCandidateResponse(c)
	return &resp, nil
}

func (s *candidateService) find(ctx context.Context, id string) (*domain.Candidate, error) {
	c, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get candidate", err)
	}
	if c == nil {
		return nil, domain.NewNotFoundError("candidate", id)
	}
	return c, nil
}

// requireOpenJob accepts an empty id; otherwise the job must exist and not be deleted.
func (s *candidateService) requireOpenJob(ctx context.Context, jobID string) error {
	if jobID == "" {
		return nil
	}
	job, err := findJob(ctx, s.jobs, jobID)
	if err != nil {
		return err
	}
	if job.Deleted {
		return domain.NewNotFoundError("job description", jobID)
	}
	return nil
}
