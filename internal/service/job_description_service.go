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

// JobDescriptionService manages job postings. Candidates only ever see active postings.
type JobDescriptionService interface {
	CreateJob(ctx context.Context, actorID string, req dto.JobDescriptionRequest) (*dto.JobDescriptionResponse, error)
	GetJob(ctx context.Context, id string, viewer domain.Role) (*dto.JobDescriptionResponse, error)
	SearchJobs(ctx context.Context, filter domain.SearchFilter, viewer domain.Role) ([]dto.JobDescriptionResponse, error)
	UpdateJob(ctx context.Context, id string, req dto.UpdateJobDescriptionRequest) (*dto.JobDescriptionResponse, error)
	DeleteJob(ctx context.Context, id string) error
	RestoreJob(ctx context.Context, id string) (*dto.JobDescriptionResponse, error)
}

type jobDescriptionService struct {
	jobs domain.JobDescriptionRepository
}

func NewJobDescriptionService(jobs domain.JobDescriptionRepository) JobDescriptionService {
	return &jobDescriptionService{jobs: jobs}
}

func (s *jobDescriptionService) CreateJob(ctx context.Context, actorID string, req dto.JobDescriptionRequest) (*dto.JobDescriptionResponse, error) {
	status := domain.JobStatusDraft
	if req.Status != "" {
		st, err := domain.ParseJobStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}
	now := time.Now().UTC()
	job := &domain.JobDescription{
		ID:             util.NewULID(),
		Title:          strings.TrimSpace(req.Title),
		Department:     strings.TrimSpace(req.Department),
		Location:       strings.TrimSpace(req.Location),
		EmploymentType: strings.TrimSpace(req.EmploymentType),
		Description:    req.Description,
		Requirements:   req.Requirements,
		SalaryRange:    strings.TrimSpace(req.SalaryRange),
		Status:         status,
		CreatedBy:      actorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, passThrough("failed to create job description", err)
	}
	logger.Get().Info("Job description created", zap.String("jobID", job.ID), zap.String("createdBy", actorID))
	resp := dto.ToJobDescriptionResponse(job)
	return &resp, nil
}

func (s *jobDescriptionService) GetJob(ctx context.Context, id string, viewer domain.Role) (*dto.JobDescriptionResponse, error) {
	job, err := findJob(ctx, s.jobs, id)
	if err != nil {
		return nil, err
	}
	if !visibleTo(job, viewer) {
		return nil, domain.NewNotFoundError("job description", id)
	}
	resp := dto.ToJobDescriptionResponse(job)
	return &resp, nil
}

func (s *jobDescriptionService) SearchJobs(ctx context.Context, filter domain.SearchFilter, viewer domain.Role) ([]dto.JobDescriptionResponse, error) {
	if !viewer.Can(domain.PermManageRecruitment) {
		if filter.Archived {
			return nil, domain.NewForbiddenError("deleted job descriptions are not visible to this role")
		}
		filter.Status = string(domain.JobStatusActive)
	}
	jobs, err := s.jobs.Search(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError("failed to search job descriptions", err)
	}
	return dto.ToJobDescriptionResponses(jobs), nil
}

func (s *jobDescriptionService) UpdateJob(ctx context.Context, id string, req dto.UpdateJobDescriptionRequest) (*dto.JobDescriptionResponse, error) {
	job, err := findJob(ctx, s.jobs, id)
	if err != nil {
		return nil, err
	}
	if job.Deleted {
		return nil, domain.NewNotFoundError("job description", id)
	}
	setTrimmed(&job.Title, req.Title)
	setTrimmed(&job.Department, req.Department)
	setTrimmed(&job.Location, req.Location)
	setTrimmed(&job.EmploymentType, req.EmploymentType)
	setTrimmed(&job.SalaryRange, req.SalaryRange)
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Status != nil {
		st, err := domain.ParseJobStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		job.Status = st
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, passThrough("failed to update job description", err)
	}
	resp := dto.ToJobDescriptionResponse(job)
	return &resp, nil
}

func (s *jobDescriptionService) DeleteJob(ctx context.Context, id string) error {
	_, err := s.toggle(ctx, id, func(j *domain.JobDescription) error { return j.SoftDelete.Delete() })
	return err
}

func (s *jobDescriptionService) RestoreJob(ctx context.Context, id string) (*dto.JobDescriptionResponse, error) {
	return s.toggle(ctx, id, func(j *domain.JobDescription) error { return j.SoftDelete.Restore() })
}

func (s *jobDescriptionService) toggle(ctx context.Context, id string, apply func(*domain.JobDescription) error) (*dto.JobDescriptionResponse, error) {
	job, err := findJob(ctx, s.jobs, id)
	if err != nil {
		return nil, err
	}
	if err := apply(job); err != nil {
		return nil, err
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, passThrough("failed to update job description", err)
	}
	logger.Get().Info("Job description deleted flag changed", zap.String("jobID", id), zap.Bool("deleted", job.Deleted))
	resp := dto.ToJobDescriptionResponse(job)
	return &resp, nil
}

// visibleTo hides deleted and non-active postings from roles that cannot manage recruitment.
func visibleTo(job *domain.JobDescription, viewer domain.Role) bool {
	if viewer.Can(domain.PermManageRecruitment) {
		return true
	}
	return !job.Deleted && job.Status == domain.JobStatusActive
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
