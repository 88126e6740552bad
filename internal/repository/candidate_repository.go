package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"techcom/internal/domain"
	"techcom/internal/repository/models"
	"techcom/internal/util"

	"github.com/jmoiron/sqlx"
)

const candidateColumns = `id, job_id, full_name, email, phone, resume_path, status, notes, is_deleted, created_at, updated_at`

type candidateRepository struct {
	db *sqlx.DB
}

func NewCandidateRepository(db *sqlx.DB) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func toDomainCandidate(m *models.Candidate) *domain.Candidate {
	return &domain.Candidate{
		ID:         m.ID,
		JobID:      m.JobID.String,
		FullName:   m.FullName,
		Email:      m.Email,
		Phone:      m.Phone,
		ResumePath: m.ResumePath,
		Status:     domain.CandidateStatus(m.Status),
		Notes:      m.Notes,
		SoftDelete: domain.SoftDelete{Deleted: m.IsDeleted},
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func fromDomainCandidate(c *domain.Candidate) models.Candidate {
	return models.Candidate{
		ID:         c.ID,
		JobID:      util.StringToNullString(c.JobID),
		FullName:   c.FullName,
		Email:      c.Email,
		Phone:      c.Phone,
		ResumePath: c.ResumePath,
		Status:     string(c.Status),
		Notes:      c.Notes,
		IsDeleted:  c.Deleted,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	query := `INSERT INTO candidates (` + candidateColumns + `)
		VALUES (:id, :job_id, :full_name, :email, :phone, :resume_path, :status, :notes, :is_deleted, :created_at, :updated_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainCandidate(c)); err != nil {
		return wrapWriteError("create candidate", err)
	}
	return nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	var row models.Candidate
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = ?`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return toDomainCandidate(&row), nil
}

func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate) error {
	c.UpdatedAt = time.Now().UTC()
	query := `UPDATE candidates SET job_id = :job_id, full_name = :full_name, email = :email, phone = :phone,
		resume_path = :resume_path, status = :status, notes = :notes, is_deleted = :is_deleted, updated_at = :updated_at
		WHERE id = :id`
	result, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainCandidate(c))
	if err != nil {
		return wrapWriteError("update candidate", err)
	}
	return expectOneRow(result, "candidate", c.ID)
}

func (r *candidateRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Candidate, error) {
	var w whereBuilder
	w.add("is_deleted = ?", filter.Archived)
	if filter.Text != "" {
		pattern := util.ContainsPattern(filter.Text)
		w.add("(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern)
	}
	if filter.Status != "" {
		w.add("status = ?", filter.Status)
	}
	if filter.JobID != "" {
		w.add("job_id = ?", filter.JobID)
	}

	var rows []models.Candidate
	query := `SELECT ` + candidateColumns + ` FROM candidates` + w.sql() + ` ORDER BY created_at ASC, id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}
	out := make([]*domain.Candidate, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainCandidate(&rows[i]))
	}
	return out, nil
}
