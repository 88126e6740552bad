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

const jobSelect = `SELECT j.id, j.title, j.department, j.location, j.employment_type, j.description, j.requirements,
	j.salary_range, j.status, j.is_deleted, j.created_by, COALESCE(u.full_name, '') AS creator_name,
	j.created_at, j.updated_at
	FROM job_descriptions j LEFT JOIN users u ON u.id = j.created_by`

type jobDescriptionRepository struct {
	db *sqlx.DB
}

func NewJobDescriptionRepository(db *sqlx.DB) domain.JobDescriptionRepository {
	return &jobDescriptionRepository{db: db}
}

func toDomainJob(m *models.JobDescription) *domain.JobDescription {
	return &domain.JobDescription{
		ID:             m.ID,
		Title:          m.Title,
		Department:     m.Department,
		Location:       m.Location,
		EmploymentType: m.EmploymentType,
		Description:    m.Description,
		Requirements:   m.Requirements,
		SalaryRange:    m.SalaryRange,
		Status:         domain.JobStatus(m.Status),
		SoftDelete:     domain.SoftDelete{Deleted: m.IsDeleted},
		CreatedBy:      m.CreatedBy,
		CreatorName:    m.CreatorName,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (r *jobDescriptionRepository) Create(ctx context.Context, j *domain.JobDescription) error {
	query := `INSERT INTO job_descriptions
		(id, title, department, location, employment_type, description, requirements, salary_range, status,
		 is_deleted, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		j.ID, j.Title, j.Department, j.Location, j.EmploymentType, j.Description, j.Requirements, j.SalaryRange,
		string(j.Status), j.Deleted, j.CreatedBy, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return wrapWriteError("create job description", err)
	}
	return nil
}

func (r *jobDescriptionRepository) GetByID(ctx context.Context, id string) (*domain.JobDescription, error) {
	var row models.JobDescription
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &row, jobSelect+` WHERE j.id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job description: %w", err)
	}
	return toDomainJob(&row), nil
}

func (r *jobDescriptionRepository) Update(ctx context.Context, j *domain.JobDescription) error {
	j.UpdatedAt = time.Now().UTC()
	query := `UPDATE job_descriptions SET title = ?, department = ?, location = ?, employment_type = ?,
		description = ?, requirements = ?, salary_range = ?, status = ?, is_deleted = ?, updated_at = ?
		WHERE id = ?`
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		j.Title, j.Department, j.Location, j.EmploymentType, j.Description, j.Requirements, j.SalaryRange,
		string(j.Status), j.Deleted, j.UpdatedAt, j.ID)
	if err != nil {
		return wrapWriteError("update job description", err)
	}
	return expectOneRow(result, "job description", j.ID)
}

func (r *jobDescriptionRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.JobDescription, error) {
	var w whereBuilder
	w.add("j.is_deleted = ?", filter.Archived)
	if filter.Text != "" {
		w.add("LOWER(j.title) LIKE ?", util.ContainsPattern(filter.Text))
	}
	if filter.Department != "" {
		w.add("LOWER(j.department) LIKE ?", util.ContainsPattern(filter.Department))
	}
	if filter.CreatorName != "" {
		w.add("LOWER(u.full_name) LIKE ?", util.ContainsPattern(filter.CreatorName))
	}
	if filter.Status != "" {
		w.add("j.status = ?", filter.Status)
	}

	var rows []models.JobDescription
	query := jobSelect + w.sql() + ` ORDER BY j.created_at ASC, j.id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to search job descriptions: %w", err)
	}
	out := make([]*domain.JobDescription, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainJob(&rows[i]))
	}
	return out, nil
}
