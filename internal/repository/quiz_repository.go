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

const quizSelect = `SELECT q.id, q.title, q.description, q.duration_minutes, q.passing_score_percent, q.status,
	q.archived_from_status, q.created_by, COALESCE(u.full_name, '') AS creator_name, q.creation_date, q.updated_at
	FROM quizzes q LEFT JOIN users u ON u.id = q.created_by`

const quizOrder = ` ORDER BY q.creation_date ASC, q.id ASC`

type quizRepository struct {
	db *sqlx.DB
}

// NewQuizRepository creates a MySQL-backed quiz repository
func NewQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &quizRepository{db: db}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:                  m.ID,
		Title:               m.Title,
		Description:         m.Description,
		DurationMinutes:     m.DurationMinutes,
		PassingScorePercent: m.PassingScorePercent,
		Lifecycle: domain.Lifecycle{
			Status:       domain.Status(m.Status),
			ArchivedFrom: domain.Status(m.ArchivedFromStatus.String),
		},
		CreatedBy:    m.CreatedBy,
		CreatorName:  m.CreatorName,
		CreationDate: m.CreationDate,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toDomainQuizzes(rows []models.Quiz) []*domain.Quiz {
	out := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainQuiz(&rows[i]))
	}
	return out
}

func (r *quizRepository) Create(ctx context.Context, q *domain.Quiz) error {
	query := `INSERT INTO quizzes
		(id, title, description, duration_minutes, passing_score_percent, status, archived_from_status, created_by, creation_date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		q.ID, q.Title, q.Description, q.DurationMinutes, q.PassingScorePercent, string(q.Status),
		util.StringToNullString(string(q.ArchivedFrom)), q.CreatedBy, q.CreationDate, q.UpdatedAt)
	if err != nil {
		return wrapWriteError("create quiz", err)
	}
	return nil
}

func (r *quizRepository) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var row models.Quiz
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &row, quizSelect+` WHERE q.id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return toDomainQuiz(&row), nil
}

func (r *quizRepository) Update(ctx context.Context, q *domain.Quiz) error {
	q.UpdatedAt = time.Now().UTC()
	query := `UPDATE quizzes SET title = ?, description = ?, duration_minutes = ?, passing_score_percent = ?,
		status = ?, archived_from_status = ?, updated_at = ? WHERE id = ?`
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		q.Title, q.Description, q.DurationMinutes, q.PassingScorePercent, string(q.Status),
		util.StringToNullString(string(q.ArchivedFrom)), q.UpdatedAt, q.ID)
	if err != nil {
		return wrapWriteError("update quiz", err)
	}
	return expectOneRow(result, "quiz", q.ID)
}

func (r *quizRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Quiz, error) {
	var w whereBuilder
	if filter.Archived {
		w.add("q.status = ?", string(domain.StatusArchived))
	} else {
		w.add("q.status <> ?", string(domain.StatusArchived))
	}
	if filter.Text != "" {
		w.add("LOWER(q.title) LIKE ?", util.ContainsPattern(filter.Text))
	}
	if filter.CreatorName != "" {
		w.add("LOWER(u.full_name) LIKE ?", util.ContainsPattern(filter.CreatorName))
	}
	if filter.Status != "" {
		w.add("q.status = ?", filter.Status)
	}

	var rows []models.Quiz
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, quizSelect+w.sql()+quizOrder, w.args...); err != nil {
		return nil, fmt.Errorf("failed to search quizzes: %w", err)
	}
	return toDomainQuizzes(rows), nil
}

func (r *quizRepository) ListByTag(ctx context.Context, tagID string) ([]*domain.Quiz, error) {
	query := quizSelect + ` JOIN quiz_tags qt ON qt.quiz_id = q.id
		WHERE qt.tag_id = ? AND q.status <> ?` + quizOrder
	var rows []models.Quiz
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, tagID, string(domain.StatusArchived)); err != nil {
		return nil, fmt.Errorf("failed to list quizzes by tag: %w", err)
	}
	return toDomainQuizzes(rows), nil
}

// ListByMaterial returns every quiz attached to the material, archived ones included.
func (r *quizRepository) ListByMaterial(ctx context.Context, materialID string) ([]*domain.Quiz, error) {
	query := quizSelect + ` JOIN quiz_materials qm ON qm.quiz_id = q.id WHERE qm.material_id = ?` + quizOrder
	var rows []models.Quiz
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, materialID); err != nil {
		return nil, fmt.Errorf("failed to list quizzes by material: %w", err)
	}
	return toDomainQuizzes(rows), nil
}
