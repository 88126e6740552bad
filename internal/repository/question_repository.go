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

const questionColumns = `qq.id, qq.question_text, qq.question_type, qq.options, qq.correct_answer, qq.points,
	qq.created_by, qq.created_at, qq.updated_at`

type questionRepository struct {
	db *sqlx.DB
}

// NewQuestionRepository creates a MySQL-backed question bank repository
func NewQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &questionRepository{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	options := []string(m.Options)
	if options == nil {
		options = []string{}
	}
	return &domain.Question{
		ID:            m.ID,
		Text:          m.QuestionText,
		Type:          domain.QuestionType(m.QuestionType),
		Options:       options,
		CorrectAnswer: m.CorrectAnswer,
		Points:        m.Points,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *questionRepository) Create(ctx context.Context, q *domain.Question) error {
	query := `INSERT INTO quiz_questions
		(id, question_text, question_type, options, correct_answer, points, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		q.ID, q.Text, string(q.Type), models.StringSlice(q.Options), q.CorrectAnswer, q.Points,
		q.CreatedBy, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return wrapWriteError("create question", err)
	}
	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	var row models.Question
	query := `SELECT ` + questionColumns + ` FROM quiz_questions qq WHERE qq.id = ?`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return toDomainQuestion(&row), nil
}

func (r *questionRepository) Update(ctx context.Context, q *domain.Question) error {
	q.UpdatedAt = time.Now().UTC()
	query := `UPDATE quiz_questions SET question_text = ?, question_type = ?, options = ?, correct_answer = ?,
		points = ?, updated_at = ? WHERE id = ?`
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		q.Text, string(q.Type), models.StringSlice(q.Options), q.CorrectAnswer, q.Points, q.UpdatedAt, q.ID)
	if err != nil {
		return wrapWriteError("update question", err)
	}
	return expectOneRow(result, "question", q.ID)
}

func (r *questionRepository) Delete(ctx context.Context, id string) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM quiz_questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return expectOneRow(result, "question", id)
}

func (r *questionRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Question, error) {
	var w whereBuilder
	if filter.Text != "" {
		w.add("LOWER(qq.question_text) LIKE ?", util.ContainsPattern(filter.Text))
	}
	if filter.Type != "" {
		w.add("qq.question_type = ?", filter.Type)
	}

	query := `SELECT ` + questionColumns + ` FROM quiz_questions qq` + w.sql() + ` ORDER BY qq.created_at ASC, qq.id ASC`
	var rows []models.Question
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	out := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainQuestion(&rows[i]))
	}
	return out, nil
}

func (r *questionRepository) FindIDsByTags(ctx context.Context, tagIDs []string) ([]string, error) {
	if len(tagIDs) == 0 {
		return []string{}, nil
	}
	query, args, err := sqlx.In(`SELECT DISTINCT l.question_id FROM quiz_question_links l
		WHERE l.quiz_id IN (
			SELECT qt.quiz_id FROM quiz_tags qt WHERE qt.tag_id IN (?)
			UNION
			SELECT qm.quiz_id FROM quiz_materials qm
			JOIN material_tags mt ON mt.material_id = qm.material_id
			WHERE mt.tag_id IN (?)
		)
		ORDER BY l.question_id ASC`, tagIDs, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build tag match query: %w", err)
	}

	var ids []string
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find questions by tags: %w", err)
	}
	return ids, nil
}
