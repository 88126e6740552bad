package repository

import (
	"context"
	"fmt"

	"techcom/internal/domain"
	"techcom/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

type quizQuestionRepository struct {
	db *sqlx.DB
}

// NewQuizQuestionRepository creates a repository for ordered quiz membership
func NewQuizQuestionRepository(db *sqlx.DB) domain.QuizQuestionRepository {
	return &quizQuestionRepository{db: db}
}

func (r *quizQuestionRepository) ListLinks(ctx context.Context, quizID string) ([]domain.QuizQuestionLink, error) {
	var rows []models.QuizQuestionLink
	query := `SELECT quiz_id, question_id, order_index, created_at FROM quiz_question_links
		WHERE quiz_id = ? ORDER BY order_index ASC, question_id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to list quiz question links: %w", err)
	}
	out := make([]domain.QuizQuestionLink, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.QuizQuestionLink{
			QuizID:     row.QuizID,
			QuestionID: row.QuestionID,
			OrderIndex: row.OrderIndex,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}

func (r *quizQuestionRepository) ListQuestions(ctx context.Context, quizID string) ([]*domain.QuizQuestion, error) {
	var rows []models.QuizQuestion
	query := `SELECT ` + questionColumns + `, l.order_index
		FROM quiz_question_links l JOIN quiz_questions qq ON qq.id = l.question_id
		WHERE l.quiz_id = ? ORDER BY l.order_index ASC, qq.id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to list quiz questions: %w", err)
	}
	out := make([]*domain.QuizQuestion, 0, len(rows))
	for i := range rows {
		out = append(out, &domain.QuizQuestion{
			Question:   *toDomainQuestion(&rows[i].Question),
			OrderIndex: rows[i].OrderIndex,
		})
	}
	return out, nil
}

func (r *quizQuestionRepository) AddLinks(ctx context.Context, links []domain.QuizQuestionLink) error {
	exec := GetExecutor(ctx, r.db)
	query := `INSERT INTO quiz_question_links (quiz_id, question_id, order_index, created_at)
		VALUES (:quiz_id, :question_id, :order_index, :created_at)`
	for _, l := range links {
		row := models.QuizQuestionLink{
			QuizID:     l.QuizID,
			QuestionID: l.QuestionID,
			OrderIndex: l.OrderIndex,
			CreatedAt:  l.CreatedAt,
		}
		if _, err := exec.NamedExecContext(ctx, query, row); err != nil {
			return wrapWriteError("link question to quiz", err)
		}
	}
	return nil
}

func (r *quizQuestionRepository) RemoveLink(ctx context.Context, quizID, questionID string) (bool, error) {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`DELETE FROM quiz_question_links WHERE quiz_id = ? AND question_id = ?`, quizID, questionID)
	if err != nil {
		return false, fmt.Errorf("failed to unlink question: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return rows > 0, nil
}

func (r *quizQuestionRepository) UpdateOrder(ctx context.Context, quizID, questionID string, orderIndex int) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE quiz_question_links SET order_index = ? WHERE quiz_id = ? AND question_id = ?`,
		orderIndex, quizID, questionID)
	if err != nil {
		return fmt.Errorf("failed to reorder question: %w", err)
	}
	return expectOneRow(result, "quiz question link", quizID+"/"+questionID)
}

func (r *quizQuestionRepository) ListQuizIDsByQuestion(ctx context.Context, questionID string) ([]string, error) {
	var ids []string
	query := `SELECT quiz_id FROM quiz_question_links WHERE question_id = ? ORDER BY quiz_id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &ids, query, questionID); err != nil {
		return nil, fmt.Errorf("failed to list quizzes for question: %w", err)
	}
	return ids, nil
}

func (r *quizQuestionRepository) DeleteByQuestion(ctx context.Context, questionID string) error {
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`DELETE FROM quiz_question_links WHERE question_id = ?`, questionID); err != nil {
		return fmt.Errorf("failed to unlink question from quizzes: %w", err)
	}
	return nil
}
