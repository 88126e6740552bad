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

const materialSelect = `SELECT m.id, m.title, m.description, m.type, m.content_path, m.status, m.archived_from_status,
	m.created_by, COALESCE(u.full_name, '') AS creator_name, m.created_at, m.updated_at
	FROM training_materials m LEFT JOIN users u ON u.id = m.created_by`

const materialOrder = ` ORDER BY m.created_at ASC, m.id ASC`

type materialRepository struct {
	db *sqlx.DB
}

// NewMaterialRepository creates a MySQL-backed training material repository
func NewMaterialRepository(db *sqlx.DB) domain.MaterialRepository {
	return &materialRepository{db: db}
}

func toDomainMaterial(m *models.TrainingMaterial) *domain.TrainingMaterial {
	if m == nil {
		return nil
	}
	return &domain.TrainingMaterial{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Type:         domain.MaterialType(m.Type),
		ContentPaths: domain.SplitContentPaths(m.ContentPath),
		Lifecycle: domain.Lifecycle{
			Status:       domain.Status(m.Status),
			ArchivedFrom: domain.Status(m.ArchivedFromStatus.String),
		},
		CreatedBy:   m.CreatedBy,
		CreatorName: m.CreatorName,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toDomainMaterials(rows []models.TrainingMaterial) []*domain.TrainingMaterial {
	out := make([]*domain.TrainingMaterial, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainMaterial(&rows[i]))
	}
	return out
}

func (r *materialRepository) Create(ctx context.Context, m *domain.TrainingMaterial) error {
	query := `INSERT INTO training_materials
		(id, title, description, type, content_path, status, archived_from_status, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.ID, m.Title, m.Description, string(m.Type), domain.JoinContentPaths(m.ContentPaths),
		string(m.Status), util.StringToNullString(string(m.ArchivedFrom)), m.CreatedBy, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return wrapWriteError("create training material", err)
	}
	return nil
}

func (r *materialRepository) GetByID(ctx context.Context, id string) (*domain.TrainingMaterial, error) {
	var row models.TrainingMaterial
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &row, materialSelect+` WHERE m.id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get training material: %w", err)
	}
	return toDomainMaterial(&row), nil
}

func (r *materialRepository) Update(ctx context.Context, m *domain.TrainingMaterial) error {
	m.UpdatedAt = time.Now().UTC()
	query := `UPDATE training_materials SET title = ?, description = ?, type = ?, content_path = ?,
		status = ?, archived_from_status = ?, updated_at = ? WHERE id = ?`
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.Title, m.Description, string(m.Type), domain.JoinContentPaths(m.ContentPaths),
		string(m.Status), util.StringToNullString(string(m.ArchivedFrom)), m.UpdatedAt, m.ID)
	if err != nil {
		return wrapWriteError("update training material", err)
	}
	return expectOneRow(result, "training material", m.ID)
}

func (r *materialRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.TrainingMaterial, error) {
	var w whereBuilder
	if filter.Archived {
		w.add("m.status = ?", string(domain.StatusArchived))
	} else {
		w.add("m.status <> ?", string(domain.StatusArchived))
	}
	if filter.Text != "" {
		w.add("LOWER(m.title) LIKE ?", util.ContainsPattern(filter.Text))
	}
	if filter.CreatorName != "" {
		w.add("LOWER(u.full_name) LIKE ?", util.ContainsPattern(filter.CreatorName))
	}
	if filter.Status != "" {
		w.add("m.status = ?", filter.Status)
	}
	if filter.Type != "" {
		w.add("m.type = ?", filter.Type)
	}

	var rows []models.TrainingMaterial
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, materialSelect+w.sql()+materialOrder, w.args...); err != nil {
		return nil, fmt.Errorf("failed to search training materials: %w", err)
	}
	return toDomainMaterials(rows), nil
}

func (r *materialRepository) ListByTag(ctx context.Context, tagID string) ([]*domain.TrainingMaterial, error) {
	query := materialSelect + ` JOIN material_tags mt ON mt.material_id = m.id
		WHERE mt.tag_id = ? AND m.status <> ?` + materialOrder
	var rows []models.TrainingMaterial
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, tagID, string(domain.StatusArchived)); err != nil {
		return nil, fmt.Errorf("failed to list training materials by tag: %w", err)
	}
	return toDomainMaterials(rows), nil
}

func (r *materialRepository) AttachQuiz(ctx context.Context, materialID, quizID string) error {
	query := `INSERT INTO quiz_materials (quiz_id, material_id, created_at) VALUES (?, ?, ?)`
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, quizID, materialID, time.Now().UTC()); err != nil {
		return wrapWriteError("attach quiz", err)
	}
	return nil
}

func (r *materialRepository) DetachQuiz(ctx context.Context, materialID, quizID string) (bool, error) {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`DELETE FROM quiz_materials WHERE material_id = ? AND quiz_id = ?`, materialID, quizID)
	if err != nil {
		return false, fmt.Errorf("failed to detach quiz: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return rows > 0, nil
}

func (r *materialRepository) ListAttachedQuizIDs(ctx context.Context, materialID string) ([]string, error) {
	var ids []string
	query := `SELECT quiz_id FROM quiz_materials WHERE material_id = ? ORDER BY quiz_id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &ids, query, materialID); err != nil {
		return nil, fmt.Errorf("failed to list attached quizzes: %w", err)
	}
	return ids, nil
}
