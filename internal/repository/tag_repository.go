package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"techcom/internal/domain"
	"techcom/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// tag link tables, keyed by the owning entity
type tagLinkTable struct {
	table    string
	ownerCol string
}

var (
	materialTagLinks = tagLinkTable{table: "material_tags", ownerCol: "material_id"}
	quizTagLinks     = tagLinkTable{table: "quiz_tags", ownerCol: "quiz_id"}
)

type tagRepository struct {
	db *sqlx.DB
}

// NewTagRepository creates a MySQL-backed tag repository
func NewTagRepository(db *sqlx.DB) domain.TagRepository {
	return &tagRepository{db: db}
}

func toDomainTag(m *models.Tag) *domain.Tag {
	if m == nil {
		return nil
	}
	return &domain.Tag{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
}

func toDomainTags(rows []models.Tag) []*domain.Tag {
	out := make([]*domain.Tag, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainTag(&rows[i]))
	}
	return out
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	query := `INSERT INTO tags (id, name, created_at) VALUES (?, ?, ?)`
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, tag.ID, tag.Name, tag.CreatedAt); err != nil {
		return wrapWriteError("create tag", err)
	}
	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	return r.getOne(ctx, `SELECT id, name, created_at FROM tags WHERE id = ?`, id)
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	return r.getOne(ctx, `SELECT id, name, created_at FROM tags WHERE LOWER(name) = LOWER(?)`, name)
}

func (r *tagRepository) getOne(ctx context.Context, query string, arg string) (*domain.Tag, error) {
	var row models.Tag
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return toDomainTag(&row), nil
}

func (r *tagRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return []*domain.Tag{}, nil
	}
	query, args, err := sqlx.In(`SELECT id, name, created_at FROM tags WHERE id IN (?) ORDER BY name ASC, id ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build tag lookup: %w", err)
	}
	var rows []models.Tag
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get tags by ids: %w", err)
	}
	return toDomainTags(rows), nil
}

func (r *tagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	var rows []models.Tag
	query := `SELECT id, name, created_at FROM tags ORDER BY name ASC, id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return toDomainTags(rows), nil
}

func (r *tagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `UPDATE tags SET name = ? WHERE id = ?`, tag.Name, tag.ID)
	if err != nil {
		return wrapWriteError("update tag", err)
	}
	return expectOneRow(result, "tag", tag.ID)
}

// Delete removes the tag and every link to it.
func (r *tagRepository) Delete(ctx context.Context, id string) error {
	exec := GetExecutor(ctx, r.db)
	for _, links := range []tagLinkTable{materialTagLinks, quizTagLinks} {
		if _, err := exec.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE tag_id = ?`, links.table), id); err != nil {
			return fmt.Errorf("failed to unlink tag from %s: %w", links.table, err)
		}
	}
	result, err := exec.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return expectOneRow(result, "tag", id)
}

func (r *tagRepository) ListByMaterials(ctx context.Context, materialIDs []string) (map[string][]*domain.Tag, error) {
	return r.listByOwners(ctx, materialTagLinks, materialIDs)
}

func (r *tagRepository) ReplaceMaterialTags(ctx context.Context, materialID string, tagIDs []string) error {
	return r.replaceLinks(ctx, materialTagLinks, materialID, tagIDs)
}

func (r *tagRepository) RemoveMaterialTags(ctx context.Context, materialID string, tagIDs []string) error {
	return r.removeLinks(ctx, materialTagLinks, materialID, tagIDs)
}

func (r *tagRepository) ListByQuizzes(ctx context.Context, quizIDs []string) (map[string][]*domain.Tag, error) {
	return r.listByOwners(ctx, quizTagLinks, quizIDs)
}

func (r *tagRepository) ReplaceQuizTags(ctx context.Context, quizID string, tagIDs []string) error {
	return r.replaceLinks(ctx, quizTagLinks, quizID, tagIDs)
}

func (r *tagRepository) RemoveQuizTags(ctx context.Context, quizID string, tagIDs []string) error {
	return r.removeLinks(ctx, quizTagLinks, quizID, tagIDs)
}

func (r *tagRepository) listByOwners(ctx context.Context, links tagLinkTable, ownerIDs []string) (map[string][]*domain.Tag, error) {
	out := make(map[string][]*domain.Tag, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(
		`SELECT l.%[2]s AS owner_id, t.id, t.name, t.created_at
		FROM %[1]s l JOIN tags t ON t.id = l.tag_id
		WHERE l.%[2]s IN (?)
		ORDER BY t.name ASC, t.id ASC`, links.table, links.ownerCol), ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s lookup: %w", links.table, err)
	}

	var rows []models.OwnedTag
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", links.table, err)
	}
	for i := range rows {
		out[rows[i].OwnerID] = append(out[rows[i].OwnerID], toDomainTag(&rows[i].Tag))
	}
	return out, nil
}

// replaceLinks swaps the owner's full tag set. Callers wrap it in a transaction.
func (r *tagRepository) replaceLinks(ctx context.Context, links tagLinkTable, ownerID string, tagIDs []string) error {
	exec := GetExecutor(ctx, r.db)
	if _, err := exec.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, links.table, links.ownerCol), ownerID); err != nil {
		return fmt.Errorf("failed to clear %s: %w", links.table, err)
	}

	now := time.Now().UTC()
	insert := fmt.Sprintf(`INSERT INTO %s (%s, tag_id, created_at) VALUES (?, ?, ?)`, links.table, links.ownerCol)
	for _, tagID := range tagIDs {
		if _, err := exec.ExecContext(ctx, insert, ownerID, tagID, now); err != nil {
			return wrapWriteError("insert into "+links.table, err)
		}
	}
	return nil
}

func (r *tagRepository) removeLinks(ctx context.Context, links tagLinkTable, ownerID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(fmt.Sprintf(`DELETE FROM %s WHERE %s = ? AND tag_id IN (?)`, links.table, links.ownerCol), ownerID, tagIDs)
	if err != nil {
		return fmt.Errorf("failed to build %s delete: %w", links.table, err)
	}
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to remove from %s: %w", links.table, err)
	}
	return nil
}
