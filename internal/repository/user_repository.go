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

const userColumns = `id, email, password_hash, full_name, role, is_deleted, created_at, updated_at`

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         domain.Role(m.Role),
		SoftDelete:   domain.SoftDelete{Deleted: m.IsDeleted},
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Role:         string(u.Role),
		IsDeleted:    u.Deleted,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Create inserts a new user. A taken email yields domain.ErrDuplicate.
func (r *sqlxUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `)
		VALUES (:id, :email, :password_hash, :full_name, :role, :is_deleted, :created_at, :updated_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainUser(user)); err != nil {
		return wrapWriteError("create user", err)
	}
	return nil
}

// GetByID retrieves a user by their internal ID, deactivated users included.
func (r *sqlxUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *sqlxUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, domain.NormalizeEmail(email))
}

func (r *sqlxUserRepository) getOne(ctx context.Context, query, arg string) (*domain.User, error) {
	var row models.User
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(&row), nil
}

func (r *sqlxUserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	query := `UPDATE users SET email = :email, password_hash = :password_hash, full_name = :full_name,
		role = :role, is_deleted = :is_deleted, updated_at = :updated_at
		WHERE id = :id`
	result, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainUser(user))
	if err != nil {
		return wrapWriteError("update user", err)
	}
	return expectOneRow(result, "user", user.ID)
}

func (r *sqlxUserRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.User, error) {
	var w whereBuilder
	w.add("is_deleted = ?", filter.Archived)
	if filter.Text != "" {
		pattern := util.ContainsPattern(filter.Text)
		w.add("(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern)
	}
	if filter.Role != "" {
		w.add("role = ?", filter.Role)
	}

	var rows []models.User
	query := `SELECT ` + userColumns + ` FROM users` + w.sql() + ` ORDER BY created_at ASC, id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	out := make([]*domain.User, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainUser(&rows[i]))
	}
	return out, nil
}
