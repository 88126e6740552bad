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

const employeeColumns = `id, user_id, full_name, email, department, position, hire_date, is_deleted, created_at, updated_at`

type employeeRepository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(db *sqlx.DB) domain.EmployeeRepository {
	return &employeeRepository{db: db}
}

func toDomainEmployee(m *models.Employee) *domain.Employee {
	e := &domain.Employee{
		ID:         m.ID,
		UserID:     m.UserID.String,
		FullName:   m.FullName,
		Email:      m.Email,
		Department: m.Department,
		Position:   m.Position,
		SoftDelete: domain.SoftDelete{Deleted: m.IsDeleted},
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.HireDate.Valid {
		e.HireDate = m.HireDate.Time
	}
	return e
}

func fromDomainEmployee(e *domain.Employee) models.Employee {
	return models.Employee{
		ID:         e.ID,
		UserID:     util.StringToNullString(e.UserID),
		FullName:   e.FullName,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		HireDate:   util.TimeToNullTime(e.HireDate),
		IsDeleted:  e.Deleted,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (` + employeeColumns + `)
		VALUES (:id, :user_id, :full_name, :email, :department, :position, :hire_date, :is_deleted, :created_at, :updated_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainEmployee(e)); err != nil {
		return wrapWriteError("create employee", err)
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	var row models.Employee
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return toDomainEmployee(&row), nil
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	e.UpdatedAt = time.Now().UTC()
	query := `UPDATE employees SET user_id = :user_id, full_name = :full_name, email = :email,
		department = :department, position = :position, hire_date = :hire_date, is_deleted = :is_deleted,
		updated_at = :updated_at WHERE id = :id`
	result, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainEmployee(e))
	if err != nil {
		return wrapWriteError("update employee", err)
	}
	return expectOneRow(result, "employee", e.ID)
}

func (r *employeeRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Employee, error) {
	var w whereBuilder
	w.add("is_deleted = ?", filter.Archived)
	if filter.Text != "" {
		pattern := util.ContainsPattern(filter.Text)
		w.add("(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern)
	}
	if filter.Department != "" {
		w.add("LOWER(department) LIKE ?", util.ContainsPattern(filter.Department))
	}

	var rows []models.Employee
	query := `SELECT ` + employeeColumns + ` FROM employees` + w.sql() + ` ORDER BY created_at ASC, id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	out := make([]*domain.Employee, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainEmployee(&rows[i]))
	}
	return out, nil
}
