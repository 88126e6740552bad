package models

import (
	"database/sql"
	"time"
)

// User maps the users table
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	Role         string    `db:"role"`
	IsDeleted    bool      `db:"is_deleted"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// JobDescription maps job_descriptions joined with the creator's name
type JobDescription struct {
	ID             string    `db:"id"`
	Title          string    `db:"title"`
	Department     string    `db:"department"`
	Location       string    `db:"location"`
	EmploymentType string    `db:"employment_type"`
	Description    string    `db:"description"`
	Requirements   string    `db:"requirements"`
	SalaryRange    string    `db:"salary_range"`
	Status         string    `db:"status"`
	IsDeleted      bool      `db:"is_deleted"`
	CreatedBy      string    `db:"created_by"`
	CreatorName    string    `db:"creator_name"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Candidate maps the candidates table
type Candidate struct {
	ID         string         `db:"id"`
	JobID      sql.NullString `db:"job_id"`
	FullName   string         `db:"full_name"`
	Email      string         `db:"email"`
	Phone      string         `db:"phone"`
	ResumePath string         `db:"resume_path"`
	Status     string         `db:"status"`
	Notes      string         `db:"notes"`
	IsDeleted  bool           `db:"is_deleted"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

// Employee maps the employees table
type Employee struct {
	ID         string         `db:"id"`
	UserID     sql.NullString `db:"user_id"`
	FullName   string         `db:"full_name"`
	Email      string         `db:"email"`
	Department string         `db:"department"`
	Position   string         `db:"position"`
	HireDate   sql.NullTime   `db:"hire_date"`
	IsDeleted  bool           `db:"is_deleted"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}
