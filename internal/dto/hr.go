package dto

import (
	"time"

	"techcom/internal/domain"
)

const DateLayout = "2006-01-02"

// JobDescriptionRequest represents the request body for creating a job description
// @Description Request body for a job description
type JobDescriptionRequest struct {
	Title          string `json:"title" validate:"required,max=255"`
	Department     string `json:"department" validate:"required,max=255"`
	Location       string `json:"location" validate:"max=255"`
	EmploymentType string `json:"employment_type" validate:"max=50"`
	Description    string `json:"description"`
	Requirements   string `json:"requirements"`
	SalaryRange    string `json:"salary_range" validate:"max=100"`
	Status         string `json:"status" validate:"omitempty,oneof=draft active paused closed"`
}

// UpdateJobDescriptionRequest changes only the fields that are set
type UpdateJobDescriptionRequest struct {
	Title          *string `json:"title" validate:"omitempty,min=1,max=255"`
	Department     *string `json:"department" validate:"omitempty,min=1,max=255"`
	Location       *string `json:"location" validate:"omitempty,max=255"`
	EmploymentType *string `json:"employment_type" validate:"omitempty,max=50"`
	Description    *string `json:"description"`
	Requirements   *string `json:"requirements"`
	SalaryRange    *string `json:"salary_range" validate:"omitempty,max=100"`
	Status         *string `json:"status" validate:"omitempty,oneof=draft active paused closed"`
}

type JobDescriptionResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Department     string    `json:"department"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	Description    string    `json:"description"`
	Requirements   string    `json:"requirements"`
	SalaryRange    string    `json:"salary_range"`
	Status         string    `json:"status"`
	IsDeleted      bool      `json:"is_deleted"`
	CreatedBy      string    `json:"created_by"`
	CreatorName    string    `json:"creator_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CandidateRequest represents the request body for creating a candidate
type CandidateRequest struct {
	JobID      string `json:"job_id" validate:"omitempty,ulid"`
	FullName   string `json:"full_name" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone" validate:"max=50"`
	ResumePath string `json:"resume_path" validate:"max=500"`
	Status     string `json:"status" validate:"omitempty,oneof=new screening interview offered hired rejected"`
	Notes      string `json:"notes"`
}

// UpdateCandidateRequest changes only the fields that are set
type UpdateCandidateRequest struct {
	JobID      *string `json:"job_id" validate:"omitempty"`
	FullName   *string `json:"full_name" validate:"omitempty,min=1,max=255"`
	Email      *string `json:"email" validate:"omitempty,email,max=255"`
	Phone      *string `json:"phone" validate:"omitempty,max=50"`
	ResumePath *string `json:"resume_path" validate:"omitempty,max=500"`
	Status     *string `json:"status" validate:"omitempty,oneof=new screening interview offered hired rejected"`
	Notes      *string `json:"notes"`
}

type CandidateResponse struct {
	ID         string    `json:"id"`
	JobID      string    `json:"job_id,omitempty"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	ResumePath string    `json:"resume_path"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	IsDeleted  bool      `json:"is_deleted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EmployeeRequest represents the request body for creating an employee
type EmployeeRequest struct {
	UserID     string `json:"user_id" validate:"omitempty,ulid"`
	FullName   string `json:"full_name" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Department string `json:"department" validate:"max=255"`
	Position   string `json:"position" validate:"max=255"`
	HireDate   string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateEmployeeRequest changes only the fields that are set
type UpdateEmployeeRequest struct {
	UserID     *string `json:"user_id"`
	FullName   *string `json:"full_name" validate:"omitempty,min=1,max=255"`
	Email      *string `json:"email" validate:"omitempty,email,max=255"`
	Department *string `json:"department" validate:"omitempty,max=255"`
	Position   *string `json:"position" validate:"omitempty,max=255"`
	HireDate   *string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
}

type EmployeeResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	HireDate   string    `json:"hire_date,omitempty"`
	IsDeleted  bool      `json:"is_deleted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToJobDescriptionResponse(j *domain.JobDescription) JobDescriptionResponse {
	return JobDescriptionResponse{
		ID:             j.ID,
		Title:          j.Title,
		Department:     j.Department,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		Description:    j.Description,
		Requirements:   j.Requirements,
		SalaryRange:    j.SalaryRange,
		Status:         string(j.Status),
		IsDeleted:      j.Deleted,
		CreatedBy:      j.CreatedBy,
		CreatorName:    j.CreatorName,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

func ToJobDescriptionResponses(jobs []*domain.JobDescription) []JobDescriptionResponse {
	out := make([]JobDescriptionResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, ToJobDescriptionResponse(j))
	}
	return out
}

func ToCandidateResponse(c *domain.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:         c.ID,
		JobID:      c.JobID,
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

func ToCandidateResponses(candidates []*domain.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, ToCandidateResponse(c))
	}
	return out
}

func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		FullName:   e.FullName,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		IsDeleted:  e.Deleted,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if !e.HireDate.IsZero() {
		resp.HireDate = e.HireDate.Format(DateLayout)
	}
	return resp
}

func ToEmployeeResponses(employees []*domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, ToEmployeeResponse(e))
	}
	return out
}
