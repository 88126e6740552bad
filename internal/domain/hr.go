package domain

import (
	"net/mail"
	"strings"
	"time"
)

type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusPaused JobStatus = "paused"
	JobStatusClosed JobStatus = "closed"
)

func ParseJobStatus(s string) (JobStatus, error) {
	js := JobStatus(strings.ToLower(strings.TrimSpace(s)))
	switch js {
	case JobStatusDraft, JobStatusActive, JobStatusPaused, JobStatusClosed:
		return js, nil
	}
	return "", NewValidationError("invalid job status: " + s)
}

type JobDescription struct {
	ID             string
	Title          string
	Department     string
	Location       string
	EmploymentType string
	Description    string
	Requirements   string
	SalaryRange    string
	Status         JobStatus
	SoftDelete
	CreatedBy   string
	CreatorName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (j *JobDescription) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return NewValidationError("title is required")
	}
	if strings.TrimSpace(j.Department) == "" {
		return NewValidationError("department is required")
	}
	if _, err := ParseJobStatus(string(j.Status)); err != nil {
		return err
	}
	return nil
}

// CandidateStatus is the recruitment pipeline stage. It is independent of deletion.
type CandidateStatus string

const (
	CandidateNew       CandidateStatus = "new"
	CandidateScreening CandidateStatus = "screening"
	CandidateInterview CandidateStatus = "interview"
	CandidateOffered   CandidateStatus = "offered"
	CandidateHired     CandidateStatus = "hired"
	CandidateRejected  CandidateStatus = "rejected"
)

func ParseCandidateStatus(s string) (CandidateStatus, error) {
	cs := CandidateStatus(strings.ToLower(strings.TrimSpace(s)))
	switch cs {
	case CandidateNew, CandidateScreening, CandidateInterview, CandidateOffered, CandidateHired, CandidateRejected:
		return cs, nil
	}
	return "", NewValidationError("invalid candidate status: " + s)
}

type Candidate struct {
	ID         string
	JobID      string
	FullName   string
	Email      string
	Phone      string
	ResumePath string
	Status     CandidateStatus
	Notes      string
	SoftDelete
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Candidate) Validate() error {
	if strings.TrimSpace(c.FullName) == "" {
		return NewValidationError("full_name is required")
	}
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	if _, err := ParseCandidateStatus(string(c.Status)); err != nil {
		return err
	}
	return nil
}

type Employee struct {
	ID         string
	UserID     string
	FullName   string
	Email      string
	Department string
	Position   string
	HireDate   time.Time
	SoftDelete
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Employee) Validate() error {
	if strings.TrimSpace(e.FullName) == "" {
		return NewValidationError("full_name is required")
	}
	return validateEmail(e.Email)
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return NewValidationError("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return NewValidationError("invalid email: " + email)
	}
	return nil
}
