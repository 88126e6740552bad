package domain

import "strings"

// Status is the publication status shared by quizzes and training materials.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// ParseStatus accepts draft, active or archived.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusDraft, StatusActive, StatusArchived:
		return st, nil
	}
	return "", NewValidationError("invalid status: " + s)
}

// Lifecycle is the archive state machine: draft|active -> archived -> previous status.
type Lifecycle struct {
	Status       Status
	ArchivedFrom Status
}

func NewLifecycle(initial Status) Lifecycle {
	if initial == "" {
		initial = StatusDraft
	}
	return Lifecycle{Status: initial}
}

func (l Lifecycle) IsArchived() bool {
	return l.Status == StatusArchived
}

// Archive moves the record to archived and remembers where it came from.
func (l *Lifecycle) Archive() error {
	if l.IsArchived() {
		return NewConflictError("record is already archived")
	}
	l.ArchivedFrom = l.Status
	l.Status = StatusArchived
	return nil
}

// Restore returns an archived record to its pre-archive status.
func (l *Lifecycle) Restore() error {
	if !l.IsArchived() {
		return NewConflictError("record is not archived")
	}
	prev := l.ArchivedFrom
	if prev == "" || prev == StatusArchived {
		prev = StatusActive
	}
	l.Status = prev
	l.ArchivedFrom = ""
	return nil
}

// SetStatus changes status outside of the archive flow.
func (l *Lifecycle) SetStatus(s Status) error {
	if s == StatusArchived {
		return NewValidationError("use archive to archive a record")
	}
	if s != StatusDraft && s != StatusActive {
		return NewValidationError("invalid status: " + string(s))
	}
	if l.IsArchived() {
		return NewValidationError("archived records must be restored before changing status")
	}
	l.Status = s
	return nil
}

// SoftDelete is the deleted-flag lifecycle used by HR records and users.
type SoftDelete struct {
	Deleted bool
}

func (d *SoftDelete) Delete() error {
	if d.Deleted {
		return NewError(CodeNotFound, "record is already deleted", nil)
	}
	d.Deleted = true
	return nil
}

func (d *SoftDelete) Restore() error {
	if !d.Deleted {
		return NewConflictError("record is not deleted")
	}
	d.Deleted = false
	return nil
}
