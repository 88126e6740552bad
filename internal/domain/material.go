package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// MaterialType classifies a training material by the files it carries.
type MaterialType string

const (
	MaterialTypeVideo    MaterialType = "video"
	MaterialTypeDocument MaterialType = "document"
	MaterialTypeBoth     MaterialType = "both"
)

const contentPathSeparator = ";"

var videoExtensions = map[string]struct{}{
	".mp4": {}, ".mov": {}, ".avi": {}, ".mkv": {}, ".webm": {},
}

type TrainingMaterial struct {
	ID           string
	Title        string
	Description  string
	Type         MaterialType
	ContentPaths []string
	Lifecycle
	CreatedBy   string
	CreatorName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Tags        []*Tag
}

func NewTrainingMaterial(id, title, description, createdBy string, status Status, paths []string) *TrainingMaterial {
	now := time.Now().UTC()
	return &TrainingMaterial{
		ID:           id,
		Title:        strings.TrimSpace(title),
		Description:  strings.TrimSpace(description),
		Type:         DetectMaterialType(paths),
		ContentPaths: paths,
		Lifecycle:    NewLifecycle(status),
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (m *TrainingMaterial) Validate() error {
	if m.Title == "" {
		return NewValidationError("title is required")
	}
	if len(m.Title) > 255 {
		return NewValidationError("title is too long")
	}
	if m.CreatedBy == "" {
		return NewValidationError("created_by is required")
	}
	return nil
}

// AddContent appends stored file names and refreshes the material type.
func (m *TrainingMaterial) AddContent(paths ...string) {
	m.ContentPaths = append(m.ContentPaths, paths...)
	m.Type = DetectMaterialType(m.ContentPaths)
}

// DetectMaterialType derives video/document/both from file extensions.
func DetectMaterialType(paths []string) MaterialType {
	var hasVideo, hasDocument bool
	for _, p := range paths {
		if _, ok := videoExtensions[strings.ToLower(filepath.Ext(p))]; ok {
			hasVideo = true
		} else {
			hasDocument = true
		}
	}
	switch {
	case hasVideo && hasDocument:
		return MaterialTypeBoth
	case hasVideo:
		return MaterialTypeVideo
	default:
		return MaterialTypeDocument
	}
}

func JoinContentPaths(paths []string) string {
	return strings.Join(paths, contentPathSeparator)
}

func SplitContentPaths(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, contentPathSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
