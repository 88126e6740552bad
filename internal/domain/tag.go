package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const MaxTagNameLength = 100

// Tag is a free-form label attached to materials and quizzes.
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// NormalizeTagName trims the name and collapses inner whitespace.
func NormalizeTagName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func NewTag(id, name string) *Tag {
	return &Tag{
		ID:        id,
		Name:      NormalizeTagName(name),
		CreatedAt: time.Now().UTC(),
	}
}

func (t *Tag) Validate() error {
	if t.Name == "" {
		return NewValidationError("tag name is required")
	}
	if utf8.RuneCountInString(t.Name) > MaxTagNameLength {
		return NewValidationError("tag name is too long")
	}
	return nil
}

// TagItems is everything currently linked to one tag.
type TagItems struct {
	Tag       *Tag
	Materials []*TrainingMaterial
	Quizzes   []*Quiz
}

// UniqueIDs drops empty and repeated ids, keeping first-seen order.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func tagIDSet(tags []*Tag) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t.ID] = struct{}{}
	}
	return set
}

// TagIDs returns the ids of tags in order.
func TagIDs(tags []*Tag) []string {
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// HasCommonTags reports whether the quiz is relevant to the material.
// A material without tags is related to every quiz.
func HasCommonTags(quiz *Quiz, material *TrainingMaterial) bool {
	if len(material.Tags) == 0 {
		return true
	}
	materialTags := tagIDSet(material.Tags)
	for _, t := range quiz.Tags {
		if _, ok := materialTags[t.ID]; ok {
			return true
		}
	}
	return false
}

// RelevantQuizzes keeps non-archived quizzes sharing a tag with the material
// that are not in exclude.
func RelevantQuizzes(material *TrainingMaterial, quizzes []*Quiz, exclude []string) []*Quiz {
	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	out := make([]*Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		if q.IsArchived() {
			continue
		}
		if _, ok := skip[q.ID]; ok {
			continue
		}
		if HasCommonTags(q, material) {
			out = append(out, q)
		}
	}
	return out
}
