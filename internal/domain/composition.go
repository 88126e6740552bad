package domain

import (
	"sort"
	"time"
)

// QuizQuestionLink places a bank question in a quiz at a sort position.
type QuizQuestionLink struct {
	QuizID     string
	QuestionID string
	OrderIndex int
	CreatedAt  time.Time
}

// QuizQuestion is a question as it appears inside one quiz.
type QuizQuestion struct {
	Question
	OrderIndex int
}

// QuizStats summarises the questions linked to a quiz.
type QuizStats struct {
	QuizID         string               `json:"quiz_id"`
	TotalQuestions int                  `json:"total_questions"`
	TotalPoints    int                  `json:"total_points"`
	CountByType    map[QuestionType]int `json:"count_by_type"`
}

// ComputeQuizStats counts questions per type; every type is present in the map.
func ComputeQuizStats(quizID string, questions []*QuizQuestion) *QuizStats {
	stats := &QuizStats{
		QuizID:      quizID,
		CountByType: make(map[QuestionType]int, len(QuestionTypes)),
	}
	for _, t := range QuestionTypes {
		stats.CountByType[t] = 0
	}
	for _, q := range questions {
		stats.TotalQuestions++
		stats.TotalPoints += q.Points
		stats.CountByType[q.Type]++
	}
	return stats
}

// NextOrderIndex is one past the highest index in links, or 0 for an empty quiz.
func NextOrderIndex(links []QuizQuestionLink) int {
	next := 0
	for _, l := range links {
		if l.OrderIndex >= next {
			next = l.OrderIndex + 1
		}
	}
	return next
}

// ValidatePermutation checks that ordered is exactly a reordering of current.
func ValidatePermutation(current, ordered []string) error {
	if len(ordered) != len(current) {
		return NewValidationError("ordered question ids must list every question in the quiz exactly once")
	}
	members := make(map[string]struct{}, len(current))
	for _, id := range current {
		members[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(ordered))
	for _, id := range ordered {
		if _, ok := members[id]; !ok {
			return NewValidationError("question " + id + " is not part of the quiz")
		}
		if _, dup := seen[id]; dup {
			return NewValidationError("question " + id + " is listed more than once")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// SelectAutoAddCandidates picks up to count question ids in ascending order,
// skipping ids that are already linked.
func SelectAutoAddCandidates(candidates, linked []string, count int) []string {
	if count <= 0 {
		return []string{}
	}
	skip := make(map[string]struct{}, len(linked))
	for _, id := range linked {
		skip[id] = struct{}{}
	}
	pool := make([]string, 0, len(candidates))
	for _, id := range UniqueIDs(candidates) {
		if _, ok := skip[id]; !ok {
			pool = append(pool, id)
		}
	}
	sort.Strings(pool)
	if len(pool) > count {
		pool = pool[:count]
	}
	return pool
}

// LinkedQuestionIDs returns question ids of links in their current order.
func LinkedQuestionIDs(links []QuizQuestionLink) []string {
	sorted := make([]QuizQuestionLink, len(links))
	copy(sorted, links)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].OrderIndex != sorted[j].OrderIndex {
			return sorted[i].OrderIndex < sorted[j].OrderIndex
		}
		return sorted[i].QuestionID < sorted[j].QuestionID
	})
	ids := make([]string, 0, len(sorted))
	for _, l := range sorted {
		ids = append(ids, l.QuestionID)
	}
	return ids
}
