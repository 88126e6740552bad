package cache

import "strings"

const (
	GlobalKeyPrefix = "techcom"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizStatsKey is where a quiz's question statistics are cached.
func QuizStatsKey(quizID string) string {
	return GenerateCacheKey("composition", "stats", quizID)
}

// TagItemsKey is where the materials and quizzes listed under a tag are cached.
func TagItemsKey(tagID string) string {
	return GenerateCacheKey("tag", "items", tagID)
}
