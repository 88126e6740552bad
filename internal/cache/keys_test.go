package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "quiz",
			objectType:  "detail",
			identifier:  "123",
			paramsKey:   nil,
			expectedKey: "techcom:quiz:detail:123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "detail",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "techcom:quiz:detail:123",
		},
		{
			name:        "with one paramsKey",
			serviceName: "material",
			objectType:  "search",
			identifier:  "abc",
			paramsKey:   []string{"archived"},
			expectedKey: "techcom:material:search:abc:archived",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "candidate",
			objectType:  "list",
			identifier:  "xyz",
			paramsKey:   []string{"param1", "param2", "param3"},
			expectedKey: "techcom:candidate:list:xyz:param1_param2_param3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}

func TestNamedKeys(t *testing.T) {
	if got := QuizStatsKey("q1"); got != "techcom:composition:stats:q1" {
		t.Errorf("QuizStatsKey() = %v", got)
	}
	if got := TagItemsKey("t1"); got != "techcom:tag:items:t1" {
		t.Errorf("TagItemsKey() = %v", got)
	}
}
