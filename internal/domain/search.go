package domain

// SearchFilter narrows list queries. Archived selects the archived (or deleted)
// set instead of the live one.
type SearchFilter struct {
	Text        string
	CreatorName string
	Status      string
	Department  string
	JobID       string
	Type        string
	Role        string
	Archived    bool
}
