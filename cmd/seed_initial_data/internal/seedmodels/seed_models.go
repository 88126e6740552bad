package seedmodels

// SeedAdmin is the first administrator account. The password comes from the
// environment, never from the seed file.
type SeedAdmin struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// SeedData defines the structure of the JSON seed file.
type SeedData struct {
	Admin SeedAdmin `json:"admin"`
	Tags  []string  `json:"tags"`
}
