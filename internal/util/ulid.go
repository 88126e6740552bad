package util

import (
	"regexp"

	"github.com/oklog/ulid/v2"
)

var ulidPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// NewULID generates a new ULID string using ulid's monotonic default entropy.
func NewULID() string {
	return ulid.Make().String()
}

// IsValidULID checks if the string is a canonical (upper-case) ULID.
func IsValidULID(s string) bool {
	return ulidPattern.MatchString(s)
}
