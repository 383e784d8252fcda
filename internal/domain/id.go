package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a UUIDv4 rendered as 32 lowercase hex characters.
// Hyphens are stripped so every entity ID is a fixed-length hex token,
// which the assistant parser relies on to recognize direct references.
func NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// IsID reports whether s looks like an entity ID.
func IsID(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
