package models

import "github.com/google/uuid"

// GenerateID returns a fresh identifier carrying a human-readable prefix.
// The format is opaque to every consumer; only uniqueness matters.
func GenerateID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
