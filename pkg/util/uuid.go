package util

import (
	"github.com/google/uuid"
)

// GenerateUUID returns a random (version 4) UUID string
func GenerateUUID() string {
	return uuid.NewString()
}

// GenerateRunID returns a time-ordered (version 7) UUID string, so run IDs
// sort by creation time. It falls back to a random UUID if the clock
// source fails.
func GenerateRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return GenerateUUID()
	}
	return id.String()
}
