package utils

import (
	"github.com/google/uuid"
)

// NewRandomID returns a new random (v4) uuid string.
func NewRandomID() string {
	return uuid.NewString()
}

// IsValidID returns if the given string is a uuid.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
