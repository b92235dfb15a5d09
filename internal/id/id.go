package id

import "github.com/google/uuid"

// GenerateID returns a random UUIDv4 string used for live session ids.
func GenerateID() string {
	return uuid.NewString()
}
