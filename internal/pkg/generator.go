package pkg

import "github.com/google/uuid"

// GenerateSessionID - returns a random UUIDv4 string.
func GenerateSessionID() string {
	return uuid.NewString()
}
