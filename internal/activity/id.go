package activity

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// NewID creates a 7-character hex ID from a title and a timestamp.
func NewID(title string, now time.Time) string {
	return idFromSeed(title + "\x00" + fmt.Sprintf("%d", now.UnixNano()))
}

func idFromSeed(seed string) string {
	hash := sha256.Sum256([]byte(seed))
	return fmt.Sprintf("%x", hash[:4])[:7]
}

// validID guards file lookups against IDs that would escape the store
// directory.
func validID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
