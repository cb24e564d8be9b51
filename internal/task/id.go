package task

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	suffixLength  = 8
	maxIDAttempts = 16
)

// GenerateID builds a time-based ID with a random suffix, retrying while
// existsFn reports a collision.
func GenerateID(now time.Time, existsFn func(string) bool) string {
	prefix := strconv.FormatInt(now.UnixMilli(), 10)
	for i := 0; i < maxIDAttempts; i++ {
		candidate := prefix + "-" + uuid.New().String()[:suffixLength]
		if !existsFn(candidate) {
			return candidate
		}
	}
	// Fall back to a full UUID; a collision here would need a broken RNG.
	return prefix + "-" + uuid.New().String()
}
