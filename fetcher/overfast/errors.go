package overfast

import (
	"errors"
	"fmt"
	"time"
)

// ErrPlayerNotFound is returned when the battletag doesn't exist on the
// Blizzard servers.
var ErrPlayerNotFound = errors.New("player not found")

// ErrPrivateProfile is returned when the player profile is private.
// The API signals it with a 500 whose body mentions "private", so this is a
// best effort detection.
var ErrPrivateProfile = errors.New("profile is private")

// RateLimitError is returned on a 429, carrying the wait hinted by the API.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}
