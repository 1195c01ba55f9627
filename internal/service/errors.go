package service

import "errors"

// Not-found lookups are fatal to the current operation and never retried
// by the pipeline itself.
var (
	ErrJobNotFound     = errors.New("job not found")
	ErrThoughtNotFound = errors.New("thought not found")
	ErrUserNotFound    = errors.New("user not found")
)

// IsNotFound reports whether err is one of the pipeline's fatal lookup
// misses.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrJobNotFound) || errors.Is(err, ErrThoughtNotFound) || errors.Is(err, ErrUserNotFound)
}
