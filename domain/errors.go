package domain

import (
	"errors"
	"strings"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrForbidden will throw if the caller may not touch the item
	ErrForbidden = errors.New("you are not allowed to do this")
	// ErrUnauthorized will throw if credentials are missing or wrong
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrCacheMiss will throw if the cache does not hold the key
	ErrCacheMiss = errors.New("cache miss")
	// ErrScoreNotFetched is a caller bug: ranking needs the score aggregate.
	ErrScoreNotFetched = errors.New("comment score was not fetched")
)

// ValidationError carries every violated rule, not just the first one.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NewValidationError returns nil when msgs is empty so callers can return it directly.
func NewValidationError(msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return &ValidationError{Messages: msgs}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
