package cron

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned by Next and Prev when no fire time exists
// within the supported year range (1970-2099). It signals a normal
// search outcome, not malformed input.
var ErrExhausted = errors.New("no fire time within supported year range")

// ParseError describes the first violation found while compiling an
// expression, identifying the offending field and token.
type ParseError struct {
	Field string // field name, e.g. "day-of-week"
	Token string // the field text as written
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid cron expression: %v", e.Err)
	}
	return fmt.Sprintf("invalid %s field %q: %v", e.Field, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
