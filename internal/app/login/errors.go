package login

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest   = errors.New("invalid_request")
	ErrBadUsername      = errors.New("bad_username")
	ErrBadPassword      = errors.New("bad_password")
	ErrClientOutOfDate  = errors.New("client_out_of_date")
	ErrWorldUnavailable = errors.New("world_unavailable")
	ErrTokenNotFound    = errors.New("token_not_found")
	ErrWorldMismatch    = errors.New("world_mismatch")
	ErrTokenUsed        = errors.New("token_used")
	ErrTokenExpired     = errors.New("token_expired")
)

// OutOfDateError carries the version pair for the client-facing message.
type OutOfDateError struct {
	Latest int32
	Got    int32
}

func (e *OutOfDateError) Error() string {
	return fmt.Sprintf("%s: latest %d, got %d", ErrClientOutOfDate, e.Latest, e.Got)
}

func (e *OutOfDateError) Unwrap() error { return ErrClientOutOfDate }
