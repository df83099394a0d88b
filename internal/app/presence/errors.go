package presence

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrAlreadyOnline  = errors.New("already_online")
)
