package worlds

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrWorldNotFound  = errors.New("world_not_found")
)
