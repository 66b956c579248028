package apperrors

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidQuery     = errors.New("invalid query")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrStoreUnavailable = errors.New("catalog store unavailable")
)
