package booking

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrInvalidStatus        = errors.New("unknown booking status")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
)
