package stats

import "errors"

var ErrValidation = errors.New("validation error")
