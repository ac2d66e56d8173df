package override

import "errors"

var (
	ErrOverrideNotFound = errors.New("absence override not found")
	ErrInvalidStatus    = errors.New("invalid absence override status")
)
