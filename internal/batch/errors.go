package batch

import "errors"

// Sentinel error kinds for every rejection the state machine can produce.
// Callers match with errors.Is instead of parsing messages.
var (
	ErrNotFound        = errors.New("batch does not exist")
	ErrAlreadyExists   = errors.New("batch already exists")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrExceedsQuantity = errors.New("wastage amount cannot exceed current quantity")
	ErrInvalidLocation = errors.New("invalid location")
	ErrMalformedInput  = errors.New("malformed input")
)
