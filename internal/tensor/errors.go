package tensor

import "errors"

// Common errors.
var (
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrInvalidShape    = errors.New("invalid shape")
	ErrDTypeMismatch   = errors.New("dtype mismatch")
	ErrMissingCodebook = errors.New("quantized tensor has no codebook")
	ErrIndexOutOfRange = errors.New("index out of range")
)
