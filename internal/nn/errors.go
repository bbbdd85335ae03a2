package nn

import (
	"errors"
	"fmt"

	"github.com/born-ml/codebook/internal/tensor"
)

// Common errors.
var (
	ErrMalformedKey    = errors.New("malformed state dict key")
	ErrInvalidKey      = errors.New("invalid state dict key")
	ErrUnknownKey      = errors.New("unknown state dict key")
	ErrIndexOutOfRange = errors.New("layer index out of range")

	ErrShapeMismatch   = tensor.ErrShapeMismatch
	ErrMissingCodebook = tensor.ErrMissingCodebook
)

// KeyError reports a state-dict entry that could not be applied.
type KeyError struct {
	Key    string // Offending state-dict key
	Reason string // Short description
	Err    error  // Underlying sentinel or cause
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("state dict key %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("state dict key %q: %s: %v", e.Key, e.Reason, e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyError) Unwrap() error {
	return e.Err
}

func keyError(key string, err error, format string, args ...any) *KeyError {
	return &KeyError{Key: key, Reason: fmt.Sprintf(format, args...), Err: err}
}
