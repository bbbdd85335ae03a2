// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/codebook/internal/nn"
	"github.com/born-ml/codebook/tensor"
)

// Module is a layer with a forward pass.
type Module[B tensor.Backend] = nn.Module[B]

// Parameterized is a module that owns parameters.
type Parameterized[B tensor.Backend] = nn.Parameterized[B]

// Parameter is a named tensor owned by a module.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a zero-initialized linear layer.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(784, 128, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// ReLU is the rectified linear activation.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU activation.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Sigmoid is the logistic activation.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// Sequential chains modules.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a Sequential from modules, applied in order.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Key is a parsed state-dict key.
type Key = nn.Key

// SubAttr selects the part of a parameter a state-dict entry carries.
type SubAttr = nn.SubAttr

// Sub-attributes.
const (
	SubDense    = nn.SubDense
	SubCodebook = nn.SubCodebook
	SubIndexes  = nn.SubIndexes
)

// ParseKey parses "<prefix>.<layer>.<attr>[.<sub>]".
func ParseKey(key string) (Key, error) {
	return nn.ParseKey(key)
}

// LoadOptions configures LoadStateDict.
type LoadOptions = nn.LoadOptions

// DefaultCodebookSize is the codebook length used when none is configured.
const DefaultCodebookSize = nn.DefaultCodebookSize

// DefaultLoadOptions returns lenient options with 256-entry codebooks.
func DefaultLoadOptions() LoadOptions {
	return nn.DefaultLoadOptions()
}

// KeyError reports a state-dict entry that could not be applied.
type KeyError = nn.KeyError

// Errors.
var (
	ErrMalformedKey    = nn.ErrMalformedKey
	ErrInvalidKey      = nn.ErrInvalidKey
	ErrUnknownKey      = nn.ErrUnknownKey
	ErrIndexOutOfRange = nn.ErrIndexOutOfRange
	ErrShapeMismatch   = nn.ErrShapeMismatch
	ErrMissingCodebook = nn.ErrMissingCodebook
	ErrCodebookIndex   = nn.ErrCodebookIndex
)
