// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/codebook/internal/tensor"
)

// DataType represents the runtime data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Uint8   DataType = tensor.Uint8
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Backend performs tensor arithmetic.
type Backend = tensor.Backend

// RawTensor is the untyped byte-buffer tensor with an optional codebook.
type RawTensor = tensor.RawTensor

// Tensor is a tensor bound to a backend.
type Tensor[B Backend] = tensor.Tensor[B]

// Errors.
var (
	ErrShapeMismatch   = tensor.ErrShapeMismatch
	ErrInvalidShape    = tensor.ErrInvalidShape
	ErrDTypeMismatch   = tensor.ErrDTypeMismatch
	ErrMissingCodebook = tensor.ErrMissingCodebook
	ErrIndexOutOfRange = tensor.ErrIndexOutOfRange
)

// NewRaw creates a zero-filled RawTensor.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// RawFromFloat32 creates a Float32 RawTensor from values.
func RawFromFloat32(values []float32, shape Shape) (*RawTensor, error) {
	return tensor.RawFromFloat32(values, shape)
}

// RawFromUint8 creates a Uint8 RawTensor of codebook indices.
func RawFromUint8(indices []uint8, shape Shape) (*RawTensor, error) {
	return tensor.RawFromUint8(indices, shape)
}

// New wraps a RawTensor for use with backend b.
func New[B Backend](raw *RawTensor, b B) *Tensor[B] {
	return tensor.New(raw, b)
}

// FromSlice creates a Float32 tensor from data.
func FromSlice[B Backend](data []float32, shape Shape, b B) (*Tensor[B], error) {
	return tensor.FromSlice(data, shape, b)
}

// Zeros creates a zero-filled Float32 tensor.
func Zeros[B Backend](shape Shape, b B) (*Tensor[B], error) {
	return tensor.Zeros(shape, b)
}
