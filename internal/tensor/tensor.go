package tensor

import "fmt"

// Tensor is a float32-valued tensor bound to a compute backend.
//
// The underlying RawTensor may be quantized; every operation returns a new
// Tensor and never mutates its operands.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
//	y, err := x.MatMul(x.T())
type Tensor[B Backend] struct {
	raw     *RawTensor
	backend B
}

// New creates a Tensor from a RawTensor and backend.
func New[B Backend](raw *RawTensor, b B) *Tensor[B] {
	return &Tensor[B]{
		raw:     raw,
		backend: b,
	}
}

// FromSlice creates a dense tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[B Backend](data []float32, shape Shape, b B) (*Tensor[B], error) {
	raw, err := RawFromFloat32(data, shape)
	if err != nil {
		return nil, err
	}
	return New(raw, b), nil
}

// Zeros creates a dense zero-filled tensor.
func Zeros[B Backend](shape Shape, b B) (*Tensor[B], error) {
	raw, err := NewRaw(shape, Float32)
	if err != nil {
		return nil, err
	}
	return New(raw, b), nil
}

// Shape returns the tensor's shape.
func (t *Tensor[B]) Shape() Shape {
	return t.raw.Shape()
}

// DType returns the tensor's storage data type.
func (t *Tensor[B]) DType() DataType {
	return t.raw.DType()
}

// NumElements returns the total number of elements.
func (t *Tensor[B]) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying RawTensor.
func (t *Tensor[B]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the computation backend.
func (t *Tensor[B]) Backend() B {
	return t.backend
}

// Bytes returns the size of the raw data buffer in bytes, codebook excluded.
func (t *Tensor[B]) Bytes() int {
	return t.raw.ByteSize()
}

// Codebook returns the attached codebook, or nil for dense tensors.
func (t *Tensor[B]) Codebook() *RawTensor {
	return t.raw.Codebook()
}

// Data returns the logical float32 values, dequantizing if needed.
//
// For dense tensors the slice aliases the tensor's memory.
func (t *Tensor[B]) Data() ([]float32, error) {
	return t.raw.Float32s()
}

// T returns the transpose of a 2D tensor.
// Panics if the tensor is not 2D; use Transpose for an error instead.
func (t *Tensor[B]) T() *Tensor[B] {
	out, err := t.Transpose()
	if err != nil {
		panic(fmt.Sprintf("T: %v", err))
	}
	return out
}

// Transpose returns the transpose of a 2D tensor.
func (t *Tensor[B]) Transpose() (*Tensor[B], error) {
	raw, err := t.backend.Transpose(t.raw)
	if err != nil {
		return nil, err
	}
	return New(raw, t.backend), nil
}

// MatMul performs matrix multiplication: t @ other.
func (t *Tensor[B]) MatMul(other *Tensor[B]) (*Tensor[B], error) {
	raw, err := t.backend.MatMul(t.raw, other.raw)
	if err != nil {
		return nil, err
	}
	return New(raw, t.backend), nil
}

// Add performs element-wise addition with broadcasting.
func (t *Tensor[B]) Add(other *Tensor[B]) (*Tensor[B], error) {
	raw, err := t.backend.Add(t.raw, other.raw)
	if err != nil {
		return nil, err
	}
	return New(raw, t.backend), nil
}

// ReLU applies max(x, 0) element-wise.
func (t *Tensor[B]) ReLU() (*Tensor[B], error) {
	raw, err := t.backend.ReLU(t.raw)
	if err != nil {
		return nil, err
	}
	return New(raw, t.backend), nil
}

// Sigmoid applies 1 / (1 + exp(-x)) element-wise.
func (t *Tensor[B]) Sigmoid() (*Tensor[B], error) {
	raw, err := t.backend.Sigmoid(t.raw)
	if err != nil {
		return nil, err
	}
	return New(raw, t.backend), nil
}

// String returns a short description of the tensor.
func (t *Tensor[B]) String() string {
	if t.raw.Quantized() {
		return fmt.Sprintf("Tensor(shape=%v, dtype=%s, codebook=%v)", t.Shape(), t.DType(), t.Codebook() != nil)
	}
	return fmt.Sprintf("Tensor(shape=%v, dtype=%s)", t.Shape(), t.DType())
}
