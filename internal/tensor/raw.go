package tensor

import (
	"fmt"
	"unsafe"
)

// RawTensor is the low-level tensor representation: a contiguous byte buffer
// tagged with a runtime dtype, plus an optional codebook.
//
// A Uint8 tensor stores one codebook index per element. Its logical value at
// flat position i is codebook[data[i]]; the lookup happens lazily inside the
// backend, never at load time. Loading a new buffer goes through ReplaceData,
// which swaps the buffer and the dtype tag while the shape and the attached
// codebook stay on the same RawTensor.
type RawTensor struct {
	data     []byte     // Raw element storage
	shape    Shape      // Tensor dimensions
	stride   []int      // Memory strides (row-major)
	dtype    DataType   // Runtime type information
	codebook *RawTensor // Float32 [K, 1] lookup table, nil for dense tensors
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is zero-initialized.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// RawFromFloat32 creates a Float32 RawTensor holding a copy of values.
func RawFromFloat32(values []float32, shape Shape) (*RawTensor, error) {
	r, err := NewRaw(shape, Float32)
	if err != nil {
		return nil, err
	}
	if len(values) != r.NumElements() {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, got %d",
			ErrShapeMismatch, shape, r.NumElements(), len(values))
	}
	copy(r.AsFloat32(), values)
	return r, nil
}

// RawFromUint8 creates a Uint8 RawTensor holding a copy of indices.
func RawFromUint8(indices []uint8, shape Shape) (*RawTensor, error) {
	r, err := NewRaw(shape, Uint8)
	if err != nil {
		return nil, err
	}
	if len(indices) != r.NumElements() {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, got %d",
			ErrShapeMismatch, shape, r.NumElements(), len(indices))
	}
	copy(r.data, indices)
	return r, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the size in bytes of the data buffer.
// The codebook is not counted.
func (r *RawTensor) ByteSize() int {
	return len(r.data)
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, length fixed by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	if r.dtype != Uint8 {
		panic(fmt.Sprintf("tensor dtype is %s, not uint8", r.dtype))
	}
	return r.data
}

// Quantized reports whether the tensor stores codebook indices.
func (r *RawTensor) Quantized() bool {
	return r.dtype == Uint8
}

// Codebook returns the attached codebook, or nil.
func (r *RawTensor) Codebook() *RawTensor {
	return r.codebook
}

// SetCodebook attaches cb as the tensor's codebook, replacing any previous one.
// The codebook must be a Float32 tensor of shape [K, 1] with 1 <= K <= 256.
// Data and shape of r are not touched.
func (r *RawTensor) SetCodebook(cb *RawTensor) error {
	if cb == nil {
		r.codebook = nil
		return nil
	}
	if cb.dtype != Float32 {
		return fmt.Errorf("%w: codebook must be float32, got %s", ErrDTypeMismatch, cb.dtype)
	}
	if len(cb.shape) != 2 || cb.shape[1] != 1 {
		return fmt.Errorf("%w: codebook must have shape [K 1], got %v", ErrShapeMismatch, cb.shape)
	}
	if cb.shape[0] > 256 {
		return fmt.Errorf("%w: codebook has %d entries, 8-bit indices address at most 256",
			ErrShapeMismatch, cb.shape[0])
	}
	r.codebook = cb
	return nil
}

// ReplaceData swaps the data buffer and dtype tag in place.
//
// The new buffer must describe exactly NumElements() elements of dtype.
// Shape and codebook are preserved. The bytes are copied, so the caller keeps
// ownership of data.
func (r *RawTensor) ReplaceData(data []byte, dtype DataType) error {
	want := r.NumElements() * dtype.Size()
	if len(data) != want {
		return fmt.Errorf("%w: %v %s tensor needs %d bytes, got %d",
			ErrShapeMismatch, r.shape, dtype, want, len(data))
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	r.data = buf
	r.dtype = dtype
	return nil
}

// SetFloat32 replaces the buffer with a copy of values and marks the tensor
// Float32.
func (r *RawTensor) SetFloat32(values []float32) error {
	if len(values) == 0 {
		return r.ReplaceData(nil, Float32)
	}
	//nolint:gosec // reinterpreting a float32 slice as bytes for the copy
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*4)
	return r.ReplaceData(raw, Float32)
}

// SetUint8 replaces the buffer with a copy of indices and marks the tensor
// Uint8. The codebook already attached to r keeps serving the new indices.
func (r *RawTensor) SetUint8(indices []uint8) error {
	return r.ReplaceData(indices, Uint8)
}

// Float32s returns the logical float32 values of the tensor.
//
// Dense tensors return a zero-copy view of their data. Quantized tensors are
// dequantized into a fresh slice through the codebook.
func (r *RawTensor) Float32s() ([]float32, error) {
	switch r.dtype {
	case Float32:
		return r.AsFloat32(), nil
	case Uint8:
		if r.codebook == nil {
			return nil, ErrMissingCodebook
		}
		table := r.codebook.AsFloat32()
		indices := r.AsUint8()
		out := make([]float32, len(indices))
		for i, idx := range indices {
			if int(idx) >= len(table) {
				return nil, fmt.Errorf("%w: element %d indexes entry %d of a %d-entry codebook",
					ErrIndexOutOfRange, i, idx, len(table))
			}
			out[i] = table[idx]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported dtype %s", ErrDTypeMismatch, r.dtype)
	}
}

// WithShape returns a RawTensor of the given shape sharing dtype and codebook
// with r, filled with a copy of data. Backends use it to build results that
// stay quantized (e.g. transposing an index buffer).
func (r *RawTensor) WithShape(shape Shape, data []byte) (*RawTensor, error) {
	out, err := NewRaw(shape, r.dtype)
	if err != nil {
		return nil, err
	}
	if err := out.ReplaceData(data, r.dtype); err != nil {
		return nil, err
	}
	out.codebook = r.codebook
	return out, nil
}
