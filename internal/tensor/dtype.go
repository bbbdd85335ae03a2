// Package tensor provides the tensor capability consumed by the layers and the
// state-dict loader: shapes, runtime dtypes, raw byte storage with an optional
// codebook, and the Backend interface that performs arithmetic.
package tensor

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
//
// Uint8 tensors hold indices into a Float32 codebook and are dequantized by
// the backend whenever they take part in arithmetic.
const (
	Float32 DataType = iota
	Uint8
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Uint8:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Uint8:
		return "uint8"
	default:
		return "unknown"
	}
}
