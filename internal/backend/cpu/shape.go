package cpu

import (
	"fmt"

	"github.com/born-ml/codebook/internal/tensor"
)

// Transpose swaps the axes of a 2D tensor.
//
// The permutation is done on raw elements, so a quantized tensor is
// transposed as indices and keeps its codebook.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	shape := t.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("transpose: %w: expected 2D tensor, got shape %v", tensor.ErrShapeMismatch, shape)
	}

	rows, cols := shape[0], shape[1]
	size := t.DType().Size()
	src := t.Data()
	dst := make([]byte, len(src))

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			from := (i*cols + j) * size
			to := (j*rows + i) * size
			copy(dst[to:to+size], src[from:from+size])
		}
	}

	result, err := t.WithShape(tensor.Shape{cols, rows}, dst)
	if err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}
	return result, nil
}
