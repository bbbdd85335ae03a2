package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/codebook/internal/backend/cpu"
	"github.com/born-ml/codebook/internal/tensor"
)

func TestTensor_Ops(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	y, err := x.MatMul(x.T())
	require.NoError(t, err)
	data, err := y.Data()
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 11, 11, 25}, data)

	z, err := y.Add(x)
	require.NoError(t, err)
	data, err = z.Data()
	require.NoError(t, err)
	assert.Equal(t, []float32{6, 13, 14, 29}, data)

	// Operands are not mutated.
	data, err = x.Data()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, data)
}

func TestTensor_Quantized(t *testing.T) {
	backend := cpu.New()

	w, err := tensor.Zeros(tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	assert.Equal(t, 16, w.Bytes())

	cb, err := tensor.RawFromFloat32([]float32{0, 1.5, -2}, tensor.Shape{3, 1})
	require.NoError(t, err)
	require.NoError(t, w.Raw().SetCodebook(cb))
	require.NoError(t, w.Raw().SetUint8([]uint8{1, 2, 0, 1}))

	assert.Equal(t, tensor.Uint8, w.DType())
	assert.Equal(t, 4, w.Bytes())
	assert.Same(t, cb, w.Codebook())
	assert.Contains(t, w.String(), "uint8")

	data, err := w.Data()
	require.NoError(t, err)
	assert.Equal(t, []float32{1.5, -2, 0, 1.5}, data)
}

func TestTensor_Activations(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{-1, 0, 2}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	r, err := x.ReLU()
	require.NoError(t, err)
	data, err := r.Data()
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 2}, data)

	s, err := x.Sigmoid()
	require.NoError(t, err)
	data, err = s.Data()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, data[1], 1e-6)
}

func TestTensor_TPanicsOn1D(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, cpu.New())
	require.NoError(t, err)

	assert.Panics(t, func() { x.T() })
	_, err = x.Transpose()
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}
