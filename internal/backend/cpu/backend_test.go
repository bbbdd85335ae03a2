package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/codebook/internal/parallel"
	"github.com/born-ml/codebook/internal/tensor"
)

func mustFloat32(t *testing.T, values []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.RawFromFloat32(values, shape)
	require.NoError(t, err)
	return r
}

// quantized builds a Uint8 tensor over the given codebook.
func quantized(t *testing.T, table []float32, indices []uint8, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.RawFromUint8(indices, shape)
	require.NoError(t, err)
	cb := mustFloat32(t, table, tensor.Shape{len(table), 1})
	require.NoError(t, r.SetCodebook(cb))
	return r
}

func TestCPUBackend_Name(t *testing.T) {
	assert.Equal(t, "CPU", New().Name())
}

func TestMatMul(t *testing.T) {
	backend := New()

	// [[1,2,3],[4,5,6]] @ [[7,8],[9,10],[11,12]]
	a := mustFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := mustFloat32(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	out, err := backend.MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float32{58, 64, 139, 154}, out.AsFloat32())
}

func TestMatMul_ShapeMismatch(t *testing.T) {
	backend := New()

	a := mustFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := mustFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	_, err := backend.MatMul(a, b)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	v := mustFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
	_, err = backend.MatMul(v, b)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestMatMul_DequantizesOperands(t *testing.T) {
	backend := New()

	// Logical weight [[0.5, -1], [2, 0.5]]
	w := quantized(t, []float32{0.5, -1, 2}, []uint8{0, 1, 2, 0}, tensor.Shape{2, 2})
	x := mustFloat32(t, []float32{1, 2}, tensor.Shape{1, 2})

	out, err := backend.MatMul(x, w)
	require.NoError(t, err)
	assert.Equal(t, []float32{1*0.5 + 2*2, 1*-1 + 2*0.5}, out.AsFloat32())

	// Operand stays quantized.
	assert.Equal(t, tensor.Uint8, w.DType())
}

func TestMatMul_MissingCodebook(t *testing.T) {
	backend := New()

	w, err := tensor.RawFromUint8([]uint8{0, 1}, tensor.Shape{2, 1})
	require.NoError(t, err)
	x := mustFloat32(t, []float32{1, 2}, tensor.Shape{1, 2})

	_, err = backend.MatMul(x, w)
	require.ErrorIs(t, err, tensor.ErrMissingCodebook)
}

func TestAdd_SameShape(t *testing.T) {
	backend := New()

	a := mustFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
	b := mustFloat32(t, []float32{10, 20, 30}, tensor.Shape{3})

	out, err := backend.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float32{11, 22, 33}, out.AsFloat32())
}

func TestAdd_BroadcastRow(t *testing.T) {
	backend := New()

	a := mustFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := mustFloat32(t, []float32{10, 20, 30}, tensor.Shape{1, 3})

	out, err := backend.Add(a, bias)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, out.AsFloat32())
}

func TestAdd_BroadcastColumnAndRank(t *testing.T) {
	backend := New()

	col := mustFloat32(t, []float32{1, 2}, tensor.Shape{2, 1})
	row := mustFloat32(t, []float32{10, 20, 30}, tensor.Shape{3})

	out, err := backend.Add(col, row)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.Equal(t, []float32{11, 21, 31, 12, 22, 32}, out.AsFloat32())
}

func TestAdd_Incompatible(t *testing.T) {
	backend := New()

	a := mustFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
	b := mustFloat32(t, []float32{1, 2}, tensor.Shape{2})

	_, err := backend.Add(a, b)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestAdd_Parallel(t *testing.T) {
	backend := NewWithConfig(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8})

	n := 1000
	a := make([]float32, n)
	b := make([]float32, n)
	for i := range a {
		a[i] = float32(i)
		b[i] = float32(2 * i)
	}

	out, err := backend.Add(mustFloat32(t, a, tensor.Shape{n}), mustFloat32(t, b, tensor.Shape{n}))
	require.NoError(t, err)
	for i, v := range out.AsFloat32() {
		assert.Equal(t, float32(3*i), v)
	}
}

func TestTranspose(t *testing.T) {
	backend := New()

	x := mustFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out, err := backend.Transpose(x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, out.AsFloat32())

	// Input untouched
	assert.Equal(t, tensor.Shape{2, 3}, x.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, x.AsFloat32())
}

func TestTranspose_KeepsQuantization(t *testing.T) {
	backend := New()

	x := quantized(t, []float32{-1, 1, 3}, []uint8{0, 1, 2, 2, 1, 0}, tensor.Shape{2, 3})
	out, err := backend.Transpose(x)
	require.NoError(t, err)

	assert.Equal(t, tensor.Uint8, out.DType())
	assert.Same(t, x.Codebook(), out.Codebook())
	assert.Equal(t, []uint8{0, 2, 1, 1, 2, 0}, out.AsUint8())

	values, err := out.Float32s()
	require.NoError(t, err)
	assert.Equal(t, []float32{-1, 3, 1, 1, 3, -1}, values)
}

func TestTranspose_Not2D(t *testing.T) {
	_, err := New().Transpose(mustFloat32(t, []float32{1, 2}, tensor.Shape{2}))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestReLU(t *testing.T) {
	out, err := New().ReLU(mustFloat32(t, []float32{-1, 0, 2}, tensor.Shape{3}))
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 2}, out.AsFloat32())
}

func TestSigmoid(t *testing.T) {
	out, err := New().Sigmoid(mustFloat32(t, []float32{0, 2, -2}, tensor.Shape{1, 3}))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 3}, out.Shape())

	got := out.AsFloat32()
	assert.InDelta(t, 0.5, got[0], 1e-6)
	assert.InDelta(t, 0.8807971, got[1], 1e-6)
	assert.InDelta(t, 0.1192029, got[2], 1e-6)
}

func TestActivation_Quantized(t *testing.T) {
	x := quantized(t, []float32{-4, 4}, []uint8{0, 1, 1}, tensor.Shape{3})

	out, err := New().ReLU(x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, out.DType())
	assert.Equal(t, []float32{0, 4, 4}, out.AsFloat32())
}
