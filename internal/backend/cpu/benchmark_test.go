package cpu

import (
	"fmt"
	"testing"

	"github.com/born-ml/codebook/internal/tensor"
)

func BenchmarkMatMul(b *testing.B) {
	backend := New()

	for _, size := range []int{16, 128, 512} {
		values := make([]float32, size*size)
		indices := make([]uint8, size*size)
		table := make([]float32, 256)
		for i := range values {
			values[i] = float32(i%7) - 3
			indices[i] = uint8(i % 256)
		}
		for i := range table {
			table[i] = float32(i) / 256
		}

		dense, _ := tensor.RawFromFloat32(values, tensor.Shape{size, size})
		quant, _ := tensor.RawFromUint8(indices, tensor.Shape{size, size})
		cb, _ := tensor.RawFromFloat32(table, tensor.Shape{256, 1})
		_ = quant.SetCodebook(cb)

		b.Run(fmt.Sprintf("dense/%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = backend.MatMul(dense, dense)
			}
		})

		b.Run(fmt.Sprintf("quantized/%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = backend.MatMul(dense, quant)
			}
		})
	}
}

func BenchmarkSigmoid(b *testing.B) {
	backend := New()
	x, _ := tensor.RawFromFloat32(make([]float32, 1<<16), tensor.Shape{256, 256})

	for i := 0; i < b.N; i++ {
		_, _ = backend.Sigmoid(x)
	}
}
