// Package cpu implements the CPU backend. Matrix products go through gonum's
// BLAS; elementwise kernels are plain Go split across workers.
package cpu

import (
	"fmt"

	"github.com/born-ml/codebook/internal/parallel"
	"github.com/born-ml/codebook/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
//
// Every operand is read through operand(), so quantized tensors are
// dequantized on the fly and never materialized on the layer itself.
type CPUBackend struct {
	cfg parallel.Config
}

// Compile-time check that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend with default parallelism.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{cfg: cfg}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// operand returns the logical float32 values of x.
func operand(op string, x *tensor.RawTensor) ([]float32, error) {
	values, err := x.Float32s()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return values, nil
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}

	av, err := operand("add", a)
	if err != nil {
		return nil, err
	}
	bv, err := operand("add", b)
	if err != nil {
		return nil, err
	}

	result, err := tensor.NewRaw(outShape, tensor.Float32)
	if err != nil {
		return nil, fmt.Errorf("add: failed to create result tensor: %w", err)
	}
	dst := result.AsFloat32()

	if !needsBroadcast {
		// Fast path: same shape
		parallel.Range(len(dst), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = av[i] + bv[i]
			}
		}, cpu.cfg)
		return result, nil
	}

	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)
	outStrides := outShape.ComputeStrides()

	parallel.Range(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			aOff, bOff := 0, 0
			rem := i
			for d, stride := range outStrides {
				idx := rem / stride
				rem %= stride
				aOff += idx * aStrides[d]
				bOff += idx * bStrides[d]
			}
			dst[i] = av[aOff] + bv[bOff]
		}
	}, cpu.cfg)

	return result, nil
}

// broadcastStrides returns, for every dimension of outShape, the stride of
// the matching dimension in shape, or 0 where shape is broadcast.
func broadcastStrides(shape, outShape tensor.Shape) []int {
	strides := make([]int, len(outShape))
	src := shape.ComputeStrides()
	offset := len(outShape) - len(shape)
	for i := range shape {
		if shape[i] != 1 {
			strides[offset+i] = src[i]
		}
	}
	return strides
}
