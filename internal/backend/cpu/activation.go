package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/codebook/internal/parallel"
	"github.com/born-ml/codebook/internal/tensor"
)

// ReLU computes max(x, 0) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.unary("relu", x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Sigmoid computes 1 / (1 + exp(-x)) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.unary("sigmoid", x, func(v float32) float32 {
		return float32(1.0 / (1.0 + math.Exp(-float64(v))))
	})
}

func (cpu *CPUBackend) unary(op string, x *tensor.RawTensor, f func(float32) float32) (*tensor.RawTensor, error) {
	src, err := operand(op, x)
	if err != nil {
		return nil, err
	}

	result, err := tensor.NewRaw(x.Shape(), tensor.Float32)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	dst := result.AsFloat32()

	parallel.Range(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = f(src[i])
		}
	}, cpu.cfg)

	return result, nil
}
