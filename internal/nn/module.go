// Package nn implements the inference layers and the state-dict loader.
//
// This package provides:
//   - Module interface: Forward over a tensor
//   - Parameterized: modules that own parameters (Linear)
//   - Linear: Fully connected layer
//   - Activations: ReLU, Sigmoid
//   - Sequential: Ordered container that also loads and exports state dicts
//
// Parameters are either dense float32 or codebook-quantized uint8. Quantized
// parameters are dequantized lazily by the backend during arithmetic.
package nn

import (
	"github.com/born-ml/codebook/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Forward returns a freshly allocated output and never mutates module state,
// so a loaded model can serve concurrent forward passes.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[B]) (*tensor.Tensor[B], error)
}

// Parameterized is implemented by modules that own parameters.
//
// Only parameterized modules are addressable by state-dict keys and counted
// in memory accounting; activations do not implement it.
type Parameterized[B tensor.Backend] interface {
	Module[B]

	// Parameters returns the module's parameters in a stable order.
	Parameters() []*Parameter[B]
}
