package nn

import (
	"context"
	"fmt"

	"github.com/born-ml/codebook/internal/parallel"
	"github.com/born-ml/codebook/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input. The module list is
// fixed at construction; parameters change only through LoadStateDict.
//
// Example:
//
//	model := nn.NewSequential[*cpu.CPUBackend](
//	    nn.NewLinear(784, 128, backend),
//	    nn.NewReLU[*cpu.CPUBackend](),
//	    nn.NewLinear(128, 10, backend),
//	)
//
//	if err := model.LoadStateDict(sd, nn.DefaultLoadOptions()); err != nil { ... }
//	output, err := model.Forward(input)
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{
		modules: append([]Module[B](nil), modules...),
	}
}

// Forward applies all modules in sequence.
//
// The first failing module aborts the pass; no partial output is returned.
func (s *Sequential[B]) Forward(input *tensor.Tensor[B]) (*tensor.Tensor[B], error) {
	output := input

	for i, module := range s.modules {
		var err error
		output, err = module.Forward(output)
		if err != nil {
			return nil, fmt.Errorf("module %d: %w", i, err)
		}
	}

	return output, nil
}

// ForwardBatch runs Forward on every input concurrently using at most
// workers goroutines (all CPUs if workers <= 0).
//
// Outputs are returned in input order. Must not overlap a LoadStateDict call
// on the same model.
func (s *Sequential[B]) ForwardBatch(ctx context.Context, inputs []*tensor.Tensor[B], workers int) ([]*tensor.Tensor[B], error) {
	outputs := make([]*tensor.Tensor[B], len(inputs))

	err := parallel.Do(ctx, len(inputs), workers, func(_ context.Context, i int) error {
		out, err := s.Forward(inputs[i])
		if err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
		outputs[i] = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	return outputs, nil
}

// Parameters returns the parameters of every parameterized module, in
// module order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]

	for _, module := range s.modules {
		if p, ok := module.(Parameterized[B]); ok {
			params = append(params, p.Parameters()...)
		}
	}

	return params
}

// Bytes returns the total raw buffer size of all parameters.
//
// Codebooks are excluded, so a quantized weight counts one byte per element.
func (s *Sequential[B]) Bytes() int {
	total := 0
	for _, p := range s.Parameters() {
		total += p.Bytes()
	}
	return total
}

// SizeInMegabytes returns Bytes() in MiB.
func (s *Sequential[B]) SizeInMegabytes() float64 {
	return float64(s.Bytes()) / (1024 * 1024)
}

// Len returns the number of modules in the sequence.
func (s *Sequential[B]) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[B]) Module(index int) Module[B] {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}
