package nn

import (
	"github.com/born-ml/codebook/internal/tensor"
)

// Parameter is a named tensor owned by a layer (e.g. "weight", "bias").
//
// The tensor identity never changes after construction; the loader rewrites
// its buffer, dtype and codebook in place.
type Parameter[B tensor.Backend] struct {
	name   string            // Attribute name used in state-dict keys
	tensor *tensor.Tensor[B] // The parameter tensor
}

// NewParameter creates a new parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[B] {
	return p.tensor
}

// Bytes returns the size of the parameter's raw data buffer.
func (p *Parameter[B]) Bytes() int {
	return p.tensor.Bytes()
}

// Quantized reports whether the parameter stores codebook indices.
func (p *Parameter[B]) Quantized() bool {
	return p.tensor.Raw().Quantized()
}
