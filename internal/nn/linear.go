package nn

import (
	"fmt"

	"github.com/born-ml/codebook/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b.T
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias column with shape [out_features, 1]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weight and bias start as zero-filled dense tensors and are expected to be
// overwritten by Sequential.LoadStateDict before use.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(784, 128, backend)
//	output, err := layer.Forward(input) // [32, 784] -> [32, 128]
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B] // [out_features, in_features]
	bias        *Parameter[B] // [out_features, 1]
}

// NewLinear creates a new Linear layer.
//
// Panics if inFeatures or outFeatures is not positive.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("NewLinear: features must be positive, got in=%d out=%d", inFeatures, outFeatures))
	}

	weightTensor, err := tensor.Zeros(tensor.Shape{outFeatures, inFeatures}, backend)
	if err != nil {
		panic(fmt.Sprintf("NewLinear: %v", err))
	}
	biasTensor, err := tensor.Zeros(tensor.Shape{outFeatures, 1}, backend)
	if err != nil {
		panic(fmt.Sprintf("NewLinear: %v", err))
	}

	return &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter(AttrWeight, weightTensor),
		bias:        NewParameter(AttrBias, biasTensor),
	}
}

// Forward computes the output of the linear layer.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
//
// Returns ErrShapeMismatch if the input is not 2D or its trailing dimension
// is not in_features.
func (l *Linear[B]) Forward(input *tensor.Tensor[B]) (*tensor.Tensor[B], error) {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		return nil, fmt.Errorf("linear: %w: expected 2D input [batch, features], got shape %v",
			ErrShapeMismatch, inputShape)
	}
	if inputShape[1] != l.inFeatures {
		return nil, fmt.Errorf("linear: %w: expected input with %d features, got %d",
			ErrShapeMismatch, l.inFeatures, inputShape[1])
	}

	// W.T: [in_features, out_features], still quantized if W is.
	wT, err := l.weight.Tensor().Transpose()
	if err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}

	output, err := input.MatMul(wT)
	if err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}

	// b.T: [1, out_features], broadcast over the batch.
	bT, err := l.bias.Tensor().Transpose()
	if err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}

	output, err = output.Add(bT)
	if err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}
	return output, nil
}

// Parameters returns [weight, bias].
func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[B]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[B]) OutFeatures() int {
	return l.outFeatures
}

// String describes the layer.
func (l *Linear[B]) String() string {
	return fmt.Sprintf("Linear(in=%d, out=%d)", l.inFeatures, l.outFeatures)
}
