package tensor

// Backend defines the arithmetic a compute backend provides to the layers.
//
// Operands may be quantized: whenever a Uint8 tensor with a codebook is an
// input, the backend dequantizes it element by element before computing.
// Results are always dense Float32, except Transpose, which keeps the input
// dtype and codebook so quantized weights stay quantized until they meet a
// MatMul.
type Backend interface {
	// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
	MatMul(a, b *RawTensor) (*RawTensor, error)

	// Add performs element-wise addition with NumPy-style broadcasting.
	Add(a, b *RawTensor) (*RawTensor, error)

	// Transpose swaps the two axes of a 2D tensor.
	Transpose(t *RawTensor) (*RawTensor, error)

	// ReLU computes max(x, 0) element-wise.
	ReLU(x *RawTensor) (*RawTensor, error)

	// Sigmoid computes 1 / (1 + exp(-x)) element-wise.
	Sigmoid(x *RawTensor) (*RawTensor, error)

	// Name returns a short backend identifier.
	Name() string
}
