// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor API.
//
// Tensors carry a runtime dtype: Float32 for dense values, or Uint8 for
// indices into a Float32 codebook of shape [K, 1]. Quantized tensors are
// dequantized lazily by the backend whenever they take part in arithmetic.
//
//	import (
//	    "github.com/born-ml/codebook/tensor"
//	    "github.com/born-ml/codebook/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
//	    xt, _ := x.Transpose()
//	    y, _ := x.MatMul(xt)
//	}
package tensor
