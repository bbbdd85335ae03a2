// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides feed-forward layers and the state-dict loader.
//
// # Layers
//
// Linear computes y = x @ W.T + b.T with W of shape [out, in] and b of shape
// [out, 1]. ReLU and Sigmoid are stateless. Sequential chains modules.
//
//	backend := cpu.New()
//	model := nn.NewSequential[*cpu.Backend](
//	    nn.NewLinear(1, 10, backend),
//	    nn.NewReLU[*cpu.Backend](),
//	    nn.NewLinear(10, 1, backend),
//	)
//
// # State dicts
//
// Parameters are addressed by keys of the form
// "<prefix>.<layer>.<attr>[.<sub>]" where attr is "weight" or "bias" and sub
// is "codebook", "indexes" or "weights" (the latter meaning dense):
//
//	model.0.weight            dense float32 values
//	model.0.weight.codebook   float32 codebook of CodebookSize entries
//	model.0.weight.indexes    8-bit indices into that codebook
//
// LoadStateDict applies codebooks before indexes and dense values last, so
// dictionary order does not matter.
//
//	sd, _ := statedict.Decode(f)
//	err := model.LoadStateDict(sd, nn.DefaultLoadOptions())
package nn
