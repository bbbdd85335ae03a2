// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU compute backend.
package cpu

import (
	internalcpu "github.com/born-ml/codebook/internal/backend/cpu"
	"github.com/born-ml/codebook/internal/parallel"
	"github.com/born-ml/codebook/tensor"
)

// Backend represents the CPU backend implementation.
//
// Matrix products use gonum's BLAS; quantized operands are dequantized
// through their codebooks as they are read.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Config controls how elementwise kernels are split across goroutines.
type Config = parallel.Config

// DefaultConfig returns the default parallel configuration.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.Zeros(tensor.Shape{2, 3}, backend)
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}
