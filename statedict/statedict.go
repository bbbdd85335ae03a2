// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package statedict provides the ordered, JSON-backed state dictionary
// consumed by nn.Sequential.LoadStateDict.
package statedict

import (
	"io"

	"github.com/born-ml/codebook/internal/statedict"
)

// StateDict maps parameter keys to values in insertion order.
type StateDict = statedict.StateDict

// Value is one entry's payload.
type Value = statedict.Value

// Entry is a key/value pair.
type Entry = statedict.Entry

// ErrNotIndex is returned when a value cannot be read as 8-bit indices.
var ErrNotIndex = statedict.ErrNotIndex

// New returns an empty StateDict.
func New() *StateDict {
	return statedict.New()
}

// FromEntries builds a StateDict holding entries in order.
func FromEntries(entries ...Entry) *StateDict {
	return statedict.FromEntries(entries...)
}

// Float32Value builds a Value from float32 data.
func Float32Value(data []float32, shape ...int) Value {
	return statedict.Float32Value(data, shape...)
}

// Uint8Value builds a Value from codebook indices.
func Uint8Value(indices []uint8, shape ...int) Value {
	return statedict.Uint8Value(indices, shape...)
}

// Decode reads a JSON state dict, keeping key order.
func Decode(r io.Reader) (*StateDict, error) {
	return statedict.Decode(r)
}

// Encode writes sd as JSON.
func Encode(w io.Writer, sd *StateDict) error {
	return statedict.Encode(w, sd)
}
