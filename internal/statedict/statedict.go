// Package statedict holds flat, string-keyed parameter dictionaries.
//
// Keys follow the "<prefix>.<layer>.<attr>[.<subAttr>]" convention used by
// nn.Sequential. Entry order is insertion order, and JSON decoding keeps the
// order in which keys appear in the document.
package statedict

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrNotIndex is returned when a value cannot be read as 8-bit codebook indices.
var ErrNotIndex = errors.New("value is not a valid 8-bit index")

// Value is one state-dict entry.
//
// Shape is carried for producers and tooling; the loader sizes tensors from
// the model, not from Shape.
type Value struct {
	Data  []float64 `json:"data"`
	Shape []int     `json:"shape,omitempty"`
}

// Float32Value builds a Value from float32 data.
func Float32Value(data []float32, shape ...int) Value {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return Value{Data: out, Shape: shape}
}

// Uint8Value builds a Value from codebook indices.
func Uint8Value(indices []uint8, shape ...int) Value {
	out := make([]float64, len(indices))
	for i, v := range indices {
		out[i] = float64(v)
	}
	return Value{Data: out, Shape: shape}
}

// Float32s converts the data to float32, rounding to nearest.
func (v Value) Float32s() []float32 {
	out := make([]float32, len(v.Data))
	for i, x := range v.Data {
		out[i] = float32(x)
	}
	return out
}

// Uint8s converts the data to 8-bit indices.
// Every element must be an integer in [0, 255].
func (v Value) Uint8s() ([]uint8, error) {
	out := make([]uint8, len(v.Data))
	for i, x := range v.Data {
		if x < 0 || x > math.MaxUint8 || x != math.Trunc(x) {
			return nil, fmt.Errorf("%w: element %d is %v", ErrNotIndex, i, x)
		}
		out[i] = uint8(x)
	}
	return out, nil
}

// Entry is a key/value pair in dictionary order.
type Entry struct {
	Key   string
	Value Value
}

// StateDict is an insertion-ordered mapping from parameter key to Value.
// The zero value is not usable; create one with New.
type StateDict struct {
	entries *orderedmap.OrderedMap[string, Value]
}

// New creates an empty StateDict.
func New() *StateDict {
	return &StateDict{entries: orderedmap.New[string, Value]()}
}

// FromEntries creates a StateDict holding entries in the given order.
// A repeated key keeps its first position and its last value.
func FromEntries(entries ...Entry) *StateDict {
	sd := New()
	for _, e := range entries {
		sd.Set(e.Key, e.Value)
	}
	return sd
}

// Set stores v under key. Existing keys keep their position.
func (sd *StateDict) Set(key string, v Value) {
	sd.entries.Set(key, v)
}

// Get returns the value stored under key.
func (sd *StateDict) Get(key string) (Value, bool) {
	return sd.entries.Get(key)
}

// Delete removes key, reporting whether it was present.
func (sd *StateDict) Delete(key string) bool {
	_, ok := sd.entries.Delete(key)
	return ok
}

// Len returns the number of entries.
func (sd *StateDict) Len() int {
	return sd.entries.Len()
}

// Keys returns the keys in dictionary order.
func (sd *StateDict) Keys() []string {
	keys := make([]string, 0, sd.entries.Len())
	for pair := sd.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Entries returns a snapshot of the entries in dictionary order.
func (sd *StateDict) Entries() []Entry {
	entries := make([]Entry, 0, sd.entries.Len())
	for pair := sd.entries.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, Entry{Key: pair.Key, Value: pair.Value})
	}
	return entries
}

// MarshalJSON encodes the dictionary as a JSON object in dictionary order.
func (sd *StateDict) MarshalJSON() ([]byte, error) {
	return sd.entries.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object, keeping the document's key order.
func (sd *StateDict) UnmarshalJSON(data []byte) error {
	if sd.entries == nil {
		sd.entries = orderedmap.New[string, Value]()
	}
	return sd.entries.UnmarshalJSON(data)
}

// Decode reads a JSON state dictionary from r.
func Decode(r io.Reader) (*StateDict, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read state dict: %w", err)
	}

	sd := New()
	if err := json.Unmarshal(data, sd); err != nil {
		return nil, fmt.Errorf("failed to parse state dict JSON: %w", err)
	}
	return sd, nil
}

// Encode writes sd to w as JSON.
func Encode(w io.Writer, sd *StateDict) error {
	data, err := json.Marshal(sd)
	if err != nil {
		return fmt.Errorf("failed to encode state dict: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write state dict: %w", err)
	}
	return nil
}
