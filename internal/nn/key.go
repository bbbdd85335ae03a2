package nn

import (
	"strconv"
	"strings"
)

// Attribute names addressable by state-dict keys.
const (
	AttrWeight = "weight"
	AttrBias   = "bias"
)

// SubAttr selects which part of an attribute a state-dict entry carries.
type SubAttr string

// Sub-attributes. SubDense is the bare "<attr>" form; the explicit
// "<attr>.weights" marker parses to SubDense as well.
const (
	SubDense    SubAttr = ""
	SubCodebook SubAttr = "codebook"
	SubIndexes  SubAttr = "indexes"

	subWeightsMarker = "weights"
)

// Key is a parsed state-dict key of the form "<prefix>.<layer>.<attr>[.<sub>]".
type Key struct {
	Prefix string  // Leading segment, e.g. "model"
	Layer  int     // Index into Sequential's modules
	Attr   string  // "weight" or "bias" for addressable keys
	Sub    SubAttr // SubDense, SubCodebook, SubIndexes, or an unrecognized value
}

// ParseKey splits a state-dict key on '.'.
//
// Keys with 3 segments carry no sub-attribute; keys with 4 segments do, with
// "weights" normalized to SubDense. Any other segment count fails with
// ErrMalformedKey. A layer segment that is not a non-negative integer fails
// with ErrInvalidKey.
//
//	"model.0.weight"          -> {model 0 weight ""}
//	"model.0.weight.codebook" -> {model 0 weight codebook}
//	"model.2.bias.weights"    -> {model 2 bias ""}
func ParseKey(key string) (Key, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 3 && len(parts) != 4 {
		return Key{}, keyError(key, ErrMalformedKey, "expected 3 or 4 dot-separated segments, got %d", len(parts))
	}

	layer, err := strconv.Atoi(parts[1])
	if err != nil || layer < 0 || strings.HasPrefix(parts[1], "+") {
		return Key{}, keyError(key, ErrInvalidKey, "layer index %q is not a non-negative integer", parts[1])
	}

	k := Key{
		Prefix: parts[0],
		Layer:  layer,
		Attr:   parts[2],
		Sub:    SubDense,
	}
	if len(parts) == 4 && parts[3] != subWeightsMarker {
		k.Sub = SubAttr(parts[3])
	}
	return k, nil
}

// String formats the key back into its canonical dotted form.
// The "weights" marker is not reproduced.
func (k Key) String() string {
	s := k.Prefix + "." + strconv.Itoa(k.Layer) + "." + k.Attr
	if k.Sub != SubDense {
		s += "." + string(k.Sub)
	}
	return s
}

// known reports whether the loader has an assignment for this attr/sub pair.
func (k Key) known() bool {
	if k.Attr != AttrWeight && k.Attr != AttrBias {
		return false
	}
	switch k.Sub {
	case SubDense, SubCodebook, SubIndexes:
		return true
	default:
		return false
	}
}
