package nn

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/born-ml/codebook/internal/logutil"
	"github.com/born-ml/codebook/internal/statedict"
	"github.com/born-ml/codebook/internal/tensor"
)

// DefaultCodebookSize is the codebook length assumed when
// LoadOptions.CodebookSize is zero.
const DefaultCodebookSize = 256

// ErrCodebookIndex is returned when an index buffer addresses an entry past
// the end of the attached codebook.
var ErrCodebookIndex = tensor.ErrIndexOutOfRange

// LoadOptions configures LoadStateDict.
type LoadOptions struct {
	CodebookSize int          // Entries per codebook (0 means DefaultCodebookSize)
	Strict       bool         // Fail on malformed or unrecognized keys instead of skipping them
	Logger       *slog.Logger // Defaults to slog.Default()
}

// DefaultLoadOptions returns the lenient defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{CodebookSize: DefaultCodebookSize}
}

func (o LoadOptions) codebookSize() int {
	if o.CodebookSize <= 0 {
		return DefaultCodebookSize
	}
	return o.CodebookSize
}

func (o LoadOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// loadPass orders the application of entries. Codebooks must be attached
// before the index buffers that refer to them.
type loadPass int

const (
	passCodebook loadPass = iota
	passIndexes
	passDense
)

var loadPasses = []loadPass{passCodebook, passIndexes, passDense}

func passOf(sub SubAttr) loadPass {
	switch sub {
	case SubCodebook:
		return passCodebook
	case SubIndexes:
		return passIndexes
	default:
		return passDense
	}
}

// pendingEntry is a resolved state-dict entry waiting for its pass.
type pendingEntry[B tensor.Backend] struct {
	raw   string
	key   Key
	param *Parameter[B]
	value statedict.Value
}

// LoadStateDict assigns parameters from sd.
//
// Keys are resolved up front: a non-numeric layer index, a layer index past
// the end of the model or a key addressing a module without parameters fails
// before anything is written. Malformed keys and unrecognized attr/sub pairs
// are skipped unless opts.Strict is set.
//
// Entries are then applied in three passes regardless of dictionary order:
// all codebooks, then all index buffers, then dense values. Within a pass the
// dictionary order is kept. Each entry is validated before it is written, so
// a failing entry leaves its target and all earlier entries intact; loading
// stops at the first failure.
func (s *Sequential[B]) LoadStateDict(sd *statedict.StateDict, opts LoadOptions) error {
	log := opts.logger()

	var pending []pendingEntry[B]
	for _, e := range sd.Entries() {
		k, err := ParseKey(e.Key)
		if err != nil {
			if errors.Is(err, ErrMalformedKey) && !opts.Strict {
				log.Debug("skipping malformed state dict key", "key", e.Key)
				continue
			}
			return err
		}

		if k.Layer >= len(s.modules) {
			return keyError(e.Key, ErrIndexOutOfRange, "layer %d of a %d-module model", k.Layer, len(s.modules))
		}

		if !k.known() {
			if opts.Strict {
				return keyError(e.Key, ErrUnknownKey, "no assignment for attr %q sub %q", k.Attr, k.Sub)
			}
			log.Debug("skipping unrecognized state dict key", "key", e.Key)
			continue
		}

		param, err := s.resolve(e.Key, k)
		if err != nil {
			return err
		}
		pending = append(pending, pendingEntry[B]{raw: e.Key, key: k, param: param, value: e.Value})
	}

	for _, pass := range loadPasses {
		for _, p := range pending {
			if passOf(p.key.Sub) != pass {
				continue
			}
			if err := s.apply(p, opts); err != nil {
				return err
			}
			logutil.Trace(log, "applied state dict entry", "key", p.raw, "sub", string(p.key.Sub), "values", len(p.value.Data))
		}
	}

	return nil
}

// Load assigns a single state-dict entry.
func (s *Sequential[B]) Load(key string, value statedict.Value, opts LoadOptions) error {
	return s.LoadStateDict(statedict.FromEntries(statedict.Entry{Key: key, Value: value}), opts)
}

// resolve finds the parameter a key addresses.
func (s *Sequential[B]) resolve(raw string, k Key) (*Parameter[B], error) {
	module, ok := s.modules[k.Layer].(Parameterized[B])
	if !ok {
		return nil, keyError(raw, ErrInvalidKey, "module %d (%T) has no parameters", k.Layer, s.modules[k.Layer])
	}

	for _, p := range module.Parameters() {
		if p.Name() == k.Attr {
			return p, nil
		}
	}
	return nil, keyError(raw, ErrInvalidKey, "module %d has no parameter %q", k.Layer, k.Attr)
}

// apply validates one entry against its target and then writes it.
func (s *Sequential[B]) apply(p pendingEntry[B], opts LoadOptions) error {
	t := p.param.Tensor().Raw()

	switch p.key.Sub {
	case SubDense:
		values := p.value.Float32s()
		if len(values) != t.NumElements() {
			return keyError(p.raw, ErrShapeMismatch, "%s of shape %v needs %d values, got %d",
				p.key.Attr, t.Shape(), t.NumElements(), len(values))
		}
		if err := t.SetFloat32(values); err != nil {
			return &KeyError{Key: p.raw, Err: err}
		}

	case SubCodebook:
		size := opts.codebookSize()
		values := p.value.Float32s()
		if len(values) != size {
			return keyError(p.raw, ErrShapeMismatch, "codebook needs %d values, got %d", size, len(values))
		}
		cb, err := tensor.RawFromFloat32(values, tensor.Shape{size, 1})
		if err != nil {
			return &KeyError{Key: p.raw, Err: err}
		}
		if err := t.SetCodebook(cb); err != nil {
			return &KeyError{Key: p.raw, Err: err}
		}

	case SubIndexes:
		indices, err := p.value.Uint8s()
		if err != nil {
			return &KeyError{Key: p.raw, Err: err}
		}
		if len(indices) != t.NumElements() {
			return keyError(p.raw, ErrShapeMismatch, "%s of shape %v needs %d indexes, got %d",
				p.key.Attr, t.Shape(), t.NumElements(), len(indices))
		}
		cb := t.Codebook()
		if cb == nil {
			return keyError(p.raw, ErrMissingCodebook, "no codebook loaded for %s", p.key.Attr)
		}
		entries := cb.NumElements()
		for i, idx := range indices {
			if int(idx) >= entries {
				return keyError(p.raw, ErrCodebookIndex, "element %d indexes entry %d of a %d-entry codebook",
					i, idx, entries)
			}
		}
		if err := t.SetUint8(indices); err != nil {
			return &KeyError{Key: p.raw, Err: err}
		}

	default:
		return fmt.Errorf("nn: unhandled sub-attribute %q", p.key.Sub)
	}

	return nil
}
