package nn

import (
	"fmt"

	"github.com/born-ml/codebook/internal/statedict"
)

// StateDict exports the current parameters using the loader's key protocol.
//
// Dense parameters become "<prefix>.<i>.<attr>"; quantized ones become a
// "<prefix>.<i>.<attr>.codebook" entry followed by "<prefix>.<i>.<attr>.indexes".
// Loading the result back requires LoadOptions.CodebookSize to match the
// exported codebook length.
func (s *Sequential[B]) StateDict(prefix string) (*statedict.StateDict, error) {
	sd := statedict.New()

	for i, module := range s.modules {
		p, ok := module.(Parameterized[B])
		if !ok {
			continue
		}

		for _, param := range p.Parameters() {
			raw := param.Tensor().Raw()
			key := Key{Prefix: prefix, Layer: i, Attr: param.Name()}
			shape := []int(raw.Shape())

			if !raw.Quantized() {
				sd.Set(key.String(), statedict.Float32Value(raw.AsFloat32(), shape...))
				continue
			}

			cb := raw.Codebook()
			if cb == nil {
				return nil, fmt.Errorf("export %s: %w", key, ErrMissingCodebook)
			}
			key.Sub = SubCodebook
			sd.Set(key.String(), statedict.Float32Value(cb.AsFloat32(), []int(cb.Shape())...))
			key.Sub = SubIndexes
			sd.Set(key.String(), statedict.Uint8Value(raw.AsUint8(), shape...))
		}
	}

	return sd, nil
}
