package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/codebook/internal/nn"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		key     string
		want    nn.Key
		wantErr error
	}{
		{key: "model.0.weight", want: nn.Key{Prefix: "model", Layer: 0, Attr: "weight", Sub: nn.SubDense}},
		{key: "model.12.bias", want: nn.Key{Prefix: "model", Layer: 12, Attr: "bias", Sub: nn.SubDense}},
		{key: "model.0.weight.codebook", want: nn.Key{Prefix: "model", Layer: 0, Attr: "weight", Sub: nn.SubCodebook}},
		{key: "model.4.bias.indexes", want: nn.Key{Prefix: "model", Layer: 4, Attr: "bias", Sub: nn.SubIndexes}},
		{key: "model.2.weight.weights", want: nn.Key{Prefix: "model", Layer: 2, Attr: "weight", Sub: nn.SubDense}},
		{key: "net.1.gamma.scales", want: nn.Key{Prefix: "net", Layer: 1, Attr: "gamma", Sub: "scales"}},
		{key: "model", wantErr: nn.ErrMalformedKey},
		{key: "model.0", wantErr: nn.ErrMalformedKey},
		{key: "model.0.weight.codebook.extra", wantErr: nn.ErrMalformedKey},
		{key: "", wantErr: nn.ErrMalformedKey},
		{key: "model.a.weight", wantErr: nn.ErrInvalidKey},
		{key: "model.-1.weight", wantErr: nn.ErrInvalidKey},
		{key: "model.+1.weight", wantErr: nn.ErrInvalidKey},
		{key: "model..weight", wantErr: nn.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := nn.ParseKey(tt.key)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var keyErr *nn.KeyError
				require.ErrorAs(t, err, &keyErr)
				assert.Equal(t, tt.key, keyErr.Key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "model.0.weight", nn.Key{Prefix: "model", Attr: "weight"}.String())
	assert.Equal(t, "model.3.bias.codebook", nn.Key{Prefix: "model", Layer: 3, Attr: "bias", Sub: nn.SubCodebook}.String())

	k, err := nn.ParseKey("model.2.weight.weights")
	require.NoError(t, err)
	assert.Equal(t, "model.2.weight", k.String())
}
