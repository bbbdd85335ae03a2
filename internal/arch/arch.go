// Package arch parses textual model descriptions and builds them into
// Sequential models.
//
// A description is a comma-separated list of layers:
//
//	linear(1,10),relu,linear(10,10),relu,linear(10,1),sigmoid
//
// Layer names are case-insensitive and whitespace around tokens is ignored.
package arch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/codebook/internal/nn"
	"github.com/born-ml/codebook/internal/tensor"
)

// Errors returned by Parse.
var (
	ErrSyntax       = errors.New("arch: syntax error")
	ErrUnknownLayer = errors.New("arch: unknown layer")
	ErrShape        = errors.New("arch: inconsistent layer sizes")
)

// Kind identifies a layer type.
type Kind string

// Supported layer kinds.
const (
	KindLinear  Kind = "linear"
	KindReLU    Kind = "relu"
	KindSigmoid Kind = "sigmoid"
)

// Layer is one parsed layer. In and Out are set for KindLinear only.
type Layer struct {
	Kind Kind
	In   int
	Out  int
}

// String formats the layer in description syntax.
func (l Layer) String() string {
	if l.Kind == KindLinear {
		return fmt.Sprintf("linear(%d,%d)", l.In, l.Out)
	}
	return string(l.Kind)
}

// Arch is a parsed model description.
type Arch []Layer

// String formats the description back into its canonical form.
func (a Arch) String() string {
	parts := make([]string, len(a))
	for i, l := range a {
		parts[i] = l.String()
	}
	return strings.Join(parts, ",")
}

// InFeatures returns the input width of the first linear layer, or 0.
func (a Arch) InFeatures() int {
	for _, l := range a {
		if l.Kind == KindLinear {
			return l.In
		}
	}
	return 0
}

// Parse parses a model description.
//
// Adjacent linear layers must agree on their shared dimension; activations
// in between do not change it.
func Parse(s string) (Arch, error) {
	tokens, err := split(s)
	if err != nil {
		return nil, err
	}

	var (
		arch Arch
		prev = -1
	)
	for _, tok := range tokens {
		l, err := parseLayer(tok)
		if err != nil {
			return nil, err
		}
		if l.Kind == KindLinear {
			if prev >= 0 && l.In != prev {
				return nil, fmt.Errorf("%w: %s follows a layer with %d outputs", ErrShape, l, prev)
			}
			prev = l.Out
		}
		arch = append(arch, l)
	}

	return arch, nil
}

// split breaks s on commas that are not inside parentheses.
func split(s string) ([]string, error) {
	var (
		tokens []string
		depth  int
		start  int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
			if depth > 1 {
				return nil, fmt.Errorf("%w: nested parenthesis at offset %d", ErrSyntax, i)
			}
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced parenthesis at offset %d", ErrSyntax, i)
			}
		case ',':
			if depth == 0 {
				tokens = append(tokens, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unclosed parenthesis", ErrSyntax)
	}
	tokens = append(tokens, strings.TrimSpace(s[start:]))

	for i, tok := range tokens {
		if tok == "" {
			return nil, fmt.Errorf("%w: empty layer at position %d", ErrSyntax, i)
		}
	}
	return tokens, nil
}

func parseLayer(tok string) (Layer, error) {
	name, args, hasArgs := strings.Cut(tok, "(")
	name = strings.ToLower(strings.TrimSpace(name))

	switch Kind(name) {
	case KindReLU, KindSigmoid:
		if hasArgs {
			return Layer{}, fmt.Errorf("%w: %s takes no arguments", ErrSyntax, name)
		}
		return Layer{Kind: Kind(name)}, nil

	case KindLinear:
		if !hasArgs || !strings.HasSuffix(args, ")") {
			return Layer{}, fmt.Errorf("%w: %q, want linear(in,out)", ErrSyntax, tok)
		}
		in, out, ok := strings.Cut(strings.TrimSuffix(args, ")"), ",")
		if !ok {
			return Layer{}, fmt.Errorf("%w: %q, want linear(in,out)", ErrSyntax, tok)
		}
		inFeatures, err := positive(in)
		if err != nil {
			return Layer{}, fmt.Errorf("%w: %q: in features: %w", ErrSyntax, tok, err)
		}
		outFeatures, err := positive(out)
		if err != nil {
			return Layer{}, fmt.Errorf("%w: %q: out features: %w", ErrSyntax, tok, err)
		}
		return Layer{Kind: KindLinear, In: inFeatures, Out: outFeatures}, nil

	default:
		return Layer{}, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
}

func positive(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d is not positive", n)
	}
	return n, nil
}

// Build instantiates the description as a zero-initialized model.
func Build[B tensor.Backend](a Arch, backend B) *nn.Sequential[B] {
	modules := make([]nn.Module[B], 0, len(a))
	for _, l := range a {
		switch l.Kind {
		case KindLinear:
			modules = append(modules, nn.NewLinear(l.In, l.Out, backend))
		case KindReLU:
			modules = append(modules, nn.NewReLU[B]())
		case KindSigmoid:
			modules = append(modules, nn.NewSigmoid[B]())
		}
	}
	return nn.NewSequential(modules...)
}
