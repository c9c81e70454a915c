package fractal

import (
	"encoding/json"
	"fmt"

	"github.com/frakt-go/frakt/internal/complexnum"
)

// Kind names one of the seven fractal kernels.
type Kind string

const (
	Julia                Kind = "Julia"
	Mandelbrot           Kind = "Mandelbrot"
	IteratedSinZ         Kind = "IteratedSinZ"
	NewtonRaphsonZ3      Kind = "NewtonRaphsonZ3"
	NewtonRaphsonZ4      Kind = "NewtonRaphsonZ4"
	NovaNewtonRaphsonZ3  Kind = "NovaNewtonRaphsonZ3"
	NovaNewtonRaphsonZ4  Kind = "NovaNewtonRaphsonZ4"
)

// AllKinds lists the seven fractal kernel names accepted by the dispatcher
// CLI's --fractal flag, in a stable order.
var AllKinds = []Kind{
	Julia, Mandelbrot, IteratedSinZ,
	NewtonRaphsonZ3, NewtonRaphsonZ4,
	NovaNewtonRaphsonZ3, NovaNewtonRaphsonZ4,
}

// JuliaParams carries the Julia kernel's constant and divergence threshold.
type JuliaParams struct {
	C                        complexnum.Complex `json:"c"`
	DivergenceThresholdSquare float64           `json:"divergence_threshold_square"`
}

// IteratedSinZParams carries the IteratedSinZ kernel's multiplicative constant.
type IteratedSinZParams struct {
	C complexnum.Complex `json:"c"`
}

// Descriptor is a tagged variant naming which kernel to run and carrying its
// parameters. It serializes to a single-key JSON object whose key names the
// variant, mirroring the envelope convention used for Fragment (see
// internal/protocol).
type Descriptor struct {
	Kind  Kind
	Julia JuliaParams
	Sin   IteratedSinZParams
}

// NewJulia returns a Julia descriptor with the given constant and threshold.
func NewJulia(c complexnum.Complex, thresholdSquare float64) Descriptor {
	return Descriptor{Kind: Julia, Julia: JuliaParams{C: c, DivergenceThresholdSquare: thresholdSquare}}
}

// NewMandelbrot returns a parameterless Mandelbrot descriptor.
func NewMandelbrot() Descriptor { return Descriptor{Kind: Mandelbrot} }

// NewIteratedSinZ returns an IteratedSinZ descriptor with the given constant.
func NewIteratedSinZ(c complexnum.Complex) Descriptor {
	return Descriptor{Kind: IteratedSinZ, Sin: IteratedSinZParams{C: c}}
}

// NewNewtonRaphsonZ3 returns a parameterless NewtonRaphsonZ3 descriptor.
func NewNewtonRaphsonZ3() Descriptor { return Descriptor{Kind: NewtonRaphsonZ3} }

// NewNewtonRaphsonZ4 returns a parameterless NewtonRaphsonZ4 descriptor.
func NewNewtonRaphsonZ4() Descriptor { return Descriptor{Kind: NewtonRaphsonZ4} }

// NewNovaNewtonRaphsonZ3 returns a parameterless NovaNewtonRaphsonZ3 descriptor.
func NewNovaNewtonRaphsonZ3() Descriptor { return Descriptor{Kind: NovaNewtonRaphsonZ3} }

// NewNovaNewtonRaphsonZ4 returns a parameterless NovaNewtonRaphsonZ4 descriptor.
func NewNovaNewtonRaphsonZ4() Descriptor { return Descriptor{Kind: NovaNewtonRaphsonZ4} }

// ParseKind validates a --fractal flag value against AllKinds.
func ParseKind(name string) (Kind, error) {
	for _, k := range AllKinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown fractal %q", name)
}

// Default returns the fixed constant-parameter descriptor for a named
// fractal, matching the tile generator's constants (spec §4.3).
func Default(kind Kind) (Descriptor, error) {
	switch kind {
	case Julia:
		return NewJulia(complexnum.New(0.285, 0.013), 4.0), nil
	case Mandelbrot:
		return NewMandelbrot(), nil
	case IteratedSinZ:
		return NewIteratedSinZ(complexnum.New(1.0, 0.3)), nil
	case NewtonRaphsonZ3:
		return NewNewtonRaphsonZ3(), nil
	case NewtonRaphsonZ4:
		return NewNewtonRaphsonZ4(), nil
	case NovaNewtonRaphsonZ3:
		return NewNovaNewtonRaphsonZ3(), nil
	case NovaNewtonRaphsonZ4:
		return NewNovaNewtonRaphsonZ4(), nil
	default:
		return Descriptor{}, fmt.Errorf("unknown fractal %q", kind)
	}
}

// MarshalJSON renders the descriptor as the single-key envelope
// {"<Kind>": <params>}.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case Julia:
		return json.Marshal(map[string]JuliaParams{string(Julia): d.Julia})
	case IteratedSinZ:
		return json.Marshal(map[string]IteratedSinZParams{string(IteratedSinZ): d.Sin})
	case Mandelbrot, NewtonRaphsonZ3, NewtonRaphsonZ4, NovaNewtonRaphsonZ3, NovaNewtonRaphsonZ4:
		return json.Marshal(map[string]struct{}{string(d.Kind): {}})
	default:
		return nil, fmt.Errorf("cannot marshal fractal descriptor: unknown kind %q", d.Kind)
	}
}

// UnmarshalJSON parses the single-key envelope into a Descriptor.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("fractal descriptor must have exactly one key, got %d", len(raw))
	}
	for key, inner := range raw {
		kind := Kind(key)
		switch kind {
		case Julia:
			var p JuliaParams
			if err := json.Unmarshal(inner, &p); err != nil {
				return fmt.Errorf("decoding Julia params: %w", err)
			}
			*d = Descriptor{Kind: Julia, Julia: p}
		case IteratedSinZ:
			var p IteratedSinZParams
			if err := json.Unmarshal(inner, &p); err != nil {
				return fmt.Errorf("decoding IteratedSinZ params: %w", err)
			}
			*d = Descriptor{Kind: IteratedSinZ, Sin: p}
		case Mandelbrot, NewtonRaphsonZ3, NewtonRaphsonZ4, NovaNewtonRaphsonZ3, NovaNewtonRaphsonZ4:
			*d = Descriptor{Kind: kind}
		default:
			return fmt.Errorf("unknown fractal descriptor variant %q", key)
		}
	}
	return nil
}
