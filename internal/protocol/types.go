// Package protocol implements the wire types and framing codec that couple
// the dispatcher and workers, grounded on
// shared/src/messages/message.rs and
// shared/src/messages_methods/messages_methods.rs of the original
// implementation this system was distilled from.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/frakt-go/frakt/internal/fractal"
)

// Point is a coordinate in the fractal plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Range is an axis-aligned rectangle; Min must be componentwise less than Max.
type Range struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Resolution is the pixel count per tile.
type Resolution struct {
	Nx uint16 `json:"nx"`
	Ny uint16 `json:"ny"`
}

// U8Data is a logical slice descriptor over the binary payload trailing the
// JSON envelope: Offset bytes to skip, Count bytes in the referenced run.
type U8Data struct {
	Offset uint32 `json:"offset"`
	Count  uint32 `json:"count"`
}

// FragmentRequest is a worker's request for its next tile.
type FragmentRequest struct {
	WorkerName      string `json:"worker_name"`
	MaximalWorkLoad uint32 `json:"maximal_work_load"`
}

// FragmentTask is the dispatcher's assignment to a worker. Id.Count is the
// server-assigned task-id length in bytes (always 16).
type FragmentTask struct {
	ID           U8Data             `json:"id"`
	Fractal      fractal.Descriptor `json:"fractal"`
	MaxIteration uint16             `json:"max_iteration"`
	Resolution   Resolution         `json:"resolution"`
	Range        Range              `json:"range"`
}

// FragmentResult is what a worker returns. Pixels.Count equals
// Resolution.Nx*Resolution.Ny; the actual id bytes and pixel bytes live in
// the binary payload trailing the JSON envelope.
type FragmentResult struct {
	ID         U8Data     `json:"id"`
	Resolution Resolution `json:"resolution"`
	Range      Range      `json:"range"`
	Pixels     U8Data     `json:"pixels"`
}

// Fragment is the tagged envelope wrapping exactly one of FragmentRequest,
// FragmentTask or FragmentResult. It serializes to a single-key JSON object
// whose key names the variant.
type Fragment struct {
	Request *FragmentRequest
	Task    *FragmentTask
	Result  *FragmentResult
}

// NewRequestFragment wraps a FragmentRequest.
func NewRequestFragment(r FragmentRequest) Fragment { return Fragment{Request: &r} }

// NewTaskFragment wraps a FragmentTask.
func NewTaskFragment(t FragmentTask) Fragment { return Fragment{Task: &t} }

// NewResultFragment wraps a FragmentResult.
func NewResultFragment(r FragmentResult) Fragment { return Fragment{Result: &r} }

// MarshalJSON renders the fragment as the single-key envelope
// {"<Variant>": <inner>}.
func (f Fragment) MarshalJSON() ([]byte, error) {
	switch {
	case f.Request != nil:
		return json.Marshal(map[string]*FragmentRequest{"FragmentRequest": f.Request})
	case f.Task != nil:
		return json.Marshal(map[string]*FragmentTask{"FragmentTask": f.Task})
	case f.Result != nil:
		return json.Marshal(map[string]*FragmentResult{"FragmentResult": f.Result})
	default:
		return nil, fmt.Errorf("protocol: empty fragment has no variant to marshal")
	}
}

// UnmarshalJSON parses the single-key envelope into a Fragment, choosing the
// variant by key.
func (f *Fragment) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("protocol: fragment envelope must have exactly one key, got %d", len(raw))
	}
	for key, inner := range raw {
		switch key {
		case "FragmentRequest":
			var r FragmentRequest
			if err := json.Unmarshal(inner, &r); err != nil {
				return fmt.Errorf("protocol: decoding FragmentRequest: %w", err)
			}
			*f = Fragment{Request: &r}
		case "FragmentTask":
			var t FragmentTask
			if err := json.Unmarshal(inner, &t); err != nil {
				return fmt.Errorf("protocol: decoding FragmentTask: %w", err)
			}
			*f = Fragment{Task: &t}
		case "FragmentResult":
			var r FragmentResult
			if err := json.Unmarshal(inner, &r); err != nil {
				return fmt.Errorf("protocol: decoding FragmentResult: %w", err)
			}
			*f = Fragment{Result: &r}
		default:
			return fmt.Errorf("protocol: unknown fragment variant %q", key)
		}
	}
	return nil
}

// Variant names the fragment's active branch, for logging.
func (f Fragment) Variant() string {
	switch {
	case f.Request != nil:
		return "FragmentRequest"
	case f.Task != nil:
		return "FragmentTask"
	case f.Result != nil:
		return "FragmentResult"
	default:
		return "empty"
	}
}
