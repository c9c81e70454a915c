package protocol

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frakt-go/frakt/internal/complexnum"
	"github.com/frakt-go/frakt/internal/fractal"
)

func sampleTask() FragmentTask {
	return FragmentTask{
		ID:           U8Data{Offset: 0, Count: 16},
		Fractal:      fractal.NewJulia(complexnum.New(0.285, 0.013), 4.0),
		MaxIteration: 64,
		Resolution:   Resolution{Nx: 300, Ny: 300},
		Range:        Range{Min: Point{X: -1.2, Y: -1.2}, Max: Point{X: -0.6, Y: -0.6}},
	}
}

func TestFramingRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		f       Fragment
		payload []byte
	}{
		{"request", NewRequestFragment(FragmentRequest{WorkerName: "w1", MaximalWorkLoad: 10}), nil},
		{"task", NewTaskFragment(sampleTask()), []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"result", NewResultFragment(FragmentResult{
			ID:         U8Data{Offset: 0, Count: 16},
			Resolution: Resolution{Nx: 1, Ny: 1},
			Range:      Range{Min: Point{X: -1.2, Y: -1.2}, Max: Point{X: -0.6, Y: -0.6}},
			Pixels:     U8Data{Offset: 16, Count: 1},
		}), append(make([]byte, 16), []byte{0, 0, 0, 0, 0, 0, 0, 0}...)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Send(&buf, tc.f, tc.payload))

			got, payload, err := Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, tc.payload, payload)
			assert.Equal(t, tc.f.Variant(), got.Variant())
		})
	}
}

func TestEnvelopeHasExactlyOneKey(t *testing.T) {
	f := NewRequestFragment(FragmentRequest{WorkerName: "w1", MaximalWorkLoad: 10})
	data, err := json.Marshal(f)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 1)
	_, ok := raw["FragmentRequest"]
	assert.True(t, ok)
}

func TestFramingRejectsJSONSizeExceedingTotal(t *testing.T) {
	var header [8]byte
	header[3] = 10 // total_size = 10
	header[7] = 20 // json_size = 20
	buf := bytes.NewBuffer(header[:])

	_, _, err := Read(buf)
	assert.Error(t, err)
}

func TestDecodePixelsRejectsShortPayload(t *testing.T) {
	_, err := DecodePixels([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestEncodeDecodePixelsRoundTrip(t *testing.T) {
	want := []fractal.Intensity{{Zn: 0.5, Count: 0.25}, {Zn: 1, Count: 1}}
	encoded := EncodePixels(nil, want)
	got, err := DecodePixels(encoded)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
