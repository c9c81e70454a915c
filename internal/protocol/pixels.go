package protocol

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/frakt-go/frakt/internal/fractal"
)

// pixelIntensitySize is the encoded byte size of one PixelIntensity: two
// big-endian f32s.
const pixelIntensitySize = 8

// EncodePixels appends the big-endian (zn, count) pairs of intensities to
// the end of buf and returns the extended slice.
func EncodePixels(buf []byte, intensities []fractal.Intensity) []byte {
	for _, i := range intensities {
		buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(i.Zn))
		buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(i.Count))
	}
	return buf
}

// DecodePixels parses a trailing pixel-intensity stream. The stream length
// must be a multiple of 8 bytes; a short remainder is a decode failure.
func DecodePixels(data []byte) ([]fractal.Intensity, error) {
	if len(data)%pixelIntensitySize != 0 {
		return nil, fmt.Errorf("protocol: pixel payload length %d is not a multiple of %d", len(data), pixelIntensitySize)
	}
	out := make([]fractal.Intensity, 0, len(data)/pixelIntensitySize)
	for off := 0; off < len(data); off += pixelIntensitySize {
		zn := math.Float32frombits(binary.BigEndian.Uint32(data[off : off+4]))
		count := math.Float32frombits(binary.BigEndian.Uint32(data[off+4 : off+8]))
		out = append(out, fractal.Intensity{Zn: zn, Count: count})
	}
	return out, nil
}
