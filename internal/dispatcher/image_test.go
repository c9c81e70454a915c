package dispatcher

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frakt-go/frakt/internal/fractal"
	"github.com/frakt-go/frakt/internal/protocol"
)

func TestBlitPlacesTileAtPlaneOrigin(t *testing.T) {
	b := newBuffer()

	rng := protocol.Range{
		Min: protocol.Point{X: -1.2, Y: -1.2},
		Max: protocol.Point{X: -0.6, Y: -0.6},
	}
	res := protocol.Resolution{Nx: 2, Ny: 2}
	intensities := []fractal.Intensity{
		{Zn: 1.0, Count: 1},
		{Zn: 0.0, Count: 1},
		{Zn: 0.0, Count: 1},
		{Zn: 0.0, Count: 1},
	}

	b.blit(rng, res, intensities)

	want := fractal.Color(1.0)
	got := b.img.RGBAAt(0, 0)
	assert.Equal(t, want[0], got.R)
	assert.Equal(t, want[1], got.G)
	assert.Equal(t, want[2], got.B)
	assert.Equal(t, uint8(255), got.A)

	other := fractal.Color(0.0)
	gotOther := b.img.RGBAAt(1, 0)
	assert.Equal(t, other[0], gotOther.R)
}

func TestBlitOffsetsLaterTiles(t *testing.T) {
	b := newBuffer()

	// A tile starting halfway across the plane should land away from the
	// origin pixel.
	rng := protocol.Range{
		Min: protocol.Point{X: 0.0, Y: 0.0},
		Max: protocol.Point{X: 0.6, Y: 0.6},
	}
	res := protocol.Resolution{Nx: 1, Ny: 1}
	b.blit(rng, res, []fractal.Intensity{{Zn: 0.5, Count: 1}})

	wantX := int((0.0 + 1.2) / planeWidth * ImageSize)
	wantY := int((0.0 + 1.2) / planeWidth * ImageSize)
	assert.NotEqual(t, 0, wantX)

	got := b.img.RGBAAt(wantX, wantY)
	want := fractal.Color(0.5)
	assert.Equal(t, want[0], got.R)
}

func TestResetClearsPixels(t *testing.T) {
	b := newBuffer()
	b.blit(
		protocol.Range{Min: protocol.Point{X: -1.2, Y: -1.2}},
		protocol.Resolution{Nx: 1, Ny: 1},
		[]fractal.Intensity{{Zn: 1.0, Count: 1}},
	)
	b.reset()

	got := b.img.RGBAAt(0, 0)
	assert.Equal(t, uint8(0), got.A)
}

func TestSaveWritesReadablePNG(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	b := newBuffer()
	b.blit(
		protocol.Range{Min: protocol.Point{X: -1.2, Y: -1.2}},
		protocol.Resolution{Nx: 1, Ny: 1},
		[]fractal.Intensity{{Zn: 1.0, Count: 1}},
	)

	path, err := b.save("Mandelbrot")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("images", "server", "fullMandelbrot.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, ImageSize, decoded.Bounds().Dx())
	assert.Equal(t, ImageSize, decoded.Bounds().Dy())
}
