package worker

import (
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frakt-go/frakt/internal/fractal"
	"github.com/frakt-go/frakt/internal/protocol"
)

func TestFoldWrapsIntoUnitInterval(t *testing.T) {
	cases := []float64{-1, -0.5, 0, 0.25, 0.5, 1, 2.3}
	for _, v := range cases {
		got := fold(v)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 1.0)
	}
}

func TestSaveTileImageWritesReadablePNG(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	task := protocol.FragmentTask{
		Resolution: protocol.Resolution{Nx: 2, Ny: 2},
	}
	intensities := []fractal.Intensity{
		{Zn: 0.1, Count: 1},
		{Zn: 0.2, Count: 1},
		{Zn: 0.3, Count: 1},
		{Zn: 0.4, Count: 1},
	}

	path, err := saveTileImage(fractal.Mandelbrot, task, intensities)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.Bounds().Dx())
	assert.Equal(t, 2, decoded.Bounds().Dy())
}
