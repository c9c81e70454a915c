package tiles

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frakt-go/frakt/internal/fractal"
)

func TestGenerateProducesSixteenTiles(t *testing.T) {
	for _, kind := range fractal.AllKinds {
		tasks, err := Generate(kind)
		require.NoError(t, err)
		assert.Len(t, tasks, Count)
		for _, task := range tasks {
			assert.Equal(t, uint16(TileResolution), task.Resolution.Nx)
			assert.Equal(t, uint16(TileResolution), task.Resolution.Ny)
			assert.Equal(t, uint16(MaxIteration), task.MaxIteration)
		}
	}
}

// TestTilePartitionExactCover checks spec property 3: the 16 tile ranges
// exactly cover [-1.2,1.2]^2 with no overlap and no gap, modulo f64
// rounding.
func TestTilePartitionExactCover(t *testing.T) {
	tasks, err := Generate(fractal.Mandelbrot)
	require.NoError(t, err)

	const eps = 1e-12

	xs := map[float64]bool{}
	ys := map[float64]bool{}
	for _, task := range tasks {
		xs[round(task.Range.Min.X)] = true
		xs[round(task.Range.Max.X)] = true
		ys[round(task.Range.Min.Y)] = true
		ys[round(task.Range.Max.Y)] = true

		assert.InDelta(t, TileWidth, task.Range.Max.X-task.Range.Min.X, eps)
		assert.InDelta(t, TileWidth, task.Range.Max.Y-task.Range.Min.Y, eps)
		assert.GreaterOrEqual(t, task.Range.Min.X, PlaneMin-eps)
		assert.LessOrEqual(t, task.Range.Max.X, PlaneMax+eps)
		assert.GreaterOrEqual(t, task.Range.Min.Y, PlaneMin-eps)
		assert.LessOrEqual(t, task.Range.Max.Y, PlaneMax+eps)
	}

	// GridSize+1 distinct grid lines on each axis, from PlaneMin to PlaneMax.
	assert.Len(t, xs, GridSize+1)
	assert.Len(t, ys, GridSize+1)
}

func round(x float64) float64 {
	return math.Round(x*1e12) / 1e12
}
