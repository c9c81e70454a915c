package fractal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frakt-go/frakt/internal/complexnum"
)

func TestKernelBoundsInUnitInterval(t *testing.T) {
	points := []complexnum.Complex{
		complexnum.New(0, 0),
		complexnum.New(0.5, 0.5),
		complexnum.New(-1, 1),
		complexnum.New(2, -2),
	}
	kinds := AllKinds
	for _, kind := range kinds {
		d, err := Default(kind)
		require.NoError(t, err)
		for _, p := range points {
			i := Compute(d, p, 64)
			assert.GreaterOrEqualf(t, i.Count, float32(0), "%s count", kind)
			assert.LessOrEqualf(t, i.Count, float32(1), "%s count", kind)
		}
	}
}

func TestMandelbrotCardioidNeverEscapes(t *testing.T) {
	// The origin lies deep inside the main cardioid and never escapes.
	i := mandelbrot(complexnum.New(0, 0), 64)
	assert.Equal(t, float32(1), i.Count)
}

func TestMandelbrotFarPointEscapesImmediately(t *testing.T) {
	i := mandelbrot(complexnum.New(10, 10), 64)
	assert.Less(t, i.Count, float32(1))
}

func TestJuliaKnownPoint(t *testing.T) {
	c := complexnum.New(0.285, 0.013)
	i := julia(complexnum.New(0, 0), c, 4.0, 64)
	assert.GreaterOrEqual(t, i.Count, float32(0))
	assert.LessOrEqual(t, i.Count, float32(1))
}

func TestNewtonRaphsonZ3ConvergesFromRoot(t *testing.T) {
	// z=1 is already a root of z^3-1, so the very first step satisfies the
	// stop rule and the loop runs exactly one iteration.
	i := newtonRaphsonZ3(complexnum.New(1, 0), 64)
	assert.Equal(t, float32(1)/float32(64), i.Count)
}

func TestColorChannelsInByteRange(t *testing.T) {
	for _, tparam := range []float64{0, 0.25, 0.5, 0.75, 1} {
		rgb := Color(tparam)
		for _, channel := range rgb {
			_ = channel // byte is always in [0,255] by type; this just exercises every t.
		}
	}
}
