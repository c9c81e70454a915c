package complexnum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddMul(t *testing.T) {
	a := New(1, 2)
	b := New(3, 4)

	assert.Equal(t, New(4, 6), a.Add(b))
	assert.Equal(t, New(1*3-2*4, 1*4+2*3), a.Mul(b))
}

func TestArgSqAndNorm(t *testing.T) {
	z := New(3, 4)
	assert.Equal(t, 25.0, z.ArgSq())
	assert.Equal(t, 5.0, z.Norm())
}

func TestArg(t *testing.T) {
	z := New(1, 0)
	assert.Equal(t, 0.0, z.Arg())
}

func TestPow(t *testing.T) {
	z := New(2, 0)
	assert.Equal(t, New(8, 0), z.Pow(3))
	assert.Equal(t, z, z.Pow(1))
}

func TestSin(t *testing.T) {
	z := New(0, 0)
	s := z.Sin()
	assert.InDelta(t, 0, s.Re, 1e-12)
	assert.InDelta(t, 0, s.Im, 1e-12)

	z = New(math.Pi/2, 0)
	s = z.Sin()
	assert.InDelta(t, 1, s.Re, 1e-9)
}

func TestDiv(t *testing.T) {
	a := New(1, 0)
	b := New(2, 0)
	assert.Equal(t, New(0.5, 0), a.Div(b))
}
