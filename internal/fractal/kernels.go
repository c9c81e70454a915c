// Package fractal implements the seven escape-time/root-finding pixel
// kernels and the color palette used to render them, grounded on
// complex_math/src/lib.rs and
// shared/src/fractal_implementation/fractal_calcul.rs of the original
// implementation this system was distilled from.
package fractal

import (
	"math"

	"github.com/frakt-go/frakt/internal/complexnum"
)

// Intensity is the two-float-per-pixel output of a kernel. Count is always
// the iteration count normalized to [0,1]. Zn's meaning depends on the
// kernel (see spec §4.2); for the escape-time kernels it is |z|^2 divided by
// a fixed constant and exceeds 1 once a pixel has escaped.
type Intensity struct {
	Zn    float32
	Count float32
}

// julia runs z <- z^2+c until |z|^2 >= threshold or maxIter iterations.
func julia(z, c complexnum.Complex, thresholdSquare float64, maxIter uint16) Intensity {
	zn := z
	var count uint16
	for count < maxIter && zn.ArgSq() < thresholdSquare {
		zn = zn.Pow(2).Add(c)
		count++
	}
	return Intensity{
		Zn:    float32(zn.ArgSq() / thresholdSquare),
		Count: float32(count) / float32(maxIter),
	}
}

// mandelbrot runs z <- z^2+p (z0=0, p=pixel) until |z|^2 >= 4 or maxIter
// iterations.
func mandelbrot(pixel complexnum.Complex, maxIter uint16) Intensity {
	c := pixel
	zn := complexnum.New(0, 0)
	var count uint16
	for zn.ArgSq() < 4 && count < maxIter {
		zn = zn.Pow(2).Add(c)
		count++
	}
	return Intensity{
		Zn:    float32(zn.ArgSq() / 4),
		Count: float32(count) / float32(maxIter),
	}
}

// iteratedSinZ runs z <- sin(z)*c until |z|^2 >= 50 or maxIter iterations.
func iteratedSinZ(z, c complexnum.Complex, maxIter uint16) Intensity {
	zn := z
	var count uint16
	for zn.ArgSq() < 50 && count < maxIter {
		zn = zn.Sin().Mul(c)
		count++
	}
	return Intensity{
		Zn:    float32(zn.ArgSq() / 4),
		Count: float32(count) / float32(maxIter),
	}
}

const newtonEpsilonSquare = 1e-6

// newtonRaphsonZ3 runs z <- z - (z^3-1)/(3z^2) until the step length
// squared drops to newtonEpsilonSquare or maxIter iterations.
func newtonRaphsonZ3(z complexnum.Complex, maxIter uint16) Intensity {
	zn := z
	prev := complexnum.New(0, 0)
	var count uint16
	for zn.Sub(prev).ArgSq() > newtonEpsilonSquare && count < maxIter {
		prev = zn
		zn = zn.Sub(zn.Pow(3).AddReal(-1).Div(zn.Pow(2).Scale(3)))
		count++
	}
	return Intensity{
		Zn:    float32(0.5 + zn.Arg()/(2*math.Pi)),
		Count: float32(count) / float32(maxIter),
	}
}

// newtonRaphsonZ4 runs z <- z - (z^4-1)/(4z^3), same stop rule as z^3.
func newtonRaphsonZ4(z complexnum.Complex, maxIter uint16) Intensity {
	zn := z
	prev := complexnum.New(0, 0)
	var count uint16
	for zn.Sub(prev).ArgSq() > newtonEpsilonSquare && count < maxIter {
		prev = zn
		zn = zn.Sub(zn.Pow(4).AddReal(-1).Div(zn.Pow(3).Scale(4)))
		count++
	}
	return Intensity{
		Zn:    float32(0.5 + zn.Arg()/(2*math.Pi)),
		Count: float32(count) / float32(maxIter),
	}
}

// novaNewtonRaphsonZ3 runs z <- p + z - (z^3-1)/(3z^2), z0=1, p=pixel.
func novaNewtonRaphsonZ3(pixel complexnum.Complex, maxIter uint16) Intensity {
	zn := complexnum.New(1, 0)
	c := pixel
	prev := complexnum.New(0, 0)
	var count uint16
	for zn.Sub(prev).ArgSq() > newtonEpsilonSquare && count < maxIter {
		prev = zn
		zn = c.Add(zn).Sub(zn.Pow(3).AddReal(-1).Div(zn.Pow(2).Scale(3)))
		count++
	}
	return Intensity{Zn: 0, Count: float32(count) / float32(maxIter)}
}

// novaNewtonRaphsonZ4 runs z <- p + z - (z^4-1)/(4z^3), z0=1, p=pixel.
func novaNewtonRaphsonZ4(pixel complexnum.Complex, maxIter uint16) Intensity {
	zn := complexnum.New(1, 0)
	c := pixel
	prev := complexnum.New(0, 0)
	var count uint16
	for zn.Sub(prev).ArgSq() > newtonEpsilonSquare && count < maxIter {
		prev = zn
		zn = c.Add(zn).Sub(zn.Pow(4).AddReal(-1).Div(zn.Pow(3).Scale(4)))
		count++
	}
	return Intensity{Zn: 0, Count: float32(count) / float32(maxIter)}
}

// Compute dispatches a single pixel to the kernel named by d, using pixel as
// the starting z (Julia, IteratedSinZ, NewtonRaphson*) or as p
// (Mandelbrot/Nova* kernels).
func Compute(d Descriptor, pixel complexnum.Complex, maxIter uint16) Intensity {
	switch d.Kind {
	case Julia:
		return julia(pixel, d.Julia.C, d.Julia.DivergenceThresholdSquare, maxIter)
	case Mandelbrot:
		return mandelbrot(pixel, maxIter)
	case IteratedSinZ:
		return iteratedSinZ(pixel, d.Sin.C, maxIter)
	case NewtonRaphsonZ3:
		return newtonRaphsonZ3(pixel, maxIter)
	case NewtonRaphsonZ4:
		return newtonRaphsonZ4(pixel, maxIter)
	case NovaNewtonRaphsonZ3:
		return novaNewtonRaphsonZ3(pixel, maxIter)
	case NovaNewtonRaphsonZ4:
		return novaNewtonRaphsonZ4(pixel, maxIter)
	default:
		return Intensity{}
	}
}

// Color maps a normalized parameter t to an RGB triple using the fixed
// cosine-based palette shared by every kernel (spec §4.4).
func Color(t float64) [3]byte {
	const (
		a0, a1, a2 = 0.5, 0.5, 0.5
		b0, b1, b2 = 0.5, 0.5, 0.5
		c0, c1, c2 = 1.0, 1.0, 1.0
		d0, d1, d2 = 0.0, 0.10, 0.20
	)
	r := b0*math.Cos(2*math.Pi*(c0*t+d0)) + a0
	g := b1*math.Cos(2*math.Pi*(c1*t+d1)) + a1
	bl := b2*math.Cos(2*math.Pi*(c2*t+d2)) + a2
	return [3]byte{byte(255 * r), byte(255 * g), byte(255 * bl)}
}
