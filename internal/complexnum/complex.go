// Package complexnum implements the complex-number arithmetic the fractal
// kernels are built on: addition, multiplication, integer powers, argument
// and a complex sine.
package complexnum

import "math"

// Complex is a pair of 64-bit floats (re, im).
type Complex struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// New returns the complex number re+im*i.
func New(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// Add returns z+w.
func (z Complex) Add(w Complex) Complex {
	return Complex{Re: z.Re + w.Re, Im: z.Im + w.Im}
}

// AddReal returns z+x for a real x.
func (z Complex) AddReal(x float64) Complex {
	return Complex{Re: z.Re + x, Im: z.Im}
}

// Sub returns z-w.
func (z Complex) Sub(w Complex) Complex {
	return Complex{Re: z.Re - w.Re, Im: z.Im - w.Im}
}

// Mul returns z*w.
func (z Complex) Mul(w Complex) Complex {
	return Complex{
		Re: z.Re*w.Re - z.Im*w.Im,
		Im: z.Re*w.Im + z.Im*w.Re,
	}
}

// Scale returns z*x for a real x.
func (z Complex) Scale(x float64) Complex {
	return Complex{Re: z.Re * x, Im: z.Im * x}
}

// Div returns z/w.
func (z Complex) Div(w Complex) Complex {
	denom := w.Re*w.Re + w.Im*w.Im
	return Complex{
		Re: (z.Re*w.Re + z.Im*w.Im) / denom,
		Im: (z.Im*w.Re - z.Re*w.Im) / denom,
	}
}

// DivReal returns z/x for a real x.
func (z Complex) DivReal(x float64) Complex {
	return Complex{Re: z.Re / x, Im: z.Im / x}
}

// ArgSq returns the squared modulus |z|^2 = re^2 + im^2.
func (z Complex) ArgSq() float64 {
	return z.Re*z.Re + z.Im*z.Im
}

// Norm returns the modulus |z|.
func (z Complex) Norm() float64 {
	return math.Sqrt(z.ArgSq())
}

// Arg returns the argument atan2(im, re).
func (z Complex) Arg() float64 {
	return math.Atan2(z.Im, z.Re)
}

// Pow returns z raised to the integer power n (n >= 1) by repeated
// multiplication.
func (z Complex) Pow(n int) Complex {
	result := z
	for i := 1; i < n; i++ {
		result = result.Mul(z)
	}
	return result
}

// Sin returns the complex sine sin(z) = (sin(re)*cosh(im), cos(re)*sinh(im)).
func (z Complex) Sin() Complex {
	return Complex{
		Re: math.Sin(z.Re) * math.Cosh(z.Im),
		Im: math.Cos(z.Re) * math.Sinh(z.Im),
	}
}
