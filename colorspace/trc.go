// Package colorspace implements the colorimetric building blocks of
// spec.md §3/§4.3: transfer curves (TRCs) and color spaces, including the
// chromaticity-to-matrix construction, Bradford chromatic adaptation, and
// the s15.16 "equalize" heuristic for default-space matrices.
//
// This package is the only consumer of color-space definitions produced
// externally (e.g. by ICC parsing, out of scope per spec.md §1); it never
// parses ICC bytes itself, only stores and re-exposes them.
package colorspace

import (
	"fmt"
	"math"
	"sort"

	"github.com/pixfish/pixfish/internal/registry"
)

// TRCKind discriminates the supported transfer-curve shapes.
type TRCKind int

const (
	TRCLinear TRCKind = iota
	TRCGamma
	TRCSRGB
	TRCFormulaSRGB
	TRCFormulaCIE
	TRCLUT
)

// TRC is a scalar tone-response curve: to_linear maps an encoded sample in
// [0,1] to linear light, from_linear is its inverse. Invariant (spec.md
// §3): from_linear(to_linear(x)) == x within tolerance on [0,1], with a
// monotone extrapolation outside it.
type TRC struct {
	Kind TRCKind
	Name string

	Gamma float64 // TRCGamma

	// TRCFormulaSRGB / TRCFormulaCIE parameters, per the ICC specification.
	A, B, C, D, E, F, G float64

	// TRCLUT: explicit forward table; the inverse is built by bisection
	// (see buildLUTInverse).
	LUT        []float64
	lutInverse []float64 // built lazily, same length as LUT
}

func (t *TRC) key() string {
	switch t.Kind {
	case TRCLinear:
		return "trc:linear"
	case TRCGamma:
		return fmt.Sprintf("trc:gamma:%.10f", t.Gamma)
	case TRCSRGB:
		return "trc:srgb"
	case TRCFormulaSRGB:
		return fmt.Sprintf("trc:fsrgb:%.10f:%.10f:%.10f:%.10f:%.10f:%.10f:%.10f",
			t.A, t.B, t.C, t.D, t.E, t.F, t.G)
	case TRCFormulaCIE:
		return fmt.Sprintf("trc:fcie:%.10f:%.10f:%.10f:%.10f", t.A, t.B, t.C, t.G)
	case TRCLUT:
		return fmt.Sprintf("trc:lut:%d:%p", len(t.LUT), &t.LUT[0])
	default:
		return "trc:unknown"
	}
}

// RegisterTRC interns t into reg.
func RegisterTRC(reg *registry.Registry, t TRC) registry.Handle {
	if t.Kind == TRCLUT && t.lutInverse == nil {
		t.lutInverse = buildLUTInverse(t.LUT)
	}
	return reg.Register(registry.KindTRC, t.Name, t.key(), &t)
}

// GetTRC resolves the TRC stored at h.
func GetTRC(reg *registry.Registry, h registry.Handle) *TRC {
	return reg.Object(h).(*TRC)
}

// GammaTRC returns (and interns) a parametric gamma(γ) curve:
// to_linear(x) = x^γ, from_linear(y) = y^(1/γ).
func GammaTRC(reg *registry.Registry, gamma float64) registry.Handle {
	return RegisterTRC(reg, TRC{Kind: TRCGamma, Name: fmt.Sprintf("gamma(%g)", gamma), Gamma: gamma})
}

// LinearTRC returns (and interns) the identity curve.
func LinearTRC(reg *registry.Registry) registry.Handle {
	return RegisterTRC(reg, TRC{Kind: TRCLinear, Name: "linear"})
}

// SRGBTRC returns (and interns) the piecewise sRGB curve (IEC 61966-2-1).
func SRGBTRC(reg *registry.Registry) registry.Handle {
	return RegisterTRC(reg, TRC{Kind: TRCSRGB, Name: "sRGB"})
}

// ToLinear maps an encoded sample x in [0,1] (monotonically extended
// outside it) to linear light.
func (t *TRC) ToLinear(x float64) float64 {
	switch t.Kind {
	case TRCLinear:
		return x
	case TRCGamma:
		return gammaPow(x, t.Gamma)
	case TRCSRGB:
		return srgbToLinear(x)
	case TRCFormulaSRGB:
		return formulaSRGBToLinear(x, t.A, t.B, t.C, t.D, t.E, t.F, t.G)
	case TRCFormulaCIE:
		return formulaCIEToLinear(x, t.A, t.B, t.C, t.G)
	case TRCLUT:
		return lutLookup(t.LUT, x)
	default:
		return x
	}
}

// FromLinear maps linear light y back to an encoded sample.
func (t *TRC) FromLinear(y float64) float64 {
	switch t.Kind {
	case TRCLinear:
		return y
	case TRCGamma:
		if t.Gamma == 0 {
			return y
		}
		return gammaPow(y, 1/t.Gamma)
	case TRCSRGB:
		return linearToSRGB(y)
	case TRCFormulaSRGB:
		return linearToFormulaSRGB(y, t.A, t.B, t.C, t.D, t.E, t.F, t.G)
	case TRCFormulaCIE:
		return linearToFormulaCIE(y, t.A, t.B, t.C, t.G)
	case TRCLUT:
		return lutLookup(t.lutInverse, y)
	default:
		return y
	}
}

// gammaPow extends x^g monotonically to negative x, matching the
// sign-preserving convention used throughout babl's TRC application
// (see base/babl-trc.c in original_source/).
func gammaPow(x, g float64) float64 {
	if x < 0 {
		return -math.Pow(-x, g)
	}
	return math.Pow(x, g)
}

// sRGB piecewise curve, IEC 61966-2-1.
const (
	srgbLinThresh = 0.0031308
	srgbEncThresh = 0.04045
)

func srgbToLinear(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1
		x = -x
	}
	var y float64
	if x <= srgbEncThresh {
		y = x / 12.92
	} else {
		y = math.Pow((x+0.055)/1.055, 2.4)
	}
	return sign * y
}

func linearToSRGB(y float64) float64 {
	sign := 1.0
	if y < 0 {
		sign = -1
		y = -y
	}
	var x float64
	if y <= srgbLinThresh {
		x = y * 12.92
	} else {
		x = 1.055*math.Pow(y, 1/2.4) - 0.055
	}
	return sign * x
}

// formula-sRGB(a,b,c,d,e,f,g), as defined by the ICC specification
// (parametricType 4):
//
//	to_linear(x) = (a*x+b)^g + e   if x >= d
//	             = c*x + f         otherwise
func formulaSRGBToLinear(x, a, b, c, d, e, f, g float64) float64 {
	if x >= d {
		base := a*x + b
		return gammaPow(base, g) + e
	}
	return c*x + f
}

func linearToFormulaSRGB(y, a, b, c, d, e, f, g float64) float64 {
	// Invert the two branches; the break point in linear space is the
	// forward curve evaluated at d.
	breakY := formulaSRGBToLinear(d, a, b, c, d, e, f, g)
	if y >= breakY {
		if a == 0 {
			return d
		}
		inner := y - e
		var base float64
		if inner < 0 {
			base = -math.Pow(-inner, 1/g)
		} else {
			base = math.Pow(inner, 1/g)
		}
		return (base - b) / a
	}
	if c == 0 {
		return d
	}
	return (y - f) / c
}

// formula-CIE(a,b,c,g), ICC parametricType 1/2 style:
//
//	to_linear(x) = (a*x+b)^g   if x >= -b/a
//	             = c            otherwise  (flat floor)
func formulaCIEToLinear(x, a, b, c, g float64) float64 {
	thresh := -b / a
	if x >= thresh {
		return gammaPow(a*x+b, g)
	}
	return c
}

func linearToFormulaCIE(y, a, b, c, g float64) float64 {
	if y <= c {
		return -b / a
	}
	var base float64
	if y < 0 {
		base = -math.Pow(-y, 1/g)
	} else {
		base = math.Pow(y, 1/g)
	}
	return (base - b) / a
}

// buildLUTInverse constructs the inverse of a forward LUT defined on a
// uniform [0,1] domain by bisection, per spec.md §3's TRC LUT variant.
func buildLUTInverse(fwd []float64) []float64 {
	n := len(fwd)
	if n == 0 {
		return nil
	}
	inv := make([]float64, n)
	for i := 0; i < n; i++ {
		target := float64(i) / float64(n-1)
		// fwd is assumed monotonically nondecreasing; binary-search it.
		j := sort.Search(n, func(k int) bool { return fwd[k] >= target })
		switch {
		case j <= 0:
			inv[i] = 0
		case j >= n:
			inv[i] = 1
		default:
			lo, hi := fwd[j-1], fwd[j]
			var frac float64
			if hi != lo {
				frac = (target - lo) / (hi - lo)
			}
			inv[i] = (float64(j-1) + frac) / float64(n-1)
		}
	}
	return inv
}

// lutLookup linearly interpolates table at x; outside [0,1] it
// extrapolates linearly along the first or last table segment.
func lutLookup(table []float64, x float64) float64 {
	n := len(table)
	if n == 0 {
		return x
	}
	if n == 1 {
		return table[0]
	}
	pos := x * float64(n-1)
	if pos <= 0 {
		return table[0] + (pos)*(table[1]-table[0])
	}
	if pos >= float64(n-1) {
		return table[n-1] + (pos-float64(n-1))*(table[n-1]-table[n-2])
	}
	i := int(pos)
	frac := pos - float64(i)
	return table[i]*(1-frac) + table[i+1]*frac
}
