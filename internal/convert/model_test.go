package convert

import (
	"math"
	"testing"
)

func approxEq(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestRGBCMYRoundTrip(t *testing.T) {
	r := []float64{0, 0.25, 0.5, 1}
	g := []float64{0, 0.5, 0.5, 1}
	b := []float64{0, 0.75, 0.5, 0}
	n := len(r)

	c, m, y := make([]float64, n), make([]float64, n), make([]float64, n)
	RGBToCMY(r, g, b, c, m, y, n)

	r2, g2, b2 := make([]float64, n), make([]float64, n), make([]float64, n)
	CMYToRGB(c, m, y, r2, g2, b2, n)

	for i := 0; i < n; i++ {
		if !approxEq(r[i], r2[i], 1e-12) || !approxEq(g[i], g2[i], 1e-12) || !approxEq(b[i], b2[i], 1e-12) {
			t.Errorf("entry %d: round trip got (%g,%g,%g), want (%g,%g,%g)", i, r2[i], g2[i], b2[i], r[i], g[i], b[i])
		}
	}
}

func TestRGBCMYKRoundTrip(t *testing.T) {
	r := []float64{0, 0.2, 0.6, 1}
	g := []float64{0, 0.4, 0.6, 1}
	b := []float64{0, 0.8, 0.6, 1}
	n := len(r)

	c, m, y, k := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	RGBToCMYK(r, g, b, c, m, y, k, n)

	r2, g2, b2 := make([]float64, n), make([]float64, n), make([]float64, n)
	CMYKToRGB(c, m, y, k, r2, g2, b2, n)

	for i := 0; i < n; i++ {
		if !approxEq(r[i], r2[i], 1e-9) || !approxEq(g[i], g2[i], 1e-9) || !approxEq(b[i], b2[i], 1e-9) {
			t.Errorf("entry %d: round trip got (%g,%g,%g), want (%g,%g,%g)", i, r2[i], g2[i], b2[i], r[i], g[i], b[i])
		}
	}
}

func TestRGBCMYKBlackGeneration(t *testing.T) {
	r, g, b := []float64{0}, []float64{0}, []float64{0}
	c, m, y, k := make([]float64, 1), make([]float64, 1), make([]float64, 1), make([]float64, 1)
	RGBToCMYK(r, g, b, c, m, y, k, 1)
	if k[0] != 1 {
		t.Errorf("K = %g, want 1 for black input", k[0])
	}
	if c[0] != 0 || m[0] != 0 || y[0] != 0 {
		t.Errorf("C,M,Y = %g,%g,%g, want 0,0,0 when K=1", c[0], m[0], y[0])
	}
}

func TestRGBHSLRoundTrip(t *testing.T) {
	r := []float64{0, 1, 0.2, 0.8, 0.5}
	g := []float64{0, 1, 0.6, 0.3, 0.5}
	b := []float64{0, 1, 0.9, 0.1, 0.5}
	n := len(r)

	h, s, l := make([]float64, n), make([]float64, n), make([]float64, n)
	RGBToHSL(r, g, b, h, s, l, n)

	r2, g2, b2 := make([]float64, n), make([]float64, n), make([]float64, n)
	HSLToRGB(h, s, l, r2, g2, b2, n)

	for i := 0; i < n; i++ {
		if !approxEq(r[i], r2[i], 1e-6) || !approxEq(g[i], g2[i], 1e-6) || !approxEq(b[i], b2[i], 1e-6) {
			t.Errorf("entry %d: round trip got (%g,%g,%g), want (%g,%g,%g)", i, r2[i], g2[i], b2[i], r[i], g[i], b[i])
		}
	}
}

func TestPremultiplyUnpremultiplyRoundTrip(t *testing.T) {
	r := []float64{1, 0.5, 0.2}
	g := []float64{1, 0.5, 0.4}
	alpha := []float64{1, 0.5, 0.8}
	n := 3

	rCopy := append([]float64(nil), r...)
	gCopy := append([]float64(nil), g...)

	Premultiply([][]float64{rCopy, gCopy}, alpha, n)
	Unpremultiply([][]float64{rCopy, gCopy}, alpha, n)

	for i := 0; i < n; i++ {
		if !approxEq(r[i], rCopy[i], 1e-9) || !approxEq(g[i], gCopy[i], 1e-9) {
			t.Errorf("entry %d: round trip got (%g,%g), want (%g,%g)", i, rCopy[i], gCopy[i], r[i], g[i])
		}
	}
}

func TestUnpremultiplyFloorsZeroAlpha(t *testing.T) {
	ch := []float64{0.5}
	alpha := []float64{0}
	Unpremultiply([][]float64{ch}, alpha, 1)
	want := 0.5 / AlphaFloor
	if !approxEq(ch[0], want, 1e-6) {
		t.Errorf("Unpremultiply with zero alpha = %g, want %g (floored)", ch[0], want)
	}
}

func TestFillOpaqueAlpha(t *testing.T) {
	a := make([]float64, 4)
	FillOpaqueAlpha(a, 4)
	for i, v := range a {
		if v != 1.0 {
			t.Errorf("alpha[%d] = %g, want 1.0", i, v)
		}
	}
}

func TestHalfFloat64RoundTrip(t *testing.T) {
	vals := []float64{0, 1, -1, 0.5, 100, -100, 0.0001}
	for _, v := range vals {
		bits := Float64ToHalf(v)
		got := HalfToFloat64(bits)
		if !approxEq(got, v, 0.05) {
			t.Errorf("half round trip of %g got %g", v, got)
		}
	}
}

func TestHalfFloat64SpecialValues(t *testing.T) {
	if HalfToFloat64(0) != 0 {
		t.Errorf("HalfToFloat64(0) != 0")
	}
	bits := Float64ToHalf(1e10) // overflows half range, should saturate to +Inf
	got := HalfToFloat64(bits)
	if !math.IsInf(got, 1) {
		t.Errorf("Float64ToHalf(1e10) did not saturate to +Inf, got %g", got)
	}
}
