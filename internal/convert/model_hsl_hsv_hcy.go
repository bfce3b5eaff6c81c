package convert

import "math"

// RGBToHSL, HSLToRGB, RGBToHSV, HSVToRGB, RGBToHCY and HCYToRGB implement
// spec.md §4.2's "RGB<->HSL, RGB<->HSV, RGB<->HCY" primitives. All three
// operate on companded (nonlinear, R'G'B') input per convention, since hue
// geometry is defined against a perceptual RGB cube; the caller is
// responsible for TRC-applying before/after, same as the teacher's
// internal/dsp kernels, which always work on 8-bit companded YUV/RGB and
// never on scene-linear values.

func rgbMinMax(r, g, b float64) (min, max float64) {
	min, max = r, r
	if g < min {
		min = g
	}
	if g > max {
		max = g
	}
	if b < min {
		min = b
	}
	if b > max {
		max = b
	}
	return
}

func hueFromRGB(r, g, b, min, max float64) float64 {
	delta := max - min
	if delta == 0 {
		return 0
	}
	var h float64
	switch max {
	case r:
		h = math.Mod((g-b)/delta, 6)
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h
}

// RGBToHSL converts companded RGB to HSL.
func RGBToHSL(r, g, b, h, s, l []float64, n int) {
	for i := 0; i < n; i++ {
		mn, mx := rgbMinMax(r[i], g[i], b[i])
		lum := (mx + mn) / 2
		delta := mx - mn
		var sat float64
		if delta != 0 {
			sat = delta / (1 - math.Abs(2*lum-1))
		}
		h[i] = hueFromRGB(r[i], g[i], b[i], mn, mx)
		s[i] = sat
		l[i] = lum
	}
}

func hueToRGBComponent(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// HSLToRGB is the inverse of RGBToHSL.
func HSLToRGB(h, s, l, r, g, b []float64, n int) {
	for i := 0; i < n; i++ {
		hh, ss, ll := h[i]/360, s[i], l[i]
		if ss == 0 {
			r[i], g[i], b[i] = ll, ll, ll
			continue
		}
		var q float64
		if ll < 0.5 {
			q = ll * (1 + ss)
		} else {
			q = ll + ss - ll*ss
		}
		p := 2*ll - q
		r[i] = hueToRGBComponent(p, q, hh+1.0/3)
		g[i] = hueToRGBComponent(p, q, hh)
		b[i] = hueToRGBComponent(p, q, hh-1.0/3)
	}
}

// RGBToHSV converts companded RGB to HSV.
func RGBToHSV(r, g, b, h, s, v []float64, n int) {
	for i := 0; i < n; i++ {
		mn, mx := rgbMinMax(r[i], g[i], b[i])
		delta := mx - mn
		var sat float64
		if mx != 0 {
			sat = delta / mx
		}
		h[i] = hueFromRGB(r[i], g[i], b[i], mn, mx)
		s[i] = sat
		v[i] = mx
	}
}

// HSVToRGB is the inverse of RGBToHSV.
func HSVToRGB(h, s, v, r, g, b []float64, n int) {
	for i := 0; i < n; i++ {
		hh := h[i] / 60
		c := v[i] * s[i]
		x := c * (1 - math.Abs(math.Mod(hh, 2)-1))
		m := v[i] - c
		var rr, gg, bb float64
		switch {
		case hh < 1:
			rr, gg, bb = c, x, 0
		case hh < 2:
			rr, gg, bb = x, c, 0
		case hh < 3:
			rr, gg, bb = 0, c, x
		case hh < 4:
			rr, gg, bb = 0, x, c
		case hh < 5:
			rr, gg, bb = x, 0, c
		default:
			rr, gg, bb = c, 0, x
		}
		r[i] = rr + m
		g[i] = gg + m
		b[i] = bb + m
	}
}

// hcy luma weights match the Y'CbCr luma coefficients (BT.601), per
// spec.md §4.2's HCY being "hue, chroma, luma" rather than HSL's
// lightness.
const (
	hcyWr = 0.299
	hcyWg = 0.587
	hcyWb = 0.114
)

// RGBToHCY converts companded RGB to HCY.
func RGBToHCY(r, g, b, h, c, y []float64, n int) {
	for i := 0; i < n; i++ {
		mn, mx := rgbMinMax(r[i], g[i], b[i])
		chroma := mx - mn
		h[i] = hueFromRGB(r[i], g[i], b[i], mn, mx)
		c[i] = chroma
		y[i] = hcyWr*r[i] + hcyWg*g[i] + hcyWb*b[i]
	}
}

// HCYToRGB is the inverse of RGBToHCY.
func HCYToRGB(h, c, y, r, g, b []float64, n int) {
	for i := 0; i < n; i++ {
		hh := h[i] / 60
		x := c[i] * (1 - math.Abs(math.Mod(hh, 2)-1))
		var r1, g1, b1 float64
		switch {
		case hh < 1:
			r1, g1, b1 = c[i], x, 0
		case hh < 2:
			r1, g1, b1 = x, c[i], 0
		case hh < 3:
			r1, g1, b1 = 0, c[i], x
		case hh < 4:
			r1, g1, b1 = 0, x, c[i]
		case hh < 5:
			r1, g1, b1 = x, 0, c[i]
		default:
			r1, g1, b1 = c[i], 0, x
		}
		m := y[i] - (hcyWr*r1 + hcyWg*g1 + hcyWb*b1)
		r[i] = r1 + m
		g[i] = g1 + m
		b[i] = b1 + m
	}
}
