package convert

// RGBToCMY converts linear-light RGB to CMY (additive complement), per
// spec.md §4.2.
func RGBToCMY(r, g, b, c, m, y []float64, n int) {
	for i := 0; i < n; i++ {
		c[i] = 1 - r[i]
		m[i] = 1 - g[i]
		y[i] = 1 - b[i]
	}
}

// CMYToRGB is the inverse of RGBToCMY.
func CMYToRGB(c, m, y, r, g, b []float64, n int) {
	for i := 0; i < n; i++ {
		r[i] = 1 - c[i]
		g[i] = 1 - m[i]
		b[i] = 1 - y[i]
	}
}

// RGBToCMYK converts linear-light RGB to CMYK with black generation by
// minimum and pullout=1, per spec.md §4.2: K = min(C,M,Y); if K == 1 the
// chromatic channels collapse to 0, otherwise each is rescaled by
// 1/(1-K).
func RGBToCMYK(r, g, b, c, m, y, k []float64, n int) {
	for i := 0; i < n; i++ {
		cc := 1 - r[i]
		mm := 1 - g[i]
		yy := 1 - b[i]
		kk := cc
		if mm < kk {
			kk = mm
		}
		if yy < kk {
			kk = yy
		}
		if kk >= 1 {
			c[i], m[i], y[i] = 0, 0, 0
		} else {
			inv := 1 / (1 - kk)
			c[i] = (cc - kk) * inv
			m[i] = (mm - kk) * inv
			y[i] = (yy - kk) * inv
		}
		k[i] = kk
	}
}

// CMYKToRGB is the inverse of RGBToCMYK.
func CMYKToRGB(c, m, y, k, r, g, b []float64, n int) {
	for i := 0; i < n; i++ {
		kk := k[i]
		r[i] = 1 - (c[i]*(1-kk) + kk)
		g[i] = 1 - (m[i]*(1-kk) + kk)
		b[i] = 1 - (y[i]*(1-kk) + kk)
	}
}
