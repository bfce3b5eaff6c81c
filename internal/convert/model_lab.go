package convert

import "github.com/pixfish/pixfish/colorspace"

// RGBToLab converts linear RGB to CIE Lab via XYZ, using the RGBtoXYZ
// matrix of whichever space is in scope at this step of the plan (already
// D50-adapted per spec.md §4.3, so the fixed D50 Lab reference white in
// colorspace.XYZToLab is always correct regardless of the space's own
// native white point). Grounds spec.md §4.2's "RGB<->CIE Lab (via XYZ,
// fixed D50 illuminant)".
func RGBToLab(r, g, b, l, a, bb []float64, n int, m colorspace.Mat3) {
	for i := 0; i < n; i++ {
		xyz := m.MulVec(colorspace.Vec3{r[i], g[i], b[i]})
		ll, aa, bbb := colorspace.XYZToLab(xyz[0], xyz[1], xyz[2])
		l[i], a[i], bb[i] = ll, aa, bbb
	}
}

// LabToRGB is the inverse of RGBToLab, given the destination space's
// XYZtoRGB matrix.
func LabToRGB(l, a, bb, r, g, b []float64, n int, inv colorspace.Mat3) {
	for i := 0; i < n; i++ {
		x, y, z := colorspace.LabToXYZ(l[i], a[i], bb[i])
		rgb := inv.MulVec(colorspace.Vec3{x, y, z})
		r[i], g[i], b[i] = rgb[0], rgb[1], rgb[2]
	}
}

// LabToLChBatch and LChToLabBatch wrap colorspace's pure polar/rectangular
// conversion over a batch; unlike RGB<->Lab this needs no space context.
func LabToLChBatch(l, a, b, L, c, h []float64, n int) {
	for i := 0; i < n; i++ {
		L[i], c[i], h[i] = colorspace.LabToLCh(l[i], a[i], b[i])
	}
}

func LChToLabBatch(L, c, h, l, a, b []float64, n int) {
	for i := 0; i < n; i++ {
		l[i], a[i], b[i] = colorspace.LChToLab(L[i], c[i], h[i])
	}
}
