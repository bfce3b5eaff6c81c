package convert

// RGBToY derives relative luminance from linear RGB using the luminance
// row of a space's RGBtoXYZ matrix (wr, wg, wb = row Y), per spec.md §4.2.
// The caller (internal/graph) supplies the weights of whichever space is
// in scope at this step of the plan.
func RGBToY(r, g, b, y []float64, n int, wr, wg, wb float64) {
	for i := 0; i < n; i++ {
		y[i] = wr*r[i] + wg*g[i] + wb*b[i]
	}
}

// YToRGB expands a luminance channel back to RGB by replicating it across
// all three channels (the only lossless-consistent inverse for a model
// that has discarded chroma entirely).
func YToRGB(y, r, g, b []float64, n int) {
	for i := 0; i < n; i++ {
		r[i] = y[i]
		g[i] = y[i]
		b[i] = y[i]
	}
}
