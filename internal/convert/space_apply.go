package convert

import "github.com/pixfish/pixfish/colorspace"

// ApplySpaceMatrix applies a 3x3 linear-RGB space-to-space matrix (e.g.
// colorspace.CompositeMatrix's src->dst conversion) to a batch of RGB
// triples in place, per spec.md §4.2's "space<->space (3x3 matrix
// multiply in linear light)".
func ApplySpaceMatrix(r, g, b []float64, n int, m colorspace.Mat3) {
	for i := 0; i < n; i++ {
		out := m.MulVec(colorspace.Vec3{r[i], g[i], b[i]})
		r[i], g[i], b[i] = out[0], out[1], out[2]
	}
}
