package convert

// AlphaFloor is the minimum alpha used as a divisor when unpremultiplying,
// preventing a division blowup for fully transparent pixels. Verbatim from
// original_source/babl/babl.h's BABL_ALPHA_FLOOR (1/65536.0), named here
// per spec.md §9's open question on the premultiplication floor constant.
const AlphaFloor = 1.0 / 65536.0

// Premultiply scales each of the given color channels by alpha in place,
// per spec.md §4.2's "premultiplied<->straight alpha" primitive.
func Premultiply(channels [][]float64, alpha []float64, n int) {
	for _, ch := range channels {
		for i := 0; i < n; i++ {
			ch[i] *= alpha[i]
		}
	}
}

// Unpremultiply is the inverse of Premultiply, dividing by alpha floored
// at AlphaFloor.
func Unpremultiply(channels [][]float64, alpha []float64, n int) {
	for _, ch := range channels {
		for i := 0; i < n; i++ {
			a := alpha[i]
			if a < AlphaFloor {
				a = AlphaFloor
			}
			ch[i] /= a
		}
	}
}

// FillOpaqueAlpha sets alpha to 1.0 for every sample, used when a format
// missing an alpha channel is converted into one that has it (spec.md §9:
// "a missing alpha channel defaults to 1.0", grounded on
// original_source/babl/model-lab.c's src_bands>3 ? src[3] : 1.0 pattern).
func FillOpaqueAlpha(alpha []float64, n int) {
	for i := 0; i < n; i++ {
		alpha[i] = 1.0
	}
}
