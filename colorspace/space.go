package colorspace

import (
	"fmt"
	"math"

	"github.com/pixfish/pixfish/internal/registry"
)

// Family classifies a space's intended use, per spec.md §3.
type Family int

const (
	FamilyRGB Family = iota
	FamilyGray
	FamilyCMYK
)

// Space is a color space: CIE xy chromaticities of the white point and
// R, G, B primaries, a TRC per primary (usually shared), the derived
// D50-adapted RGBtoXYZ/XYZtoRGB matrices, a classification tag, and an
// optional embedded ICC byte string (spec.md §3).
type Space struct {
	Name string

	Xw, Yw         float64
	Xr, Yr         float64
	Xg, Yg         float64
	Xb, Yb         float64
	TRCR, TRCG, TRCB *TRC

	Family Family

	RGBtoXYZ Mat3
	XYZtoRGB Mat3

	ICC []byte
}

func (s *Space) key() string {
	return fmt.Sprintf("space:%.9f:%.9f:%.9f:%.9f:%.9f:%.9f:%.9f:%.9f:%s:%s:%s:%d",
		s.Xw, s.Yw, s.Xr, s.Yr, s.Xg, s.Yg, s.Xb, s.Yb,
		s.TRCR.key(), s.TRCG.key(), s.TRCB.key(), s.Family)
}

// GetSpace resolves the Space stored at h.
func GetSpace(reg *registry.Registry, h registry.Handle) *Space {
	return reg.Object(h).(*Space)
}

// chromaticityToXYZ converts CIE xy(Y=1) to XYZ: X=x/y, Y=1, Z=(1-x-y)/y.
func chromaticityToXYZ(x, y float64) Vec3 {
	return Vec3{x / y, 1, (1 - x - y) / y}
}

// buildMatrices implements spec.md §4.3 steps 1-3 and 5: chromaticities to
// XYZ, scale to the white point, Bradford-adapt to D50, optionally
// equalize, and invert.
func buildMatrices(xw, yw, xr, yr, xg, yg, xb, yb float64, equalize bool) (rgbToXYZ, xyzToRGB Mat3) {
	red := chromaticityToXYZ(xr, yr)
	green := chromaticityToXYZ(xg, yg)
	blue := chromaticityToXYZ(xb, yb)
	white := chromaticityToXYZ(xw, yw)

	mat := Mat3{
		red[0], green[0], blue[0],
		red[1], green[1], blue[1],
		red[2], green[2], blue[2],
	}

	invMat := mat.Invert()
	s := invMat.MulVec(white)

	mat[0] *= s[0]
	mat[3] *= s[0]
	mat[6] *= s[0]
	mat[1] *= s[1]
	mat[4] *= s[1]
	mat[7] *= s[1]
	mat[2] *= s[2]
	mat[5] *= s[2]
	mat[8] *= s[2]

	chad := ChromaticAdaptationMatrix(white, D50)
	mat = chad.MulMat(mat)

	if equalize {
		mat = EqualizeMatrix(mat)
	}

	return mat, mat.Invert()
}

// FromChromaticities constructs (and interns) a space from its eight
// chromaticity coordinates and three TRCs, per spec.md §6
// space_from_chromaticities. equalize requests the s15.16 fitness
// perturbation from spec.md §4.3 step 4; it should be true for
// predefined/default spaces and false for arbitrary ICC-derived ones.
func FromChromaticities(reg *registry.Registry, name string,
	xw, yw, xr, yr, xg, yg, xb, yb float64,
	trcR, trcG, trcB registry.Handle, family Family, equalize bool) registry.Handle {

	r := GetTRC(reg, trcR)
	g := GetTRC(reg, trcG)
	b := GetTRC(reg, trcB)

	rgbToXYZ, xyzToRGB := buildMatrices(xw, yw, xr, yr, xg, yg, xb, yb, equalize)

	sp := &Space{
		Name: name,
		Xw: xw, Yw: yw, Xr: xr, Yr: yr, Xg: xg, Yg: yg, Xb: xb, Yb: yb,
		TRCR: r, TRCG: g, TRCB: b,
		Family:   family,
		RGBtoXYZ: rgbToXYZ,
		XYZtoRGB: xyzToRGB,
	}
	return reg.Register(registry.KindSpace, name, sp.key(), sp)
}

// FromRGBXYZMatrix constructs (and interns) a space directly from an
// explicit RGBtoXYZ matrix (already D50-adapted) and three TRCs, per
// spec.md §6 space_from_rgbxyz_matrix. Used when a caller (or an ICC
// profile's numeric content) already supplies the matrix rather than
// chromaticities.
func FromRGBXYZMatrix(reg *registry.Registry, name string, m Mat3,
	trcR, trcG, trcB registry.Handle, family Family) registry.Handle {

	r := GetTRC(reg, trcR)
	g := GetTRC(reg, trcG)
	b := GetTRC(reg, trcB)

	sp := &Space{
		Name:     name,
		TRCR:     r,
		TRCG:     g,
		TRCB:     b,
		Family:   family,
		RGBtoXYZ: m,
		XYZtoRGB: m.Invert(),
	}
	return reg.Register(registry.KindSpace, name, sp.key(), sp)
}

// WithICC attaches an ICC byte string to a registered space, for
// space_get_icc round-tripping (spec.md §6). ICC parsing itself remains
// out of scope; this only stores what the caller already parsed.
func WithICC(reg *registry.Registry, h registry.Handle, icc []byte) {
	sp := GetSpace(reg, h)
	sp.ICC = icc
}

// LuminanceWeights returns (Wr, Wg, Wb), the RGBtoXYZ row 1 ("Y" row)
// used by RGB->Y conversion (spec.md §4.2): Y = Wr*R + Wg*G + Wb*B.
func (s *Space) LuminanceWeights() (wr, wg, wb float64) {
	return s.RGBtoXYZ[3], s.RGBtoXYZ[4], s.RGBtoXYZ[5]
}

// CompositeMatrix returns the cached linear-light space-to-space
// transform: XYZtoRGB_dst . RGBtoXYZ_src, per spec.md §4.2's
// "Space↔space" primitive.
func CompositeMatrix(src, dst *Space) Mat3 {
	return dst.XYZtoRGB.MulMat(src.RGBtoXYZ)
}

// CheckInvertible reports the Frobenius norm of RGBtoXYZ * XYZtoRGB
// minus the identity, for testable property 5 (spec.md §8).
func (s *Space) CheckInvertible() float64 {
	prod := s.RGBtoXYZ.MulMat(s.XYZtoRGB)
	errSum := 0.0
	for i := 0; i < 9; i++ {
		want := 0.0
		if i%4 == 0 {
			want = 1
		}
		d := prod[i] - want
		errSum += d * d
	}
	return math.Sqrt(errSum)
}
