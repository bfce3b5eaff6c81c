package colorspace

import "math"

// Mat3 is a row-major 3x3 matrix, used throughout for RGBtoXYZ/XYZtoRGB
// and the space-to-space composite transforms (spec.md §4.2, §4.3).
type Mat3 [9]float64

// Vec3 is a 3-component color vector (XYZ, or linear RGB).
type Vec3 [3]float64

// MulVec computes m * v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// MulMat computes a * b.
func (a Mat3) MulMat(b Mat3) Mat3 {
	var out Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += a[row*3+k] * b[k*3+col]
			}
			out[row*3+col] = sum
		}
	}
	return out
}

// Invert returns the inverse of m, grounded on babl_matrix_invert
// (babl-space.c): cofactor expansion, divide by determinant.
func (m Mat3) Invert() Mat3 {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	A := e*i - f*h
	B := -(d*i - f*g)
	C := d*h - e*g
	det := a*A + b*B + c*C
	if det == 0 {
		return Mat3{}
	}
	invDet := 1 / det

	return Mat3{
		A * invDet, (c*h - b*i) * invDet, (b*f - c*e) * invDet,
		B * invDet, (a*i - c*g) * invDet, (c*d - a*f) * invDet,
		C * invDet, (b*g - a*h) * invDet, (a*e - b*d) * invDet,
	}
}

// Identity3 is the 3x3 identity matrix.
var Identity3 = Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}

// bradford and bradfordInv are the fixed Bradford cone-response matrices,
// taken verbatim from babl_chromatic_adaptation_matrix in
// original_source/babl/babl-space.c.
var bradford = Mat3{
	0.8951000, 0.2664000, -0.1614000,
	-0.7502000, 1.7135000, 0.0367000,
	0.0389000, -0.0685000, 1.0296000,
}

var bradfordInv = Mat3{
	0.9869929, -0.1470543, 0.1599627,
	0.4323053, 0.5183603, 0.0492912,
	-0.0085287, 0.0400428, 0.9684867,
}

// D50 is the CIE XYZ D50 white point used as the universal adaptation
// target, per spec.md §4.3 step 3 and babl's D50_WHITE_REF constants.
var D50 = Vec3{0.96420288, 1.0, 0.82490540}

// ChromaticAdaptationMatrix builds the Bradford chromatic-adaptation
// matrix mapping whitepoint -> target, per spec.md §4.3 step 3:
//
//	chad = Bradford^-1 . diag(B*target / B*whitepoint) . Bradford
func ChromaticAdaptationMatrix(whitepoint, target Vec3) Mat3 {
	a := bradford.MulVec(whitepoint)
	b := bradford.MulVec(target)

	diag := Mat3{
		b[0] / a[0], 0, 0,
		0, b[1] / a[1], 0,
		0, 0, b[2] / a[2],
	}
	return bradfordInv.MulMat(diag).MulMat(bradford)
}

// Lab conversion constants (CIE standard, spec.md §4.2).
const (
	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
)

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

func labFInv(f float64) float64 {
	f3 := f * f * f
	if f3 > labEpsilon {
		return f3
	}
	return (116*f - 16) / labKappa
}

// XYZToLab converts a D50 XYZ triple to CIE Lab, per spec.md §4.2's fixed
// D50 illuminant (0.9642, 1.0000, 0.8249) and piecewise f(t).
func XYZToLab(x, y, z float64) (l, a, b float64) {
	xr, yr, zr := x/D50[0], y/D50[1], z/D50[2]
	fx, fy, fz := labF(xr), labF(yr), labF(zr)
	l = 116*fy - 16
	a = 500 * (fx - fy)
	b = 200 * (fy - fz)
	return
}

// LabToXYZ is the inverse of XYZToLab.
func LabToXYZ(l, a, b float64) (x, y, z float64) {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200
	x = labFInv(fx) * D50[0]
	y = labFInv(fy) * D50[1]
	z = labFInv(fz) * D50[2]
	return
}

// LabToLCh converts CIE Lab to the polar CIE LCh(ab) representation.
func LabToLCh(l, a, b float64) (L, c, h float64) {
	L = l
	c = math.Hypot(a, b)
	h = math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return
}

// LChToLab is the inverse of LabToLCh.
func LChToLab(l, c, h float64) (L, a, b float64) {
	L = l
	rad := h * math.Pi / 180
	a = c * math.Cos(rad)
	b = c * math.Sin(rad)
	return
}

// equalizedMatrices caches known-good default-space matrices, rounded to
// s15.16 precision and ULP-jittered for a uniform gray axis. Verbatim from
// original_source/babl/babl-space.c's equalized_matrices[] table (sRGB,
// Adobe-ish, ProPhoto-ish, and a few other default spaces babl ships).
var equalizedMatrices = []Mat3{
	{0.673492431640625000, 0.165679931640625000, 0.125030517578125000,
		0.279052734375000000, 0.675354003906250000, 0.045593261718750000,
		-0.001907348632812500, 0.029968261718750000, 0.796844482421875000},
	{0.609756469726562500, 0.205276489257812500, 0.149169921875000000,
		0.311126708984375000, 0.625671386718750000, 0.063201904296875000,
		0.019485473632812500, 0.060867309570312500, 0.744552612304687500},
	{0.797714233398437500, 0.135208129882812500, 0.031280517578125000,
		0.288070678710937500, 0.711868286132812500, 0.000061035156250000,
		0.000015258789062500, 0.000015258789062500, 0.824874877929687500},
	{0.475555419921875000, 0.339706420898437500, 0.148941040039062500,
		0.255172729492187500, 0.672592163085937500, 0.072235107421875000,
		0.018463134765625000, 0.113342285156250000, 0.693099975585937500},
	{0.689895629882812500, 0.149765014648437500, 0.124542236328125000,
		0.284530639648437500, 0.671691894531250000, 0.043777465820312500,
		-0.006011962890625000, 0.009994506835937500, 0.820922851562500000},
	{0.990905761718750000, 0.012222290039062500, -0.038925170898437500,
		0.361907958984375000, 0.722503662109375000, -0.084411621093750000,
		-0.002685546875000000, 0.008239746093750000, 0.819351196289062500},
}

const equalizeCacheThreshold = 5e-9

// s15x16 rounds v to s15.16 fixed-point precision (1/65536 granularity),
// matching babl_matrix_equalize's int32_t val = v*65536+0.5 rounding.
func s15x16(v float64) float64 {
	return math.Floor(v*65536+0.5) / 65536
}

// EqualizeMatrix rounds mat to s15.16 precision then brute-force perturbs
// each cell by ±1 ULP (i.e. ±1/65536) to minimize a fitness function
// probing four gray-axis points (white -> L=100, black -> L=0, and all
// four grays -> a=b=0 in Lab), per spec.md §4.3 step 4. A cache of known
// equalized matrices is consulted first (within a squared-error
// threshold) and returned verbatim when it matches, exactly mirroring
// original_source/babl/babl-space.c's babl_matrix_equalize.
func EqualizeMatrix(mat Mat3) Mat3 {
	for _, cached := range equalizedMatrices {
		diffSum := 0.0
		for i := 0; i < 9; i++ {
			d := cached[i] - mat[i]
			diffSum += d * d
		}
		if diffSum < equalizeCacheThreshold {
			return cached
		}
	}

	probes := [4]Vec3{
		{1.0, 1.0, 1.0}, // white
		{0.0, 0.0, 0.0}, // black
		{0.5, 0.5, 0.5}, // gray
		{0.33, 0.33, 0.33},
	}

	rounded := Mat3{}
	for i := range rounded {
		rounded[i] = s15x16(mat[i])
	}

	bestJ := [9]int{}
	bestError := math.MaxFloat64
	var jitter [9]int

	var loop func(idx int)
	loop = func(idx int) {
		if idx == 9 {
			trial := Mat3{}
			for i := 0; i < 9; i++ {
				trial[i] = rounded[i] + float64(jitter[i])/65536
			}
			errSum := 0.0
			for p, probe := range probes {
				out := trial.MulVec(probe)
				l, a, b := XYZToLab(out[0], out[1], out[2])
				if p == 0 {
					errSum += (l - 100) * (l - 100)
				} else if p == 1 {
					errSum += l * l
				}
				errSum += a * a
				errSum += b * b
			}
			if errSum <= bestError {
				bestError = errSum
				bestJ = jitter
			}
			return
		}
		for j := -1; j <= 1; j++ {
			jitter[idx] = j
			loop(idx + 1)
		}
	}
	loop(0)

	out := Mat3{}
	for i := 0; i < 9; i++ {
		out[i] = rounded[i] + float64(bestJ[i])/65536
	}
	return out
}
