package palette

import "math"

// defaultEGAU8 is the 16-entry ANSI/EGA default palette (R,G,B,A u8,
// interleaved), copied verbatim from babl-palette.c's defpal_data.
var defaultEGAU8 = []uint8{
	0, 0, 0, 255,
	127, 0, 0, 255,
	0, 127, 0, 255,
	127, 127, 0, 255,
	0, 0, 127, 255,
	127, 0, 127, 255,
	0, 127, 127, 255,
	127, 127, 127, 255,
	63, 63, 63, 255,
	255, 0, 0, 255,
	0, 255, 0, 255,
	255, 255, 0, 255,
	0, 0, 255, 255,
	255, 0, 255, 255,
	0, 255, 255, 255,
	255, 255, 255, 255,
}

// srgbU8ToLinear8 decodes one sRGB-encoded u8 sample to linear [0,1],
// used only to derive the default palette's cached linear-double
// representation without depending on internal/exec's fish machinery
// (the default palette must be constructible before any Fish exists).
func srgbU8ToLinear8(v uint8) float64 {
	x := float64(v) / 255
	if x <= 0.04045 {
		return x / 12.92
	}
	return math.Pow((x+0.055)/1.055, 2.4)
}

// DefaultEGA returns (and builds, on first call) the standard 16-color
// ANSI/EGA default palette against the sRGB TRC, mirroring babl's
// default_palette(). Its linear-double cache is derived here directly
// (sRGB decode) rather than via a Fish, since the default palette is a
// fixed, well-known sRGB-gamma constant table spec.md §4.7 singles out
// by name (scenario S4) and has no dependency on a caller-supplied
// space.
func DefaultEGA() *Palette {
	linear := make([]float64, 4*16)
	for i := 0; i < 16; i++ {
		r, g, b, a := defaultEGAU8[4*i], defaultEGAU8[4*i+1], defaultEGAU8[4*i+2], defaultEGAU8[4*i+3]
		linear[4*i] = srgbU8ToLinear8(r)
		linear[4*i+1] = srgbU8ToLinear8(g)
		linear[4*i+2] = srgbU8ToLinear8(b)
		linear[4*i+3] = float64(a) / 255
	}
	p, err := New(defaultEGAU8, linear, 16)
	if err != nil {
		// unreachable: 16 entries is always valid.
		panic(err)
	}
	return p
}
