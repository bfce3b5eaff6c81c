package colorspace

import "github.com/pixfish/pixfish/internal/registry"

// Well-known space names.
const (
	SpaceSRGB   = "sRGB"
	SpaceRec2020 = "Rec2020"
	SpaceACEScg = "ACEScg"
)

// InitStandard registers the default color spaces babl-style pipelines
// expect to find by name, per spec.md §6's "sRGB when omitted" default.
// The sRGB and Rec2020 matrices are equalized (spec.md §4.3 step 4),
// matching the "default space" treatment in
// original_source/babl/babl-space.c; ACEScg's is not.
func InitStandard(reg *registry.Registry) {
	srgbTRC := SRGBTRC(reg)

	FromChromaticities(reg, SpaceSRGB,
		0.3127, 0.3290, // D65 white
		0.6400, 0.3300, // red
		0.3000, 0.6000, // green
		0.1500, 0.0600, // blue
		srgbTRC, srgbTRC, srgbTRC, FamilyRGB, true)

	rec2020TRC := GammaTRC(reg, 1.0/2.2)
	FromChromaticities(reg, SpaceRec2020,
		0.3127, 0.3290,
		0.7080, 0.2920,
		0.1700, 0.7970,
		0.1310, 0.0460,
		rec2020TRC, rec2020TRC, rec2020TRC, FamilyRGB, true)

	linearTRC := LinearTRC(reg)
	FromChromaticities(reg, SpaceACEScg,
		0.32168, 0.33767, // ACES white point
		0.71300, 0.29300,
		0.16500, 0.83000,
		0.12800, 0.04400,
		linearTRC, linearTRC, linearTRC, FamilyRGB, false)
}
