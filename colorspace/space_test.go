package colorspace

import (
	"testing"

	"github.com/pixfish/pixfish/internal/registry"
)

func TestInitStandardSpacesInvertible(t *testing.T) {
	reg := registry.New()
	InitStandard(reg)

	for _, name := range []string{SpaceSRGB, SpaceRec2020, SpaceACEScg} {
		h, err := reg.Lookup(registry.KindSpace, name)
		if err != nil {
			t.Fatalf("space %q not registered: %v", name, err)
		}
		sp := GetSpace(reg, h)
		if errSum := sp.CheckInvertible(); errSum > 1e-6 {
			t.Errorf("space %q: RGBtoXYZ * XYZtoRGB not ~identity, error=%g", name, errSum)
		}
	}
}

func TestFromChromaticitiesInterning(t *testing.T) {
	reg := registry.New()
	trc := LinearTRC(reg)

	h1 := FromChromaticities(reg, "dup", 0.3127, 0.3290, 0.64, 0.33, 0.30, 0.60, 0.15, 0.06, trc, trc, trc, FamilyRGB, true)
	h2 := FromChromaticities(reg, "dup", 0.3127, 0.3290, 0.64, 0.33, 0.30, 0.60, 0.15, 0.06, trc, trc, trc, FamilyRGB, true)
	if h1 != h2 {
		t.Fatalf("identical chromaticities should intern to the same space handle")
	}
}

func TestCompositeMatrixIdentityOnSelf(t *testing.T) {
	reg := registry.New()
	InitStandard(reg)

	h, _ := reg.Lookup(registry.KindSpace, SpaceSRGB)
	sp := GetSpace(reg, h)

	m := CompositeMatrix(sp, sp)
	for i := 0; i < 9; i++ {
		want := 0.0
		if i%4 == 0 {
			want = 1
		}
		if d := m[i] - want; d > 1e-9 || d < -1e-9 {
			t.Errorf("CompositeMatrix(sRGB, sRGB)[%d] = %g, want %g", i, m[i], want)
		}
	}
}

func TestWithICCRoundTrip(t *testing.T) {
	reg := registry.New()
	InitStandard(reg)
	h, _ := reg.Lookup(registry.KindSpace, SpaceSRGB)

	icc := []byte{0x01, 0x02, 0x03}
	WithICC(reg, h, icc)

	got := GetSpace(reg, h).ICC
	if len(got) != len(icc) {
		t.Fatalf("ICC bytes not stored: got %v", got)
	}
	for i := range icc {
		if got[i] != icc[i] {
			t.Errorf("ICC[%d] = %v, want %v", i, got[i], icc[i])
		}
	}
}
