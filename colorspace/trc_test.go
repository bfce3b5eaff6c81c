package colorspace

import (
	"math"
	"testing"

	"github.com/pixfish/pixfish/internal/registry"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestTRCRoundTrip(t *testing.T) {
	reg := registry.New()

	tests := []struct {
		name string
		h    registry.Handle
	}{
		{"linear", LinearTRC(reg)},
		{"sRGB", SRGBTRC(reg)},
		{"gamma(2.2)", GammaTRC(reg, 2.2)},
	}

	samples := []float64{0, 0.001, 0.0031308, 0.04045, 0.25, 0.5, 0.75, 1}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trc := GetTRC(reg, tt.h)
			for _, x := range samples {
				y := trc.ToLinear(x)
				back := trc.FromLinear(y)
				if !approxEqual(back, x, 1e-6) {
					t.Errorf("FromLinear(ToLinear(%g)) = %g, want %g", x, back, x)
				}
			}
		})
	}
}

func TestTRCMonotone(t *testing.T) {
	reg := registry.New()
	trc := GetTRC(reg, SRGBTRC(reg))

	prev := trc.ToLinear(0)
	for x := 0.01; x <= 1.0; x += 0.01 {
		y := trc.ToLinear(x)
		if y < prev {
			t.Fatalf("sRGB TRC not monotone at x=%g: %g < %g", x, y, prev)
		}
		prev = y
	}
}

func TestRegisterTRCInterning(t *testing.T) {
	reg := registry.New()
	h1 := GammaTRC(reg, 2.2)
	h2 := GammaTRC(reg, 2.2)
	if h1 != h2 {
		t.Fatalf("two gamma(2.2) TRCs should intern to the same handle")
	}
	h3 := GammaTRC(reg, 1.8)
	if h3 == h1 {
		t.Fatalf("gamma(1.8) must not intern with gamma(2.2)")
	}
}

func TestTRCLUT(t *testing.T) {
	reg := registry.New()
	lut := make([]float64, 256)
	for i := range lut {
		lut[i] = math.Pow(float64(i)/255, 2.2)
	}
	h := RegisterTRC(reg, TRC{Kind: TRCLUT, Name: "test-lut", LUT: lut})
	trc := GetTRC(reg, h)

	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		y := trc.ToLinear(x)
		back := trc.FromLinear(y)
		if !approxEqual(back, x, 0.01) {
			t.Errorf("LUT round trip at x=%g: got %g", x, back)
		}
	}
}
