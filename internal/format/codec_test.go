package format

import (
	"math"
	"testing"

	"github.com/pixfish/pixfish/internal/registry"
)

func TestCodecU8RoundTrip(t *testing.T) {
	ty := registry.NumericType{BitWidth: 8, MinStorage: 0, MaxStorage: 255}
	buf := make([]byte, 1)
	EncodeSample(ty, 200, buf)
	got := DecodeSample(ty, buf)
	if got != 200 {
		t.Errorf("DecodeSample(u8) = %g, want 200", got)
	}
}

func TestCodecU8Clamps(t *testing.T) {
	ty := registry.NumericType{BitWidth: 8, MinStorage: 0, MaxStorage: 255}
	buf := make([]byte, 1)
	EncodeSample(ty, 1000, buf)
	if buf[0] != 255 {
		t.Errorf("EncodeSample(u8, 1000) = %d, want clamped 255", buf[0])
	}
	EncodeSample(ty, -10, buf)
	if buf[0] != 0 {
		t.Errorf("EncodeSample(u8, -10) = %d, want clamped 0", buf[0])
	}
}

func TestCodecU16RoundTrip(t *testing.T) {
	ty := registry.NumericType{BitWidth: 16, MinStorage: 0, MaxStorage: 65535}
	buf := make([]byte, 2)
	EncodeSample(ty, 40000, buf)
	got := DecodeSample(ty, buf)
	if got != 40000 {
		t.Errorf("DecodeSample(u16) = %g, want 40000", got)
	}
}

func TestCodecHalfFloatRoundTrip(t *testing.T) {
	ty := registry.NumericType{BitWidth: 16, Float: true}
	buf := make([]byte, 2)
	EncodeSample(ty, 0.5, buf)
	got := DecodeSample(ty, buf)
	if math.Abs(got-0.5) > 1e-3 {
		t.Errorf("DecodeSample(half) = %g, want ~0.5", got)
	}
}

func TestCodecFloat32RoundTrip(t *testing.T) {
	ty := registry.NumericType{BitWidth: 32, Float: true}
	buf := make([]byte, 4)
	EncodeSample(ty, 0.25, buf)
	got := DecodeSample(ty, buf)
	if math.Abs(got-0.25) > 1e-6 {
		t.Errorf("DecodeSample(float32) = %g, want 0.25", got)
	}
}

func TestCodecFloat64RoundTrip(t *testing.T) {
	ty := registry.NumericType{BitWidth: 64, Float: true}
	buf := make([]byte, 8)
	EncodeSample(ty, 0.123456789, buf)
	got := DecodeSample(ty, buf)
	if got != 0.123456789 {
		t.Errorf("DecodeSample(double) = %g, want 0.123456789", got)
	}
}
