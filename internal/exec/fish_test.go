package exec

import (
	"math"
	"testing"

	"github.com/pixfish/pixfish/colorspace"
	"github.com/pixfish/pixfish/internal/convert"
	"github.com/pixfish/pixfish/internal/format"
	"github.com/pixfish/pixfish/internal/registry"
)

func newTestEnv(t *testing.T) (*registry.Registry, *convert.Library) {
	t.Helper()
	reg := registry.New()
	registry.InitStandardCatalog(reg)
	colorspace.InitStandard(reg)

	lib := convert.NewLibrary()
	doubleH, _ := reg.Lookup(registry.KindType, registry.TypeDouble)
	floatH, _ := reg.Lookup(registry.KindType, registry.TypeFloat)
	convert.RegisterNumericEdges(reg, lib, doubleH, floatH)
	convert.RegisterModelEdges(reg, lib)
	return reg, lib
}

func buildFormat(t *testing.T, reg *registry.Registry, modelName, spaceName, typeName string) registry.Handle {
	t.Helper()
	model, err := reg.Lookup(registry.KindModel, modelName)
	if err != nil {
		t.Fatalf("model %q: %v", modelName, err)
	}
	space, err := reg.Lookup(registry.KindSpace, spaceName)
	if err != nil {
		t.Fatalf("space %q: %v", spaceName, err)
	}
	typ, err := reg.Lookup(registry.KindType, typeName)
	if err != nil {
		t.Fatalf("type %q: %v", typeName, err)
	}
	sampling := reg.RegisterSampling(registry.DefaultSampling)

	m := reg.Model(model)
	var slots []format.ComponentSlot
	for _, cname := range m.Components {
		ch, err := reg.Lookup(registry.KindComponent, cname)
		if err != nil {
			t.Fatalf("component %q: %v", cname, err)
		}
		slots = append(slots, format.ComponentSlot{Component: ch, Type: typ, Sampling: sampling})
	}
	return format.New(reg, model, space, slots, false)
}

func TestProcessIdentityIsMemcpy(t *testing.T) {
	reg, lib := newTestEnv(t)
	u8rgba := buildFormat(t, reg, registry.ModelRpGpBpA, colorspace.SpaceSRGB, registry.TypeU8)

	f, err := NewFish(reg, lib, u8rgba, u8rgba)
	if err != nil {
		t.Fatalf("NewFish: %v", err)
	}

	src := []byte{10, 20, 30, 255, 40, 50, 60, 128}
	dst := make([]byte, len(src))
	if err := Process(f, src, dst, 2); err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i := range src {
		if dst[i] != src[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], src[i])
		}
	}
}

func TestProcessRGBAu8ToRGBADoubleRoundTrip(t *testing.T) {
	reg, lib := newTestEnv(t)
	u8 := buildFormat(t, reg, registry.ModelRpGpBpA, colorspace.SpaceSRGB, registry.TypeU8)
	dbl := buildFormat(t, reg, registry.ModelRGBA, colorspace.SpaceSRGB, registry.TypeDouble)

	toDouble, err := NewFish(reg, lib, u8, dbl)
	if err != nil {
		t.Fatalf("NewFish forward: %v", err)
	}
	toU8, err := NewFish(reg, lib, dbl, u8)
	if err != nil {
		t.Fatalf("NewFish backward: %v", err)
	}

	src := []byte{127, 64, 200, 255}
	mid := make([]byte, 4*8)
	if err := Process(toDouble, src, mid, 1); err != nil {
		t.Fatalf("Process forward: %v", err)
	}
	back := make([]byte, 4)
	if err := Process(toU8, mid, back, 1); err != nil {
		t.Fatalf("Process backward: %v", err)
	}

	for i := range src {
		d := int(src[i]) - int(back[i])
		if d < -1 || d > 1 {
			t.Errorf("round-trip byte %d: got %d, want ~%d", i, back[i], src[i])
		}
	}
}

func TestProcessSizeMismatch(t *testing.T) {
	reg, lib := newTestEnv(t)
	u8rgba := buildFormat(t, reg, registry.ModelRpGpBpA, colorspace.SpaceSRGB, registry.TypeU8)

	f, err := NewFish(reg, lib, u8rgba, u8rgba)
	if err != nil {
		t.Fatalf("NewFish: %v", err)
	}

	src := make([]byte, 3) // wrong size for 1 pixel of a 4-byte format
	dst := make([]byte, 4)
	if err := Process(f, src, dst, 1); err == nil {
		t.Fatalf("expected ErrSizeMismatch for undersized src")
	}
}

func TestCacheGetReusesFish(t *testing.T) {
	reg, lib := newTestEnv(t)
	a := buildFormat(t, reg, registry.ModelRGBA, colorspace.SpaceSRGB, registry.TypeDouble)
	b := buildFormat(t, reg, registry.ModelRpGpBpA, colorspace.SpaceSRGB, registry.TypeDouble)

	c := NewCache()
	f1, err := c.Get(reg, lib, a, b)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	f2, err := c.Get(reg, lib, a, b)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if f1 != f2 {
		t.Fatalf("Cache.Get should return the same *Fish for a repeated (from,to) pair")
	}

	keys := c.Keys()
	if len(keys) != 1 || keys[0].From != a || keys[0].To != b {
		t.Fatalf("Keys() = %v, want one entry (from=%v,to=%v)", keys, a, b)
	}
}

func TestLUTPromotionAfterThreshold(t *testing.T) {
	reg, lib := newTestEnv(t)
	u8rgba := buildFormat(t, reg, registry.ModelRpGpBpA, colorspace.SpaceSRGB, registry.TypeU8)
	u8rgb := buildFormat(t, reg, registry.ModelRpGpBp, colorspace.SpaceSRGB, registry.TypeU8)

	f, err := NewFish(reg, lib, u8rgba, u8rgb)
	if err != nil {
		t.Fatalf("NewFish: %v", err)
	}
	if !f.rgbOnlyU8 {
		t.Fatalf("u8 RGB(A) <-> u8 RGB should be LUT-eligible")
	}

	src := make([]byte, 4*1024)
	for i := range src {
		src[i] = byte(i % 256)
	}
	dst := make([]byte, 3*1024)

	const rounds = int(math.Ceil(float64(lutPromoteThreshold) / 1024))
	for i := 0; i < rounds+1; i++ {
		if err := Process(f, src, dst, 1024); err != nil {
			t.Fatalf("Process round %d: %v", i, err)
		}
	}
	if f.lut.Load() == nil {
		t.Errorf("expected LUT to be promoted after exceeding the pixel threshold")
	}
}
