package format

import (
	"testing"

	"github.com/pixfish/pixfish/colorspace"
	"github.com/pixfish/pixfish/internal/registry"
)

func newTestRegistry() *registry.Registry {
	reg := registry.New()
	registry.InitStandardCatalog(reg)
	colorspace.InitStandard(reg)
	return reg
}

func TestNewInterning(t *testing.T) {
	reg := newTestRegistry()

	model, _ := reg.Lookup(registry.KindModel, "RGBA")
	typ, _ := reg.Lookup(registry.KindType, registry.TypeDouble)
	space, _ := reg.Lookup(registry.KindSpace, colorspace.SpaceSRGB)
	sampling := reg.RegisterSampling(registry.DefaultSampling)

	compR, _ := reg.Lookup(registry.KindComponent, registry.CompR)
	compG, _ := reg.Lookup(registry.KindComponent, registry.CompG)
	compB, _ := reg.Lookup(registry.KindComponent, registry.CompB)
	compA, _ := reg.Lookup(registry.KindComponent, registry.CompA)

	slots := []ComponentSlot{
		{Component: compR, Type: typ, Sampling: sampling},
		{Component: compG, Type: typ, Sampling: sampling},
		{Component: compB, Type: typ, Sampling: sampling},
		{Component: compA, Type: typ, Sampling: sampling},
	}

	h1 := New(reg, model, space, slots, false)
	h2 := New(reg, model, space, slots, false)
	if h1 != h2 {
		t.Fatalf("identical format descriptions should intern to the same handle")
	}

	f := Get(reg, h1)
	if f.NumComponents() != 4 {
		t.Errorf("NumComponents() = %d, want 4", f.NumComponents())
	}
	if !HasAlpha(reg, f) {
		t.Errorf("HasAlpha() = false, want true for RGBA")
	}
	if f.BytesPerPixel != 4*8 {
		t.Errorf("BytesPerPixel = %d, want %d", f.BytesPerPixel, 4*8)
	}
}

func TestNewNOpaqueFormatsDontCollideAcrossArity(t *testing.T) {
	reg := newTestRegistry()
	u8, _ := reg.Lookup(registry.KindType, registry.TypeU8)

	h3 := NewN(reg, u8, 3)
	h4 := NewN(reg, u8, 4)
	if h3 == h4 {
		t.Fatalf("format_n(3) and format_n(4) must not collide")
	}

	f3 := Get(reg, h3)
	if f3.NumComponents() != 3 {
		t.Errorf("NumComponents() = %d, want 3", f3.NumComponents())
	}
	if f3.BytesPerPixel != 3 {
		t.Errorf("BytesPerPixel = %d, want 3", f3.BytesPerPixel)
	}
}

func TestNewNSameArityInterns(t *testing.T) {
	reg := newTestRegistry()
	u8, _ := reg.Lookup(registry.KindType, registry.TypeU8)

	h1 := NewN(reg, u8, 2)
	h2 := NewN(reg, u8, 2)
	if h1 != h2 {
		t.Fatalf("two format_n(2, u8) calls should intern to the same handle")
	}
}

func TestHasAlphaFalseForOpaqueModel(t *testing.T) {
	reg := newTestRegistry()

	model, _ := reg.Lookup(registry.KindModel, "RGB")
	typ, _ := reg.Lookup(registry.KindType, registry.TypeU8)
	sampling := reg.RegisterSampling(registry.DefaultSampling)
	compR, _ := reg.Lookup(registry.KindComponent, registry.CompR)
	compG, _ := reg.Lookup(registry.KindComponent, registry.CompG)
	compB, _ := reg.Lookup(registry.KindComponent, registry.CompB)

	slots := []ComponentSlot{
		{Component: compR, Type: typ, Sampling: sampling},
		{Component: compG, Type: typ, Sampling: sampling},
		{Component: compB, Type: typ, Sampling: sampling},
	}
	h := New(reg, model, registry.Zero, slots, false)
	if HasAlpha(reg, Get(reg, h)) {
		t.Errorf("HasAlpha() = true, want false for plain RGB")
	}
}
