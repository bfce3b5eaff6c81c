package graph

import (
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

func TestBuildIdentityIsZeroOp(t *testing.T) {
	reg, lib := newTestEnv(t)
	rgba := buildFormat(t, reg, registry.ModelRGBA, colorspace.SpaceSRGB, registry.TypeDouble)

	chain, err := Build(reg, lib, rgba, rgba)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(chain.Ops) != 0 {
		t.Errorf("identity conversion should produce a zero-op chain, got %d ops", len(chain.Ops))
	}
}

func TestBuildRGBAToRpGpBpA(t *testing.T) {
	reg, lib := newTestEnv(t)
	rgba := buildFormat(t, reg, registry.ModelRGBA, colorspace.SpaceSRGB, registry.TypeDouble)
	rpgpbpA := buildFormat(t, reg, registry.ModelRpGpBpA, colorspace.SpaceSRGB, registry.TypeDouble)

	chain, err := Build(reg, lib, rgba, rpgpbpA)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(chain.Ops) == 0 {
		t.Errorf("linear->nonlinear conversion should not be a zero-op chain")
	}

	bands := map[string][]float64{
		registry.CompR: {0.5},
		registry.CompG: {0.5},
		registry.CompB: {0.5},
		registry.CompA: {1.0},
	}
	chain.Run(bands, 1)
	if _, ok := bands[registry.CompRp]; !ok {
		t.Errorf("expected band %q after running chain, bands=%v", registry.CompRp, bands)
	}
}

func TestBuildNoPathForOpaqueFormatsOverDifferentModels(t *testing.T) {
	reg, lib := newTestEnv(t)
	u8, _ := reg.Lookup(registry.KindType, registry.TypeU8)

	a := format.NewN(reg, u8, 3)
	b := format.NewN(reg, u8, 4)

	if _, err := Build(reg, lib, a, b); err == nil {
		t.Fatalf("expected ErrNoPath for incompatible opaque formats")
	}
}

func TestBuildCrossSpaceIncludesSpaceToSpace(t *testing.T) {
	reg, lib := newTestEnv(t)
	srgbRGBA := buildFormat(t, reg, registry.ModelRGBA, colorspace.SpaceSRGB, registry.TypeDouble)
	rec2020RGBA := buildFormat(t, reg, registry.ModelRGBA, colorspace.SpaceRec2020, registry.TypeDouble)

	chain, err := Build(reg, lib, srgbRGBA, rec2020RGBA)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	found := false
	for _, op := range chain.Ops {
		if op.Name == "space->space" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a space->space op converting sRGB to Rec2020, got ops=%v", opNames(chain.Ops))
	}
}

func opNames(ops []Op) []string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}
