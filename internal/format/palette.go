package format

import "github.com/pixfish/pixfish/internal/registry"

// paletteIndexComponent is the synthetic component backing every palette
// format's index channel, registered lazily (mirroring NewN's ad hoc
// per-arity components) since it has no role outside palette formats.
const paletteIndexComponent = "palette-index"

// NewPalette interns the pair of palette-backed formats spec.md §6's
// new_palette produces: an index-only format and an index+alpha format,
// both carrying Palette=true. internal/exec.Process rejects such formats
// with an error, and internal/graph.Build, finding no color space on
// them, plans no path to any other model; nothing routes their indices
// through internal/palette during a conversion. typeHandle is the storage type of the index itself (u8 for
// every palette this engine builds, since spec.md §4.7 caps count at
// 256).
func NewPalette(reg *registry.Registry, name string, typeHandle registry.Handle) (indexFmt, indexAlphaFmt registry.Handle) {
	idxComp := reg.RegisterComponent(registry.Component{Name: paletteIndexComponent})
	aComp, _ := reg.Lookup(registry.KindComponent, registry.CompA)

	sampling := reg.RegisterSampling(registry.DefaultSampling)

	idxModel := reg.RegisterModel(registry.Model{
		Name:       name,
		Components: []string{paletteIndexComponent},
		Flags:      registry.ModelFlags{Family: "palette"},
	})
	idxAlphaModel := reg.RegisterModel(registry.Model{
		Name:       name + "A",
		Components: []string{paletteIndexComponent, registry.CompA},
		Flags:      registry.ModelFlags{HasAlpha: true, Family: "palette"},
	})

	indexFmt = newPaletteFormat(reg, idxModel, []ComponentSlot{{Component: idxComp, Type: typeHandle, Sampling: sampling}})
	indexAlphaFmt = newPaletteFormat(reg, idxAlphaModel, []ComponentSlot{
		{Component: idxComp, Type: typeHandle, Sampling: sampling},
		{Component: aComp, Type: typeHandle, Sampling: sampling},
	})
	return indexFmt, indexAlphaFmt
}

func newPaletteFormat(reg *registry.Registry, model registry.Handle, slots []ComponentSlot) registry.Handle {
	f := &Format{Model: model, Space: registry.Zero, Slots: slots, Planar: false, Palette: true}
	bpp := 0
	for _, s := range slots {
		bpp += registry.BytesPerSample(reg.Type(s.Type))
	}
	f.BytesPerPixel = bpp
	f.Name = deriveName(reg, f) + " indexed"
	return reg.Register(registry.KindFormat, f.Name, f.key(reg)+":idx", f)
}
