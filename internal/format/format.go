// Package format implements spec.md §3's "Pixel format": an ordered tuple
// of (model, color space, per-component type/sampling) interned into the
// typed registry, dependency-order item 4 (after the registry and
// color-space/TRC objects, before the planner).
package format

import (
	"fmt"
	"strings"

	"github.com/pixfish/pixfish/colorspace"
	"github.com/pixfish/pixfish/internal/registry"
)

// ComponentSlot is one (component, type, sampling) triple within a format.
type ComponentSlot struct {
	Component registry.Handle
	Type      registry.Handle
	Sampling  registry.Handle
}

// Format is a complete pixel-format description (spec.md §3).
type Format struct {
	Name    string
	Model   registry.Handle
	Space   registry.Handle // may be Zero for model-only/abstract formats
	Slots   []ComponentSlot
	Planar  bool
	Palette bool

	// BytesPerPixel is meaningful only for interleaved (non-planar)
	// formats; spec.md §3.
	BytesPerPixel int
}

func (f *Format) key(reg *registry.Registry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "format:%d:%v:%v:", f.Model.Kind(), f.Model, f.Space)
	for _, s := range f.Slots {
		fmt.Fprintf(&b, "[%v:%v:%v]", s.Component, s.Type, s.Sampling)
	}
	fmt.Fprintf(&b, ":planar=%v:palette=%v", f.Planar, f.Palette)
	return b.String()
}

// Get resolves the Format stored at h.
func Get(reg *registry.Registry, h registry.Handle) *Format {
	return reg.Object(h).(*Format)
}

// New interns a pixel format built from an explicit model, space and
// per-component (type, sampling) assignment. This is the building block
// underneath the format-name grammar parser (format_grammar.go's
// Format/formatFromModelTypeSpace) and format_n (NewN below).
func New(reg *registry.Registry, model, space registry.Handle, slots []ComponentSlot, planar bool) registry.Handle {
	f := &Format{Model: model, Space: space, Slots: slots, Planar: planar}
	if !planar {
		bpp := 0
		for _, s := range slots {
			t := reg.Type(s.Type)
			bpp += registry.BytesPerSample(t)
		}
		f.BytesPerPixel = bpp
	}
	name := deriveName(reg, f)
	f.Name = name
	return reg.Register(registry.KindFormat, name, f.key(reg), f)
}

// deriveName builds a human-readable name ("RGBA float", or
// "R'G'B' u8-ACEScg" outside sRGB) for introspection (cmd/pixfishtool
// formats, error messages). The same name is what the fish cache saves
// and later parses back through the format-name grammar.
func deriveName(reg *registry.Registry, f *Format) string {
	model := reg.Model(f.Model)
	var typeName string
	if len(f.Slots) > 0 {
		typeName = reg.Name(f.Slots[0].Type)
	}
	name := model.Name + " " + typeName
	if f.Space.Valid() {
		spaceName := reg.Name(f.Space)
		if spaceName != "" && spaceName != colorspace.SpaceSRGB {
			name += "-" + spaceName
		}
	}
	return name
}

// NewN interns an opaque n-channel format over a type, per spec.md §6
// format_n. The model is a synthetic per-arity model so it never
// collides with a named color model (SPEC_FULL.md §4.9).
func NewN(reg *registry.Registry, typeHandle registry.Handle, n int) registry.Handle {
	modelName := registry.SyntheticModelName(n)
	var components []string
	for i := 0; i < n; i++ {
		components = append(components, fmt.Sprintf("ch%d", i))
	}
	for _, cname := range components {
		reg.RegisterComponent(registry.Component{Name: cname})
	}
	model := reg.RegisterModel(registry.Model{Name: modelName, Components: components})

	var slots []ComponentSlot
	sampling := reg.RegisterSampling(registry.DefaultSampling)
	for _, cname := range components {
		ch, _ := reg.Lookup(registry.KindComponent, cname)
		slots = append(slots, ComponentSlot{Component: ch, Type: typeHandle, Sampling: sampling})
	}
	return New(reg, model, registry.Zero, slots, false)
}

// NumComponents is format_get_n_components (spec.md §6).
func (f *Format) NumComponents() int { return len(f.Slots) }

// HasAlpha is format_has_alpha (spec.md §6): true if any slot's
// component carries the alpha flag.
func HasAlpha(reg *registry.Registry, f *Format) bool {
	for _, s := range f.Slots {
		if reg.Component(s.Component).Flags.Alpha {
			return true
		}
	}
	return false
}
