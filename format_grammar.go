package pixfish

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/pixfish/pixfish/colorspace"
	"github.com/pixfish/pixfish/internal/format"
	"github.com/pixfish/pixfish/internal/registry"
)

// Format resolves a format-name encoding string to its interned handle,
// per spec.md §6's format-name grammar: one model name, one type name,
// an optional "-space" suffix on the type token (sRGB when omitted).
// Examples: "RGBA float", "R'G'B'A u8", "Y'CbCr u8", "R'G'B' u8-ACEScg",
// "CIE Lab float".
func Format(encoding string) (registry.Handle, error) {
	return FormatWithSpace(encoding, "")
}

// FormatWithSpace is Format, but space (a registered space name)
// overrides any "-space" suffix embedded in encoding; "" means "use the
// embedded suffix, or sRGB if there is none".
//
// Known simplification: spec.md §6 also allows the model token to be
// "optionally prefixed by a component subset enumeration" (e.g. picking
// out a subset of a model's channels). No example repo or
// original_source/ file this engine is grounded on exercises that
// sub-selection grammar, and the model table is already closed and
// small, so this parser matches the model token against the full,
// registered model name only.
func FormatWithSpace(encoding, spaceName string) (registry.Handle, error) {
	Init()

	fields := strings.Fields(encoding)
	if len(fields) < 2 {
		return registry.Zero, errors.Wrapf(ErrInvalidFormat, "%q: need a model and a type", encoding)
	}

	// The type token is always last; everything before it is the model
	// name, which may itself contain spaces ("CIE Lab", "CIE LCh(ab)").
	typeToken := fields[len(fields)-1]
	modelName := strings.Join(fields[:len(fields)-1], " ")

	typeName := typeToken
	embeddedSpace := ""
	if idx := strings.IndexByte(typeToken, '-'); idx >= 0 {
		typeName = typeToken[:idx]
		embeddedSpace = typeToken[idx+1:]
	}
	if spaceName == "" {
		spaceName = embeddedSpace
	}
	if spaceName == "" {
		spaceName = colorspace.SpaceSRGB
	}

	modelH, err := reg.Lookup(registry.KindModel, modelName)
	if err != nil {
		return registry.Zero, errors.Wrapf(ErrInvalidFormat, "%q: unknown model %q", encoding, modelName)
	}
	typeH, err := reg.Lookup(registry.KindType, typeName)
	if err != nil {
		return registry.Zero, errors.Wrapf(ErrInvalidFormat, "%q: unknown type %q", encoding, typeName)
	}
	spaceH, err := reg.Lookup(registry.KindSpace, spaceName)
	if err != nil {
		return registry.Zero, errors.Wrapf(ErrInvalidFormat, "%q: unknown space %q", encoding, spaceName)
	}

	return formatFromModelTypeSpace(modelH, typeH, spaceH), nil
}

// formatFromModelTypeSpace interns the interleaved format built by
// assigning typeH (and the default (1,1) sampling) to every component of
// modelH, in spaceH.
func formatFromModelTypeSpace(modelH, typeH, spaceH registry.Handle) registry.Handle {
	model := reg.Model(modelH)
	sampling := reg.RegisterSampling(registry.DefaultSampling)

	slots := make([]format.ComponentSlot, len(model.Components))
	for i, cname := range model.Components {
		ch, err := reg.Lookup(registry.KindComponent, cname)
		if err != nil {
			// Every standard model is built exclusively from standard
			// components registered by registry.InitStandardCatalog; an
			// unresolvable component name here means a model/component
			// table mismatch, a programming error rather than a
			// user-facing condition.
			panic(err)
		}
		slots[i] = format.ComponentSlot{Component: ch, Type: typeH, Sampling: sampling}
	}
	return format.New(reg, modelH, spaceH, slots, false)
}
