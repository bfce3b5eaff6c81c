package registry

import "strings"

// ModelFlags summarizes a model's overall characteristics, derived from
// its component list.
type ModelFlags struct {
	HasAlpha      bool
	Premultiplied bool
	Linear        bool
	Nonlinear     bool
	Perceptual    bool
	Family        string // "RGB", "gray", "CMYK", "CIE", "HSx"
}

// Model is the ordered list of components a color model is built from.
type Model struct {
	Name       string
	Components []string // component names, in channel order
	Flags      ModelFlags
}

func (m Model) key() string {
	return "model:" + strings.Join(m.Components, ",")
}

// RegisterModel interns a model by its ordered component list.
func (r *Registry) RegisterModel(m Model) Handle {
	return r.Register(KindModel, m.Name, m.key(), m)
}

func (r *Registry) Model(h Handle) Model {
	return r.Object(h).(Model)
}

// NumComponents is a convenience accessor mirroring format_get_n_components
// at the model level.
func (m Model) NumComponents() int { return len(m.Components) }

// Standard model names.
const (
	ModelRGB        = "RGB"
	ModelRGBA       = "RGBA"
	ModelRpGpBp     = "R'G'B'"
	ModelRpGpBpA    = "R'G'B'A"
	ModelRaGaBaA    = "RaGaBaA"
	ModelCMY        = "CMY"
	ModelCMYK       = "CMYK"
	ModelY          = "Y"
	ModelYA         = "YA"
	ModelYpCbCr     = "Y'CbCr"
	ModelHSL        = "HSL"
	ModelHSLA       = "HSLA"
	ModelHSV        = "HSV"
	ModelHSVA       = "HSVA"
	ModelHCY        = "HCY"
	ModelHCYA       = "HCYA"
	ModelCIELab     = "CIE Lab"
	ModelCIELabA    = "CIE Lab alpha"
	ModelCIELCh     = "CIE LCh(ab)"
)

func registerStandardModels(r *Registry) {
	rgbFamily := ModelFlags{Linear: true, Family: "RGB"}
	r.RegisterModel(Model{Name: ModelRGB, Components: []string{CompR, CompG, CompB}, Flags: rgbFamily})
	r.RegisterModel(Model{Name: ModelRGBA, Components: []string{CompR, CompG, CompB, CompA},
		Flags: ModelFlags{Linear: true, HasAlpha: true, Family: "RGB"}})

	nonlinFamily := ModelFlags{Nonlinear: true, Family: "RGB"}
	r.RegisterModel(Model{Name: ModelRpGpBp, Components: []string{CompRp, CompGp, CompBp}, Flags: nonlinFamily})
	r.RegisterModel(Model{Name: ModelRpGpBpA, Components: []string{CompRp, CompGp, CompBp, CompA},
		Flags: ModelFlags{Nonlinear: true, HasAlpha: true, Family: "RGB"}})
	r.RegisterModel(Model{Name: ModelRaGaBaA, Components: []string{CompRpa, CompGpa, CompBpa, CompA},
		Flags: ModelFlags{Nonlinear: true, HasAlpha: true, Premultiplied: true, Family: "RGB"}})

	r.RegisterModel(Model{Name: ModelCMY, Components: []string{CompCyan, CompMagenta, CompYellow},
		Flags: ModelFlags{Nonlinear: true, Family: "CMYK"}})
	r.RegisterModel(Model{Name: ModelCMYK, Components: []string{CompCyan, CompMagenta, CompYellow, CompKey},
		Flags: ModelFlags{Nonlinear: true, Family: "CMYK"}})

	r.RegisterModel(Model{Name: ModelY, Components: []string{CompY},
		Flags: ModelFlags{Linear: true, Family: "gray"}})
	r.RegisterModel(Model{Name: ModelYA, Components: []string{CompY, CompA},
		Flags: ModelFlags{Linear: true, HasAlpha: true, Family: "gray"}})

	r.RegisterModel(Model{Name: ModelYpCbCr, Components: []string{CompYp, CompCb, CompCr},
		Flags: ModelFlags{Nonlinear: true, Family: "YCbCr"}})

	r.RegisterModel(Model{Name: ModelHSL, Components: []string{CompHue, CompSaturation, CompLightness},
		Flags: ModelFlags{Nonlinear: true, Family: "HSx"}})
	r.RegisterModel(Model{Name: ModelHSLA, Components: []string{CompHue, CompSaturation, CompLightness, CompA},
		Flags: ModelFlags{Nonlinear: true, HasAlpha: true, Family: "HSx"}})
	r.RegisterModel(Model{Name: ModelHSV, Components: []string{CompHue, CompSaturation, CompValue},
		Flags: ModelFlags{Nonlinear: true, Family: "HSx"}})
	r.RegisterModel(Model{Name: ModelHSVA, Components: []string{CompHue, CompSaturation, CompValue, CompA},
		Flags: ModelFlags{Nonlinear: true, HasAlpha: true, Family: "HSx"}})
	r.RegisterModel(Model{Name: ModelHCY, Components: []string{CompHue, CompSaturation, CompHCYLuma},
		Flags: ModelFlags{Nonlinear: true, Family: "HSx"}})
	r.RegisterModel(Model{Name: ModelHCYA, Components: []string{CompHue, CompSaturation, CompHCYLuma, CompA},
		Flags: ModelFlags{Nonlinear: true, HasAlpha: true, Family: "HSx"}})

	r.RegisterModel(Model{Name: ModelCIELab, Components: []string{CompCIEL, CompCIEa, CompCIEb},
		Flags: ModelFlags{Family: "CIE"}})
	r.RegisterModel(Model{Name: ModelCIELabA, Components: []string{CompCIEL, CompCIEa, CompCIEb, CompA},
		Flags: ModelFlags{HasAlpha: true, Family: "CIE"}})
	r.RegisterModel(Model{Name: ModelCIELCh, Components: []string{CompCIEL, CompCIECab, CompCIEHab},
		Flags: ModelFlags{Family: "CIE"}})
}

// SyntheticModelName returns the interned name used by format_n for an
// opaque n-channel format over a model family keyed purely by channel
// count ("opaque" plus one digit per channel, e.g. "opaque012"), so it
// never collides with a named model (spec.md §6 format_n;
// SPEC_FULL.md §4.9).
func SyntheticModelName(n int) string {
	b := strings.Builder{}
	b.WriteString("opaque")
	for i := 0; i < n; i++ {
		b.WriteByte('0' + byte(i%10))
	}
	return b.String()
}
