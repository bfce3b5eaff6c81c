package registry

// ComponentFlags tags a component with the attributes the planner and the
// primitive library need to decide which edges apply.
type ComponentFlags struct {
	Linear        bool
	Nonlinear     bool // TRC-encoded ("primed", e.g. R')
	Perceptual    bool // universal sRGB-like TRC regardless of space ("tilde", e.g. R~)
	Chroma        bool
	Luma          bool
	Alpha         bool
	Premultiplied bool // suffix "a", e.g. R'a
}

// Component is a named color/channel role.
type Component struct {
	Name  string
	Flags ComponentFlags
}

func (c Component) key() string { return "component:" + c.Name }

// RegisterComponent interns a component by name (components are not
// structurally deduplicated across names: "R" and "G" could share flags
// but are semantically distinct roles).
func (r *Registry) RegisterComponent(c Component) Handle {
	return r.Register(KindComponent, c.Name, c.key(), c)
}

func (r *Registry) Component(h Handle) Component {
	return r.Object(h).(Component)
}

// Standard component names used by the built-in models.
const (
	CompR, CompG, CompB, CompA = "R", "G", "B", "A"
	CompRp, CompGp, CompBp     = "R'", "G'", "B'"
	CompRpa, CompGpa, CompBpa  = "R'a", "G'a", "B'a"
	CompRt, CompGt, CompBt     = "R~", "G~", "B~"
	CompY, CompYp, CompYt      = "Y", "Y'", "Y~"
	CompYa, CompYpa            = "Ya", "Y'a"
	CompCb, CompCr             = "Cb", "Cr"
	CompCIEL, CompCIEa, CompCIEb = "CIE L", "CIE a", "CIE b"
	CompCIECab, CompCIEHab     = "CIE C(ab)", "CIE H(ab)"
	CompHue, CompSaturation    = "hue", "saturation"
	CompLightness, CompValue   = "lightness", "value"
	CompHCYLuma                = "HCY luma"
	CompCyan, CompMagenta      = "cyan", "magenta"
	CompYellow, CompKey        = "yellow", "key"
)

func registerStandardComponents(r *Registry) {
	lin := ComponentFlags{Linear: true}
	nonlin := ComponentFlags{Nonlinear: true}
	nonlinPremul := ComponentFlags{Nonlinear: true, Premultiplied: true}
	percep := ComponentFlags{Perceptual: true}
	alpha := ComponentFlags{Alpha: true}

	r.RegisterComponent(Component{Name: CompR, Flags: lin})
	r.RegisterComponent(Component{Name: CompG, Flags: lin})
	r.RegisterComponent(Component{Name: CompB, Flags: lin})
	r.RegisterComponent(Component{Name: CompA, Flags: alpha})

	r.RegisterComponent(Component{Name: CompRp, Flags: nonlin})
	r.RegisterComponent(Component{Name: CompGp, Flags: nonlin})
	r.RegisterComponent(Component{Name: CompBp, Flags: nonlin})

	r.RegisterComponent(Component{Name: CompRpa, Flags: nonlinPremul})
	r.RegisterComponent(Component{Name: CompGpa, Flags: nonlinPremul})
	r.RegisterComponent(Component{Name: CompBpa, Flags: nonlinPremul})

	r.RegisterComponent(Component{Name: CompRt, Flags: percep})
	r.RegisterComponent(Component{Name: CompGt, Flags: percep})
	r.RegisterComponent(Component{Name: CompBt, Flags: percep})

	r.RegisterComponent(Component{Name: CompY, Flags: ComponentFlags{Linear: true, Luma: true}})
	r.RegisterComponent(Component{Name: CompYp, Flags: ComponentFlags{Nonlinear: true, Luma: true}})
	r.RegisterComponent(Component{Name: CompYt, Flags: ComponentFlags{Perceptual: true, Luma: true}})
	r.RegisterComponent(Component{Name: CompYa, Flags: ComponentFlags{Linear: true, Luma: true, Premultiplied: true}})
	r.RegisterComponent(Component{Name: CompYpa, Flags: ComponentFlags{Nonlinear: true, Luma: true, Premultiplied: true}})

	r.RegisterComponent(Component{Name: CompCb, Flags: ComponentFlags{Chroma: true}})
	r.RegisterComponent(Component{Name: CompCr, Flags: ComponentFlags{Chroma: true}})

	r.RegisterComponent(Component{Name: CompCIEL, Flags: ComponentFlags{Luma: true}})
	r.RegisterComponent(Component{Name: CompCIEa, Flags: ComponentFlags{Chroma: true}})
	r.RegisterComponent(Component{Name: CompCIEb, Flags: ComponentFlags{Chroma: true}})
	r.RegisterComponent(Component{Name: CompCIECab, Flags: ComponentFlags{Chroma: true}})
	r.RegisterComponent(Component{Name: CompCIEHab, Flags: ComponentFlags{Chroma: true}})

	r.RegisterComponent(Component{Name: CompHue})
	r.RegisterComponent(Component{Name: CompSaturation})
	r.RegisterComponent(Component{Name: CompLightness})
	r.RegisterComponent(Component{Name: CompValue})
	r.RegisterComponent(Component{Name: CompHCYLuma, Flags: ComponentFlags{Luma: true}})

	r.RegisterComponent(Component{Name: CompCyan})
	r.RegisterComponent(Component{Name: CompMagenta})
	r.RegisterComponent(Component{Name: CompYellow})
	r.RegisterComponent(Component{Name: CompKey})
}
