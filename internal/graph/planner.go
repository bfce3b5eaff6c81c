package graph

import (
	"github.com/pkg/errors"

	"github.com/pixfish/pixfish/colorspace"
	"github.com/pixfish/pixfish/internal/convert"
	"github.com/pixfish/pixfish/internal/format"
	"github.com/pixfish/pixfish/internal/registry"
)

// ErrNoPath is returned when Build cannot find a route between two
// formats, per spec.md §4.4's "NoPath failure".
var ErrNoPath = errors.New("pixfish: no conversion path")

// Build plans the conversion from fromH to toH, returning a reusable
// Chain. Identical formats short-circuit to a zero-op chain (the
// memcpy fast path, spec.md §4.4).
func Build(reg *registry.Registry, lib *convert.Library, fromH, toH registry.Handle) (*Chain, error) {
	if fromH == toH {
		return &Chain{FromFormat: fromH, ToFormat: toH}, nil
	}

	fromFmt := format.Get(reg, fromH)
	toFmt := format.Get(reg, toH)

	if !fromFmt.Space.Valid() || !toFmt.Space.Valid() {
		if fromFmt.Model == toFmt.Model {
			return buildPassthrough(fromFmt, toFmt), nil
		}
		return nil, errors.Wrapf(ErrNoPath, "%s -> %s (no color space on an opaque format)", fromFmt.Name, toFmt.Name)
	}

	srcSpace := colorspace.GetSpace(reg, fromFmt.Space)
	dstSpace := colorspace.GetSpace(reg, toFmt.Space)

	var ops []Op
	ops = append(ops, reductionOps(reg, lib, fromFmt, srcSpace, dstSpace)...)
	ops = append(ops, synthesisOps(reg, lib, toFmt, dstSpace)...)

	return &Chain{FromFormat: fromH, ToFormat: toH, Ops: ops}, nil
}

// buildPassthrough handles the format_n <-> format_n edge case: two
// opaque, space-less formats over the same synthetic model are routed by
// pure identity (the type<->type conversion alone, applied by
// internal/exec before/after the chain runs), since no color model
// conversion can apply without a space (spec.md §4.9 / SPEC_FULL.md
// §4.9).
func buildPassthrough(fromFmt, toFmt *format.Format) *Chain {
	return &Chain{Ops: nil}
}

func modelOf(reg *registry.Registry, f *format.Format) registry.Model {
	return reg.Model(f.Model)
}

func modelComponentNames(m registry.Model) []string { return m.Components }

func containsComponent(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

// reductionOps builds the phase-A chain: fromFmt's model/space down to
// the pivot (RGBA double, dest space), per spec.md §4.4.
func reductionOps(reg *registry.Registry, lib *convert.Library, fromFmt *format.Format, srcSpace, dstSpace *colorspace.Space) []Op {
	var ops []Op
	m := modelOf(reg, fromFmt)
	names := modelComponentNames(m)

	premultiplied := containsComponent(names, registry.CompRpa) || containsComponent(names, registry.CompYpa)
	if premultiplied {
		alphaName := registry.CompA
		rNames := []string{registry.CompRpa, registry.CompGpa, registry.CompBpa}
		if containsComponent(names, registry.CompYpa) {
			rNames = []string{registry.CompYpa}
		}
		ops = append(ops, Op{Name: "unpremultiply", Run: func(bands map[string][]float64, n int) {
			var chans [][]float64
			for _, rn := range rNames {
				chans = append(chans, bands[rn])
			}
			convert.Unpremultiply(chans, bands[alphaName], n)
			for i, rn := range rNames {
				bands[strippedPremulName(rn)] = chans[i]
				delete(bands, rn)
			}
		}})
		renamed := make([]string, len(names))
		for i, nm := range names {
			renamed[i] = strippedPremulName(nm)
		}
		names = renamed
	}

	switch m.Flags.Family {
	case "RGB":
		if m.Flags.Nonlinear {
			ops = append(ops, modelToRGBPrimeOp(reg, lib, m.Name)...)
			ops = append(ops, trcToLinearOp(srcSpace, containsComponent(names, registry.CompA))...)
		}
		// Family RGB with Flags.Linear is already RGB(A); nothing to do.
	case "CMYK":
		ops = append(ops, modelEdgeOp(reg, lib, m.Name, registry.ModelRGB, m.Name+"->RGB")...)
	case "YCbCr":
		ops = append(ops, modelToRGBPrimeOp(reg, lib, m.Name)...)
		ops = append(ops, trcToLinearOp(srcSpace, false)...)
	case "HSx":
		ops = append(ops, modelToRGBPrimeOp(reg, lib, m.Name)...)
		ops = append(ops, trcToLinearOp(srcSpace, containsComponent(names, registry.CompA))...)
	case "gray":
		ops = append(ops, Op{Name: "Y->RGB", Run: func(bands map[string][]float64, n int) {
			r, g, b := make([]float64, n), make([]float64, n), make([]float64, n)
			convert.YToRGB(bands[registry.CompY], r, g, b, n)
			bands[registry.CompR], bands[registry.CompG], bands[registry.CompB] = r, g, b
			delete(bands, registry.CompY)
		}})
	case "CIE":
		if containsComponent(names, registry.CompCIECab) {
			ops = append(ops, modelEdgeOp(reg, lib, registry.ModelCIELCh, registry.ModelCIELab, "LCh(ab)->Lab")...)
		}
		xyzToRGB := srcSpace.XYZtoRGB
		ops = append(ops, Op{Name: "Lab->RGB", Run: func(bands map[string][]float64, n int) {
			r, g, b := make([]float64, n), make([]float64, n), make([]float64, n)
			convert.LabToRGB(bands[registry.CompCIEL], bands[registry.CompCIEa], bands[registry.CompCIEb], r, g, b, n, xyzToRGB)
			bands[registry.CompR], bands[registry.CompG], bands[registry.CompB] = r, g, b
			delete(bands, registry.CompCIEL)
			delete(bands, registry.CompCIEa)
			delete(bands, registry.CompCIEb)
		}})
	}

	ops = append(ops, Op{Name: "fill-opaque-alpha", Run: func(bands map[string][]float64, n int) {
		if _, ok := bands[registry.CompA]; !ok {
			a := make([]float64, n)
			convert.FillOpaqueAlpha(a, n)
			bands[registry.CompA] = a
		}
	}})

	if srcSpace != dstSpace {
		mat := colorspace.CompositeMatrix(srcSpace, dstSpace)
		ops = append(ops, Op{Name: "space->space", Run: func(bands map[string][]float64, n int) {
			convert.ApplySpaceMatrix(bands[registry.CompR], bands[registry.CompG], bands[registry.CompB], n, mat)
		}})
	}

	return ops
}

// synthesisOps builds the phase-B chain: the pivot to toFmt's model and
// space, per spec.md §4.4.
func synthesisOps(reg *registry.Registry, lib *convert.Library, toFmt *format.Format, dstSpace *colorspace.Space) []Op {
	var ops []Op
	m := modelOf(reg, toFmt)
	names := modelComponentNames(m)
	wantAlpha := containsComponent(names, registry.CompA) || containsComponent(names, registry.CompRpa) || containsComponent(names, registry.CompYpa)

	switch m.Flags.Family {
	case "RGB":
		if m.Flags.Nonlinear {
			ops = append(ops, trcFromLinearOp(dstSpace)...)
		}
	case "CMYK":
		ops = append(ops, modelEdgeOp(reg, lib, registry.ModelRGB, m.Name, "RGB->"+m.Name)...)
	case "YCbCr":
		ops = append(ops, trcFromLinearOp(dstSpace)...)
		ops = append(ops, rgbPrimeToModelOp(reg, lib, m.Name)...)
	case "HSx":
		ops = append(ops, trcFromLinearOp(dstSpace)...)
		ops = append(ops, rgbPrimeToModelOp(reg, lib, m.Name)...)
	case "gray":
		wr, wg, wb := dstSpace.LuminanceWeights()
		ops = append(ops, Op{Name: "RGB->Y", Run: func(bands map[string][]float64, n int) {
			y := make([]float64, n)
			convert.RGBToY(bands[registry.CompR], bands[registry.CompG], bands[registry.CompB], y, n, wr, wg, wb)
			bands[registry.CompY] = y
			delete(bands, registry.CompR)
			delete(bands, registry.CompG)
			delete(bands, registry.CompB)
		}})
	case "CIE":
		mat := dstSpace.RGBtoXYZ
		ops = append(ops, Op{Name: "RGB->Lab", Run: func(bands map[string][]float64, n int) {
			l, a, b := make([]float64, n), make([]float64, n), make([]float64, n)
			convert.RGBToLab(bands[registry.CompR], bands[registry.CompG], bands[registry.CompB], l, a, b, n, mat)
			bands[registry.CompCIEL], bands[registry.CompCIEa], bands[registry.CompCIEb] = l, a, b
			delete(bands, registry.CompR)
			delete(bands, registry.CompG)
			delete(bands, registry.CompB)
		}})
		if containsComponent(names, registry.CompCIECab) {
			ops = append(ops, modelEdgeOp(reg, lib, registry.ModelCIELab, registry.ModelCIELCh, "Lab->LCh(ab)")...)
		}
	}

	if !wantAlpha {
		ops = append(ops, Op{Name: "drop-alpha", Run: func(bands map[string][]float64, n int) {
			delete(bands, registry.CompA)
		}})
	}

	premultiplied := containsComponent(names, registry.CompRpa) || containsComponent(names, registry.CompYpa)
	if premultiplied {
		rNames := []string{registry.CompRp, registry.CompGp, registry.CompBp}
		if containsComponent(names, registry.CompYpa) {
			rNames = []string{registry.CompYp}
		}
		ops = append(ops, Op{Name: "premultiply", Run: func(bands map[string][]float64, n int) {
			var chans [][]float64
			for _, rn := range rNames {
				chans = append(chans, bands[rn])
			}
			convert.Premultiply(chans, bands[registry.CompA], n)
			for i, rn := range rNames {
				bands[premulName(rn)] = chans[i]
				delete(bands, rn)
			}
		}})
	}

	return ops
}

// modelToRGBPrimeOp converts the current nonlinear model to R'G'B' via the
// registered EdgeModelToModel primitive for modelName, if one exists (and
// modelName isn't R'G'B' itself already).
func modelToRGBPrimeOp(reg *registry.Registry, lib *convert.Library, modelName string) []Op {
	if modelName == registry.ModelRpGpBp || modelName == registry.ModelRpGpBpA || modelName == registry.ModelRaGaBaA {
		return nil
	}
	return modelEdgeOp(reg, lib, modelName, registry.ModelRpGpBp, modelName+"->R'G'B'")
}

// rgbPrimeToModelOp is the inverse of modelToRGBPrimeOp.
func rgbPrimeToModelOp(reg *registry.Registry, lib *convert.Library, modelName string) []Op {
	if modelName == registry.ModelRpGpBp || modelName == registry.ModelRpGpBpA {
		return nil
	}
	return modelEdgeOp(reg, lib, registry.ModelRpGpBp, modelName, "R'G'B'->"+modelName)
}

// baseModelName strips an alpha suffix from model names whose alpha
// variant carries no dedicated EdgeModelToModel primitive (HSLA, HSVA,
// HCYA): the alpha band travels through bands untouched by the primitive
// itself, since Library only registers the 3-channel base models
// (internal/convert.RegisterModelEdges).
func baseModelName(name string) string {
	switch name {
	case registry.ModelHSLA:
		return registry.ModelHSL
	case registry.ModelHSVA:
		return registry.ModelHSV
	case registry.ModelHCYA:
		return registry.ModelHCY
	default:
		return name
	}
}

// modelEdgeOp looks up lib's registered EdgeModelToModel primitive from
// srcName to dstName (resolving alpha-variant names to their registered
// base model, per spec.md §4.4's "lowest summed cost wins" selection over
// the registered graph) and wraps it as a band-level Op.
func modelEdgeOp(reg *registry.Registry, lib *convert.Library, srcName, dstName, opName string) []Op {
	srcH, err := reg.Lookup(registry.KindModel, baseModelName(srcName))
	if err != nil {
		return nil
	}
	dstH, err := reg.Lookup(registry.KindModel, baseModelName(dstName))
	if err != nil {
		return nil
	}
	prim := lib.Best(convert.EdgeModelToModel, srcH, dstH)
	if prim == nil {
		return nil
	}
	srcComponents := reg.Model(srcH).Components
	dstComponents := reg.Model(dstH).Components
	return []Op{{Name: opName, Run: func(bands map[string][]float64, n int) {
		runPlanarPrimitive(prim, srcComponents, dstComponents, bands, n)
	}}}
}

// runPlanarPrimitive gathers prim's input bands in srcComponents order,
// runs its Planar kernel, and scatters the output into bands under
// dstComponents, consuming the source bands.
func runPlanarPrimitive(prim *convert.Primitive, srcComponents, dstComponents []string, bands map[string][]float64, n int) {
	src := make([][]float64, len(srcComponents))
	for i, c := range srcComponents {
		src[i] = bands[c]
	}
	dst := make([][]float64, len(dstComponents))
	for i := range dst {
		dst[i] = make([]float64, n)
	}
	prim.Planar(src, dst, n)
	for _, c := range srcComponents {
		delete(bands, c)
	}
	for i, c := range dstComponents {
		bands[c] = dst[i]
	}
}

func strippedPremulName(name string) string {
	switch name {
	case registry.CompRpa:
		return registry.CompRp
	case registry.CompGpa:
		return registry.CompGp
	case registry.CompBpa:
		return registry.CompBp
	case registry.CompYpa:
		return registry.CompYp
	default:
		return name
	}
}

func premulName(name string) string {
	switch name {
	case registry.CompRp:
		return registry.CompRpa
	case registry.CompGp:
		return registry.CompGpa
	case registry.CompBp:
		return registry.CompBpa
	case registry.CompYp:
		return registry.CompYpa
	default:
		return name
	}
}

// trcToLinearOp companding-decodes R'G'B'(A) into linear RGB(A) using
// srcSpace's per-channel TRC triple.
func trcToLinearOp(srcSpace *colorspace.Space, hasAlpha bool) []Op {
	trcs := [3]*colorspace.TRC{srcSpace.TRCR, srcSpace.TRCG, srcSpace.TRCB}
	return []Op{{Name: "TRC->linear", Run: func(bands map[string][]float64, n int) {
		ch := [3][]float64{bands[registry.CompRp], bands[registry.CompGp], bands[registry.CompBp]}
		convert.ApplyTRCToLinear(ch, trcs, n)
		bands[registry.CompR], bands[registry.CompG], bands[registry.CompB] = ch[0], ch[1], ch[2]
		delete(bands, registry.CompRp)
		delete(bands, registry.CompGp)
		delete(bands, registry.CompBp)
	}}}
}

// trcFromLinearOp companding-encodes linear RGB(A) to R'G'B'(A) using
// dstSpace's per-channel TRC triple.
func trcFromLinearOp(dstSpace *colorspace.Space) []Op {
	trcs := [3]*colorspace.TRC{dstSpace.TRCR, dstSpace.TRCG, dstSpace.TRCB}
	return []Op{{Name: "TRC<-linear", Run: func(bands map[string][]float64, n int) {
		ch := [3][]float64{bands[registry.CompR], bands[registry.CompG], bands[registry.CompB]}
		convert.ApplyTRCFromLinear(ch, trcs, n)
		bands[registry.CompRp], bands[registry.CompGp], bands[registry.CompBp] = ch[0], ch[1], ch[2]
		delete(bands, registry.CompR)
		delete(bands, registry.CompG)
		delete(bands, registry.CompB)
	}}}
}
