package convert

import "github.com/pixfish/pixfish/internal/registry"

// RegisterModelEdges wires the space-independent model<->model primitives
// (CMY, CMYK, Y'CbCr, HSL, HSV, HCY and CIE LCh(ab), all of which operate
// purely on a channel triple with no space context) into lib, per
// spec.md §4.2. Space-dependent conversions (RGB<->Y, RGB<->CIE Lab,
// space<->space, and TRC application) are not edges in this static
// library: internal/graph builds them as Op closures at plan time, once
// it knows which concrete space is in scope, and the resulting Chain is
// cached on the Fish (spec.md §4.4's "Space↔space" note).
func RegisterModelEdges(reg *registry.Registry, lib *Library) {
	rgb, _ := reg.Lookup(registry.KindModel, registry.ModelRGB)
	cmy, _ := reg.Lookup(registry.KindModel, registry.ModelCMY)
	cmyk, _ := reg.Lookup(registry.KindModel, registry.ModelCMYK)
	ypcbcr, _ := reg.Lookup(registry.KindModel, registry.ModelYpCbCr)
	rpgpbp, _ := reg.Lookup(registry.KindModel, registry.ModelRpGpBp)
	hsl, _ := reg.Lookup(registry.KindModel, registry.ModelHSL)
	hsv, _ := reg.Lookup(registry.KindModel, registry.ModelHSV)
	hcy, _ := reg.Lookup(registry.KindModel, registry.ModelHCY)
	lab, _ := reg.Lookup(registry.KindModel, registry.ModelCIELab)
	lch, _ := reg.Lookup(registry.KindModel, registry.ModelCIELCh)

	lib.Register(&Primitive{
		Name: "RGB->CMY", SrcKind: EdgeModelToModel, Src: rgb, Dst: cmy, Cost: 1, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { RGBToCMY(s[0], s[1], s[2], d[0], d[1], d[2], n) },
	})
	lib.Register(&Primitive{
		Name: "CMY->RGB", SrcKind: EdgeModelToModel, Src: cmy, Dst: rgb, Cost: 1, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { CMYToRGB(s[0], s[1], s[2], d[0], d[1], d[2], n) },
	})
	lib.Register(&Primitive{
		Name: "RGB->CMYK", SrcKind: EdgeModelToModel, Src: rgb, Dst: cmyk, Cost: 1.2, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { RGBToCMYK(s[0], s[1], s[2], d[0], d[1], d[2], d[3], n) },
	})
	lib.Register(&Primitive{
		Name: "CMYK->RGB", SrcKind: EdgeModelToModel, Src: cmyk, Dst: rgb, Cost: 1.2, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { CMYKToRGB(s[0], s[1], s[2], s[3], d[0], d[1], d[2], n) },
	})

	lib.Register(&Primitive{
		Name: "R'G'B'->Y'CbCr", SrcKind: EdgeModelToModel, Src: rpgpbp, Dst: ypcbcr, Cost: 1, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { RGBToYpCbCr(s[0], s[1], s[2], d[0], d[1], d[2], n) },
	})
	lib.Register(&Primitive{
		Name: "Y'CbCr->R'G'B'", SrcKind: EdgeModelToModel, Src: ypcbcr, Dst: rpgpbp, Cost: 1, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { YpCbCrToRGB(s[0], s[1], s[2], d[0], d[1], d[2], n) },
	})

	lib.Register(&Primitive{
		Name: "R'G'B'->HSL", SrcKind: EdgeModelToModel, Src: rpgpbp, Dst: hsl, Cost: 1, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { RGBToHSL(s[0], s[1], s[2], d[0], d[1], d[2], n) },
	})
	lib.Register(&Primitive{
		Name: "HSL->R'G'B'", SrcKind: EdgeModelToModel, Src: hsl, Dst: rpgpbp, Cost: 1, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { HSLToRGB(s[0], s[1], s[2], d[0], d[1], d[2], n) },
	})
	lib.Register(&Primitive{
		Name: "R'G'B'->HSV", SrcKind: EdgeModelToModel, Src: rpgpbp, Dst: hsv, Cost: 1, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { RGBToHSV(s[0], s[1], s[2], d[0], d[1], d[2], n) },
	})
	lib.Register(&Primitive{
		Name: "HSV->R'G'B'", SrcKind: EdgeModelToModel, Src: hsv, Dst: rpgpbp, Cost: 1, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { HSVToRGB(s[0], s[1], s[2], d[0], d[1], d[2], n) },
	})
	lib.Register(&Primitive{
		Name: "R'G'B'->HCY", SrcKind: EdgeModelToModel, Src: rpgpbp, Dst: hcy, Cost: 1, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { RGBToHCY(s[0], s[1], s[2], d[0], d[1], d[2], n) },
	})
	lib.Register(&Primitive{
		Name: "HCY->R'G'B'", SrcKind: EdgeModelToModel, Src: hcy, Dst: rpgpbp, Cost: 1, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { HCYToRGB(s[0], s[1], s[2], d[0], d[1], d[2], n) },
	})

	lib.Register(&Primitive{
		Name: "Lab->LCh(ab)", SrcKind: EdgeModelToModel, Src: lab, Dst: lch, Cost: 0.5, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { LabToLChBatch(s[0], s[1], s[2], d[0], d[1], d[2], n) },
	})
	lib.Register(&Primitive{
		Name: "LCh(ab)->Lab", SrcKind: EdgeModelToModel, Src: lch, Dst: lab, Cost: 0.5, Shape: ShapePlanar,
		Planar: func(s, d [][]float64, n int) { LChToLabBatch(s[0], s[1], s[2], d[0], d[1], d[2], n) },
	})
}
