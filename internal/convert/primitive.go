// Package convert implements spec.md §4.2's primitive conversion library:
// pure functions transforming a contiguous batch of samples between two
// registry building blocks (a type, a model, or a format), each carrying
// a cost used by the planner (internal/graph) and a reserved loss
// estimate.
//
// Grounded on the teacher's (github.com/deepteams/webp) internal/dsp
// package, which also separates "what a kernel computes" from "how it's
// dispatched": dsp.go holds swappable function-pointer tables, matching
// the three-shape Primitive.Shape split here (Linear/Planar/Plane), while
// yuv.go and sharpyuv/csp.go ground the fixed-coefficient model math and
// alpha_proc.go grounds the premultiply arithmetic.
package convert

import "github.com/pixfish/pixfish/internal/registry"

// Shape is the capability each primitive implements, replacing the
// teacher's raw function-pointer soup with one of three explicit call
// conventions (spec.md §4.2, Design Notes §9 "function-pointer soup ->
// capability trait").
type Shape int

const (
	// ShapeLinear: tightly packed batches, one element per sample,
	// contiguous src/dst.
	ShapeLinear Shape = iota
	// ShapePlanar: multiple per-band pointers with independent strides.
	ShapePlanar
	// ShapePlane: single-plane variant with explicit src/dst stride.
	// No primitive registered by this package uses it; the type
	// converters are ShapeLinear.
	ShapePlane
)

// LinearFunc converts n tightly packed samples from src to dst.
type LinearFunc func(src, dst []float64, n int)

// PlanarFunc converts n pixels of src (one []float64 slice per band) into
// dst (one []float64 slice per band).
type PlanarFunc func(src, dst [][]float64, n int)

// PlaneFunc converts n samples from src to dst with explicit strides
// (element count, not bytes), operating on raw encoded storage; it is the
// call convention of ShapePlane.
type PlaneFunc func(src []byte, srcStride int, dst []byte, dstStride int, n int)

// Primitive is one registered edge in the conversion graph (spec.md §4.2).
type Primitive struct {
	Name string

	// Src/Dst identify what this primitive bridges: a type handle, a
	// model handle, or a format-shaped marker (space handles for
	// space<->space). The planner keys its graph on (Kind, Src, Dst).
	SrcKind EdgeKind
	Src     registry.Handle
	Dst     registry.Handle

	Cost float64
	Loss float64 // reserved; the planner currently uses Cost only

	Shape  Shape
	Linear LinearFunc
	Planar PlanarFunc
	Plane  PlaneFunc

	// Private holds optional per-primitive cached data. None of the
	// primitives registered by this package set it; the planner keeps
	// the composite space-to-space matrix in its own Op instead.
	Private any
}

// EdgeKind discriminates what two registry kinds a primitive bridges.
type EdgeKind int

const (
	EdgeTypeToType EdgeKind = iota
	EdgeModelToModel
	EdgeSpaceToSpace
	EdgeTRCApply    // linear <-> nonlinear within one model
	EdgePremultiply // premultiplied <-> straight alpha within one model
	EdgeSample      // subsample / unsample
)

// Library is the full set of registered primitives, indexed for the
// planner's adjacency queries.
type Library struct {
	byEdge map[edgeKey][]*Primitive
	all    []*Primitive
}

type edgeKey struct {
	kind EdgeKind
	src  registry.Handle
	dst  registry.Handle
}

// NewLibrary builds an empty primitive library.
func NewLibrary() *Library {
	return &Library{byEdge: make(map[edgeKey][]*Primitive)}
}

// Register adds p to the library. Multiple primitives may share an edge;
// the planner (internal/graph) picks the lowest-cost one, ties breaking
// by insertion order (spec.md §4.4).
func (l *Library) Register(p *Primitive) {
	k := edgeKey{kind: p.SrcKind, src: p.Src, dst: p.Dst}
	l.byEdge[k] = append(l.byEdge[k], p)
	l.all = append(l.all, p)
}

// Lookup returns every primitive registered for the given edge, in
// insertion order.
func (l *Library) Lookup(kind EdgeKind, src, dst registry.Handle) []*Primitive {
	return l.byEdge[edgeKey{kind: kind, src: src, dst: dst}]
}

// Best returns the lowest-cost primitive for an edge, or nil if none is
// registered.
func (l *Library) Best(kind EdgeKind, src, dst registry.Handle) *Primitive {
	cands := l.Lookup(kind, src, dst)
	if len(cands) == 0 {
		return nil
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Cost < best.Cost {
			best = c
		}
	}
	return best
}

// All returns every registered primitive, in insertion order.
func (l *Library) All() []*Primitive { return l.all }
