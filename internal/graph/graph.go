// Package graph implements spec.md §4.4's planner: given a source and
// destination pixel format, build the ordered sequence of primitive
// conversions routing through the canonical pivot ("RGBA double in the
// destination space"), caching the result in a Chain for repeated use by
// a Fish (internal/exec).
//
// Grounded on the teacher's internal/dsp dispatch tables (a fixed set of
// named steps chosen once, then invoked per call) and on
// original_source/babl/babl-fish-path.c's two-phase reduce/synthesize
// walk, reimplemented here as an explicit named-band pipeline rather than
// babl's generic arbitrary-length shortest path: this engine's model
// graph has a small, fixed shape (every model is at most one primitive
// away from R'G'B'(A) or from linear RGB(A): gray, CIE Lab, CMY and CMYK
// attach to linear RGB, the rest to R'G'B'), so
// the "shortest path" collapses to a short, statically determined
// sequence rather than requiring a live Dijkstra search.
package graph

import "github.com/pixfish/pixfish/internal/registry"

// Op is one step of a built Chain: a named closure mutating a band map in
// place (or replacing/removing keys, when a step changes the model's
// channel set).
type Op struct {
	Name string
	Run  func(bands map[string][]float64, n int)
}

// Chain is the cached, ordered list of Ops converting one pixel from
// FromFormat to ToFormat, built once by Build and replayed by
// internal/exec for every Process call (spec.md §4.4's "fish").
type Chain struct {
	FromFormat registry.Handle
	ToFormat   registry.Handle
	Ops        []Op
}

// Run executes the chain against bands (keyed by component name, e.g.
// "R", "G", "B", "A"), mutating it into the destination format's band
// set.
func (c *Chain) Run(bands map[string][]float64, n int) map[string][]float64 {
	for _, op := range c.Ops {
		op.Run(bands, n)
	}
	return bands
}
