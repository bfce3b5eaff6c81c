// Package exec implements spec.md §4.5/§5's runtime: a Fish (a planned,
// cached conversion between two formats) and Process, the per-call
// executor that unpacks a byte buffer, runs the Fish's chain, and packs
// the result, with per-band scratch buffers drawn from internal/pool
// and lazy 256^3 u8 LUT promotion for hot RGB-only conversions.
//
// Grounded on the teacher's webp.go top-level Encode/Decode entry points
// (a small public API wrapping a cached, reusable internal pipeline) and
// internal/dsp's function-table dispatch (a Fish is, in effect, one
// resolved dispatch-table entry, built once and invoked many times).
package exec

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/pixfish/pixfish/internal/convert"
	"github.com/pixfish/pixfish/internal/format"
	"github.com/pixfish/pixfish/internal/graph"
	"github.com/pixfish/pixfish/internal/registry"
)

// ErrSizeMismatch is returned by Process when src/dst aren't sized for n
// pixels of their respective formats.
var ErrSizeMismatch = errors.New("pixfish: buffer size mismatch")

// lutPromoteThreshold is the cumulative pixel count at which a Fish
// attempts to build its LUT, per spec.md §5. Chosen so a handful of
// megapixel-scale calls trigger promotion, rather than a single small
// probe conversion.
const lutPromoteThreshold = 4 << 20

// Fish is a cached, ready-to-run conversion between two formats (spec.md
// §4.4/§4.5): the planned Chain plus runtime-only state (pixel-count
// stats and an optionally-promoted LUT).
type Fish struct {
	Reg   *registry.Registry
	Lib   *convert.Library
	From  registry.Handle
	To    registry.Handle
	Chain *graph.Chain

	fromFmt *format.Format
	toFmt   *format.Format
	doubleH registry.Handle

	rgbOnlyU8 bool // true when From and To are both plain u8 RGB(A), eligible for LUT promotion

	pixelsSeen atomic.Int64
	building   atomic.Bool
	lut        atomic.Pointer[LUT]
}

// NewFish plans and wraps a Fish for the from->to conversion.
func NewFish(reg *registry.Registry, lib *convert.Library, from, to registry.Handle) (*Fish, error) {
	chain, err := graph.Build(reg, lib, from, to)
	if err != nil {
		return nil, err
	}
	doubleH, err := reg.Lookup(registry.KindType, registry.TypeDouble)
	if err != nil {
		return nil, err
	}
	f := &Fish{
		Reg: reg, Lib: lib, From: from, To: to, Chain: chain,
		fromFmt: format.Get(reg, from),
		toFmt:   format.Get(reg, to),
		doubleH: doubleH,
	}
	f.rgbOnlyU8 = eligibleForLUT(reg, f.fromFmt) && eligibleForLUT(reg, f.toFmt)
	return f, nil
}

func eligibleForLUT(reg *registry.Registry, f *format.Format) bool {
	if f.Planar || f.Palette || len(f.Slots) < 3 || len(f.Slots) > 4 {
		return false
	}
	if m := reg.Model(f.Model).Flags; m.Family != "RGB" || m.Premultiplied {
		return false
	}
	for _, s := range f.Slots {
		t := reg.Type(s.Type)
		if t.BitWidth != 8 || t.Float {
			return false
		}
	}
	return true
}

// Cache is the process-wide fish cache, keyed by (from, to) format
// handles (spec.md §4.5: "fish-cache keyed by (from,to) handles + a
// mutex").
type Cache struct {
	mu    sync.Mutex
	byKey map[cacheKey]*Fish
}

// CacheKey is the exported form of a cache entry's key, for callers that
// need to enumerate what a Cache currently holds (e.g. fishcache
// persistence on exit).
type CacheKey struct{ From, To registry.Handle }

type cacheKey struct{ from, to registry.Handle }

// NewCache builds an empty fish cache.
func NewCache() *Cache {
	return &Cache{byKey: make(map[cacheKey]*Fish)}
}

// Get returns the cached Fish for from->to, building and caching one on
// first use.
func (c *Cache) Get(reg *registry.Registry, lib *convert.Library, from, to registry.Handle) (*Fish, error) {
	key := cacheKey{from, to}

	c.mu.Lock()
	if f, ok := c.byKey[key]; ok {
		c.mu.Unlock()
		return f, nil
	}
	c.mu.Unlock()

	f, err := NewFish(reg, lib, from, to)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byKey[key]; ok {
		return existing, nil
	}
	c.byKey[key] = f
	return f, nil
}

// Keys returns every (from,to) pair currently cached, in no particular
// order.
func (c *Cache) Keys() []CacheKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CacheKey, 0, len(c.byKey))
	for k := range c.byKey {
		out = append(out, CacheKey{From: k.from, To: k.to})
	}
	return out
}
