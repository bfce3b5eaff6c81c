// Package palette implements spec.md §4.7's palette subsystem: a
// bounded-size (<=256) set of reference colors, stored both as perceptual
// u8 R'G'B'A and linear RGBA double, with a radius table and a racy
// advisory hash cache accelerating nearest-entry lookup.
//
// Grounded directly on original_source/babl/babl-palette.c: the
// HASH_TABLE_SIZE=1111 table, the ceil-sqrt precomputed distance table,
// and the per-entry sorted-radius triangle-inequality search are ported
// algorithm-for-algorithm, since spec.md §4.7 specifies this exact
// search strategy and no equivalent exists in any of the other example
// repos.
package palette

import (
	"math"
	"sort"
	"sync/atomic"

	"github.com/pkg/errors"
)

// HashTableSize is the fixed hash-table size from babl-palette.c. It is
// not a power of two or the palette's own size; any value works, this
// one is simply what upstream ships with and is kept for texture
// fidelity, not because it's otherwise load-bearing.
const HashTableSize = 1111

// ErrTooManyEntries is returned by New when count exceeds 256, the limit
// imposed by packing an index into one byte (spec.md §4.7).
var ErrTooManyEntries = errors.New("pixfish: palette supports at most 256 entries")

type radius struct {
	idx  uint8
	diff uint16
}

// Palette is a bounded set of reference colors plus the acceleration
// structures used to find the nearest entry to an arbitrary input color.
type Palette struct {
	count int

	// u8 holds 4 bytes (R',G',B',A) per entry, linear holds 4 float64
	// (R,G,B,A) per entry.
	u8     []uint8
	linear []float64

	radii []radius // count*(count-1) entries, per-entry sorted ascending

	// hash is a fixed-size, deliberately racy cache: concurrent writers may
	// clobber each other's entries (each entry is loaded and stored
	// atomically, so a reader sees one writer's whole value); babl-palette.c documents this as an acceptable
	// trade-off (a wrong hit only costs a slower fallback search, never
	// correctness) since hash entries are validated against the full pixel
	// before being trusted.
	hash []atomic.Uint32
}

// New builds a Palette from count RGBA-u8 entries (4 bytes each,
// interleaved R,G,B,A) already expressed in the destination space's
// R'G'B'A u8 representation, plus the matching linear RGBA double
// samples (also 4*count float64, interleaved), per spec.md §4.7. Callers
// typically obtain both via a Fish conversion from their own palette
// storage format, mirroring babl-palette.c's make_pal.
func New(u8RGBA []uint8, linearRGBA []float64, count int) (*Palette, error) {
	if count <= 0 {
		return nil, errors.New("pixfish: palette must have at least one entry")
	}
	if count > 256 {
		return nil, ErrTooManyEntries
	}
	p := &Palette{
		count:  count,
		u8:     append([]uint8(nil), u8RGBA...),
		linear: append([]float64(nil), linearRGBA...),
		radii:  make([]radius, count*(count-1)),
		hash:   make([]atomic.Uint32, HashTableSize),
	}
	p.initRadii()
	p.resetHash()
	return p, nil
}

// Count returns the number of entries.
func (p *Palette) Count() int { return p.count }

// EntryU8 returns entry i's perceptual R'G'B'A u8 quadruple.
func (p *Palette) EntryU8(i int) (r, g, b, a uint8) {
	o := i * 4
	return p.u8[o], p.u8[o+1], p.u8[o+2], p.u8[o+3]
}

// EntryLinear returns entry i's linear RGBA double quadruple.
func (p *Palette) EntryLinear(i int) (r, g, b, a float64) {
	o := i * 4
	return p.linear[o], p.linear[o+1], p.linear[o+2], p.linear[o+3]
}

func diff2(p1r, p1g, p1b, p2r, p2g, p2b uint8) int {
	dr := int(p1r) - int(p2r)
	dg := int(p1g) - int(p2g)
	db := int(p1b) - int(p2b)
	return dr*dr + dg*dg + db*db
}

// initRadii computes, for every entry, the distance to every other entry
// sorted ascending, per babl_palette_init_radii.
func (p *Palette) initRadii() {
	n := p.count
	for i := 0; i < n; i++ {
		row1 := p.radii[(n-1)*i : (n-1)*(i+1)]
		p1r, p1g, p1b, _ := p.EntryU8(i)
		for j := i + 1; j < n; j++ {
			row2 := p.radii[(n-1)*j : (n-1)*(j+1)]
			p2r, p2g, p2b, _ := p.EntryU8(j)
			d := uint16(math.Floor(math.Sqrt(float64(diff2(p1r, p1g, p1b, p2r, p2g, p2b)))))
			row1[j-1] = radius{idx: uint8(j), diff: d}
			row2[i] = radius{idx: uint8(i), diff: d}
		}
		sort.Slice(row1, func(a, b int) bool { return row1[a].diff < row1[b].diff })
	}
}

func (p *Palette) resetHash() {
	for i := range p.hash {
		p.hash[i].Store(uint32(i + 1)) // always a miss: top byte (index) is 0, pixel can never be i+1 alone matching index 0
	}
}
