// Package pixfish implements a universal pixel-format conversion engine:
// given any two registered pixel formats, it builds (and caches) a
// callable "fish" that converts a batch of N pixels from one to the
// other, routing through a canonical linear-light RGBA-double pivot when
// no direct edge exists.
//
// See SPEC_FULL.md for the full specification this package implements.
package pixfish

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pixfish/pixfish/colorspace"
	"github.com/pixfish/pixfish/internal/convert"
	"github.com/pixfish/pixfish/internal/exec"
	"github.com/pixfish/pixfish/internal/fishcache"
	"github.com/pixfish/pixfish/internal/format"
	"github.com/pixfish/pixfish/internal/palette"
	"github.com/pixfish/pixfish/internal/registry"
)

// Fish and Palette are aliases onto the internal runtime types so callers
// can name them (pixfish.Fish, pixfish.Palette) without this package
// having to re-wrap every method; the internal packages remain the
// sole owners of their fields and invariants (spec.md §3 Ownership).
type Fish = exec.Fish
type Palette = palette.Palette

var (
	initOnce sync.Once

	reg   *registry.Registry
	lib   *convert.Library
	cache *exec.Cache
	log   *zap.Logger

	cachePath string

	paletteMu sync.Mutex
	palettes  = map[registry.Handle]*palette.Palette{}
)

// Init boots the process-wide registry — standard numeric types,
// components, models, the default sampling, the built-in color spaces,
// and the full primitive library (type<->double/float edges and the
// space-independent model<->model edges) — then warms the fish cache
// from disk unless BABL_INHIBIT_CACHE is set, per spec.md §5's
// "registered at init, frozen thereafter" discipline. Init is safe to
// call repeatedly; only the first call does anything.
func Init() {
	var entries []fishcache.Entry
	initOnce.Do(func() {
		reg = registry.New()
		registry.InitStandardCatalog(reg)
		colorspace.InitStandard(reg)

		lib = convert.NewLibrary()
		doubleH, _ := reg.Lookup(registry.KindType, registry.TypeDouble)
		floatH, _ := reg.Lookup(registry.KindType, registry.TypeFloat)
		convert.RegisterNumericEdges(reg, lib, doubleH, floatH)
		convert.RegisterModelEdges(reg, lib)

		cache = exec.NewCache()

		var zerr error
		log, zerr = zap.NewProduction()
		if zerr != nil {
			log = zap.NewNop()
		}

		cachePath = defaultCachePath()
		var err error
		entries, err = fishcache.Load(cachePath, log)
		if err != nil {
			log.Warn("pixfish: fish cache load failed", zap.Error(err))
		}
	})
	// Warming parses the saved format names with Format, which calls
	// Init itself, so it runs after initOnce has completed.
	warmCache(entries)
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "pixfish", "fish-cache")
}

// warmCache rebuilds (and caches) every previously-seen (from,to) pair,
// tolerating entries whose format names no longer resolve (a stale cache
// from a build that registered different formats is simply a partial
// miss, not an error, matching spec.md §4.8's soft-failure policy).
func warmCache(entries []fishcache.Entry) {
	for _, e := range entries {
		from, err := Format(e.From)
		if err != nil {
			continue
		}
		to, err := Format(e.To)
		if err != nil {
			continue
		}
		if _, err := cache.Get(reg, lib, from, to); err != nil {
			log.Warn("pixfish: fish cache warm skipped", zap.String("from", e.From), zap.String("to", e.To), zap.Error(err))
		}
	}
}

// Exit persists every fish built this run to the on-disk cache (unless
// inhibited) and releases Init's state so a subsequent Init call rebuilds
// from scratch. Exit is intended for process shutdown, not for pausing
// between unrelated batches of work — spec.md §3 Lifecycle has no
// individual-object teardown, only whole-registry teardown.
func Exit() {
	if cache == nil {
		return
	}
	var entries []fishcache.Entry
	for _, k := range cache.Keys() {
		entries = append(entries, fishcache.Entry{
			From: reg.Name(k.From),
			To:   reg.Name(k.To),
		})
	}
	if err := fishcache.Save(cachePath, entries); err != nil {
		log.Warn("pixfish: fish cache save failed", zap.Error(err))
	}

	initOnce = sync.Once{}
	reg, lib, cache, log = nil, nil, nil, nil
	paletteMu.Lock()
	palettes = map[registry.Handle]*palette.Palette{}
	paletteMu.Unlock()
}

// Type resolves a registered numeric type by name (spec.md §6 type(name)).
func Type(name string) (registry.Handle, error) {
	Init()
	return reg.Lookup(registry.KindType, name)
}

// Component resolves a registered component by name (spec.md §6
// component(name)).
func Component(name string) (registry.Handle, error) {
	Init()
	return reg.Lookup(registry.KindComponent, name)
}

// Model resolves a registered color model by name (spec.md §6
// model(name)).
func Model(name string) (registry.Handle, error) {
	Init()
	return reg.Lookup(registry.KindModel, name)
}

// Space resolves a registered color space by name (spec.md §6
// space(name)).
func Space(name string) (registry.Handle, error) {
	Init()
	return reg.Lookup(registry.KindSpace, name)
}

// TRC resolves a registered named transfer curve ("linear", "sRGB"; use
// TRCGamma for a parametric gamma curve), spec.md §6 trc(name).
func TRC(name string) (registry.Handle, error) {
	Init()
	return reg.Lookup(registry.KindTRC, name)
}

// TRCGamma returns (interning if needed) the parametric gamma(γ) curve,
// spec.md §6 trc_gamma(γ).
func TRCGamma(gamma float64) registry.Handle {
	Init()
	return colorspace.GammaTRC(reg, gamma)
}

// SpaceFromChromaticities constructs (and interns) a color space from its
// eight chromaticity coordinates and three TRCs, spec.md §6
// space_from_chromaticities. equalize requests the s15.16 matrix
// perturbation of spec.md §4.3 step 4 (true for predefined spaces meant
// to match a known reference matrix bit-for-bit, false for arbitrary
// ICC-derived ones).
func SpaceFromChromaticities(name string, xw, yw, xr, yr, xg, yg, xb, yb float64,
	trcR, trcG, trcB registry.Handle, family colorspace.Family, equalize bool) registry.Handle {
	Init()
	return colorspace.FromChromaticities(reg, name, xw, yw, xr, yr, xg, yg, xb, yb, trcR, trcG, trcB, family, equalize)
}

// SpaceFromRGBXYZMatrix constructs (and interns) a color space directly
// from an explicit, already D50-adapted RGBtoXYZ matrix, spec.md §6
// space_from_rgbxyz_matrix.
func SpaceFromRGBXYZMatrix(name string, m colorspace.Mat3, trcR, trcG, trcB registry.Handle, family colorspace.Family) registry.Handle {
	Init()
	return colorspace.FromRGBXYZMatrix(reg, name, m, trcR, trcG, trcB, family)
}

// SpaceGetICC returns the ICC byte string attached to space (nil if
// none), spec.md §6 space_get_icc. Parsing ICC bytes into a Space is out
// of scope (spec.md §1); this only re-exposes what a caller already
// parsed and attached via SpaceSetICC.
func SpaceGetICC(space registry.Handle) []byte {
	Init()
	return colorspace.GetSpace(reg, space).ICC
}

// SpaceSetICC attaches an ICC byte string to a previously constructed
// space, the write side of space_get_icc's round trip.
func SpaceSetICC(space registry.Handle, icc []byte) {
	Init()
	colorspace.WithICC(reg, space, icc)
}

// FormatN interns an opaque n-channel format over typeHandle, with no
// color model or space attached, spec.md §6 format_n(type, n_components).
func FormatN(typeHandle registry.Handle, n int) registry.Handle {
	Init()
	return format.NewN(reg, typeHandle, n)
}

// FormatBytesPerPixel is format_get_bytes_per_pixel (spec.md §6).
// Meaningful only for interleaved (non-planar) formats.
func FormatBytesPerPixel(f registry.Handle) int {
	return format.Get(reg, f).BytesPerPixel
}

// FormatNumComponents is format_get_n_components (spec.md §6).
func FormatNumComponents(f registry.Handle) int {
	return format.Get(reg, f).NumComponents()
}

// FormatHasAlpha is format_has_alpha (spec.md §6).
func FormatHasAlpha(f registry.Handle) bool {
	return format.HasAlpha(reg, format.Get(reg, f))
}

// GetFish returns the cached conversion object for from->to, building and
// interning one on first request, spec.md §6 fish(from, to). Returns
// ErrNoPath if the planner cannot assemble a chain.
func GetFish(from, to registry.Handle) (*Fish, error) {
	Init()
	return cache.Get(reg, lib, from, to)
}

// Process runs fish over n pixels from src into dst, returning n on
// success, spec.md §6 process(fish, src, dst, n) / §4.5. Once a Fish
// exists, Process fails only for a caller-side buffer-size mistake
// (ErrSizeMismatch) or when either format is planar or palette-backed,
// which the executor does not handle.
func Process(fish *Fish, src, dst []byte, n int) (int, error) {
	if err := exec.Process(fish, src, dst, n); err != nil {
		return 0, err
	}
	return n, nil
}

// NewPalette interns the pair of palette-backed formats spec.md §6's
// new_palette(name, out_u8, out_u8a) returns: an index-only format and an
// index+alpha format, both over an 8-bit index (this engine's palettes
// are capped at 256 entries, per spec.md §4.7). The palette itself starts
// empty; populate it with PaletteSetPalette.
func NewPalette(name string) (indexFmt, indexAlphaFmt registry.Handle, err error) {
	Init()
	u8H, err := reg.Lookup(registry.KindType, registry.TypeU8)
	if err != nil {
		return registry.Zero, registry.Zero, err
	}
	indexFmt, indexAlphaFmt = format.NewPalette(reg, name, u8H)
	return indexFmt, indexAlphaFmt, nil
}

// PaletteSetPalette populates the palette attached to paletteFmt (a
// format previously returned by NewPalette) from count entries of srcFmt
// pixel data, spec.md §6 palette_set_palette(f, src_fmt, data, count).
// Entries are converted through a Fish into both the perceptual R'G'B'A
// u8 and linear RGBA double representations internal/palette needs for
// nearest-entry search.
func PaletteSetPalette(paletteFmt, srcFmt registry.Handle, data []byte, count int) error {
	Init()
	if count > 256 {
		return errors.Wrapf(ErrInvalidArgument, "palette count %d exceeds 256", count)
	}

	u8Fmt, err := Format("R'G'B'A u8")
	if err != nil {
		return err
	}
	doubleFmt, err := Format("RGBA double")
	if err != nil {
		return err
	}

	u8RGBA := make([]byte, 4*count)
	if err := runConversion(srcFmt, u8Fmt, data, u8RGBA, count); err != nil {
		return errors.Wrap(err, "pixfish: converting palette entries to R'G'B'A u8")
	}

	linearBytes := make([]byte, 8*4*count)
	if err := runConversion(srcFmt, doubleFmt, data, linearBytes, count); err != nil {
		return errors.Wrap(err, "pixfish: converting palette entries to RGBA double")
	}
	linear := bytesToFloat64(linearBytes)

	p, err := palette.New(u8RGBA, linear, count)
	if err != nil {
		return err
	}

	paletteMu.Lock()
	palettes[paletteFmt] = p
	paletteMu.Unlock()
	return nil
}

// bytesToFloat64 decodes a run of little-endian IEEE 754 binary64 values
// packed by format.Pack for a "double"-typed format, preserving
// interleaved order.
func bytesToFloat64(b []byte) []float64 {
	out := make([]float64, len(b)/8)
	for i := range out {
		bits := binary.LittleEndian.Uint64(b[i*8 : i*8+8])
		out[i] = math.Float64frombits(bits)
	}
	return out
}

func runConversion(from, to registry.Handle, src, dst []byte, n int) error {
	f, err := GetFish(from, to)
	if err != nil {
		return err
	}
	_, err = Process(f, src, dst, n)
	return err
}

// PaletteFor returns the Palette object attached to paletteFmt by a prior
// PaletteSetPalette call, or nil if none has been set.
func PaletteFor(paletteFmt registry.Handle) *Palette {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	return palettes[paletteFmt]
}

// DumpTypes, DumpComponents, DumpModels, DumpSpaces and DumpFormats list
// every interned name of their kind, in registration order. They back
// cmd/pixfishtool's "formats" listing; the HTML registry dumper spec.md
// §1 excludes is a distinct, unimplemented external collaborator.
func DumpTypes() []string { Init(); return reg.Dump(registry.KindType) }
func DumpComponents() []string { Init(); return reg.Dump(registry.KindComponent) }
func DumpModels() []string { Init(); return reg.Dump(registry.KindModel) }
func DumpSpaces() []string { Init(); return reg.Dump(registry.KindSpace) }
func DumpFormats() []string { Init(); return reg.Dump(registry.KindFormat) }

// DefaultPalette returns the built-in 16-color ANSI/EGA palette
// (spec.md §4.7), the one scenario S4 exercises. It is not attached to
// any registered format; callers needing a format+palette pairing should
// build one via NewPalette/PaletteSetPalette.
func DefaultPalette() *Palette {
	return palette.DefaultEGA()
}
