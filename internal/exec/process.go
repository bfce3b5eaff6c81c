package exec

import (
	"github.com/pkg/errors"

	"github.com/pixfish/pixfish/internal/convert"
	"github.com/pixfish/pixfish/internal/format"
	"github.com/pixfish/pixfish/internal/pool"
	"github.com/pixfish/pixfish/internal/registry"
)

// Process converts n pixels of fish.From from src into fish.To in dst,
// per spec.md §4.5. src/dst must be sized exactly for n pixels of their
// respective (non-planar) formats.
//
// This assumes (as every format this engine constructs itself
// guarantees) that a format's Slots are ordered the same as its model's
// Components list, so DecodeSample's positional output can be zipped
// against component names directly.
func Process(fish *Fish, src, dst []byte, n int) error {
	if fish.fromFmt.Planar || fish.toFmt.Planar || fish.fromFmt.Palette || fish.toFmt.Palette {
		return errors.New("pixfish: Process does not handle planar/palette formats; see internal/palette")
	}
	if len(src) != fish.fromFmt.BytesPerPixel*n {
		return errors.Wrapf(ErrSizeMismatch, "src: want %d got %d", fish.fromFmt.BytesPerPixel*n, len(src))
	}
	if len(dst) != fish.toFmt.BytesPerPixel*n {
		return errors.Wrapf(ErrSizeMismatch, "dst: want %d got %d", fish.toFmt.BytesPerPixel*n, len(dst))
	}

	if fish.rgbOnlyU8 {
		if processLUTFastPath(fish, src, dst, n) {
			fish.pixelsSeen.Add(int64(n))
			return nil
		}
	}

	bands := unpackToBands(fish.Reg, fish.Lib, fish.fromFmt, fish.doubleH, src, n)
	fish.Chain.Run(bands, n)
	packFromBands(fish.Reg, fish.Lib, fish.toFmt, fish.doubleH, bands, n, dst)
	for _, b := range bands {
		pool.PutFloat64(b)
	}

	fish.pixelsSeen.Add(int64(n))
	if fish.rgbOnlyU8 {
		fish.maybePromote()
	}
	return nil
}

// unpackToBands decodes src into storage-unit samples, converts each slot
// to physical double-precision units via the registered type<->double
// primitive, and labels the result by component name.
func unpackToBands(reg *registry.Registry, lib *convert.Library, f *format.Format, doubleH registry.Handle, src []byte, n int) map[string][]float64 {
	raw := format.Unpack(reg, f, src, n)
	bands := make(map[string][]float64, len(f.Slots))
	for c, slot := range f.Slots {
		name := reg.Component(slot.Component).Name
		storage := raw[c*n : (c+1)*n]
		phys := pool.GetFloat64(n)
		prim := lib.Best(convert.EdgeTypeToType, slot.Type, doubleH)
		prim.Linear(storage, phys, n)
		bands[name] = phys
	}
	return bands
}

// packFromBands is the inverse of unpackToBands: it converts every slot
// of f's model back from physical double units to storage units and
// packs the interleaved result into dst.
func packFromBands(reg *registry.Registry, lib *convert.Library, f *format.Format, doubleH registry.Handle, bands map[string][]float64, n int, dst []byte) {
	flat := make([]float64, len(f.Slots)*n)
	for c, slot := range f.Slots {
		name := reg.Component(slot.Component).Name
		phys := bands[name]
		storage := flat[c*n : (c+1)*n]
		prim := lib.Best(convert.EdgeTypeToType, doubleH, slot.Type)
		prim.Linear(phys, storage, n)
	}
	format.Pack(reg, f, flat, n, dst)
}
