package exec

import (
	"github.com/pixfish/pixfish/internal/format"
	"github.com/pixfish/pixfish/internal/simd"
)

// processLUTFastPath services a Process call entirely from fish.lut, when
// one has been promoted, reporting whether it did. Alpha (if both
// formats carry it) passes through unchanged; a missing source alpha
// fills opaque, matching the chain's own fill-opaque-alpha step.
func processLUTFastPath(fish *Fish, src, dst []byte, n int) bool {
	lut := fish.lut.Load()
	if lut == nil {
		return false
	}
	fromHasAlpha := format.HasAlpha(fish.Reg, fish.fromFmt)
	toHasAlpha := format.HasAlpha(fish.Reg, fish.toFmt)

	simd.ApplyLUTBatch(lut.table, src, fish.fromFmt.BytesPerPixel, dst, fish.toFmt.BytesPerPixel, n,
		fromHasAlpha && toHasAlpha, toHasAlpha && !fromHasAlpha)
	return true
}

// maybePromote builds fish.lut once fish.pixelsSeen crosses
// lutPromoteThreshold, guarded by an atomic CAS so of any concurrent
// callers only one builds; the rest continue on the chain path until the
// winner publishes (spec.md §5's "atomic CAS promotion, loser frees
// allocation" — here the losers simply never allocate, since the CAS
// guards entry into BuildLUT itself rather than a race to publish two
// completed tables).
func (f *Fish) maybePromote() {
	if f.lut.Load() != nil {
		return
	}
	if f.pixelsSeen.Load() < lutPromoteThreshold {
		return
	}
	if !f.building.CompareAndSwap(false, true) {
		return
	}
	lut := BuildLUT(f.convertOneRGB)
	f.lut.Store(lut)
}

// convertOneRGB pushes a single opaque RGB triple through the fish's
// chain, used only to populate the LUT.
func (f *Fish) convertOneRGB(r, g, b byte) (byte, byte, byte) {
	const n = 1
	srcPix := make([]byte, f.fromFmt.BytesPerPixel)
	srcPix[0], srcPix[1], srcPix[2] = r, g, b
	if len(f.fromFmt.Slots) == 4 {
		srcPix[3] = 255
	}
	dstPix := make([]byte, f.toFmt.BytesPerPixel)

	bands := unpackToBands(f.Reg, f.Lib, f.fromFmt, f.doubleH, srcPix, n)
	f.Chain.Run(bands, n)
	packFromBands(f.Reg, f.Lib, f.toFmt, f.doubleH, bands, n, dstPix)

	return dstPix[0], dstPix[1], dstPix[2]
}
