package format

import "github.com/pixfish/pixfish/internal/registry"

// Unpack reads n interleaved pixels of f from src into a component-major
// []float64 buffer of length n*len(f.Slots): component c of pixel i is at
// out[c*n+i]. Component-major (rather than pixel-major) layout lets the
// executor hand each primitive a contiguous per-component slice without
// copying, matching spec.md §4.5's scratch-buffer contract.
//
// Planar and palette formats are unsupported here; internal/exec.Process
// rejects both before calling Unpack, since a palette-backed format's
// "pixel value" is an index, not a sample tuple (spec.md §4.7).
func Unpack(reg *registry.Registry, f *Format, src []byte, n int) []float64 {
	out := make([]float64, len(f.Slots)*n)
	bpp := f.BytesPerPixel
	off := 0
	for c, slot := range f.Slots {
		t := reg.Type(slot.Type)
		sz := registry.BytesPerSample(t)
		base := off
		for i := 0; i < n; i++ {
			out[c*n+i] = DecodeSample(t, src[i*bpp+base:i*bpp+base+sz])
		}
		off += sz
	}
	return out
}

// Pack is the inverse of Unpack: it writes a component-major []float64
// buffer of length n*len(f.Slots) into n interleaved pixels of f.
func Pack(reg *registry.Registry, f *Format, in []float64, n int, dst []byte) {
	bpp := f.BytesPerPixel
	off := 0
	for c, slot := range f.Slots {
		t := reg.Type(slot.Type)
		sz := registry.BytesPerSample(t)
		base := off
		for i := 0; i < n; i++ {
			EncodeSample(t, in[c*n+i], dst[i*bpp+base:i*bpp+base+sz])
		}
		off += sz
	}
}
