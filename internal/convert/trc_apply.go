package convert

import "github.com/pixfish/pixfish/colorspace"

// ApplyTRCToLinear companding-decodes three channels (one TRC per
// channel, or the same TRC repeated for a single universal curve), per
// spec.md §4.2's "linear<->nonlinear companding (per-channel with a
// per-space TRC triple, or with the perceptual TRC universally)".
func ApplyTRCToLinear(channels [3][]float64, trcs [3]*colorspace.TRC, n int) {
	for c := 0; c < 3; c++ {
		ch, t := channels[c], trcs[c]
		for i := 0; i < n; i++ {
			ch[i] = t.ToLinear(ch[i])
		}
	}
}

// ApplyTRCFromLinear is the inverse of ApplyTRCToLinear.
func ApplyTRCFromLinear(channels [3][]float64, trcs [3]*colorspace.TRC, n int) {
	for c := 0; c < 3; c++ {
		ch, t := channels[c], trcs[c]
		for i := 0; i < n; i++ {
			ch[i] = t.FromLinear(ch[i])
		}
	}
}
