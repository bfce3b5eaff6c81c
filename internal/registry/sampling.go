package registry

import "fmt"

// Sampling is a (horizontal, vertical) subsampling ratio for one component
// of a format, e.g. (2,2) for 4:2:0 chroma.
type Sampling struct {
	Horizontal int
	Vertical   int
}

func (s Sampling) key() string { return fmt.Sprintf("sampling:%d:%d", s.Horizontal, s.Vertical) }

// DefaultSampling is (1,1): no subsampling.
var DefaultSampling = Sampling{Horizontal: 1, Vertical: 1}

// RegisterSampling interns a sampling ratio.
func (r *Registry) RegisterSampling(s Sampling) Handle {
	return r.Register(KindSampling, "", s.key(), s)
}

func (r *Registry) Sampling(h Handle) Sampling {
	return r.Object(h).(Sampling)
}
