// Package registry implements the process-wide, append-mostly catalog of
// typed building blocks (numeric types, components, models, samplings,
// TRCs, spaces, formats) that pixel formats are assembled from.
//
// Every object is interned: two registrations with structurally equal
// attributes return the same handle. Registration is guarded by a single
// mutex; once registered, handles are frozen and safe to share across
// goroutines without locking, matching the teacher's init()-then-freeze
// discipline in internal/dsp.Init().
package registry

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// Kind discriminates the tagged-union of registry object types.
type Kind int

const (
	KindType Kind = iota
	KindComponent
	KindModel
	KindSampling
	KindTRC
	KindSpace
	KindFormat
	numKinds
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindComponent:
		return "component"
	case KindModel:
		return "model"
	case KindSampling:
		return "sampling"
	case KindTRC:
		return "trc"
	case KindSpace:
		return "space"
	case KindFormat:
		return "format"
	default:
		return "unknown"
	}
}

// ErrUnknownName is reported by Lookup when no object of the requested
// kind and name has been registered.
var ErrUnknownName = errors.New("pixfish: unknown name")

// Handle is the stable, process-lifetime identity of a registered object.
// Handle equality (==) is identity equality: two handles compare equal iff
// they were produced by the same Register call (or by two Register calls
// with structurally equal attributes).
type Handle struct {
	kind  Kind
	index int
}

// Kind reports which catalog this handle belongs to.
func (h Handle) Kind() Kind { return h.kind }

// Valid reports whether h refers to a real registered object.
func (h Handle) Valid() bool { return h.index >= 0 }

// Zero is the invalid handle, returned on lookup failure.
var Zero = Handle{kind: -1, index: -1}

// entry is one slot in a per-kind catalog.
type entry struct {
	name string // "" if the object was registered without a name
	key  string // structural equality key, used for interning
	obj  any
}

// Registry is a typed catalog of interned building blocks. The zero value
// is not usable; construct with New.
type Registry struct {
	mu        sync.Mutex
	entries   [numKinds][]entry
	byKey     [numKinds]map[string]int
	byName    [numKinds]map[string]int
}

// New returns an empty registry with all per-kind tables initialised.
func New() *Registry {
	r := &Registry{}
	for k := Kind(0); k < numKinds; k++ {
		r.byKey[k] = make(map[string]int)
		r.byName[k] = make(map[string]int)
	}
	return r
}

// Register inserts an object under the given kind, name (may be "") and
// structural key. If an object with the same key is already present, its
// existing handle is returned (insert-or-return-existing semantics);
// otherwise obj is stored and a new handle minted. A non-empty name is
// recorded as an additional lookup alias for the winning entry.
func (r *Registry) Register(kind Kind, name, key string, obj any) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, ok := r.byKey[kind][key]; ok {
		if name != "" {
			if _, exists := r.byName[kind][name]; !exists {
				r.byName[kind][name] = idx
			}
		}
		return Handle{kind: kind, index: idx}
	}

	idx := len(r.entries[kind])
	r.entries[kind] = append(r.entries[kind], entry{name: name, key: key, obj: obj})
	r.byKey[kind][key] = idx
	if name != "" {
		r.byName[kind][name] = idx
	}
	return Handle{kind: kind, index: idx}
}

// Lookup finds a previously registered object of kind by its name.
func (r *Registry) Lookup(kind Kind, name string) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byName[kind][name]
	if !ok {
		return Zero, errors.Wrapf(ErrUnknownName, "%s %q", kind, name)
	}
	return Handle{kind: kind, index: idx}, nil
}

// Object returns the attributes stored for h. Panics on an invalid handle,
// which indicates a programming error (a handle from a different registry
// or a zero-value Handle), not a user-facing condition.
func (r *Registry) Object(h Handle) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h.index < 0 || h.index >= len(r.entries[h.kind]) {
		panic(fmt.Sprintf("pixfish: invalid %s handle", h.kind))
	}
	return r.entries[h.kind][h.index].obj
}

// Name returns the name an object was registered under, or "" if it was
// registered anonymously (structural-only).
func (r *Registry) Name(h Handle) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[h.kind][h.index].name
}

// Each iterates every object of kind in insertion order, calling visit
// with its handle and name (which may be "").
func (r *Registry) Each(kind Kind, visit func(h Handle, name string, obj any)) {
	r.mu.Lock()
	snapshot := append([]entry(nil), r.entries[kind]...)
	r.mu.Unlock()

	for i, e := range snapshot {
		visit(Handle{kind: kind, index: i}, e.name, e.obj)
	}
}

// InitStandardCatalog populates r with every built-in numeric type,
// component, model and the default (1,1) sampling, per spec.md §3's
// "types enumerated by the core" and the standard model table. Callers
// needing color spaces too should follow this with colorspace.InitStandard
// (colorspace depends on registry, not the reverse, so it cannot be
// folded in here).
func InitStandardCatalog(r *Registry) {
	registerStandardTypes(r)
	registerStandardComponents(r)
	registerStandardModels(r)
	r.RegisterSampling(DefaultSampling)
}

// Dump returns a deterministic, insertion-ordered snapshot of every
// interned name for kind. This backs cmd/pixfishtool's "formats" listing
// and the intern-stability tests; it is the minimal in-process accessor
// an external HTML registry dumper would consume (that dumper itself is
// out of scope, per spec.md §1).
func (r *Registry) Dump(kind Kind) []string {
	var names []string
	r.Each(kind, func(_ Handle, name string, _ any) {
		if name != "" {
			names = append(names, name)
		}
	})
	return names
}
