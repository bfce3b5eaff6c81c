package pixfish

import (
	"github.com/pkg/errors"

	"github.com/pixfish/pixfish/internal/exec"
	"github.com/pixfish/pixfish/internal/graph"
	"github.com/pixfish/pixfish/internal/palette"
	"github.com/pixfish/pixfish/internal/registry"
)

// The error taxonomy of spec.md §7, collected at the package root so
// callers can errors.Is against a stable set regardless of which internal
// package actually detected the condition.
var (
	// ErrUnknownName is reported by Type/Component/Model/Space/TRC
	// lookups for an unregistered name (Format reports ErrInvalidFormat).
	ErrUnknownName = registry.ErrUnknownName

	// ErrInvalidFormat is reported when a format-name string does not
	// resolve to a valid format.
	ErrInvalidFormat = errors.New("pixfish: invalid format encoding")

	// ErrNoPath is reported by GetFish when the planner cannot assemble a
	// chain from source to destination.
	ErrNoPath = graph.ErrNoPath

	// ErrInvalidArgument is reported for out-of-range numeric parameters
	// (e.g. PaletteSetPalette with a count above 256, which is rejected,
	// not clamped).
	ErrInvalidArgument = errors.New("pixfish: invalid argument")

	// ErrOutOfMemory stands for a failed scratch or LUT allocation. Go's
	// allocator reports that as a runtime panic rather than an error
	// value; this is retained for API parity with spec.md §7 and no
	// function in this module returns it.
	ErrOutOfMemory = errors.New("pixfish: out of memory")

	// ErrIOError stands for a fish-cache I/O failure. No function returns
	// it: Init and Exit log cache load/save failures and carry on.
	ErrIOError = errors.New("pixfish: cache I/O error")

	// ErrSizeMismatch is reported by Process when src/dst aren't sized
	// for n pixels of their respective formats.
	ErrSizeMismatch = exec.ErrSizeMismatch

	// ErrTooManyEntries is reported by internal/palette.New for more than
	// 256 entries. PaletteSetPalette checks the count first and reports
	// ErrInvalidArgument instead; nothing clamps an oversized palette.
	ErrTooManyEntries = palette.ErrTooManyEntries
)
