package convert

import (
	"math"

	"github.com/pixfish/pixfish/internal/registry"
)

// scaleToPhysical maps a stored value into [MinVal,MaxVal], per spec.md
// §4.2: v = (stored-min)/(max-min) * (max_val-min_val) + min_val.
func scaleToPhysical(stored float64, t registry.NumericType) float64 {
	if t.MaxStorage == t.MinStorage {
		return t.MinVal
	}
	frac := (stored - t.MinStorage) / (t.MaxStorage - t.MinStorage)
	return frac*(t.MaxVal-t.MinVal) + t.MinVal
}

// scaleToStorage is the inverse, rounding half-to-even per spec.md §4.2.
func scaleToStorage(physical float64, t registry.NumericType) float64 {
	if t.MaxVal == t.MinVal {
		return t.MinStorage
	}
	frac := (physical - t.MinVal) / (t.MaxVal - t.MinVal)
	stored := frac*(t.MaxStorage-t.MinStorage) + t.MinStorage
	if t.Float {
		return stored
	}
	return roundHalfEven(stored)
}

// roundHalfEven implements IEEE 754 roundTiesToEven for the integer
// storage quantization step (spec.md §4.2).
func roundHalfEven(v float64) float64 {
	floor := math.Floor(v)
	diff := v - floor
	switch {
	case diff < 0.5:
		return floor
	case diff > 0.5:
		return floor + 1
	default:
		if math.Mod(floor, 2) == 0 {
			return floor
		}
		return floor + 1
	}
}

// clampStorage clamps a stored numeric sample to the type's representable
// storage range, matching the integer types' saturating behavior.
func clampStorage(v float64, t registry.NumericType) float64 {
	if t.Float {
		return v
	}
	if v < 0 {
		return 0
	}
	maxStorage := t.MaxStorage
	if t.MinStorage > 0 {
		// u8-luma / u8-chroma style types still saturate at the
		// type's full bit-width range, not the nominal sub-range;
		// storage is whatever the caller's raw bytes held.
		maxStorage = math.Exp2(float64(t.BitWidth)) - 1
	}
	if v > maxStorage {
		return maxStorage
	}
	return v
}

// RegisterNumericEdges wires type<->double (and, where efficient,
// type<->float) linear batch converters for every registered numeric
// type, satisfying spec.md §3's invariant that every type must provide
// conversions to/from double at registration.
func RegisterNumericEdges(reg *registry.Registry, lib *Library, doubleH, floatH registry.Handle) {
	reg.Each(registry.KindType, func(h registry.Handle, name string, obj any) {
		t := obj.(registry.NumericType)
		if h == doubleH {
			// double's storage and physical units coincide, so its one
			// edge (double->double) is the identity scaling.
			registerToDouble(lib, reg, h, doubleH, t)
			return
		}
		registerToDouble(lib, reg, h, doubleH, t)
		registerFromDouble(lib, reg, doubleH, h, t)
		if h != floatH {
			registerToFloat(lib, reg, h, floatH, t)
			registerFromFloat(lib, reg, floatH, h, t)
		}
	})
}

func registerToDouble(lib *Library, reg *registry.Registry, src, dst registry.Handle, t registry.NumericType) {
	lib.Register(&Primitive{
		Name: reg.Name(src) + "->double", SrcKind: EdgeTypeToType, Src: src, Dst: dst,
		Cost: 1, Shape: ShapeLinear,
		Linear: func(s, d []float64, n int) {
			for i := 0; i < n; i++ {
				d[i] = scaleToPhysical(s[i], t)
			}
		},
	})
}

func registerFromDouble(lib *Library, reg *registry.Registry, src, dst registry.Handle, t registry.NumericType) {
	lib.Register(&Primitive{
		Name: "double->" + reg.Name(dst), SrcKind: EdgeTypeToType, Src: src, Dst: dst,
		Cost: 1, Shape: ShapeLinear,
		Linear: func(s, d []float64, n int) {
			for i := 0; i < n; i++ {
				d[i] = clampStorage(scaleToStorage(s[i], t), t)
			}
		},
	})
}

func registerToFloat(lib *Library, reg *registry.Registry, src, dst registry.Handle, t registry.NumericType) {
	lib.Register(&Primitive{
		Name: reg.Name(src) + "->float", SrcKind: EdgeTypeToType, Src: src, Dst: dst,
		Cost: 0.9, Shape: ShapeLinear,
		Linear: func(s, d []float64, n int) {
			for i := 0; i < n; i++ {
				d[i] = scaleToPhysical(s[i], t)
			}
		},
	})
}

func registerFromFloat(lib *Library, reg *registry.Registry, src, dst registry.Handle, t registry.NumericType) {
	lib.Register(&Primitive{
		Name: "float->" + reg.Name(dst), SrcKind: EdgeTypeToType, Src: src, Dst: dst,
		Cost: 0.9, Shape: ShapeLinear,
		Linear: func(s, d []float64, n int) {
			for i := 0; i < n; i++ {
				d[i] = clampStorage(scaleToStorage(s[i], t), t)
			}
		},
	})
}
