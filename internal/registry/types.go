package registry

import "fmt"

// NumericType is a storage primitive: bit width, signedness, integer vs.
// floating, and the nominal value range it maps onto. Matches spec.md
// §3's "Numeric type" building block.
type NumericType struct {
	Name     string
	BitWidth int
	Signed   bool
	Float    bool
	// MinStorage/MaxStorage are the representable range in storage units
	// (e.g. 0..255 for u8, 16..235 for u8-luma).
	MinStorage float64
	MaxStorage float64
	// MinVal/MaxVal are the physical range the storage range maps onto
	// (e.g. 0..1 for u8-luma's 16..235).
	MinVal float64
	MaxVal float64
}

// key returns the structural-equality key used for interning: two types
// with identical numeric attributes intern to the same handle regardless
// of name.
func (t NumericType) key() string {
	return fmt.Sprintf("type:%d:%v:%v:%g:%g:%g:%g",
		t.BitWidth, t.Signed, t.Float, t.MinStorage, t.MaxStorage, t.MinVal, t.MaxVal)
}

// RegisterType interns a numeric type.
func (r *Registry) RegisterType(t NumericType) Handle {
	return r.Register(KindType, t.Name, t.key(), t)
}

// Type resolves the NumericType attached to h.
func (r *Registry) Type(h Handle) NumericType {
	return r.Object(h).(NumericType)
}

// Well-known type names, registered by InitStandardCatalog.
const (
	TypeU8       = "u8"
	TypeU8Luma   = "u8-luma"
	TypeU8Chroma = "u8-chroma"
	TypeU15      = "u15"
	TypeU16      = "u16"
	TypeU32      = "u32"
	TypeHalf     = "half"
	TypeFloat    = "float"
	TypeDouble   = "double"
)

func registerStandardTypes(r *Registry) {
	r.RegisterType(NumericType{Name: TypeU8, BitWidth: 8, MinStorage: 0, MaxStorage: 255, MinVal: 0, MaxVal: 1})
	r.RegisterType(NumericType{Name: TypeU8Luma, BitWidth: 8, MinStorage: 16, MaxStorage: 235, MinVal: 0, MaxVal: 1})
	r.RegisterType(NumericType{Name: TypeU8Chroma, BitWidth: 8, MinStorage: 16, MaxStorage: 240, MinVal: -0.5, MaxVal: 0.5})
	r.RegisterType(NumericType{Name: TypeU15, BitWidth: 15, MinStorage: 0, MaxStorage: 32768, MinVal: 0, MaxVal: 1})
	r.RegisterType(NumericType{Name: TypeU16, BitWidth: 16, MinStorage: 0, MaxStorage: 65535, MinVal: 0, MaxVal: 1})
	r.RegisterType(NumericType{Name: TypeU32, BitWidth: 32, MinStorage: 0, MaxStorage: 4294967295, MinVal: 0, MaxVal: 1})
	r.RegisterType(NumericType{Name: TypeHalf, BitWidth: 16, Float: true, MinStorage: 0, MaxStorage: 1, MinVal: 0, MaxVal: 1})
	r.RegisterType(NumericType{Name: TypeFloat, BitWidth: 32, Float: true, MinStorage: 0, MaxStorage: 1, MinVal: 0, MaxVal: 1})
	r.RegisterType(NumericType{Name: TypeDouble, BitWidth: 64, Float: true, MinStorage: 0, MaxStorage: 1, MinVal: 0, MaxVal: 1})
}

// BytesPerSample is the storage footprint of one sample of t.
func BytesPerSample(t NumericType) int {
	switch t.BitWidth {
	case 8:
		return 1
	case 15, 16:
		return 2
	case 32:
		return 4
	case 64:
		return 8
	default:
		return (t.BitWidth + 7) / 8
	}
}
