package format

import (
	"encoding/binary"
	"math"

	"github.com/pixfish/pixfish/internal/convert"
	"github.com/pixfish/pixfish/internal/registry"
)

// DecodeSample reads one raw sample of numeric type t from buf (native
// byte order, host-memory pixel buffers, not a wire format) and returns
// it as a float64:
//
//   - integer types (u8, u8-luma, u8-chroma, u15, u16, u32): the literal
//     stored integer, still in storage units (e.g. 0..255 for u8). The
//     type<->double primitives (internal/convert) scale this into
//     [min_val,max_val].
//   - half/float/double: the physical floating value, decoded via its
//     IEEE 754 bit pattern. Storage units and physical units coincide
//     for floating types, so no further scaling primitive is needed.
func DecodeSample(t registry.NumericType, buf []byte) float64 {
	switch t.BitWidth {
	case 8:
		return float64(buf[0])
	case 15, 16:
		v := binary.LittleEndian.Uint16(buf)
		if t.Float {
			return convert.HalfToFloat64(v)
		}
		return float64(v)
	case 32:
		v := binary.LittleEndian.Uint32(buf)
		if t.Float {
			return convert.Float32ToFloat64(v)
		}
		return float64(v)
	case 64:
		v := binary.LittleEndian.Uint64(buf)
		if t.Float {
			return math.Float64frombits(v)
		}
		return float64(v)
	default:
		return 0
	}
}

// EncodeSample writes v (in the same units DecodeSample returns) into
// buf for numeric type t.
func EncodeSample(t registry.NumericType, v float64, buf []byte) {
	switch t.BitWidth {
	case 8:
		buf[0] = byte(clampU(v, 255))
	case 15, 16:
		if t.Float {
			binary.LittleEndian.PutUint16(buf, convert.Float64ToHalf(v))
			return
		}
		max := float64(uint64(1<<uint(t.BitWidth)) - 1)
		if t.MaxStorage > max {
			max = t.MaxStorage // u15 stores 0..32768
		}
		binary.LittleEndian.PutUint16(buf, uint16(clampU(v, max)))
	case 32:
		if t.Float {
			binary.LittleEndian.PutUint32(buf, convert.Float64ToFloat32Bits(v))
			return
		}
		binary.LittleEndian.PutUint32(buf, uint32(clampU(v, 4294967295)))
	case 64:
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	}
}

func clampU(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return math.Round(v)
}
