package byteorder

import "math"

// Sizes of fixed-width scalars in bytes.
const (
	Int16Size   = 2
	Int32Size   = 4
	Int64Size   = 8
	Float32Size = 4
	Float64Size = 8
	DecimalSize = 16
)

// PutInt16 stores v at buf[off:] using o.
func PutInt16(o ByteOrder, buf []byte, off int, v int16) { o.PutUint16(buf, off, uint16(v)) }

// PutInt32 stores v at buf[off:] using o.
func PutInt32(o ByteOrder, buf []byte, off int, v int32) { o.PutUint32(buf, off, uint32(v)) }

// PutInt64 stores v at buf[off:] using o.
func PutInt64(o ByteOrder, buf []byte, off int, v int64) { o.PutUint64(buf, off, uint64(v)) }

// Int16 loads a signed 16-bit integer from buf[off:].
func Int16(o ByteOrder, buf []byte, off int) int16 { return int16(o.Uint16(buf, off)) }

// Int32 loads a signed 32-bit integer from buf[off:].
func Int32(o ByteOrder, buf []byte, off int) int32 { return int32(o.Uint32(buf, off)) }

// Int64 loads a signed 64-bit integer from buf[off:].
func Int64(o ByteOrder, buf []byte, off int) int64 { return int64(o.Uint64(buf, off)) }

// PutFloat32 stores the raw IEEE 754 bit pattern of v, so NaN payloads and
// signed zeroes survive.
func PutFloat32(o ByteOrder, buf []byte, off int, v float32) {
	o.PutUint32(buf, off, math.Float32bits(v))
}

// PutFloat64 stores the raw IEEE 754 bit pattern of v.
func PutFloat64(o ByteOrder, buf []byte, off int, v float64) {
	o.PutUint64(buf, off, math.Float64bits(v))
}

// Float32 loads a float32 from its bit pattern at buf[off:].
func Float32(o ByteOrder, buf []byte, off int) float32 {
	return math.Float32frombits(o.Uint32(buf, off))
}

// Float64 loads a float64 from its bit pattern at buf[off:].
func Float64(o ByteOrder, buf []byte, off int) float64 {
	return math.Float64frombits(o.Uint64(buf, off))
}

// PutDecimal stores d as four 32-bit words (Lo, Mid, Hi, Flags), each of
// them converted with o independently.
func PutDecimal(o ByteOrder, buf []byte, off int, d Decimal) {
	o.PutUint32(buf, off, d.Lo)
	o.PutUint32(buf, off+4, d.Mid)
	o.PutUint32(buf, off+8, d.Hi)
	o.PutUint32(buf, off+12, d.Flags)
}

// GetDecimal loads a Decimal stored by PutDecimal.
func GetDecimal(o ByteOrder, buf []byte, off int) Decimal {
	return Decimal{
		Lo:    o.Uint32(buf, off),
		Mid:   o.Uint32(buf, off+4),
		Hi:    o.Uint32(buf, off+8),
		Flags: o.Uint32(buf, off+12),
	}
}
