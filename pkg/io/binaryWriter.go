package io

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/nspcc-dev/bincodec/pkg/byteorder"
	"github.com/nspcc-dev/bincodec/pkg/enum"
	"github.com/nspcc-dev/bincodec/pkg/text"
)

// BinWriter is a convenient wrapper around an io.Writer and err object.
// Used to simplify error handling when writing into an io.Writer
// from a struct with many fields. Once Err is set every other write is a
// no-op.
type BinWriter struct {
	w   io.Writer
	Err error
	// Order is the byte order used for multi-byte scalars.
	Order byteorder.ByteOrder
	uv    [byteorder.DecimalSize]byte
}

// NewBinWriterFromIO makes a little-endian BinWriter from io.Writer. Position
// related operations are only available if iow implements io.Seeker.
func NewBinWriterFromIO(iow io.Writer) *BinWriter {
	return &BinWriter{w: iow, Order: byteorder.LittleEndian}
}

// SetOrder changes the byte order and returns the previous one.
func (w *BinWriter) SetOrder(o byteorder.ByteOrder) byteorder.ByteOrder {
	prev := w.Order
	if o != nil {
		w.Order = o
	}
	return prev
}

// SetError sets the sticky error unless there already is one.
func (w *BinWriter) SetError(err error) {
	if w.Err == nil {
		w.Err = err
	}
}

// WriteB writes a byte into the underlying io.Writer.
func (w *BinWriter) WriteB(u8 byte) {
	w.uv[0] = u8
	w.WriteBytes(w.uv[:1])
}

// WriteU16 writes a uint16 value using the writer's byte order.
func (w *BinWriter) WriteU16(u16 uint16) {
	w.Order.PutUint16(w.uv[:], 0, u16)
	w.WriteBytes(w.uv[:2])
}

// WriteU32 writes a uint32 value using the writer's byte order.
func (w *BinWriter) WriteU32(u32 uint32) {
	w.Order.PutUint32(w.uv[:], 0, u32)
	w.WriteBytes(w.uv[:4])
}

// WriteU64 writes a uint64 value using the writer's byte order.
func (w *BinWriter) WriteU64(u64 uint64) {
	w.Order.PutUint64(w.uv[:], 0, u64)
	w.WriteBytes(w.uv[:8])
}

// WriteI8 writes an int8 value.
func (w *BinWriter) WriteI8(i8 int8) { w.WriteB(byte(i8)) }

// WriteI16 writes an int16 value using the writer's byte order.
func (w *BinWriter) WriteI16(i16 int16) { w.WriteU16(uint16(i16)) }

// WriteI32 writes an int32 value using the writer's byte order.
func (w *BinWriter) WriteI32(i32 int32) { w.WriteU32(uint32(i32)) }

// WriteI64 writes an int64 value using the writer's byte order.
func (w *BinWriter) WriteI64(i64 int64) { w.WriteU64(uint64(i64)) }

// WriteF32 writes the bit pattern of a float32 value.
func (w *BinWriter) WriteF32(f float32) {
	byteorder.PutFloat32(w.Order, w.uv[:], 0, f)
	w.WriteBytes(w.uv[:4])
}

// WriteF64 writes the bit pattern of a float64 value.
func (w *BinWriter) WriteF64(f float64) {
	byteorder.PutFloat64(w.Order, w.uv[:], 0, f)
	w.WriteBytes(w.uv[:8])
}

// WriteDecimal writes a 128-bit decimal value.
func (w *BinWriter) WriteDecimal(d byteorder.Decimal) {
	byteorder.PutDecimal(w.Order, w.uv[:], 0, d)
	w.WriteBytes(w.uv[:byteorder.DecimalSize])
}

// WriteBool writes a boolean value as 1 or 0 of the width given by coding.
func (w *BinWriter) WriteBool(b bool, coding BooleanCoding) {
	if w.Err != nil {
		return
	}
	if !coding.IsValid() {
		w.Err = fmt.Errorf("%w: boolean coding %s", ErrInvalidArgument, coding)
		return
	}
	var v uint32
	if b {
		v = 1
	}
	switch coding {
	case Byte:
		w.WriteB(byte(v))
	case Word:
		w.WriteU16(uint16(v))
	default:
		w.WriteU32(v)
	}
}

// WriteTime writes a time value using the given coding.
func (w *BinWriter) WriteTime(t time.Time, coding DateTimeCoding) {
	if w.Err != nil {
		return
	}
	switch coding {
	case Ticks:
		w.WriteI64(TimeToTicks(t))
	case CTime:
		sec := t.Unix()
		if sec < 0 || sec > math.MaxUint32 {
			w.Err = fmt.Errorf("%w: %s doesn't fit into 32-bit C time", ErrInvalidArgument, t)
			return
		}
		w.WriteU32(uint32(sec))
	case CTime64:
		w.WriteI64(t.Unix())
	default:
		w.Err = fmt.Errorf("%w: time coding %s", ErrInvalidArgument, coding)
	}
}

// WriteVarUint32 writes a uint32 into the underlying writer using 7-bit
// variable-length encoding.
func (w *BinWriter) WriteVarUint32(val uint32) {
	if w.Err != nil {
		return
	}
	n := PutVarUint32(w.uv[:], val)
	w.WriteBytes(w.uv[:n])
}

// WriteLength writes an element count using the given coding.
func (w *BinWriter) WriteLength(n int, coding LengthCoding) {
	if w.Err != nil {
		return
	}
	switch coding {
	case VarintLength:
		w.writeCount(n, 0)
	case ByteLength:
		w.writeCount(n, 1)
	case Int16Length:
		w.writeCount(n, 2)
	case Int32Length:
		w.writeCount(n, 4)
	default:
		w.Err = fmt.Errorf("%w: length coding %s", ErrInvalidArgument, coding)
	}
}

// writeCount writes a non-negative count as a varint (width 0), uint8,
// int16 or int32.
func (w *BinWriter) writeCount(n int, width int) {
	var limit int64
	switch width {
	case 0, 4:
		limit = math.MaxInt32
	case 1:
		limit = math.MaxUint8
	case 2:
		limit = math.MaxInt16
	}
	if n < 0 || int64(n) > limit {
		w.Err = fmt.Errorf("%w: count %d doesn't fit into %d-byte prefix", ErrInvalidArgument, n, width)
		return
	}
	switch width {
	case 0:
		w.WriteVarUint32(uint32(n))
	case 1:
		w.WriteB(byte(n))
	case 2:
		w.WriteU16(uint16(n))
	case 4:
		w.WriteU32(uint32(n))
	}
}

// WriteString writes s encoded with enc using the given string coding. A nil
// enc means UTF-8.
func (w *BinWriter) WriteString(s string, coding StringCoding, enc text.Encoding) {
	if w.Err != nil {
		return
	}
	if !coding.IsValid() {
		w.Err = fmt.Errorf("%w: string coding %s", ErrInvalidArgument, coding)
		return
	}
	if enc == nil {
		enc = text.UTF8
	}
	if coding == ZeroTerminated && enc.MinUnit() > 2 {
		w.Err = fmt.Errorf("%w: zero-terminated %s strings", ErrInvalidArgument, enc.Name())
		return
	}
	b, err := enc.Encode(s)
	if err != nil {
		w.Err = fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		return
	}
	if coding == ZeroTerminated && hasZeroUnit(b, enc.MinUnit()) {
		w.Err = fmt.Errorf("%w: zero-terminated string contains a zero %s unit", ErrInvalidArgument, enc.Name())
		return
	}
	switch coding {
	case VarintByteCount:
		w.writeCount(len(b), 0)
	case ByteCharCount, Int16CharCount, Int32CharCount:
		w.writeCount(text.RuneCount(s), coding.countWidth())
	}
	w.WriteBytes(b)
	if coding == ZeroTerminated {
		clear(w.uv[:enc.MinUnit()])
		w.WriteBytes(w.uv[:enc.MinUnit()])
	}
}

// hasZeroUnit reports whether b has an aligned all-zero code unit of the
// given size.
func hasZeroUnit(b []byte, unit int) bool {
	for i := 0; i+unit <= len(b); i += unit {
		zero := true
		for _, c := range b[i : i+unit] {
			if c != 0 {
				zero = false
				break
			}
		}
		if zero {
			return true
		}
	}
	return false
}

// WriteEnum writes the raw bits of an enumeration value using its underlying
// width. In strict mode values that are not defined (or not a valid flag
// combination) are refused.
func (w *BinWriter) WriteEnum(info *enum.Info, v uint64, strict bool) {
	if w.Err != nil {
		return
	}
	if strict && !info.IsValid(v) {
		w.Err = fmt.Errorf("%w: %s is not a valid %s", ErrInvalidData, info.Name(v), info.Type)
		return
	}
	switch info.Size {
	case 1:
		w.WriteB(byte(v))
	case 2:
		w.WriteU16(uint16(v))
	case 4:
		w.WriteU32(uint32(v))
	case 8:
		w.WriteU64(v)
	default:
		w.Err = fmt.Errorf("%w: %d-byte enumeration %s", ErrUnsupportedType, info.Size, info.Type)
	}
}

// WriteArray writes a slice arr into w prefixed by its length.
func WriteArray[Slice ~[]E, E Serializable](w *BinWriter, arr Slice, coding LengthCoding) {
	w.WriteLength(len(arr), coding)
	for i := range arr {
		if w.Err != nil {
			return
		}
		arr[i].EncodeBinary(w)
	}
}

// WriteBytes writes a variable byte into the underlying io.Writer without prefix.
func (w *BinWriter) WriteBytes(b []byte) {
	if w.Err != nil {
		return
	}
	_, w.Err = w.w.Write(b)
}

// WriteZeroes writes n zero bytes.
func (w *BinWriter) WriteZeroes(n int) {
	clear(w.uv[:])
	for n > 0 && w.Err == nil {
		chunk := min(n, len(w.uv))
		w.WriteBytes(w.uv[:chunk])
		n -= chunk
	}
}

// Grow tries to increase the underlying buffer capacity so that at least n bytes
// can be written without reallocation. If the writer is not a buffer, this is a no-op.
func (w *BinWriter) Grow(n int) {
	if b, ok := w.w.(interface{ Grow(int) }); ok {
		b.Grow(n)
	}
}

// TimeToTicks converts t into the number of 100-nanosecond intervals since
// 0001-01-01T00:00:00Z.
func TimeToTicks(t time.Time) int64 {
	return (t.Unix()+ticksToUnixSeconds)*ticksPerSecond + int64(t.Nanosecond())/100
}

// TicksToTime is the inverse of TimeToTicks, the result is in UTC.
func TicksToTime(ticks int64) time.Time {
	sec, rem := ticks/ticksPerSecond, ticks%ticksPerSecond
	if rem < 0 {
		sec--
		rem += ticksPerSecond
	}
	return time.Unix(sec-ticksToUnixSeconds, rem*100).UTC()
}

const (
	ticksPerSecond = 10_000_000
	// ticksToUnixSeconds is the number of seconds between 0001-01-01 and
	// 1970-01-01.
	ticksToUnixSeconds = 62135596800
)
