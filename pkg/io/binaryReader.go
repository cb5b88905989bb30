package io

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nspcc-dev/bincodec/pkg/byteorder"
	"github.com/nspcc-dev/bincodec/pkg/enum"
	"github.com/nspcc-dev/bincodec/pkg/text"
)

// MaxArraySize is the maximum size of an array (or the number of string
// bytes) which can be decoded.
const MaxArraySize = 0x1000000

// BinReader is a convenient wrapper around a io.Reader and err object.
// Used to simplify error handling when reading into a struct with many fields.
// Once Err is set every other read is a no-op returning zero values.
type BinReader struct {
	r   io.Reader
	Err error
	// Order is the byte order used for multi-byte scalars.
	Order byteorder.ByteOrder
	uv    [byteorder.DecimalSize]byte
}

// NewBinReaderFromIO makes a little-endian BinReader from io.Reader.
// Position related operations are only available if ior implements
// io.Seeker.
func NewBinReaderFromIO(ior io.Reader) *BinReader {
	return &BinReader{r: ior, Order: byteorder.LittleEndian}
}

// NewBinReaderFromBuf makes a BinReader from byte buffer.
func NewBinReaderFromBuf(b []byte) *BinReader {
	return NewBinReaderFromIO(bytes.NewReader(b))
}

// SetOrder changes the byte order and returns the previous one.
func (r *BinReader) SetOrder(o byteorder.ByteOrder) byteorder.ByteOrder {
	prev := r.Order
	if o != nil {
		r.Order = o
	}
	return prev
}

// SetError sets the sticky error unless there already is one.
func (r *BinReader) SetError(err error) {
	if r.Err == nil {
		r.Err = err
	}
}

// ReadBytes fills b with data from the underlying reader. A short read is
// reported as ErrOutOfData.
func (r *BinReader) ReadBytes(b []byte) {
	if r.Err != nil {
		return
	}
	_, err := io.ReadFull(r.r, b)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = fmt.Errorf("%w: %d bytes requested: %w", ErrOutOfData, len(b), err)
		}
		r.Err = err
	}
}

// scratch reads n bytes into the scratch buffer.
func (r *BinReader) scratch(n int) []byte {
	b := r.uv[:n]
	r.ReadBytes(b)
	if r.Err != nil {
		clear(b)
	}
	return b
}

// ReadB reads a byte from the underlying io.Reader. On read failures it
// returns zero.
func (r *BinReader) ReadB() byte {
	return r.scratch(1)[0]
}

// ReadU16 reads a uint16 value using the reader's byte order.
func (r *BinReader) ReadU16() uint16 {
	return r.Order.Uint16(r.scratch(2), 0)
}

// ReadU32 reads a uint32 value using the reader's byte order.
func (r *BinReader) ReadU32() uint32 {
	return r.Order.Uint32(r.scratch(4), 0)
}

// ReadU64 reads a uint64 value using the reader's byte order.
func (r *BinReader) ReadU64() uint64 {
	return r.Order.Uint64(r.scratch(8), 0)
}

// ReadI8 reads an int8 value.
func (r *BinReader) ReadI8() int8 { return int8(r.ReadB()) }

// ReadI16 reads an int16 value using the reader's byte order.
func (r *BinReader) ReadI16() int16 { return int16(r.ReadU16()) }

// ReadI32 reads an int32 value using the reader's byte order.
func (r *BinReader) ReadI32() int32 { return int32(r.ReadU32()) }

// ReadI64 reads an int64 value using the reader's byte order.
func (r *BinReader) ReadI64() int64 { return int64(r.ReadU64()) }

// ReadF32 reads a float32 from its bit pattern.
func (r *BinReader) ReadF32() float32 {
	return byteorder.Float32(r.Order, r.scratch(4), 0)
}

// ReadF64 reads a float64 from its bit pattern.
func (r *BinReader) ReadF64() float64 {
	return byteorder.Float64(r.Order, r.scratch(8), 0)
}

// ReadDecimal reads a 128-bit decimal value.
func (r *BinReader) ReadDecimal() byteorder.Decimal {
	return byteorder.GetDecimal(r.Order, r.scratch(byteorder.DecimalSize), 0)
}

// ReadBool reads a boolean of the width given by coding, any non-zero value
// is true.
func (r *BinReader) ReadBool(coding BooleanCoding) bool {
	if r.Err != nil {
		return false
	}
	if !coding.IsValid() {
		r.Err = fmt.Errorf("%w: boolean coding %s", ErrInvalidArgument, coding)
		return false
	}
	for _, b := range r.scratch(coding.size()) {
		if b != 0 {
			return true
		}
	}
	return false
}

// ReadTime reads a time value using the given coding. The result is in UTC.
func (r *BinReader) ReadTime(coding DateTimeCoding) time.Time {
	if r.Err != nil {
		return time.Time{}
	}
	switch coding {
	case Ticks:
		return TicksToTime(r.ReadI64())
	case CTime:
		return time.Unix(int64(r.ReadU32()), 0).UTC()
	case CTime64:
		return time.Unix(r.ReadI64(), 0).UTC()
	default:
		r.Err = fmt.Errorf("%w: time coding %s", ErrInvalidArgument, coding)
		return time.Time{}
	}
}

// ReadVarUint32 reads a 7-bit variable-length integer. A stream ending in the
// middle of the number results in ErrOutOfData, more than MaxVarUint32Size
// bytes with continuation bits result in ErrMalformedData.
func (r *BinReader) ReadVarUint32() uint32 {
	var res uint32
	for i := 0; i < MaxVarUint32Size; i++ {
		b := r.ReadB()
		if r.Err != nil {
			return 0
		}
		res |= uint32(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			return res
		}
	}
	r.Err = fmt.Errorf("%w: variable-length integer exceeds %d bytes", ErrMalformedData, MaxVarUint32Size)
	return 0
}

// ReadLength reads an element count using the given coding.
func (r *BinReader) ReadLength(coding LengthCoding) int {
	if r.Err != nil {
		return 0
	}
	switch coding {
	case VarintLength:
		return r.readCount(0)
	case ByteLength:
		return r.readCount(1)
	case Int16Length:
		return r.readCount(2)
	case Int32Length:
		return r.readCount(4)
	default:
		r.Err = fmt.Errorf("%w: length coding %s", ErrInvalidArgument, coding)
		return 0
	}
}

func (r *BinReader) readCount(width int) int {
	var n int64
	switch width {
	case 0:
		n = int64(r.ReadVarUint32())
	case 1:
		n = int64(r.ReadB())
	case 2:
		n = int64(r.ReadI16())
	case 4:
		n = int64(r.ReadI32())
	}
	if r.Err != nil {
		return 0
	}
	if n < 0 || n > MaxArraySize {
		r.Err = fmt.Errorf("%w: invalid count %d", ErrInvalidData, n)
		return 0
	}
	return int(n)
}

// ReadString reads a string encoded with enc using the given coding. A nil
// enc means UTF-8. Raw strings can't be read this way as their length is
// unknown, use ReadFixedString for them.
func (r *BinReader) ReadString(coding StringCoding, enc text.Encoding) string {
	if r.Err != nil {
		return ""
	}
	if enc == nil {
		enc = text.UTF8
	}
	switch coding {
	case VarintByteCount:
		n := r.readCount(0)
		if r.Err != nil {
			return ""
		}
		b := make([]byte, n)
		r.ReadBytes(b)
		return r.decode(enc, b)
	case ByteCharCount, Int16CharCount, Int32CharCount:
		n := r.readCount(coding.countWidth())
		return r.ReadFixedString(n, enc)
	case ZeroTerminated:
		return r.readZeroTerminated(enc)
	case Raw:
		r.Err = fmt.Errorf("%w: raw string needs an explicit length", ErrInvalidArgument)
	default:
		r.Err = fmt.Errorf("%w: string coding %s", ErrInvalidArgument, coding)
	}
	return ""
}

// ReadFixedString reads exactly n characters encoded with enc.
func (r *BinReader) ReadFixedString(n int, enc text.Encoding) string {
	if r.Err != nil {
		return ""
	}
	if enc == nil {
		enc = text.UTF8
	}
	if n < 0 {
		r.Err = fmt.Errorf("%w: negative string length %d", ErrInvalidArgument, n)
		return ""
	}
	var (
		unit = enc.MinUnit()
		b    = make([]byte, 0, n*unit)
	)
	for i := 0; i < n && r.Err == nil; i++ {
		start := len(b)
		b = append(b, make([]byte, unit)...)
		r.ReadBytes(b[start:])
		if r.Err != nil {
			break
		}
		if l := enc.RuneLen(b[start:]); l > unit {
			b = append(b, make([]byte, l-unit)...)
			r.ReadBytes(b[start+unit:])
		}
	}
	if r.Err != nil {
		return ""
	}
	return r.decode(enc, b)
}

func (r *BinReader) readZeroTerminated(enc text.Encoding) string {
	unit := enc.MinUnit()
	if unit > 2 {
		r.Err = fmt.Errorf("%w: zero-terminated %s strings", ErrInvalidArgument, enc.Name())
		return ""
	}
	var b []byte
	for {
		u := r.scratch(unit)
		if r.Err != nil {
			return ""
		}
		if u[0] == 0 && (unit == 1 || u[1] == 0) {
			break
		}
		if len(b) >= MaxArraySize {
			r.Err = fmt.Errorf("%w: unterminated string", ErrInvalidData)
			return ""
		}
		b = append(b, u...)
	}
	return r.decode(enc, b)
}

func (r *BinReader) decode(enc text.Encoding, b []byte) string {
	if r.Err != nil {
		return ""
	}
	s, err := enc.Decode(b)
	if err != nil {
		r.Err = fmt.Errorf("%w: %w", ErrInvalidData, err)
		return ""
	}
	return s
}

// ReadEnum reads an enumeration value using its underlying width and returns
// it as a 64-bit pattern (sign-extended for signed enumerations). In strict
// mode values that are not defined (or not a valid flag combination) result
// in ErrInvalidData.
func (r *BinReader) ReadEnum(info *enum.Info, strict bool) uint64 {
	if r.Err != nil {
		return 0
	}
	var v uint64
	switch info.Size {
	case 1:
		v = uint64(r.ReadB())
	case 2:
		v = uint64(r.ReadU16())
	case 4:
		v = uint64(r.ReadU32())
	case 8:
		v = r.ReadU64()
	default:
		r.Err = fmt.Errorf("%w: %d-byte enumeration %s", ErrUnsupportedType, info.Size, info.Type)
	}
	if r.Err != nil {
		return 0
	}
	if strict && !info.IsValid(v) {
		r.Err = fmt.Errorf("%w: %s is not a valid %s", ErrInvalidData, info.Name(v), info.Type)
		return 0
	}
	return info.Extend(v)
}

// ReadArray reads a length-prefixed array of Serializable elements.
func ReadArray[E any, P interface {
	*E
	Serializable
}](r *BinReader, coding LengthCoding) []E {
	n := r.ReadLength(coding)
	if r.Err != nil {
		return nil
	}
	arr := make([]E, n)
	for i := range arr {
		P(&arr[i]).DecodeBinary(r)
		if r.Err != nil {
			return nil
		}
	}
	return arr
}

// Skip advances the reader by n bytes.
func (r *BinReader) Skip(n int64) {
	if r.Err != nil || n == 0 {
		return
	}
	if _, ok := r.r.(io.Seeker); ok && n > 0 {
		r.Seek(n, io.SeekCurrent)
		return
	}
	if n < 0 {
		r.Err = fmt.Errorf("%w: can't skip backwards", ErrNotSeekable)
		return
	}
	m, err := io.CopyN(io.Discard, r.r, n)
	if err != nil {
		r.Err = fmt.Errorf("%w: %d of %d bytes skipped: %w", ErrOutOfData, m, n, err)
	}
}
