/*
Package byteorder contains byte order strategies used to pack and unpack
fixed-width scalars into byte spans.
*/
package byteorder

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unsafe"
)

// ByteOrder specifies how multi-byte scalars are laid out in a buffer. All
// methods operate on buf[off:] and panic if the span is too short, the same
// way encoding/binary does.
type ByteOrder interface {
	PutUint16(buf []byte, off int, v uint16)
	PutUint32(buf []byte, off int, v uint32)
	PutUint64(buf []byte, off int, v uint64)
	Uint16(buf []byte, off int) uint16
	Uint32(buf []byte, off int) uint32
	Uint64(buf []byte, off int) uint64
	IsLittle() bool
	String() string
}

type order struct {
	bo     binary.ByteOrder
	little bool
}

var (
	// LittleEndian stores the least significant byte first.
	LittleEndian ByteOrder = order{bo: binary.LittleEndian, little: true}
	// BigEndian stores the most significant byte first.
	BigEndian ByteOrder = order{bo: binary.BigEndian}
	// Native is whichever of LittleEndian and BigEndian matches the host, it's
	// resolved once at startup.
	Native = hostOrder()
)

func hostOrder() ByteOrder {
	var probe uint16 = 0x0102
	if *(*byte)(unsafe.Pointer(&probe)) == 0x02 {
		return LittleEndian
	}
	return BigEndian
}

func (o order) PutUint16(buf []byte, off int, v uint16) { o.bo.PutUint16(buf[off:], v) }
func (o order) PutUint32(buf []byte, off int, v uint32) { o.bo.PutUint32(buf[off:], v) }
func (o order) PutUint64(buf []byte, off int, v uint64) { o.bo.PutUint64(buf[off:], v) }
func (o order) Uint16(buf []byte, off int) uint16       { return o.bo.Uint16(buf[off:]) }
func (o order) Uint32(buf []byte, off int) uint32       { return o.bo.Uint32(buf[off:]) }
func (o order) Uint64(buf []byte, off int) uint64       { return o.bo.Uint64(buf[off:]) }
func (o order) IsLittle() bool                          { return o.little }

// String implements fmt.Stringer interface.
func (o order) String() string {
	if o.little {
		return "little"
	}
	return "big"
}

// Parse returns the byte order named by s: "little" (or "le"), "big" (or
// "be") and "native".
func Parse(s string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "little", "le", "littleendian", "little-endian":
		return LittleEndian, nil
	case "big", "be", "bigendian", "big-endian":
		return BigEndian, nil
	case "native", "host":
		return Native, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", s)
	}
}
