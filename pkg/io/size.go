package io

import (
	"github.com/nspcc-dev/bincodec/pkg/text"
)

// GetLengthSize returns the size of an element count prefix in bytes.
func GetLengthSize(n int, coding LengthCoding) int {
	switch coding {
	case ByteLength:
		return 1
	case Int16Length:
		return 2
	case Int32Length:
		return 4
	default:
		return VarUint32Size(uint32(n))
	}
}

// GetStringSize returns the number of bytes s occupies when written with the
// given coding and encoding (nil meaning UTF-8). It returns -1 if s can't be
// encoded.
func GetStringSize(s string, coding StringCoding, enc text.Encoding) int {
	if enc == nil {
		enc = text.UTF8
	}
	b, err := enc.Encode(s)
	if err != nil {
		return -1
	}
	switch coding {
	case VarintByteCount:
		return VarUint32Size(uint32(len(b))) + len(b)
	case ByteCharCount, Int16CharCount, Int32CharCount:
		return coding.countWidth() + len(b)
	case ZeroTerminated:
		return len(b) + enc.MinUnit()
	default:
		return len(b)
	}
}
