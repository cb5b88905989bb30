package io

import (
	"fmt"
	"strings"
)

// StringCoding selects the on-wire string representation.
type StringCoding byte

// String codings.
const (
	// VarintByteCount prefixes string bytes with their count as a 7-bit
	// variable-length integer.
	VarintByteCount StringCoding = iota
	// ByteCharCount prefixes characters with their count as a single byte.
	ByteCharCount
	// Int16CharCount prefixes characters with their count as int16.
	Int16CharCount
	// Int32CharCount prefixes characters with their count as int32.
	Int32CharCount
	// ZeroTerminated appends a zero code unit after the characters.
	ZeroTerminated
	// Raw writes characters only, the length must be known to the reader.
	Raw
)

// BooleanCoding selects the width of a boolean.
type BooleanCoding byte

// Boolean codings.
const (
	Byte BooleanCoding = iota
	Word
	Dword
)

// DateTimeCoding selects the on-wire time representation.
type DateTimeCoding byte

// Time codings.
const (
	// Ticks is a 64-bit number of 100-nanosecond intervals since
	// 0001-01-01T00:00:00Z.
	Ticks DateTimeCoding = iota
	// CTime is a 32-bit unsigned number of seconds since the Unix epoch.
	CTime
	// CTime64 is a 64-bit signed number of seconds since the Unix epoch.
	CTime64
)

// LengthCoding selects the array element count prefix.
type LengthCoding byte

// Array length codings.
const (
	VarintLength LengthCoding = iota
	ByteLength
	Int16Length
	Int32Length
)

var (
	stringCodingNames   = []string{"varint", "byte", "int16", "int32", "zero", "raw"}
	booleanCodingNames  = []string{"byte", "word", "dword"}
	dateTimeCodingNames = []string{"ticks", "ctime", "ctime64"}
	lengthCodingNames   = []string{"varint", "byte", "int16", "int32"}
)

func codingString(names []string, v byte) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("unknown(%d)", v)
}

func parseCoding(kind string, names []string, s string) (byte, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return byte(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s coding %q", ErrInvalidArgument, kind, s)
}

func (c StringCoding) String() string   { return codingString(stringCodingNames, byte(c)) }
func (c BooleanCoding) String() string  { return codingString(booleanCodingNames, byte(c)) }
func (c DateTimeCoding) String() string { return codingString(dateTimeCodingNames, byte(c)) }
func (c LengthCoding) String() string   { return codingString(lengthCodingNames, byte(c)) }

// IsValid checks whether c is a known coding.
func (c StringCoding) IsValid() bool { return int(c) < len(stringCodingNames) }

// IsValid checks whether c is a known coding.
func (c BooleanCoding) IsValid() bool { return int(c) < len(booleanCodingNames) }

// IsValid checks whether c is a known coding.
func (c DateTimeCoding) IsValid() bool { return int(c) < len(dateTimeCodingNames) }

// IsValid checks whether c is a known coding.
func (c LengthCoding) IsValid() bool { return int(c) < len(lengthCodingNames) }

// ParseStringCoding parses the String representation of StringCoding.
func ParseStringCoding(s string) (StringCoding, error) {
	v, err := parseCoding("string", stringCodingNames, s)
	return StringCoding(v), err
}

// ParseBooleanCoding parses the String representation of BooleanCoding.
func ParseBooleanCoding(s string) (BooleanCoding, error) {
	v, err := parseCoding("boolean", booleanCodingNames, s)
	return BooleanCoding(v), err
}

// ParseDateTimeCoding parses the String representation of DateTimeCoding.
func ParseDateTimeCoding(s string) (DateTimeCoding, error) {
	v, err := parseCoding("time", dateTimeCodingNames, s)
	return DateTimeCoding(v), err
}

// ParseLengthCoding parses the String representation of LengthCoding.
func ParseLengthCoding(s string) (LengthCoding, error) {
	v, err := parseCoding("length", lengthCodingNames, s)
	return LengthCoding(v), err
}

// MarshalText implements encoding.TextMarshaler interface.
func (c StringCoding) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (c *StringCoding) UnmarshalText(data []byte) (err error) {
	*c, err = ParseStringCoding(string(data))
	return
}

// MarshalText implements encoding.TextMarshaler interface.
func (c BooleanCoding) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (c *BooleanCoding) UnmarshalText(data []byte) (err error) {
	*c, err = ParseBooleanCoding(string(data))
	return
}

// MarshalText implements encoding.TextMarshaler interface.
func (c DateTimeCoding) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (c *DateTimeCoding) UnmarshalText(data []byte) (err error) {
	*c, err = ParseDateTimeCoding(string(data))
	return
}

// MarshalText implements encoding.TextMarshaler interface.
func (c LengthCoding) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (c *LengthCoding) UnmarshalText(data []byte) (err error) {
	*c, err = ParseLengthCoding(string(data))
	return
}

// countWidth returns the prefix width for a string coding, 0 for codings
// without a fixed-width character count.
func (c StringCoding) countWidth() int {
	switch c {
	case ByteCharCount:
		return 1
	case Int16CharCount:
		return 2
	case Int32CharCount:
		return 4
	}
	return 0
}

// size returns the boolean width in bytes.
func (c BooleanCoding) size() int {
	switch c {
	case Word:
		return 2
	case Dword:
		return 4
	}
	return 1
}
