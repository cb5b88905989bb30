/*
Package text provides character encodings for binary strings. It wraps
golang.org/x/text encoders and adds the information a binary codec needs on
top of them: the minimal code unit width and the number of bytes a code point
occupies given its first unit.
*/
package text

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Encoding converts between strings and their binary representation.
type Encoding interface {
	// Name returns canonical encoding name.
	Name() string
	// MinUnit returns the size of the minimal code unit in bytes.
	MinUnit() int
	// RuneLen returns the number of bytes the code point starting with the
	// given minimal unit occupies. first must be MinUnit() bytes long.
	RuneLen(first []byte) int
	// Encode converts s into bytes.
	Encode(s string) ([]byte, error)
	// Decode converts b into a string.
	Decode(b []byte) (string, error)
}

// ErrUnsupported is returned by Lookup for unknown or unsupported encodings.
var ErrUnsupported = errors.New("unsupported text encoding")

type xencoding struct {
	name    string
	enc     encoding.Encoding
	unit    int
	runeLen func([]byte) int
}

var (
	// UTF8 is UTF-8, the default.
	UTF8 Encoding = &xencoding{name: "utf-8", enc: unicode.UTF8, unit: 1, runeLen: utf8RuneLen}
	// UTF16LE is little-endian UTF-16 without BOM.
	UTF16LE Encoding = &xencoding{
		name:    "utf-16le",
		enc:     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
		unit:    2,
		runeLen: func(b []byte) int { return utf16RuneLen(uint16(b[0]) | uint16(b[1])<<8) },
	}
	// UTF16BE is big-endian UTF-16 without BOM.
	UTF16BE Encoding = &xencoding{
		name:    "utf-16be",
		enc:     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
		unit:    2,
		runeLen: func(b []byte) int { return utf16RuneLen(uint16(b[0])<<8 | uint16(b[1])) },
	}
	// Windows1252 is the Western European ANSI code page.
	Windows1252 = SingleByte("windows-1252", charmap.Windows1252)
	// Latin1 is ISO 8859-1.
	Latin1 = SingleByte("iso-8859-1", charmap.ISO8859_1)
)

var builtin = map[string]Encoding{
	"utf-8":        UTF8,
	"utf8":         UTF8,
	"utf-16":       UTF16LE,
	"utf-16le":     UTF16LE,
	"unicode":      UTF16LE,
	"utf-16be":     UTF16BE,
	"windows-1252": Windows1252,
	"cp1252":       Windows1252,
	"iso-8859-1":   Latin1,
	"latin1":       Latin1,
}

// SingleByte makes an Encoding out of a single-byte character map.
func SingleByte(name string, cm *charmap.Charmap) Encoding {
	return &xencoding{name: name, enc: cm, unit: 1, runeLen: func([]byte) int { return 1 }}
}

// Lookup returns an encoding by its name. Besides the built-in ones it
// accepts any IANA-registered single-byte character set.
func Lookup(name string) (Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return UTF8, nil
	}
	if e, ok := builtin[key]; ok {
		return e, nil
	}
	e, err := ianaindex.IANA.Encoding(key)
	if err != nil || e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
	cm, ok := e.(*charmap.Charmap)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a single-byte encoding", ErrUnsupported, name)
	}
	canonical, err := ianaindex.IANA.Name(e)
	if err != nil {
		canonical = key
	}
	return SingleByte(strings.ToLower(canonical), cm), nil
}

func (e *xencoding) Name() string             { return e.name }
func (e *xencoding) MinUnit() int             { return e.unit }
func (e *xencoding) RuneLen(first []byte) int { return e.runeLen(first) }
func (e *xencoding) String() string           { return e.name }

func (e *xencoding) Decode(b []byte) (string, error) {
	res, err := e.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%s: %w", e.name, err)
	}
	return string(res), nil
}

func (e *xencoding) Encode(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%s: invalid UTF-8 input", e.name)
	}
	res, err := e.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.name, err)
	}
	return res, nil
}

func utf8RuneLen(b []byte) int {
	switch c := b[0]; {
	case c < 0xc0:
		return 1
	case c < 0xe0:
		return 2
	case c < 0xf0:
		return 3
	case c < 0xf8:
		return 4
	default:
		return 1
	}
}

func utf16RuneLen(u uint16) int {
	if u >= 0xd800 && u < 0xdc00 {
		return 4
	}
	return 2
}

// RuneCount returns the number of characters in s as counted by the codec.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}
