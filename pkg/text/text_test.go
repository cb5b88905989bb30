package text

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for name, expected := range map[string]Encoding{
		"":             UTF8,
		"UTF-8":        UTF8,
		"utf-16":       UTF16LE,
		"utf-16be":     UTF16BE,
		"Windows-1252": Windows1252,
		"latin1":       Latin1,
	} {
		e, err := Lookup(name)
		require.NoError(t, err, name)
		require.Equal(t, expected, e, name)
	}

	e, err := Lookup("windows-1251")
	require.NoError(t, err)
	require.Equal(t, 1, e.MinUnit())
	b, err := e.Encode("Привет")
	require.NoError(t, err)
	require.Len(t, b, 6)
	s, err := e.Decode(b)
	require.NoError(t, err)
	require.Equal(t, "Привет", s)

	_, err = Lookup("shift_jis")
	require.ErrorIs(t, err, ErrUnsupported)
	_, err = Lookup("no-such-encoding")
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestUTF16(t *testing.T) {
	b, err := UTF16LE.Encode("A😀")
	require.NoError(t, err)
	require.Equal(t, []byte{0x41, 0x00, 0x3d, 0xd8, 0x00, 0xde}, b)
	require.Equal(t, 2, UTF16LE.RuneLen(b[0:2]))
	require.Equal(t, 4, UTF16LE.RuneLen(b[2:4]))

	b, err = UTF16BE.Encode("A😀")
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x41, 0xd8, 0x3d, 0xde, 0x00}, b)
	require.Equal(t, 2, UTF16BE.RuneLen(b[0:2]))
	require.Equal(t, 4, UTF16BE.RuneLen(b[2:4]))

	s, err := UTF16BE.Decode(b)
	require.NoError(t, err)
	require.Equal(t, "A😀", s)
}

func TestUTF8RuneLen(t *testing.T) {
	for s, l := range map[string]int{"a": 1, "é": 2, "€": 3, "😀": 4} {
		require.Equal(t, l, UTF8.RuneLen([]byte(s)[:1]), s)
	}
	require.Equal(t, 2, RuneCount("é€"))
}

func TestSingleByteUnrepresentable(t *testing.T) {
	_, err := Latin1.Encode("€")
	require.Error(t, err)
	b, err := Windows1252.Encode("€")
	require.NoError(t, err)
	require.Equal(t, []byte{0x80}, b)
}
