package enum

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type color int8

type access uint16

func (access) EnumFlags() {}

type wide int

func TestInfoPlain(t *testing.T) {
	r := new(Registry)
	info, err := RegisterIn(r, false,
		Constant[color]{"Red", -1},
		Constant[color]{"Green", 0},
		Constant[color]{"Blue", 5},
	)
	require.NoError(t, err)
	require.Equal(t, 1, info.Size)
	require.True(t, info.Signed)
	require.False(t, info.Flags)

	require.True(t, info.IsValid(0xff))
	require.True(t, info.IsValid(0xffffffffffffffff))
	require.True(t, info.IsDefined(5))
	require.False(t, info.IsValid(4))
	require.Equal(t, "Red", info.Name(0xff))
	require.Equal(t, "-2", info.Name(0xfe))
	require.Equal(t, uint64(0xffffffffffffffff), info.Extend(0xff))

	got, ok := r.Lookup(reflect.TypeOf(color(0)))
	require.True(t, ok)
	require.Same(t, info, got)
	_, ok = r.Lookup(reflect.TypeOf(access(0)))
	require.False(t, ok)
}

func TestInfoFlagsMarker(t *testing.T) {
	info, err := RegisterIn(new(Registry), false,
		Constant[access]{"Read", 1},
		Constant[access]{"Write", 2},
		Constant[access]{"Exec", 8},
	)
	require.NoError(t, err)
	require.True(t, info.Flags)
	require.False(t, info.Signed)
	require.Equal(t, 2, info.Size)

	require.True(t, info.IsValid(0))
	require.True(t, info.IsValid(1|2|8))
	require.False(t, info.IsDefined(3))
	require.False(t, info.IsValid(4))
	require.False(t, info.IsValid(0x10))
	require.Equal(t, "11", info.Name(11))
}

func TestInfoUnsupported(t *testing.T) {
	_, err := RegisterIn(new(Registry), false, Constant[int8]{"A", 1})
	require.NoError(t, err)

	_, err = NewInfo(reflect.TypeOf(wide(0)), false, nil)
	require.ErrorIs(t, err, ErrUnsupportedType)
	_, err = NewInfo(reflect.TypeOf(""), false, nil)
	require.ErrorIs(t, err, ErrUnsupportedType)
}
