package layout

import (
	"reflect"
	"testing"
	"time"

	"github.com/nspcc-dev/bincodec/pkg/byteorder"
	"github.com/nspcc-dev/bincodec/pkg/enum"
	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/nspcc-dev/bincodec/pkg/text"
	"github.com/stretchr/testify/require"
)

type ordered struct {
	B int32 `bin:"order=2"`
	C int32 `bin:"order=2"`
	A int32 `bin:"order=-1"`
	Z int32
}

type animal struct {
	_    struct{} `bin:",offset=abs:4"`
	Legs uint8
	Name string `bin:"str=zero,enc=utf-16le"`
}

type dog struct {
	animal
	Good bool `bin:"bool=dword"`
}

type robotDog struct {
	_ struct{} `bin:",noinherit,offset=rel:2"`
	dog
	Model string
}

type picky struct {
	_       struct{} `bin:",explicit"`
	Tagged  uint16   `bin:""`
	Ignored uint16
	Hidden  int64 `bin:"-"`
}

type nothing struct {
	_ struct{} `bin:",explicit"`
	A int32
	B int32
}

type color uint8

type shapes struct {
	Color    color
	Fixed    [3]int16
	Sized    []float32 `bin:"len=2,endian=big"`
	Prefixed []string  `bin:"arrlen=byte,str=byte"`
	When     time.Time `bin:"time=ctime"`
	Money    byteorder.Decimal
	Next     *shapes
	Children []shapes
	internal int
}

type custom struct{ v uint32 }

func (c *custom) EncodeBinary(w *io.BinWriter) { w.WriteU32(c.v) }
func (c *custom) DecodeBinary(r *io.BinReader) { c.v = r.ReadU32() }

type withCustom struct {
	C custom
}

func newTestRegistry(t *testing.T) *Registry {
	enums := new(enum.Registry)
	_, err := enum.RegisterIn(enums, false, enum.Constant[color]{Name: "Red", Value: 1})
	require.NoError(t, err)
	return NewRegistry(enums, nil)
}

func names(ms []*Member) []string {
	var res []string
	for _, m := range ms {
		res = append(res, m.Name)
	}
	return res
}

func TestOrdering(t *testing.T) {
	c, err := newTestRegistry(t).Describe(reflect.TypeOf(ordered{}))
	require.NoError(t, err)
	require.Equal(t, []string{"A", "Z", "B", "C"}, names(c.Flatten()))
	require.Equal(t, []int{2, 3, 0, 1}, []int{c.Members[0].Index, c.Members[1].Index, c.Members[2].Index, c.Members[3].Index})
}

func TestInheritance(t *testing.T) {
	r := newTestRegistry(t)
	c, err := r.Describe(reflect.TypeOf(&dog{}))
	require.NoError(t, err)
	require.Equal(t, []string{"Legs", "Name", "Good"}, names(c.Flatten()))
	blocks := c.Blocks()
	require.Len(t, blocks, 2)
	require.Equal(t, reflect.TypeOf(animal{}), blocks[0].Class.Type)
	require.Equal(t, []int{0}, blocks[0].Path)
	require.Empty(t, blocks[1].Path)
	require.Equal(t, Offset{Origin: Absolute, Amount: 4}, blocks[0].Class.Offset)

	name := blocks[0].Class.Members[1]
	require.Equal(t, String, name.Kind)
	require.Equal(t, Some(io.ZeroTerminated), name.Format.StringCoding)
	require.Equal(t, text.UTF16LE, name.Format.Encoding)
	require.Equal(t, Some(io.Dword), c.Members[0].Format.BooleanCoding)

	rc, err := r.Describe(reflect.TypeOf(robotDog{}))
	require.NoError(t, err)
	require.False(t, rc.Inherit())
	require.NotNil(t, rc.Base)
	require.Equal(t, []string{"Model"}, names(rc.Flatten()))
	require.Len(t, rc.Blocks(), 1)
	require.Equal(t, Offset{Origin: Relative, Amount: 2}, rc.Offset)

	again, err := r.Describe(reflect.TypeOf(dog{}))
	require.NoError(t, err)
	require.Same(t, c, again)
	require.Same(t, c, rc.Base)
}

func TestExplicit(t *testing.T) {
	r := newTestRegistry(t)
	c, err := r.Describe(reflect.TypeOf(picky{}))
	require.NoError(t, err)
	require.Equal(t, []string{"Tagged"}, names(c.Flatten()))

	c, err = r.Describe(reflect.TypeOf(nothing{}))
	require.NoError(t, err)
	require.Empty(t, c.Flatten())
}

func TestKinds(t *testing.T) {
	c, err := newTestRegistry(t).Describe(reflect.TypeOf(shapes{}))
	require.NoError(t, err)
	ms := c.Flatten()
	require.Equal(t, []string{"Color", "Fixed", "Sized", "Prefixed", "When", "Money", "Next", "Children"}, names(ms))

	require.Equal(t, Enum, ms[0].Kind)
	require.NotNil(t, ms[0].Enum)

	require.Equal(t, Array, ms[1].Kind)
	require.Equal(t, Some(3), ms[1].Length)
	require.Equal(t, Int16, ms[1].Elem.Kind)

	require.Equal(t, Slice, ms[2].Kind)
	require.Equal(t, Some(2), ms[2].Length)
	require.Equal(t, byteorder.BigEndian, ms[2].Elem.Format.ByteOrder)

	require.Equal(t, Some(io.ByteLength), ms[3].Format.LengthCoding)
	require.Equal(t, Some(io.ByteCharCount), ms[3].Elem.Format.StringCoding)
	require.False(t, ms[3].Length.Set)

	require.Equal(t, Time, ms[4].Kind)
	require.Equal(t, Decimal, ms[5].Kind)

	require.Equal(t, Pointer, ms[6].Kind)
	require.Same(t, c, ms[6].Elem.Class)
	require.Same(t, c, ms[7].Elem.Class)

	cc, err := newTestRegistry(t).Describe(reflect.TypeOf(withCustom{}))
	require.NoError(t, err)
	require.Equal(t, Custom, cc.Members[0].Kind)
}

func TestDescribeErrors(t *testing.T) {
	r := newTestRegistry(t)
	for _, tc := range []struct {
		v   any
		err error
	}{
		{0, io.ErrUnsupportedType},
		{struct{ A int }{}, io.ErrUnsupportedType},
		{struct{ A map[string]int32 }{}, io.ErrUnsupportedType},
		{struct{ A *int32 }{}, io.ErrUnsupportedType},
		{struct {
			A [2]int32 `bin:"len=3"`
		}{}, io.ErrLayoutMismatch},
		{struct {
			A int32 `bin:"len=3"`
		}{}, io.ErrInvalidArgument},
		{struct {
			A int32 `bin:"order=x"`
		}{}, io.ErrInvalidArgument},
		{struct {
			A string `bin:"str=utf7"`
		}{}, io.ErrInvalidArgument},
		{struct {
			_ struct{} `bin:",offset=abs:-1"`
		}{}, io.ErrInvalidArgument},
		{struct {
			_ struct{} `bin:",bogus"`
		}{}, io.ErrInvalidArgument},
		{struct {
			a int32 `bin:""`
		}{}, io.ErrUnsupportedType},
	} {
		_, err := r.Describe(reflect.TypeOf(tc.v))
		require.ErrorIs(t, err, tc.err, "%T", tc.v)
	}
}

type registered struct {
	A uint8
	B uint8 `bin:"order=-1"`
}

func TestRegisterClass(t *testing.T) {
	r := newTestRegistry(t)
	typ := reflect.TypeOf(registered{})
	require.NoError(t, r.RegisterClass(typ, ClassOptions{Offset: Offset{Origin: Relative, Amount: 8}}))
	c, err := r.Describe(typ)
	require.NoError(t, err)
	require.Equal(t, Offset{Origin: Relative, Amount: 8}, c.Offset)
	require.Equal(t, []string{"B", "A"}, names(c.Flatten()))

	require.ErrorIs(t, r.RegisterClass(typ, ClassOptions{}), io.ErrInvalidArgument)
	require.ErrorIs(t, r.RegisterClass(reflect.TypeOf(0), ClassOptions{}), io.ErrInvalidArgument)
}

func TestParseOffset(t *testing.T) {
	o, err := ParseOffset("16")
	require.NoError(t, err)
	require.Equal(t, Offset{Origin: Absolute, Amount: 16}, o)
	o, err = ParseOffset("rel:-2")
	require.NoError(t, err)
	require.Equal(t, "rel:-2", o.String())
	_, err = ParseOffset("far:2")
	require.Error(t, err)
	require.Equal(t, "none", Offset{}.String())
}

func TestKindString(t *testing.T) {
	require.Equal(t, "decimal", Decimal.String())
	require.Equal(t, "Kind(200)", Kind(200).String())
	require.True(t, Float64.IsScalar())
	require.False(t, String.IsScalar())
	require.True(t, Slice.IsSequence())
}
