/*
Package layout derives binary layout descriptors from Go types. A Class
describes how the fields of a struct type map onto bytes, a Member describes
a single field. Descriptors are derived once per type, they're immutable and
shared afterwards.

Member options are set with the `bin` struct tag:

	order=N        signed ordering index, ties keep declaration order
	len=N          fixed array or string length
	str=CODING     string coding (varint, byte, int16, int32, zero, raw)
	enc=NAME       text encoding name (utf-8, utf-16le, windows-1252, ...)
	endian=ORDER   byte order override (little, big, native)
	bool=CODING    boolean coding (byte, word, dword)
	time=CODING    time coding (ticks, ctime, ctime64)
	arrlen=CODING  array length prefix coding (varint, byte, int16, int32)
	strict, lax    enumeration validation override

A tag of "-" excludes the field. Class options are set on a blank field:

	_ struct{} `bin:",explicit,noinherit,offset=abs:16"`

where explicit makes only tagged fields serializable, noinherit drops the
members of the embedded base struct and offset seeks the stream to an
absolute (abs) or relative (rel) position before the class members. The
first embedded struct field of a type is its base.
*/
package layout

import (
	"fmt"
	"reflect"

	"github.com/nspcc-dev/bincodec/pkg/byteorder"
	"github.com/nspcc-dev/bincodec/pkg/enum"
	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/nspcc-dev/bincodec/pkg/text"
)

// Opt is an optional setting, unset values fall back to caller defaults.
type Opt[T any] struct {
	Value T
	Set   bool
}

// Some makes a set Opt.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Set: true}
}

// Or returns the value if it's set and def otherwise.
func (o Opt[T]) Or(def T) T {
	if o.Set {
		return o.Value
	}
	return def
}

// Format holds per-member encoding overrides.
type Format struct {
	ByteOrder      byteorder.ByteOrder
	Encoding       text.Encoding
	StringCoding   Opt[io.StringCoding]
	BooleanCoding  Opt[io.BooleanCoding]
	DateTimeCoding Opt[io.DateTimeCoding]
	LengthCoding   Opt[io.LengthCoding]
	Strict         Opt[bool]
}

// Member describes a single serializable field (or a sequence element).
type Member struct {
	// Name is the field name, elements are named after their sequence.
	Name string
	// Index is the field index within its struct, -1 for elements.
	Index int
	// Type is the Go type of the member.
	Type reflect.Type
	// Kind is the codec selector.
	Kind Kind
	// Order is the ordering index.
	Order int
	// Length is the fixed length of an array or a string.
	Length Opt[int]
	// Format holds encoding overrides.
	Format Format

	// Elem describes sequence elements and pointer targets.
	Elem *Member
	// Class describes nested structs.
	Class *Class
	// Enum describes enumerations.
	Enum *enum.Info
}

// OffsetOrigin is the reference point of an offset directive.
type OffsetOrigin byte

// Offset origins.
const (
	NoOffset OffsetOrigin = iota
	// Absolute offsets are counted from the start of the stream.
	Absolute
	// Relative offsets are counted from the current position.
	Relative
)

// Offset is a stream position adjustment applied before the class members.
type Offset struct {
	Origin OffsetOrigin
	Amount int64
}

// String implements fmt.Stringer interface.
func (o Offset) String() string {
	switch o.Origin {
	case Absolute:
		return fmt.Sprintf("abs:%d", o.Amount)
	case Relative:
		return fmt.Sprintf("rel:%d", o.Amount)
	}
	return "none"
}

// ClassOptions are class-level settings.
type ClassOptions struct {
	// Explicit makes only tagged fields serializable.
	Explicit bool
	// NoInherit excludes the members of the base struct.
	NoInherit bool
	// Offset is applied before the class member block.
	Offset Offset
}

// Class describes a struct type.
type Class struct {
	// Type is the struct type.
	Type reflect.Type
	ClassOptions
	// Members is the list of own members in serialization order.
	Members []*Member
	// Base is the embedded base struct, it's set even if it's not inherited.
	Base *Class
	// BaseIndex is the field index of the embedded base, -1 if there is none.
	BaseIndex int

	blocks []Block
}

// Inherit returns true if the base class members are serialized.
func (c *Class) Inherit() bool {
	return !c.NoInherit
}

// Block is a contiguous group of members belonging to a single class in the
// flattened inheritance chain.
type Block struct {
	// Class is the class the members belong to.
	Class *Class
	// Path leads from the outermost value to the embedded struct value the
	// block belongs to.
	Path []int
}

// Blocks returns the flattened member blocks, base classes first. The walk
// stops at the first class that doesn't inherit.
func (c *Class) Blocks() []Block {
	return c.blocks
}

// Flatten returns all members in serialization order.
func (c *Class) Flatten() []*Member {
	var res []*Member
	for _, b := range c.blocks {
		res = append(res, b.Class.Members...)
	}
	return res
}

func (c *Class) computeBlocks() {
	var (
		chain []*Class
		paths [][]int
		path  []int
	)
	for cur := c; cur != nil; cur = cur.Base {
		chain = append(chain, cur)
		paths = append(paths, append([]int(nil), path...))
		if !cur.Inherit() || cur.Base == nil {
			break
		}
		path = append(path, cur.BaseIndex)
	}
	c.blocks = make([]Block, len(chain))
	for i := range chain {
		j := len(chain) - 1 - i
		c.blocks[i] = Block{Class: chain[j], Path: paths[j]}
	}
}
