/*
Package enum describes enumeration types for the binary codec. Go has no enum
types, so an enumeration is a named sized integer type registered together
with the list of its constants.
*/
package enum

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// Integer is a set of types that can back an enumeration.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// FlagSet is a marker interface, enumerations implementing it are treated as
// bit flag sets: any combination of defined constants' bits is valid.
type FlagSet interface {
	EnumFlags()
}

// ErrUnsupportedType is returned for types that can't back an enumeration
// (platform-dependent int/uint and non-integers).
var ErrUnsupportedType = errors.New("unsupported type")

// Info is an immutable description of an enumeration type.
type Info struct {
	// Type is the enumeration type itself.
	Type reflect.Type
	// Size is the underlying integer width in bytes.
	Size int
	// Signed is true for signed underlying types.
	Signed bool
	// Flags is true for bit flag sets.
	Flags bool

	mask   uint64
	values map[uint64]string
}

var flagSetType = reflect.TypeOf((*FlagSet)(nil)).Elem()

// NewInfo builds Info for the type t with the given defined constants (as
// raw bit patterns) and their names. flags forces flag set semantics, types
// implementing FlagSet get them regardless.
func NewInfo(t reflect.Type, flags bool, values map[uint64]string) (*Info, error) {
	info := &Info{Type: t, values: make(map[uint64]string, len(values))}
	switch t.Kind() {
	case reflect.Int8, reflect.Uint8:
		info.Size = 1
	case reflect.Int16, reflect.Uint16:
		info.Size = 2
	case reflect.Int32, reflect.Uint32:
		info.Size = 4
	case reflect.Int64, reflect.Uint64:
		info.Size = 8
	default:
		return nil, fmt.Errorf("%w: enumeration %s is backed by %s", ErrUnsupportedType, t, t.Kind())
	}
	switch t.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		info.Signed = true
	}
	info.Flags = flags || t.Implements(flagSetType) || reflect.PointerTo(t).Implements(flagSetType)
	for v, name := range values {
		v = info.Truncate(v)
		info.values[v] = name
		info.mask |= v
	}
	return info, nil
}

// Truncate cuts v down to the enumeration width.
func (i *Info) Truncate(v uint64) uint64 {
	if i.Size == 8 {
		return v
	}
	return v & (1<<(uint(i.Size)*8) - 1)
}

// Extend converts raw bits of the enumeration width into a 64-bit pattern,
// sign-extending for signed types.
func (i *Info) Extend(v uint64) uint64 {
	if !i.Signed || i.Size == 8 {
		return v
	}
	shift := 64 - uint(i.Size)*8
	return uint64(int64(v<<shift) >> shift)
}

// IsDefined returns true if v is exactly one of the defined constants.
func (i *Info) IsDefined(v uint64) bool {
	_, ok := i.values[i.Truncate(v)]
	return ok
}

// IsValid returns true if v is a defined constant or, for flag sets, a
// combination of defined constants' bits.
func (i *Info) IsValid(v uint64) bool {
	v = i.Truncate(v)
	if _, ok := i.values[v]; ok {
		return true
	}
	return i.Flags && v&^i.mask == 0
}

// Name returns the constant name for v or its numeric representation.
func (i *Info) Name(v uint64) string {
	v = i.Truncate(v)
	if n, ok := i.values[v]; ok && n != "" {
		return n
	}
	if i.Signed {
		return fmt.Sprintf("%d", int64(i.Extend(v)))
	}
	return fmt.Sprintf("%d", v)
}

// Registry keeps Info per type.
type Registry struct {
	infos sync.Map // map[reflect.Type]*Info
}

// DefaultRegistry is used by package-level Register and Lookup.
var DefaultRegistry = new(Registry)

// Add registers info, replacing any previous registration for its type.
func (r *Registry) Add(info *Info) {
	r.infos.Store(info.Type, info)
}

// Lookup returns Info for t if it's registered.
func (r *Registry) Lookup(t reflect.Type) (*Info, bool) {
	v, ok := r.infos.Load(t)
	if !ok {
		return nil, false
	}
	return v.(*Info), true
}

// Constant is a named enumeration value used for registration.
type Constant[T Integer] struct {
	Name  string
	Value T
}

// RegisterIn registers enumeration T in r with the given constants.
func RegisterIn[T Integer](r *Registry, flags bool, constants ...Constant[T]) (*Info, error) {
	values := make(map[uint64]string, len(constants))
	for _, c := range constants {
		values[uint64(c.Value)] = c.Name
	}
	info, err := NewInfo(reflect.TypeOf((*T)(nil)).Elem(), flags, values)
	if err != nil {
		return nil, err
	}
	r.Add(info)
	return info, nil
}

// Register registers enumeration T in DefaultRegistry.
func Register[T Integer](flags bool, constants ...Constant[T]) (*Info, error) {
	return RegisterIn(DefaultRegistry, flags, constants...)
}

// MustRegister is like Register, but panics on error. It's intended to be
// used in init functions.
func MustRegister[T Integer](flags bool, constants ...Constant[T]) *Info {
	info, err := Register(flags, constants...)
	if err != nil {
		panic(err)
	}
	return info
}

// Lookup returns Info for t from DefaultRegistry.
func Lookup(t reflect.Type) (*Info, bool) {
	return DefaultRegistry.Lookup(t)
}
