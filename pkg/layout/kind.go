package layout

import "fmt"

// Kind is the declared kind of a member which selects the codec used for it.
type Kind byte

// Member kinds.
const (
	Invalid Kind = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Decimal
	String
	Time
	Enum
	Struct
	Pointer
	Array
	Slice
	Custom
)

var kindNames = [...]string{
	Invalid: "invalid",
	Bool:    "bool",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
	Decimal: "decimal",
	String:  "string",
	Time:    "time",
	Enum:    "enum",
	Struct:  "struct",
	Pointer: "pointer",
	Array:   "array",
	Slice:   "slice",
	Custom:  "custom",
}

// String implements fmt.Stringer interface.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// IsScalar returns true for fixed-width numeric kinds.
func (k Kind) IsScalar() bool {
	return k >= Int8 && k <= Decimal
}

// IsSequence returns true for arrays and slices.
func (k Kind) IsSequence() bool {
	return k == Array || k == Slice
}
