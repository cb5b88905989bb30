package io

// MaxVarUint32Size is the maximum number of bytes a variable-length uint32
// occupies.
const MaxVarUint32Size = 5

// PutVarUint32 puts val in the 7-bit variable-length form to the
// pre-allocated buffer and returns the number of bytes used. Each byte holds
// seven bits of the value, least significant group first, the high bit is
// set when more bytes follow.
func PutVarUint32(data []byte, val uint32) int {
	_ = data[MaxVarUint32Size-1]
	var n int
	for val >= 0x80 {
		data[n] = byte(val) | 0x80
		val >>= 7
		n++
	}
	data[n] = byte(val)
	return n + 1
}

// VarUint32Size returns the number of bytes val occupies in the
// variable-length form.
func VarUint32Size(val uint32) int {
	n := 1
	for val >= 0x80 {
		val >>= 7
		n++
	}
	return n
}
