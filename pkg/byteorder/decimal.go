package byteorder

import (
	"errors"
	"math/big"
	"strings"
)

// Decimal is a 128-bit decimal floating point number: a 96-bit unsigned
// integer (Hi:Mid:Lo) scaled by a power of ten with a sign, both of which
// live in Flags (bits 16-23 hold the scale, bit 31 holds the sign). Any bit
// pattern is accepted, nothing is normalized.
type Decimal struct {
	Lo    uint32
	Mid   uint32
	Hi    uint32
	Flags uint32
}

const (
	decimalSignMask  = 0x80000000
	decimalScaleMask = 0x00ff0000
	decimalMaxScale  = 28
)

// ErrDecimalRange is returned by NewDecimal for numbers that don't fit into
// 96 bits or have too big a scale.
var ErrDecimalRange = errors.New("decimal out of range")

// NewDecimal builds a Decimal from an unscaled integer and a scale, so that
// the value is unscaled / 10^scale.
func NewDecimal(unscaled *big.Int, scale uint8) (Decimal, error) {
	if scale > decimalMaxScale {
		return Decimal{}, ErrDecimalRange
	}
	abs := new(big.Int).Abs(unscaled)
	if abs.BitLen() > 96 {
		return Decimal{}, ErrDecimalRange
	}
	var (
		mask = big.NewInt(0xffffffff)
		d    Decimal
	)
	d.Lo = uint32(new(big.Int).And(abs, mask).Uint64())
	d.Mid = uint32(new(big.Int).And(new(big.Int).Rsh(abs, 32), mask).Uint64())
	d.Hi = uint32(new(big.Int).Rsh(abs, 64).Uint64())
	d.Flags = uint32(scale) << 16
	if unscaled.Sign() < 0 {
		d.Flags |= decimalSignMask
	}
	return d, nil
}

// Negative returns true if the sign bit is set.
func (d Decimal) Negative() bool { return d.Flags&decimalSignMask != 0 }

// Scale returns the power of ten the mantissa is divided by.
func (d Decimal) Scale() uint8 { return uint8((d.Flags & decimalScaleMask) >> 16) }

// Unscaled returns the signed 96-bit mantissa.
func (d Decimal) Unscaled() *big.Int {
	v := new(big.Int).SetUint64(uint64(d.Hi))
	v.Lsh(v, 32).Or(v, new(big.Int).SetUint64(uint64(d.Mid)))
	v.Lsh(v, 32).Or(v, new(big.Int).SetUint64(uint64(d.Lo)))
	if d.Negative() {
		v.Neg(v)
	}
	return v
}

// String implements fmt.Stringer interface.
func (d Decimal) String() string {
	digits := new(big.Int).SetUint64(uint64(d.Hi))
	digits.Lsh(digits, 32).Or(digits, new(big.Int).SetUint64(uint64(d.Mid)))
	digits.Lsh(digits, 32).Or(digits, new(big.Int).SetUint64(uint64(d.Lo)))
	s := digits.String()
	scale := int(d.Scale())
	if scale > 0 {
		if len(s) <= scale {
			s = strings.Repeat("0", scale-len(s)+1) + s
		}
		s = s[:len(s)-scale] + "." + s[len(s)-scale:]
	}
	if d.Negative() {
		s = "-" + s
	}
	return s
}
