package mapper

import (
	"fmt"

	"github.com/nspcc-dev/bincodec/pkg/byteorder"
	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/nspcc-dev/bincodec/pkg/layout"
	"github.com/nspcc-dev/bincodec/pkg/text"
	"go.uber.org/zap"
)

// Options are the defaults used for members that don't override them with
// tags. The zero value is usable, but it doesn't validate enumerations,
// DefaultOptions does.
type Options struct {
	// ByteOrder is used for multi-byte scalars, little-endian if nil.
	ByteOrder byteorder.ByteOrder
	// StringCoding is the default string representation.
	StringCoding io.StringCoding
	// Encoding is the default text encoding, UTF-8 if nil.
	Encoding text.Encoding
	// BooleanCoding is the default boolean width.
	BooleanCoding io.BooleanCoding
	// DateTimeCoding is the default time representation.
	DateTimeCoding io.DateTimeCoding
	// LengthCoding is the default array length prefix.
	LengthCoding io.LengthCoding
	// Strict enables enumeration value validation.
	Strict bool
	// Registry is the descriptor registry, layout.DefaultRegistry if nil.
	Registry *layout.Registry
	// Logger is used for debug messages, nothing is logged if nil.
	Logger *zap.Logger
}

// DefaultOptions returns little-endian UTF-8 options with varint-prefixed
// strings and arrays, byte booleans, tick times and strict enumerations.
func DefaultOptions() *Options {
	return &Options{
		ByteOrder:      byteorder.LittleEndian,
		StringCoding:   io.VarintByteCount,
		Encoding:       text.UTF8,
		BooleanCoding:  io.Byte,
		DateTimeCoding: io.Ticks,
		LengthCoding:   io.VarintLength,
		Strict:         true,
	}
}

// Validate checks that all codings are known.
func (o *Options) Validate() error {
	switch {
	case !o.StringCoding.IsValid():
		return fmt.Errorf("%w: string coding %s", io.ErrInvalidArgument, o.StringCoding)
	case !o.BooleanCoding.IsValid():
		return fmt.Errorf("%w: boolean coding %s", io.ErrInvalidArgument, o.BooleanCoding)
	case !o.DateTimeCoding.IsValid():
		return fmt.Errorf("%w: time coding %s", io.ErrInvalidArgument, o.DateTimeCoding)
	case !o.LengthCoding.IsValid():
		return fmt.Errorf("%w: length coding %s", io.ErrInvalidArgument, o.LengthCoding)
	}
	return nil
}

// resolve returns a validated copy of o with nil fields filled in, nil o
// means DefaultOptions.
func (o *Options) resolve() (*Options, error) {
	if o == nil {
		o = DefaultOptions()
	}
	res := *o
	if err := res.Validate(); err != nil {
		return nil, err
	}
	if res.ByteOrder == nil {
		res.ByteOrder = byteorder.LittleEndian
	}
	if res.Encoding == nil {
		res.Encoding = text.UTF8
	}
	if res.Registry == nil {
		res.Registry = layout.DefaultRegistry
	}
	if res.Logger == nil {
		res.Logger = zap.NewNop()
	}
	return &res, nil
}

func (o *Options) strict(m *layout.Member) bool {
	return m.Format.Strict.Or(o.Strict)
}

func (o *Options) encoding(m *layout.Member) text.Encoding {
	if m.Format.Encoding != nil {
		return m.Format.Encoding
	}
	return o.Encoding
}

// stringCoding returns the coding of a string member, fixed-length strings
// without an explicit coding are raw.
func (o *Options) stringCoding(m *layout.Member) io.StringCoding {
	if m.Format.StringCoding.Set {
		return m.Format.StringCoding.Value
	}
	if m.Length.Set {
		return io.Raw
	}
	return o.StringCoding
}
