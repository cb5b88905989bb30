package mapper

import (
	"context"
	"fmt"
	stdio "io"
	"reflect"

	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/nspcc-dev/bincodec/pkg/layout"
	"github.com/nspcc-dev/bincodec/pkg/text"
	"go.uber.org/zap"
)

type decoder struct {
	ctx  context.Context
	r    *io.BinReader
	opts *Options
	log  *zap.Logger
	path path
}

func newDecoder(ctx context.Context, r *io.BinReader, opts *Options) *decoder {
	return &decoder{ctx: ctx, r: r, opts: opts, log: opts.Logger}
}

// fail makes err sticky and annotates it with the current path.
func (d *decoder) fail(err error) error {
	d.r.SetError(err)
	return &PathError{Path: d.path.String(), Err: err}
}

func (d *decoder) class(c *layout.Class, v reflect.Value) error {
	for _, b := range c.Blocks() {
		if err := d.offset(b.Class); err != nil {
			return err
		}
		bv := v.FieldByIndex(b.Path)
		for _, m := range b.Class.Members {
			d.path.push("." + m.Name)
			err := d.member(m, bv.Field(m.Index))
			d.path.pop()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *decoder) offset(c *layout.Class) error {
	off := c.Offset
	switch off.Origin {
	case layout.Absolute:
		d.r.Seek(off.Amount, stdio.SeekStart)
	case layout.Relative:
		d.r.Skip(off.Amount)
	default:
		return nil
	}
	if d.r.Err != nil {
		return d.fail(fmt.Errorf("offset %s: %w", off, d.r.Err))
	}
	d.log.Debug("offset applied", zap.Stringer("class", c.Type), zap.Stringer("offset", off))
	return nil
}

func (d *decoder) member(m *layout.Member, v reflect.Value) error {
	if err := d.ctx.Err(); err != nil {
		return d.fail(err)
	}
	if m.Format.ByteOrder != nil {
		defer d.r.SetOrder(d.r.SetOrder(m.Format.ByteOrder))
	}
	r := d.r
	switch m.Kind {
	case layout.Bool:
		v.SetBool(r.ReadBool(m.Format.BooleanCoding.Or(d.opts.BooleanCoding)))
	case layout.Int8:
		v.SetInt(int64(r.ReadI8()))
	case layout.Int16:
		v.SetInt(int64(r.ReadI16()))
	case layout.Int32:
		v.SetInt(int64(r.ReadI32()))
	case layout.Int64:
		v.SetInt(r.ReadI64())
	case layout.Uint8:
		v.SetUint(uint64(r.ReadB()))
	case layout.Uint16:
		v.SetUint(uint64(r.ReadU16()))
	case layout.Uint32:
		v.SetUint(uint64(r.ReadU32()))
	case layout.Uint64:
		v.SetUint(r.ReadU64())
	case layout.Float32:
		v.SetFloat(float64(r.ReadF32()))
	case layout.Float64:
		v.SetFloat(r.ReadF64())
	case layout.Decimal:
		dec := r.ReadDecimal()
		if r.Err == nil {
			v.Set(reflect.ValueOf(dec))
		}
	case layout.Time:
		t := r.ReadTime(m.Format.DateTimeCoding.Or(d.opts.DateTimeCoding))
		if r.Err == nil {
			v.Set(reflect.ValueOf(t))
		}
	case layout.String:
		s, err := d.str(m)
		if err != nil {
			return err
		}
		v.SetString(s)
	case layout.Enum:
		bits := r.ReadEnum(m.Enum, d.opts.strict(m))
		if m.Enum.Signed {
			v.SetInt(int64(bits))
		} else {
			v.SetUint(bits)
		}
	case layout.Custom:
		v.Addr().Interface().(io.Serializable).DecodeBinary(r)
	case layout.Struct:
		return d.class(m.Class, v)
	case layout.Pointer:
		if v.IsNil() {
			v.Set(reflect.New(m.Elem.Type))
		}
		return d.member(m.Elem, v.Elem())
	case layout.Array, layout.Slice:
		return d.sequence(m, v)
	default:
		return d.fail(fmt.Errorf("%w: %s", io.ErrUnsupportedType, m.Type))
	}
	if r.Err != nil {
		return d.fail(r.Err)
	}
	return nil
}

// str reads a string member. Fixed-length members consume exactly the
// declared number of characters, a prefix that disagrees with it is a
// layout mismatch.
func (d *decoder) str(m *layout.Member) (string, error) {
	var (
		r      = d.r
		coding = d.opts.stringCoding(m)
		enc    = d.opts.encoding(m)
	)
	if !m.Length.Set {
		s := r.ReadString(coding, enc)
		if r.Err != nil {
			return "", d.fail(r.Err)
		}
		return s, nil
	}
	want := m.Length.Value
	var s string
	switch coding {
	case io.Raw:
		s = r.ReadFixedString(want, enc)
	case io.ByteCharCount, io.Int16CharCount, io.Int32CharCount:
		n := r.ReadLength(charCountLength(coding))
		if r.Err == nil && n != want {
			return "", d.fail(fmt.Errorf("%w: %d characters, %d expected", io.ErrLayoutMismatch, n, want))
		}
		s = r.ReadFixedString(want, enc)
	default:
		s = r.ReadString(coding, enc)
		if r.Err == nil {
			if n := text.RuneCount(s); n != want {
				return "", d.fail(fmt.Errorf("%w: %d characters, %d expected", io.ErrLayoutMismatch, n, want))
			}
		}
	}
	if r.Err != nil {
		return "", d.fail(r.Err)
	}
	return s, nil
}

// charCountLength returns the length coding with the same prefix as the
// given character count string coding.
func charCountLength(c io.StringCoding) io.LengthCoding {
	switch c {
	case io.ByteCharCount:
		return io.ByteLength
	case io.Int16CharCount:
		return io.Int16Length
	}
	return io.Int32Length
}

func (d *decoder) sequence(m *layout.Member, v reflect.Value) error {
	var n int
	if m.Length.Set {
		n = m.Length.Value
	} else {
		n = d.r.ReadLength(m.Format.LengthCoding.Or(d.opts.LengthCoding))
		if d.r.Err != nil {
			return d.fail(d.r.Err)
		}
	}
	if m.Kind == layout.Slice {
		v.Set(reflect.MakeSlice(v.Type(), n, n))
		if m.Elem.Kind == layout.Uint8 {
			if err := d.ctx.Err(); err != nil {
				return d.fail(err)
			}
			d.r.ReadBytes(v.Bytes())
			if d.r.Err != nil {
				return d.fail(d.r.Err)
			}
			return nil
		}
	}
	for i := 0; i < n; i++ {
		d.path.push(fmt.Sprintf("[%d]", i))
		err := d.member(m.Elem, v.Index(i))
		d.path.pop()
		if err != nil {
			return err
		}
	}
	return nil
}
