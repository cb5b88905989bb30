package mapper

import (
	"context"
	"fmt"
	stdio "io"
	"reflect"
	"time"

	"github.com/nspcc-dev/bincodec/pkg/byteorder"
	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/nspcc-dev/bincodec/pkg/layout"
	"github.com/nspcc-dev/bincodec/pkg/text"
	"go.uber.org/zap"
)

type encoder struct {
	ctx  context.Context
	w    *io.BinWriter
	opts *Options
	log  *zap.Logger
	path path
}

func newEncoder(ctx context.Context, w *io.BinWriter, opts *Options) *encoder {
	return &encoder{ctx: ctx, w: w, opts: opts, log: opts.Logger}
}

// fail makes err sticky and annotates it with the current path.
func (e *encoder) fail(err error) error {
	e.w.SetError(err)
	return &PathError{Path: e.path.String(), Err: err}
}

func (e *encoder) class(c *layout.Class, v reflect.Value) error {
	for _, b := range c.Blocks() {
		if err := e.offset(b.Class); err != nil {
			return err
		}
		bv := v.FieldByIndex(b.Path)
		for _, m := range b.Class.Members {
			e.path.push("." + m.Name)
			err := e.member(m, bv.Field(m.Index))
			e.path.pop()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) offset(c *layout.Class) error {
	off := c.Offset
	switch off.Origin {
	case layout.Absolute:
		e.w.Seek(off.Amount, stdio.SeekStart)
	case layout.Relative:
		if e.w.Seekable() {
			e.w.Seek(off.Amount, stdio.SeekCurrent)
		} else if off.Amount >= 0 {
			e.w.WriteZeroes(int(off.Amount))
		} else {
			e.w.SetError(fmt.Errorf("%w: negative relative offset", io.ErrNotSeekable))
		}
	default:
		return nil
	}
	if e.w.Err != nil {
		return e.fail(fmt.Errorf("offset %s: %w", off, e.w.Err))
	}
	e.log.Debug("offset applied", zap.Stringer("class", c.Type), zap.Stringer("offset", off))
	return nil
}

func (e *encoder) member(m *layout.Member, v reflect.Value) error {
	if err := e.ctx.Err(); err != nil {
		return e.fail(err)
	}
	if m.Format.ByteOrder != nil {
		defer e.w.SetOrder(e.w.SetOrder(m.Format.ByteOrder))
	}
	w := e.w
	switch m.Kind {
	case layout.Bool:
		w.WriteBool(v.Bool(), m.Format.BooleanCoding.Or(e.opts.BooleanCoding))
	case layout.Int8:
		w.WriteI8(int8(v.Int()))
	case layout.Int16:
		w.WriteI16(int16(v.Int()))
	case layout.Int32:
		w.WriteI32(int32(v.Int()))
	case layout.Int64:
		w.WriteI64(v.Int())
	case layout.Uint8:
		w.WriteB(uint8(v.Uint()))
	case layout.Uint16:
		w.WriteU16(uint16(v.Uint()))
	case layout.Uint32:
		w.WriteU32(uint32(v.Uint()))
	case layout.Uint64:
		w.WriteU64(v.Uint())
	case layout.Float32:
		w.WriteF32(float32(v.Float()))
	case layout.Float64:
		w.WriteF64(v.Float())
	case layout.Decimal:
		w.WriteDecimal(v.Interface().(byteorder.Decimal))
	case layout.Time:
		w.WriteTime(v.Interface().(time.Time), m.Format.DateTimeCoding.Or(e.opts.DateTimeCoding))
	case layout.String:
		s := v.String()
		if m.Length.Set {
			if n := text.RuneCount(s); n != m.Length.Value {
				return e.fail(fmt.Errorf("%w: %d characters, %d expected", io.ErrLayoutMismatch, n, m.Length.Value))
			}
		}
		w.WriteString(s, e.opts.stringCoding(m), e.opts.encoding(m))
	case layout.Enum:
		var bits uint64
		if m.Enum.Signed {
			bits = uint64(v.Int())
		} else {
			bits = v.Uint()
		}
		w.WriteEnum(m.Enum, bits, e.opts.strict(m))
	case layout.Custom:
		v.Addr().Interface().(io.Serializable).EncodeBinary(w)
	case layout.Struct:
		return e.class(m.Class, v)
	case layout.Pointer:
		if v.IsNil() {
			return e.fail(fmt.Errorf("%w: nil %s", io.ErrInvalidArgument, v.Type()))
		}
		return e.member(m.Elem, v.Elem())
	case layout.Array, layout.Slice:
		return e.sequence(m, v)
	default:
		return e.fail(fmt.Errorf("%w: %s", io.ErrUnsupportedType, m.Type))
	}
	if w.Err != nil {
		return e.fail(w.Err)
	}
	return nil
}

func (e *encoder) sequence(m *layout.Member, v reflect.Value) error {
	n := v.Len()
	if m.Length.Set {
		if n != m.Length.Value {
			return e.fail(fmt.Errorf("%w: %d elements, %d expected", io.ErrLayoutMismatch, n, m.Length.Value))
		}
	} else {
		e.w.WriteLength(n, m.Format.LengthCoding.Or(e.opts.LengthCoding))
		if e.w.Err != nil {
			return e.fail(e.w.Err)
		}
	}
	if m.Kind == layout.Slice && m.Elem.Kind == layout.Uint8 {
		if err := e.ctx.Err(); err != nil {
			return e.fail(err)
		}
		e.w.WriteBytes(v.Bytes())
		if e.w.Err != nil {
			return e.fail(e.w.Err)
		}
		return nil
	}
	for i := 0; i < n; i++ {
		e.path.push(fmt.Sprintf("[%d]", i))
		err := e.member(m.Elem, v.Index(i))
		e.path.pop()
		if err != nil {
			return err
		}
	}
	return nil
}
