/*
Package mapper serializes Go structs to binary streams and back using the
layout descriptors derived by the layout package. Struct fields are
processed in descriptor order, base struct members first, and every field
goes through the pkg/io codecs. There is no buffering, a failed call leaves
the stream where the last successful primitive operation left it, use
io.SeekScope to roll back if needed.
*/
package mapper

import (
	"context"
	"fmt"
	"reflect"

	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/nspcc-dev/bincodec/pkg/layout"
)

// Encode writes struct v (or a pointer to it) into w.
func Encode(w *io.BinWriter, v any, opts *Options) error {
	return EncodeContext(context.Background(), w, v, opts)
}

// EncodeContext is Encode that stops before the next member once ctx is
// done. Cancellation never splits a primitive value.
func EncodeContext(ctx context.Context, w *io.BinWriter, v any, opts *Options) error {
	if w.Err != nil {
		return w.Err
	}
	o, err := opts.resolve()
	if err != nil {
		return err
	}
	rv, err := structValue(v)
	if err != nil {
		return err
	}
	c, err := o.Registry.Describe(rv.Type())
	if err != nil {
		return err
	}
	defer w.SetOrder(w.SetOrder(o.ByteOrder))
	e := newEncoder(ctx, w, o)
	e.path.push(typeName(c))
	return e.class(c, rv)
}

// Decode reads a struct from r into v which must be a non-nil pointer.
// Nil pointers within are allocated.
func Decode(r *io.BinReader, v any, opts *Options) error {
	return DecodeContext(context.Background(), r, v, opts)
}

// DecodeContext is Decode that stops before the next member once ctx is
// done. Cancellation never splits a primitive value.
func DecodeContext(ctx context.Context, r *io.BinReader, v any, opts *Options) error {
	if r.Err != nil {
		return r.Err
	}
	o, err := opts.resolve()
	if err != nil {
		return err
	}
	rv, err := targetValue(v)
	if err != nil {
		return err
	}
	c, err := o.Registry.Describe(rv.Type())
	if err != nil {
		return err
	}
	defer r.SetOrder(r.SetOrder(o.ByteOrder))
	d := newDecoder(ctx, r, o)
	d.path.push(typeName(c))
	return d.class(c, rv)
}

// Marshal encodes v into a new byte slice.
func Marshal(v any, opts *Options) ([]byte, error) {
	w := io.NewBufBinWriter()
	if err := Encode(w.BinWriter, v, opts); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Unmarshal decodes data into v, trailing bytes are ignored.
func Unmarshal(data []byte, v any, opts *Options) error {
	return Decode(io.NewBinReaderFromBuf(data), v, opts)
}

// EncodeSlice writes a length-prefixed sequence of structs using the
// LengthCoding of opts.
func EncodeSlice[T any](w *io.BinWriter, s []T, opts *Options) error {
	if w.Err != nil {
		return w.Err
	}
	o, err := opts.resolve()
	if err != nil {
		return err
	}
	c, err := o.Registry.Describe(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return err
	}
	defer w.SetOrder(w.SetOrder(o.ByteOrder))
	e := newEncoder(context.Background(), w, o)
	e.path.push("[]" + typeName(c))
	e.w.WriteLength(len(s), o.LengthCoding)
	if e.w.Err != nil {
		return e.fail(e.w.Err)
	}
	for i := range s {
		rv := reflect.ValueOf(&s[i]).Elem()
		for rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return e.fail(fmt.Errorf("%w: nil element %d", io.ErrInvalidArgument, i))
			}
			rv = rv.Elem()
		}
		e.path.push(fmt.Sprintf("[%d]", i))
		err = e.class(c, rv)
		e.path.pop()
		if err != nil {
			return err
		}
	}
	return nil
}

// DecodeSlice reads a length-prefixed sequence of structs written by
// EncodeSlice.
func DecodeSlice[T any](r *io.BinReader, opts *Options) ([]T, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	o, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	c, err := o.Registry.Describe(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	defer r.SetOrder(r.SetOrder(o.ByteOrder))
	d := newDecoder(context.Background(), r, o)
	d.path.push("[]" + typeName(c))
	n := r.ReadLength(o.LengthCoding)
	if r.Err != nil {
		return nil, d.fail(r.Err)
	}
	res := make([]T, n)
	for i := range res {
		rv := reflect.ValueOf(&res[i]).Elem()
		for rv.Kind() == reflect.Pointer {
			rv.Set(reflect.New(rv.Type().Elem()))
			rv = rv.Elem()
		}
		d.path.push(fmt.Sprintf("[%d]", i))
		err = d.class(c, rv)
		d.path.pop()
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// structValue returns an addressable struct value for v.
func structValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return rv, fmt.Errorf("%w: nil value", io.ErrInvalidArgument)
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return rv, fmt.Errorf("%w: nil %s", io.ErrInvalidArgument, rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return rv, fmt.Errorf("%w: %s is not a struct", io.ErrUnsupportedType, rv.Type())
	}
	if !rv.CanAddr() {
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		rv = cp
	}
	return rv, nil
}

// targetValue returns a settable struct value v points to.
func targetValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return rv, fmt.Errorf("%w: decoding needs a non-nil pointer, got %T", io.ErrInvalidArgument, v)
	}
	rv = rv.Elem()
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return rv, fmt.Errorf("%w: %s is not a struct", io.ErrUnsupportedType, rv.Type())
	}
	return rv, nil
}

func typeName(c *layout.Class) string {
	if n := c.Type.Name(); n != "" {
		return n
	}
	return c.Type.String()
}
