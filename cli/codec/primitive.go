package codec

import (
	"fmt"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/bincodec/pkg/byteorder"
	"github.com/nspcc-dev/bincodec/pkg/mapper"
	"github.com/urfave/cli"
)

// primitive describes a scalar type the CLI can convert.
type primitive struct {
	typ    reflect.Type
	parse  func(string) (any, error)
	format func(any) string
}

func parseInt[T int8 | int16 | int32 | int64](bits int) func(string) (any, error) {
	return func(s string) (any, error) {
		v, err := strconv.ParseInt(s, 0, bits)
		return T(v), err
	}
}

func parseUint[T uint8 | uint16 | uint32 | uint64](bits int) func(string) (any, error) {
	return func(s string) (any, error) {
		v, err := strconv.ParseUint(s, 0, bits)
		return T(v), err
	}
}

func formatDefault(v any) string {
	return fmt.Sprint(v)
}

var primitives = map[string]primitive{
	"bool":   {reflect.TypeOf(false), func(s string) (any, error) { return strconv.ParseBool(s) }, formatDefault},
	"int8":   {reflect.TypeOf(int8(0)), parseInt[int8](8), formatDefault},
	"int16":  {reflect.TypeOf(int16(0)), parseInt[int16](16), formatDefault},
	"int32":  {reflect.TypeOf(int32(0)), parseInt[int32](32), formatDefault},
	"int64":  {reflect.TypeOf(int64(0)), parseInt[int64](64), formatDefault},
	"uint8":  {reflect.TypeOf(uint8(0)), parseUint[uint8](8), formatDefault},
	"uint16": {reflect.TypeOf(uint16(0)), parseUint[uint16](16), formatDefault},
	"uint32": {reflect.TypeOf(uint32(0)), parseUint[uint32](32), formatDefault},
	"uint64": {reflect.TypeOf(uint64(0)), parseUint[uint64](64), formatDefault},
	"float32": {reflect.TypeOf(float32(0)), func(s string) (any, error) {
		v, err := strconv.ParseFloat(s, 32)
		return float32(v), err
	}, func(v any) string { return strconv.FormatFloat(float64(v.(float32)), 'g', -1, 32) }},
	"float64": {reflect.TypeOf(float64(0)), func(s string) (any, error) {
		return strconv.ParseFloat(s, 64)
	}, func(v any) string { return strconv.FormatFloat(v.(float64), 'g', -1, 64) }},
	"decimal": {reflect.TypeOf(byteorder.Decimal{}), parseDecimal, formatDefault},
	"time": {reflect.TypeOf(time.Time{}), func(s string) (any, error) {
		return time.Parse(time.RFC3339Nano, s)
	}, func(v any) string { return v.(time.Time).Format(time.RFC3339Nano) }},
	"uuid": {reflect.TypeOf(uuid.UUID{}), func(s string) (any, error) {
		return uuid.Parse(s)
	}, formatDefault},
}

func primitiveNames() []string {
	names := make([]string, 0, len(primitives))
	for n := range primitives {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// parseDecimal parses plain decimal fractions like "-12.345".
func parseDecimal(s string) (any, error) {
	intPart, fracPart, _ := strings.Cut(s, ".")
	if len(fracPart) > 255 {
		return nil, fmt.Errorf("too many fraction digits in %q", s)
	}
	n, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal %q", s)
	}
	return byteorder.NewDecimal(n, uint8(len(fracPart)))
}

// holder makes a single-field struct type for p so that the value goes
// through the object mapper.
func (p primitive) holder() reflect.Type {
	return reflect.StructOf([]reflect.StructField{{Name: "Value", Type: p.typ}})
}

func getPrimitive(ctx *cli.Context) (primitive, error) {
	name := ctx.String("type")
	p, ok := primitives[name]
	if !ok {
		return p, cli.NewExitError(fmt.Errorf("unknown type %q, use one of %s", name, strings.Join(primitiveNames(), ", ")), 1)
	}
	return p, nil
}

func primitiveEncode(ctx *cli.Context) error {
	p, err := getPrimitive(ctx)
	if err != nil {
		return err
	}
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	v, err := p.parse(e.arg)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid %s value: %w", ctx.String("type"), err), 1)
	}
	h := reflect.New(p.holder())
	h.Elem().Field(0).Set(reflect.ValueOf(v))
	w := e.writer()
	if err := mapper.Encode(w.BinWriter, h.Interface(), e.opts); err != nil {
		return cli.NewExitError(err, 1)
	}
	return printHex(ctx, w)
}

func primitiveDecode(ctx *cli.Context) error {
	p, err := getPrimitive(ctx)
	if err != nil {
		return err
	}
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	r, err := e.reader()
	if err != nil {
		return err
	}
	h := reflect.New(p.holder())
	if err := mapper.Decode(r, h.Interface(), e.opts); err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, p.format(h.Elem().Field(0).Interface()))
	return nil
}
