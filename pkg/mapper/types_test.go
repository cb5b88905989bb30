package mapper

import (
	"context"
	"time"

	"github.com/nspcc-dev/bincodec/pkg/byteorder"
	"github.com/nspcc-dev/bincodec/pkg/enum"
	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/nspcc-dev/bincodec/pkg/layout"
)

type point struct {
	X int16
	Y int16 `bin:"endian=big"`
}

type ordered struct {
	B uint8 `bin:"order=2"`
	C uint8 `bin:"order=2"`
	Z uint8
	A uint8 `bin:"order=-1"`
}

type base struct {
	_  struct{} `bin:",offset=abs:10"`
	ID uint32
}

type derived struct {
	base
	Name string
}

type sealed struct {
	_ struct{} `bin:",noinherit"`
	base
	Flag bool
}

type padded struct {
	_ struct{} `bin:",offset=rel:2"`
	V uint8
}

type level1 struct {
	_ struct{} `bin:",offset=rel:1"`
	A uint8
}

type level2 struct {
	level1
	_ struct{} `bin:",offset=rel:2"`
	B uint8
}

type level3 struct {
	level2
	_ struct{} `bin:",offset=rel:1"`
	C uint8
}

type fixed struct {
	Head  uint8
	Items []uint16 `bin:"len=3"`
	Code  string   `bin:"len=4"`
	Tag   string   `bin:"len=2,str=byte"`
}

type nothing struct {
	_ struct{} `bin:",explicit"`
	A uint32
}

type picky struct {
	_    struct{} `bin:",explicit"`
	Kept uint16   `bin:"order=1"`
	Lost uint16
	Also uint8 `bin:""`
}

type level uint8

type perm uint16

func (perm) EnumFlags() {}

type delta int8

const (
	permRead  perm = 1
	permWrite perm = 2
)

type withEnum struct {
	Level level
	Perm  perm
	Delta delta
	Loose level `bin:"lax"`
}

type blob struct {
	N uint32
}

func (b *blob) EncodeBinary(w *io.BinWriter) { w.WriteVarUint32(b.N) }
func (b *blob) DecodeBinary(r *io.BinReader) { b.N = r.ReadVarUint32() }

type record struct {
	Flag   bool      `bin:"bool=word"`
	When   time.Time `bin:"time=ctime64"`
	Money  byteorder.Decimal
	Ratio  float64
	Small  float32 `bin:"endian=big"`
	Name   string  `bin:"str=zero,enc=utf-16le"`
	Loc    point
	Next   *point
	Tags   []string `bin:"arrlen=byte,str=byte"`
	Data   []byte
	Grid   [2][2]int8
	Blob   blob
	Points []point `bin:"arrlen=int16"`
	Big    uint64
	Neg    int32
}

type inner struct {
	Name string `bin:"len=2"`
}

type outer struct {
	Items []inner
}

type terminated struct {
	S string `bin:"str=zero"`
	T uint8
}

type node struct {
	V    uint8
	Next *node
}

type tree struct {
	V        uint8
	Children []tree `bin:"arrlen=byte"`
}

// trigger cancels the context it's given while being encoded or decoded.
type trigger struct {
	cancel context.CancelFunc
}

func (t *trigger) EncodeBinary(w *io.BinWriter) {
	t.cancel()
	w.WriteB(1)
}

func (t *trigger) DecodeBinary(r *io.BinReader) {
	t.cancel()
	r.ReadB()
}

type stage struct {
	T     trigger
	After uint32
}

var testRegistry = newTestRegistry()

func newTestRegistry() *layout.Registry {
	enums := new(enum.Registry)
	must := func(_ *enum.Info, err error) {
		if err != nil {
			panic(err)
		}
	}
	must(enum.RegisterIn(enums, false,
		enum.Constant[level]{Name: "Low", Value: 1},
		enum.Constant[level]{Name: "High", Value: 2}))
	must(enum.RegisterIn(enums, false,
		enum.Constant[perm]{Name: "Read", Value: permRead},
		enum.Constant[perm]{Name: "Write", Value: permWrite}))
	must(enum.RegisterIn(enums, false,
		enum.Constant[delta]{Name: "Down", Value: -1},
		enum.Constant[delta]{Name: "Up", Value: 1}))
	return layout.NewRegistry(enums, nil)
}

func testOptions() *Options {
	o := DefaultOptions()
	o.Registry = testRegistry
	return o
}
