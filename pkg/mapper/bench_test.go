package mapper

import (
	"testing"

	"github.com/nspcc-dev/bincodec/pkg/io"
)

func BenchmarkEncode(b *testing.B) {
	v := newRecord()
	o := testOptions()
	w := io.NewBufBinWriter()
	w.Grow(256)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Reset()
		if err := Encode(w.BinWriter, &v, o); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	v := newRecord()
	o := testOptions()
	data, err := Marshal(v, o)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var res record
		if err := Unmarshal(data, &res, o); err != nil {
			b.Fatal(err)
		}
	}
}
