package io_test

import (
	"testing"

	"github.com/nspcc-dev/bincodec/internal/testserdes"
	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Key   string
	Value uint32
}

func (e *entry) EncodeBinary(w *io.BinWriter) {
	w.WriteString(e.Key, io.ByteCharCount, nil)
	w.WriteU32(e.Value)
}

func (e *entry) DecodeBinary(r *io.BinReader) {
	e.Key = r.ReadString(io.ByteCharCount, nil)
	e.Value = r.ReadU32()
}

type table struct {
	Entries []*entry
	Spare   []*entry
}

func (t *table) EncodeBinary(w *io.BinWriter) {
	io.WriteArray(w, t.Entries, io.VarintLength)
	io.WriteArray(w, t.Spare, io.Int16Length)
}

func (t *table) DecodeBinary(r *io.BinReader) {
	t.Entries = ptrs(io.ReadArray[entry](r, io.VarintLength))
	t.Spare = ptrs(io.ReadArray[entry](r, io.Int16Length))
}

func ptrs(es []entry) []*entry {
	res := make([]*entry, len(es))
	for i := range es {
		res[i] = &es[i]
	}
	return res
}

func TestSerializableArrays(t *testing.T) {
	tab := &table{
		Entries: []*entry{{"a", 1}, {"ключ", 0xffffffff}},
		Spare:   []*entry{},
	}
	testserdes.EncodeDecodeBinary(t, tab, new(table))

	data, err := testserdes.EncodeBinary(tab)
	require.NoError(t, err)
	require.Equal(t, byte(2), data[0])
	require.Equal(t, []byte{0, 0}, data[len(data)-2:])

	require.ErrorIs(t, testserdes.DecodeBinary(data[:len(data)-1], new(table)), io.ErrOutOfData)
}
