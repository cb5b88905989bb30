package io

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeekScopeNested(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteZeroes(10)
	require.EqualValues(t, 10, bw.Pos())

	outer := bw.TemporarySeek(2, io.SeekStart)
	bw.WriteB(1)
	inner := bw.TemporarySeek(5, io.SeekStart)
	bw.WriteB(2)
	require.NoError(t, inner.Close())
	require.EqualValues(t, 3, bw.Pos())
	require.NoError(t, outer.Close())
	require.EqualValues(t, 10, bw.Pos())
	require.NoError(t, outer.Close())

	require.Equal(t, []byte{0, 0, 1, 0, 0, 2, 0, 0, 0, 0}, bw.Bytes())
}

func TestSeekScopeRestoresOnFailure(t *testing.T) {
	br := NewBinReaderFromBuf([]byte{1, 2, 3})
	br.ReadB()
	scope := br.TemporarySeek(2, io.SeekStart)
	br.ReadU32()
	require.ErrorIs(t, br.Err, ErrOutOfData)
	require.NoError(t, scope.Close())
	require.EqualValues(t, 1, scope.Saved())

	br.Err = nil
	require.EqualValues(t, 1, br.Pos())
}

func TestSeekNotSeekable(t *testing.T) {
	bw := NewBinWriterFromIO(new(bytes.Buffer))
	require.Nil(t, bw.TemporarySeek(0, io.SeekStart))
	require.ErrorIs(t, bw.Err, ErrNotSeekable)

	br := NewBinReaderFromIO(bytes.NewBufferString("abc"))
	br.Skip(2)
	require.NoError(t, br.Err)
	require.Equal(t, byte('c'), br.ReadB())
	br.Pos()
	require.ErrorIs(t, br.Err, ErrNotSeekable)
}

func TestReservation(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteB(0xee)
	res := bw.Reserve()
	require.EqualValues(t, 1, res.Pos())
	require.EqualValues(t, 5, bw.Pos())
	bw.WriteBytes([]byte{1, 2, 3})

	before := bw.Pos()
	require.NoError(t, res.Satisfy())
	require.Equal(t, before, bw.Pos())
	require.True(t, res.Satisfied())
	require.ErrorIs(t, res.Satisfy(), ErrReservationSatisfied)
	require.NoError(t, res.Close())

	explicit := bw.Reserve()
	require.NoError(t, explicit.SatisfyWith(0xdeadbeef))

	forgotten := bw.Reserve()
	require.ErrorIs(t, forgotten.Close(), ErrReservationUnsatisfied)

	require.Equal(t, []byte{
		0xee,
		8, 0, 0, 0,
		1, 2, 3,
		0xef, 0xbe, 0xad, 0xde,
		0, 0, 0, 0,
	}, bw.Bytes())
}

func TestAlign(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteB(1)
	bw.Align(4)
	bw.Align(4)
	bw.WriteB(2)
	buf := bw.Bytes()
	require.Equal(t, []byte{1, 0, 0, 0, 2}, buf)

	br := NewBinReaderFromBuf(buf)
	br.ReadB()
	br.Align(4)
	require.Equal(t, byte(2), br.ReadB())

	br.Align(0)
	require.ErrorIs(t, br.Err, ErrInvalidArgument)
}

func TestBuffer(t *testing.T) {
	b := NewBuffer(nil)
	_, err := b.Write([]byte{1, 2})
	require.NoError(t, err)
	_, err = b.Seek(4, io.SeekCurrent)
	require.NoError(t, err)
	_, err = b.Write([]byte{3})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 0, 0, 0, 0, 3}, b.Bytes())

	pos, err := b.Seek(-2, io.SeekEnd)
	require.NoError(t, err)
	require.EqualValues(t, 5, pos)
	buf := make([]byte, 4)
	n, err := b.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	_, err = b.Read(buf)
	require.ErrorIs(t, err, io.EOF)

	_, err = b.Seek(-1, io.SeekStart)
	require.Error(t, err)

	b.Reset()
	require.Zero(t, b.Len())
	_, err = b.Seek(10, io.SeekStart)
	require.NoError(t, err)
	n, err = b.Write(nil)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Zero(t, b.Len())
	_, err = b.Seek(0, io.SeekStart)
	require.NoError(t, err)
	b.Grow(16)
	_, err = b.Seek(3, io.SeekStart)
	require.NoError(t, err)
	_, err = b.Write([]byte{9})
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 9}, b.Bytes())
}
