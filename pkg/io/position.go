package io

import (
	"fmt"
	"io"
)

func seek(s any, offset int64, whence int) (int64, error) {
	sk, ok := s.(io.Seeker)
	if !ok {
		return 0, ErrNotSeekable
	}
	return sk.Seek(offset, whence)
}

// Seekable returns true if the underlying writer implements io.Seeker.
func (w *BinWriter) Seekable() bool {
	_, ok := w.w.(io.Seeker)
	return ok
}

// Pos returns the current stream position.
func (w *BinWriter) Pos() int64 {
	return w.Seek(0, io.SeekCurrent)
}

// Seek moves the stream position, see io.Seeker.
func (w *BinWriter) Seek(offset int64, whence int) int64 {
	if w.Err != nil {
		return 0
	}
	pos, err := seek(w.w, offset, whence)
	if err != nil {
		w.Err = err
	}
	return pos
}

// Align writes zeroes until the position is a multiple of n.
func (w *BinWriter) Align(n int64) {
	if n <= 0 {
		w.SetError(fmt.Errorf("%w: alignment %d", ErrInvalidArgument, n))
		return
	}
	if pad := (n - w.Pos()%n) % n; pad != 0 {
		w.WriteZeroes(int(pad))
	}
}

// Seekable returns true if the underlying reader implements io.Seeker.
func (r *BinReader) Seekable() bool {
	_, ok := r.r.(io.Seeker)
	return ok
}

// Pos returns the current stream position.
func (r *BinReader) Pos() int64 {
	return r.Seek(0, io.SeekCurrent)
}

// Seek moves the stream position, see io.Seeker.
func (r *BinReader) Seek(offset int64, whence int) int64 {
	if r.Err != nil {
		return 0
	}
	pos, err := seek(r.r, offset, whence)
	if err != nil {
		r.Err = err
	}
	return pos
}

// Align skips bytes until the position is a multiple of n.
func (r *BinReader) Align(n int64) {
	if n <= 0 {
		r.SetError(fmt.Errorf("%w: alignment %d", ErrInvalidArgument, n))
		return
	}
	if pad := (n - r.Pos()%n) % n; pad != 0 {
		r.Skip(pad)
	}
}

// SeekScope is a temporary position change, Close returns the stream to the
// position it had when the scope was created. Scopes nest, closing them in
// reverse order restores every intermediate position.
type SeekScope struct {
	s      io.Seeker
	saved  int64
	closed bool
}

// NewSeekScope remembers the current position of s and seeks to the given
// target. If the target seek fails, the scope is still returned along with
// the error, so that it can be closed.
func NewSeekScope(s io.Seeker, offset int64, whence int) (*SeekScope, error) {
	saved, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	scope := &SeekScope{s: s, saved: saved}
	_, err = s.Seek(offset, whence)
	return scope, err
}

// Saved returns the position to be restored.
func (s *SeekScope) Saved() int64 {
	if s == nil {
		return 0
	}
	return s.saved
}

// Close restores the saved position. It's safe to call it more than once and
// on a nil scope.
func (s *SeekScope) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	_, err := s.s.Seek(s.saved, io.SeekStart)
	return err
}

// TemporarySeek seeks to the given position and returns the scope restoring
// the current one. The scope restores the position even if the writer fails
// in between. Failures to seek are reported via Err.
func (w *BinWriter) TemporarySeek(offset int64, whence int) *SeekScope {
	if w.Err != nil {
		return nil
	}
	sk, ok := w.w.(io.Seeker)
	if !ok {
		w.Err = ErrNotSeekable
		return nil
	}
	scope, err := NewSeekScope(sk, offset, whence)
	if err != nil {
		w.Err = err
	}
	return scope
}

// TemporarySeek seeks to the given position and returns the scope restoring
// the current one. Failures to seek are reported via Err.
func (r *BinReader) TemporarySeek(offset int64, whence int) *SeekScope {
	if r.Err != nil {
		return nil
	}
	sk, ok := r.r.(io.Seeker)
	if !ok {
		r.Err = ErrNotSeekable
		return nil
	}
	scope, err := NewSeekScope(sk, offset, whence)
	if err != nil {
		r.Err = err
	}
	return scope
}

// ReservationSize is the number of bytes a Reservation occupies.
const ReservationSize = 4

// Reservation is a deferred 32-bit forward reference: the space is reserved
// when it's created and patched once the value is known.
type Reservation struct {
	w         *BinWriter
	pos       int64
	satisfied bool
}

// Reserve remembers the current position and skips ReservationSize bytes
// (filling them with zeroes) to be patched later with Satisfy. Exactly one
// Satisfy call is expected per reservation.
func (w *BinWriter) Reserve() *Reservation {
	res := &Reservation{w: w, pos: w.Pos()}
	w.WriteZeroes(ReservationSize)
	return res
}

// Pos returns the reserved position.
func (r *Reservation) Pos() int64 {
	return r.pos
}

// Satisfied returns true after the reservation was patched.
func (r *Reservation) Satisfied() bool {
	return r.satisfied
}

// Satisfy patches the reservation with the current stream position.
func (r *Reservation) Satisfy() error {
	return r.satisfy(nil)
}

// SatisfyWith patches the reservation with v.
func (r *Reservation) SatisfyWith(v uint32) error {
	return r.satisfy(&v)
}

func (r *Reservation) satisfy(v *uint32) error {
	if r.satisfied {
		return ErrReservationSatisfied
	}
	w := r.w
	cur := w.Pos()
	if v == nil {
		v = new(uint32)
		*v = uint32(cur)
	}
	scope := w.TemporarySeek(r.pos, io.SeekStart)
	w.WriteU32(*v)
	if err := scope.Close(); err != nil {
		w.SetError(err)
	}
	if w.Err != nil {
		return w.Err
	}
	r.satisfied = true
	return nil
}

// Close reports ErrReservationUnsatisfied if the reservation was never
// satisfied.
func (r *Reservation) Close() error {
	if !r.satisfied {
		return fmt.Errorf("%w: offset %d", ErrReservationUnsatisfied, r.pos)
	}
	return nil
}
