package io

import (
	"errors"

	"github.com/nspcc-dev/bincodec/pkg/enum"
)

// Error kinds reported by readers, writers and everything built on top of
// them. Concrete errors wrap one of these, so check them with errors.Is.
var (
	// ErrOutOfData is returned when the stream ends before the requested
	// number of bytes is available.
	ErrOutOfData = errors.New("out of data")
	// ErrInvalidArgument is returned for invalid coding selectors and other
	// caller-side precondition violations.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidData is returned when decoded data is not acceptable, like
	// undefined enumeration values in strict mode.
	ErrInvalidData = errors.New("invalid data")
	// ErrMalformedData is returned for variable-length integers that don't
	// terminate in time.
	ErrMalformedData = errors.New("malformed data")
	// ErrUnsupportedType is returned for types the codec can't handle.
	ErrUnsupportedType = enum.ErrUnsupportedType
	// ErrLayoutMismatch is returned when a fixed-length member doesn't have
	// the declared length.
	ErrLayoutMismatch = errors.New("layout mismatch")
	// ErrNotSeekable is returned for position operations over streams that
	// don't implement io.Seeker.
	ErrNotSeekable = errors.New("stream is not seekable")
	// ErrReservationSatisfied is returned when a Reservation is satisfied
	// more than once.
	ErrReservationSatisfied = errors.New("reservation is already satisfied")
	// ErrReservationUnsatisfied is returned when a Reservation is closed
	// without being satisfied.
	ErrReservationUnsatisfied = errors.New("reservation was never satisfied")
)
