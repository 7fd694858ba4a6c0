package binaryserializer

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// maxItems is the number of buffers to keep in the free list to use for
// binary serialization and deserialization.
const maxItems = 1024

// binaryFreeList provides a concurrent safe free list of byte slices
// (up to the maximum number defined by the maxItems constant) with a
// cap of 8 (thus it supports up to a uint64). It is used to provide
// temporary buffers for serializing and deserializing primitive values
// to and from io.Readers and io.Writers without constant allocation.
var binaryFreeList = make(chan []byte, maxItems)

// Borrow returns a byte slice from the free list with a length of 8. A
// new buffer is allocated if there are not any available on the free
// list.
func Borrow() []byte {
	var buf []byte
	select {
	case buf = <-binaryFreeList:
	default:
		buf = make([]byte, 8)
	}
	return buf[:8]
}

// Return puts the provided byte slice back on the free list. The buffer
// MUST have been obtained via the Borrow function and therefore have a
// cap of 8.
func Return(buf []byte) {
	select {
	case binaryFreeList <- buf:
	default:
		// Let it go to the garbage collector.
	}
}

// Uint16 reads two bytes from the provided reader using a buffer from
// the free list and returns the resulting little-endian uint16.
func Uint16(r io.Reader) (uint16, error) {
	buf := Borrow()[:2]
	if _, err := io.ReadFull(r, buf); err != nil {
		Return(buf)
		return 0, errors.WithStack(err)
	}
	rv := binary.LittleEndian.Uint16(buf)
	Return(buf)
	return rv, nil
}

// Uint32 reads four bytes from the provided reader using a buffer from
// the free list and returns the resulting little-endian uint32.
func Uint32(r io.Reader) (uint32, error) {
	buf := Borrow()[:4]
	if _, err := io.ReadFull(r, buf); err != nil {
		Return(buf)
		return 0, errors.WithStack(err)
	}
	rv := binary.LittleEndian.Uint32(buf)
	Return(buf)
	return rv, nil
}

// Uint64 reads eight bytes from the provided reader using a buffer from
// the free list and returns the resulting little-endian uint64.
func Uint64(r io.Reader) (uint64, error) {
	buf := Borrow()[:8]
	if _, err := io.ReadFull(r, buf); err != nil {
		Return(buf)
		return 0, errors.WithStack(err)
	}
	rv := binary.LittleEndian.Uint64(buf)
	Return(buf)
	return rv, nil
}

// Int64 reads eight bytes from the provided reader and returns the
// resulting little-endian int64.
func Int64(r io.Reader) (int64, error) {
	rv, err := Uint64(r)
	return int64(rv), err
}

// Float64 reads eight bytes from the provided reader and returns the
// resulting float64 decoded from its IEEE 754 bit pattern.
func Float64(r io.Reader) (float64, error) {
	rv, err := Uint64(r)
	return math.Float64frombits(rv), err
}

// PutUint16 serializes the provided uint16 as little-endian into a
// buffer from the free list and writes the resulting two bytes to the
// given writer.
func PutUint16(w io.Writer, val uint16) error {
	buf := Borrow()[:2]
	binary.LittleEndian.PutUint16(buf, val)
	_, err := w.Write(buf)
	Return(buf)
	return errors.WithStack(err)
}

// PutUint32 serializes the provided uint32 as little-endian and writes
// the resulting four bytes to the given writer.
func PutUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

// PutUint64 serializes the provided uint64 as little-endian and writes
// the resulting eight bytes to the given writer.
func PutUint64(w io.Writer, val uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

// PutInt64 serializes the provided int64 as little-endian and writes the
// resulting eight bytes to the given writer.
func PutInt64(w io.Writer, val int64) error {
	return PutUint64(w, uint64(val))
}

// PutFloat64 serializes the provided float64 via its IEEE 754 bit
// pattern and writes the resulting eight bytes to the given writer.
func PutFloat64(w io.Writer, val float64) error {
	return PutUint64(w, math.Float64bits(val))
}
