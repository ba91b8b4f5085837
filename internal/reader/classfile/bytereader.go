package classfile

import (
	"encoding/binary"
	"fmt"
	"math"
)

// byteReader is a cursor over an in-memory class file, matching the
// stream-of-big-endian-fields shape of the class file format itself.
type byteReader struct {
	buf []byte
	pos int
}

func newByteReader(buf []byte) *byteReader {
	return &byteReader{buf: buf}
}

func (r *byteReader) require(n int) error {
	if r.pos+n > len(r.buf) {
		return fmt.Errorf("unexpected end of class file at offset %d, need %d more bytes", r.pos, n)
	}
	return nil
}

func (r *byteReader) u1() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *byteReader) u2() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *byteReader) u4() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *byteReader) i4() (int32, error) {
	v, err := r.u4()
	return int32(v), err
}

func (r *byteReader) u8() (uint64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *byteReader) i8() (int64, error) {
	v, err := r.u8()
	return int64(v), err
}

func (r *byteReader) f4() (float32, error) {
	v, err := r.u4()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *byteReader) f8() (float64, error) {
	v, err := r.u8()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (r *byteReader) bytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	v := r.buf[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

func (r *byteReader) skip(n int) error {
	if err := r.require(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}
