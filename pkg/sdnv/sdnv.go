// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sdnv implements Self-Delimiting Numeric Values as defined in
// RFC 6256 and used throughout the Bundle Protocol version 6.
//
// An SDNV is a big-endian base-128 number. Every byte except the last one has
// its most significant bit set.
//
//	buf := sdnv.Encode(300)          // 0x82 0x2c
//	n, l, err := sdnv.Decode(buf, 0) // 300, 2, nil
package sdnv

import "errors"

var (
	// ErrTruncated is returned if no terminating byte was found within the
	// available input.
	ErrTruncated = errors.New("sdnv: truncated input")

	// ErrOverflow is returned if the decoded value does not fit into 64 bits.
	ErrOverflow = errors.New("sdnv: value exceeds 64 bits")
)

// MaxLen is the length of the longest SDNV representing an uint64.
const MaxLen = 10

// Len returns the length of n's encoding in bytes.
func Len(n uint64) (l int) {
	for l = 1; n >= 0x80; l++ {
		n >>= 7
	}
	return
}

// Append n's encoding to buf.
func Append(buf []byte, n uint64) []byte {
	l := Len(n)
	for i := l - 1; i >= 0; i-- {
		b := byte(n>>(7*uint(i))) & 0x7f
		if i > 0 {
			b |= 0x80
		}
		buf = append(buf, b)
	}
	return buf
}

// Encode returns the minimal encoding of n.
func Encode(n uint64) []byte {
	return Append(make([]byte, 0, Len(n)), n)
}

// Decode reads an SDNV from the start of data. At most maxLen bytes are
// inspected; a maxLen of zero or one exceeding data's length is bounded by
// len(data). The number of consumed bytes is returned next to the value.
func Decode(data []byte, maxLen int) (n uint64, consumed int, err error) {
	if maxLen <= 0 || maxLen > len(data) {
		maxLen = len(data)
	}

	for consumed < maxLen {
		b := data[consumed]
		consumed++

		if n > (^uint64(0))>>7 {
			return 0, consumed, ErrOverflow
		}
		n = n<<7 | uint64(b&0x7f)

		if b&0x80 == 0 {
			return n, consumed, nil
		}
	}

	return 0, consumed, ErrTruncated
}

// Reader sequentially decodes SDNVs and raw bytes from a byte slice. The first
// error sticks; every following read returns it again.
type Reader struct {
	data []byte
	pos  int
	err  error
}

// NewReader for the given data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Uint reads the next SDNV.
func (r *Reader) Uint() uint64 {
	if r.err != nil {
		return 0
	}

	n, l, err := Decode(r.data[r.pos:], 0)
	if err != nil {
		r.err = err
		return 0
	}
	r.pos += l
	return n
}

// Byte reads a single raw byte.
func (r *Reader) Byte() byte {
	if r.err != nil {
		return 0
	}
	if r.pos >= len(r.data) {
		r.err = ErrTruncated
		return 0
	}

	b := r.data[r.pos]
	r.pos++
	return b
}

// Bytes reads the next n raw bytes without copying them.
func (r *Reader) Bytes(n uint64) []byte {
	if r.err != nil {
		return nil
	}
	if n > uint64(r.Len()) {
		r.err = ErrTruncated
		return nil
	}

	b := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.data) - r.pos
}

// Pos returns the number of consumed bytes.
func (r *Reader) Pos() int {
	return r.pos
}

// Err returns the first error which occurred.
func (r *Reader) Err() error {
	return r.err
}
