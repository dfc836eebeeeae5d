// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"bytes"
	"fmt"

	"github.com/dtn7/dtn7-bpv6/pkg/sdnv"
)

// EIDReference points to an EndpointID within a Dictionary by the offsets of
// its scheme name and its scheme-specific part.
type EIDReference struct {
	SchemeOffset uint64
	SspOffset    uint64
}

func (ref EIDReference) appendTo(buf []byte) []byte {
	buf = sdnv.Append(buf, ref.SchemeOffset)
	return sdnv.Append(buf, ref.SspOffset)
}

func (ref EIDReference) String() string {
	return fmt.Sprintf("(%d, %d)", ref.SchemeOffset, ref.SspOffset)
}

// Dictionary is the byte array of NUL-terminated strings in a primary block
// that EIDReferences point into. Each string is stored only once.
type Dictionary struct {
	buf     []byte
	offsets map[string]uint64
}

// NewDictionary creates an empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{offsets: make(map[string]uint64)}
}

// loadDictionary wraps received dictionary bytes for lookups.
func loadDictionary(buf []byte) *Dictionary {
	return &Dictionary{buf: buf}
}

// Add a string to this Dictionary and return its offset. If the string is
// already present, its first offset is returned.
func (d *Dictionary) Add(s string) uint64 {
	if d.offsets == nil {
		d.offsets = make(map[string]uint64)
	}

	if offset, ok := d.offsets[s]; ok {
		return offset
	}

	offset := uint64(len(d.buf))
	d.buf = append(d.buf, s...)
	d.buf = append(d.buf, 0)
	d.offsets[s] = offset

	return offset
}

// Reference adds an EndpointID's parts and returns its EIDReference.
func (d *Dictionary) Reference(e EndpointID) EIDReference {
	return EIDReference{
		SchemeOffset: d.Add(e.SchemeName()),
		SspOffset:    d.Add(e.SchemeSpecificPart()),
	}
}

// Lookup the NUL-terminated string starting at the offset.
func (d *Dictionary) Lookup(offset uint64) (string, error) {
	if offset >= uint64(len(d.buf)) {
		return "", newFormatError("dictionary offset %d exceeds its length %d", offset, len(d.buf))
	}

	tail := d.buf[offset:]
	end := bytes.IndexByte(tail, 0)
	if end < 0 {
		return "", newFormatError("dictionary string at offset %d is not terminated", offset)
	}

	return string(tail[:end]), nil
}

// Resolve an EIDReference to its EndpointID.
func (d *Dictionary) Resolve(ref EIDReference) (e EndpointID, err error) {
	var scheme, ssp string
	if scheme, err = d.Lookup(ref.SchemeOffset); err != nil {
		return
	}
	if ssp, err = d.Lookup(ref.SspOffset); err != nil {
		return
	}

	e = EndpointID{scheme: scheme, ssp: ssp}
	if chkErr := e.CheckValid(); chkErr != nil {
		err = newFormatError("dictionary reference %v: %v", ref, chkErr)
	}
	return
}

// Bytes of this Dictionary, as written into a primary block.
func (d *Dictionary) Bytes() []byte {
	return d.buf
}

// Len returns the Dictionary's length in bytes.
func (d *Dictionary) Len() int {
	return len(d.buf)
}
