// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import "bytes"

// PreviousHopData is the content of a Previous Hop Insertion Block, RFC 6259:
// the scheme name and the SSP, each NUL-terminated.
func PreviousHopData(eid EndpointID) []byte {
	data := make([]byte, 0, len(eid.scheme)+len(eid.ssp)+2)
	data = append(data, eid.scheme...)
	data = append(data, 0)
	data = append(data, eid.ssp...)
	return append(data, 0)
}

// ParsePreviousHopData reads a Previous Hop Insertion Block's content.
func ParsePreviousHopData(data []byte) (eid EndpointID, err error) {
	parts := bytes.Split(data, []byte{0})
	if len(parts) != 3 || len(parts[2]) != 0 {
		err = newFormatError("previous hop block is not two NUL-terminated strings")
		return
	}

	eid = EndpointID{scheme: string(parts[0]), ssp: string(parts[1])}
	if chkErr := eid.CheckValid(); chkErr != nil {
		err = newFormatError("previous hop: %v", chkErr)
	}
	return
}

// PreviousHop returns the endpoint of the Previous Hop Insertion Block, if
// this Bundle carries exactly one.
func (b Bundle) PreviousHop() (eid EndpointID, ok bool, err error) {
	cb, ok, err := b.ExtensionBlock(PreviousHopBlockType)
	if !ok || err != nil {
		return
	}

	eid, err = ParsePreviousHopData(cb.Data)
	ok = err == nil
	return
}
