// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package acs

import (
	"fmt"

	"github.com/dtn7/dtn7-bpv6/pkg/bpv6"
	"github.com/dtn7/dtn7-bpv6/pkg/sdnv"
)

// Cteb is the content of a Custody Transfer Enhancement Block: the custody ID
// the custodian assigned to a bundle and the custodian's endpoint as a string.
type Cteb struct {
	CustodyID uint64
	Custodian string
}

// NewCtebBlock creates a canonical block carrying a CTEB.
func NewCtebBlock(custodyID uint64, custodian string) bpv6.CanonicalBlock {
	return bpv6.NewCanonicalBlock(bpv6.CustodyTransferBlockType, 0, Cteb{custodyID, custodian}.MarshalBinary())
}

// MarshalBinary serializes the custody ID as an SDNV, followed by the
// custodian without any terminator.
func (c Cteb) MarshalBinary() []byte {
	return append(sdnv.Encode(c.CustodyID), c.Custodian...)
}

// ParseCteb reads a CTEB's block data.
func ParseCteb(data []byte) (c Cteb, err error) {
	id, n, sdnvErr := sdnv.Decode(data, 0)
	if sdnvErr != nil {
		err = fmt.Errorf("custody transfer enhancement block's custody ID: %w", sdnvErr)
		return
	}

	c = Cteb{CustodyID: id, Custodian: string(data[n:])}
	return
}

// ExtractCteb returns the bundle's CTEB. A bundle without a CTEB results in
// ok being false, more than one CTEB in an error wrapping bpv6.ErrAmbiguous.
func ExtractCteb(b bpv6.Bundle) (c Cteb, ok bool, err error) {
	cb, ok, err := b.ExtensionBlock(bpv6.CustodyTransferBlockType)
	if err != nil || !ok {
		return
	}

	if c, err = ParseCteb(cb.Data); err != nil {
		ok = false
	}
	return
}

// CustodianEndpoint parses the Custodian as an EndpointID.
func (c Cteb) CustodianEndpoint() (bpv6.EndpointID, error) {
	return bpv6.NewEndpointID(c.Custodian)
}

// ValidFor checks if this CTEB was written by the bundle's current custodian.
// Only a valid CTEB's custody ID may be aggregated.
func (c Cteb) ValidFor(b bpv6.Bundle) bool {
	return c.Custodian == b.PrimaryBlock.Custodian.String()
}

func (c Cteb) String() string {
	return fmt.Sprintf("CTEB(%d, %s)", c.CustodyID, c.Custodian)
}
