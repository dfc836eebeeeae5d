// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package acs

import "fmt"

// Reason explains why custody was refused. It is only meaningful for
// unsuccessful signals and occupies the lower seven bits of the status byte.
type Reason uint8

const (
	NoAdditionalInfo           Reason = 0x00
	RedundantReception         Reason = 0x03
	DepletedStorage            Reason = 0x04
	DestEndpointUnintelligible Reason = 0x05
	NoKnownRoute               Reason = 0x06
	NoTimelyContact            Reason = 0x07
	BlockUnintelligible        Reason = 0x08

	reasonMask = 0x7f
)

func (r Reason) String() string {
	switch r {
	case NoAdditionalInfo:
		return "no additional information"
	case RedundantReception:
		return "redundant reception"
	case DepletedStorage:
		return "depleted storage"
	case DestEndpointUnintelligible:
		return "destination endpoint ID unintelligible"
	case NoKnownRoute:
		return "no known route to destination"
	case NoTimelyContact:
		return "no timely contact with next node on route"
	case BlockUnintelligible:
		return "block unintelligible"
	default:
		return fmt.Sprintf("reason %d", uint8(r))
	}
}
