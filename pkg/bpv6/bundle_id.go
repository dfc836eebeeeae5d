// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"fmt"
	"strings"
)

// BundleID identifies a bundle by its source node, creation timestamp and,
// for fragments, the fragment's offset and length. This is the identity a
// custody ID is assigned to.
type BundleID struct {
	SourceNode EndpointID
	Timestamp  CreationTimestamp

	IsFragment     bool
	FragmentOffset uint64
	FragmentLength uint64
}

func (bid BundleID) String() string {
	var bldr strings.Builder

	_, _ = fmt.Fprintf(&bldr, "%v-%d-%d", bid.SourceNode, bid.Timestamp[0], bid.Timestamp[1])
	if bid.IsFragment {
		_, _ = fmt.Fprintf(&bldr, "-%d-%d", bid.FragmentOffset, bid.FragmentLength)
	}

	return bldr.String()
}

// Scrub creates a cleaned BundleID without fragmentation.
func (bid BundleID) Scrub() BundleID {
	return BundleID{
		SourceNode: bid.SourceNode,
		Timestamp:  bid.Timestamp,
	}
}
