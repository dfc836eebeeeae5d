// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"encoding/json"
	"strings"
)

// BlockControlFlags represents the Block Processing Control Flags as specified
// in RFC 5050, section 4.3.
type BlockControlFlags uint64

const (
	// ReplicateBlock: This block must be replicated in every fragment.
	ReplicateBlock BlockControlFlags = 1 << 0

	// StatusReportBlock: Transmission of a status report is requested if this
	// block can't be processed.
	StatusReportBlock BlockControlFlags = 1 << 1

	// DeleteBundle: Bundle must be deleted if this block can't be processed.
	DeleteBundle BlockControlFlags = 1 << 2

	// LastBlock: This block is the bundle's last one.
	LastBlock BlockControlFlags = 1 << 3

	// RemoveBlock: Block must be discarded if it can't be processed.
	RemoveBlock BlockControlFlags = 1 << 4

	// ForwardedUnprocessed: Block was forwarded without being processed.
	ForwardedUnprocessed BlockControlFlags = 1 << 5

	// BlockEIDRefs: Block contains an EID-reference field.
	BlockEIDRefs BlockControlFlags = 1 << 6
)

// Has returns true if a given flag or mask of flags is set.
func (bcf BlockControlFlags) Has(flag BlockControlFlags) bool {
	return (bcf & flag) != 0
}

// Strings returns an array of all flags as a string representation.
func (bcf BlockControlFlags) Strings() (fields []string) {
	checks := []struct {
		field BlockControlFlags
		text  string
	}{
		{BlockEIDRefs, "EID_REFERENCES"},
		{ForwardedUnprocessed, "FORWARDED_UNPROCESSED"},
		{RemoveBlock, "REMOVE_BLOCK"},
		{LastBlock, "LAST_BLOCK"},
		{DeleteBundle, "DELETE_BUNDLE"},
		{StatusReportBlock, "REQUEST_STATUS_REPORT"},
		{ReplicateBlock, "REPLICATE_BLOCK"},
	}

	for _, check := range checks {
		if bcf.Has(check.field) {
			fields = append(fields, check.text)
		}
	}

	return
}

// MarshalJSON creates a JSON array of control flags.
func (bcf BlockControlFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(bcf.Strings())
}

func (bcf BlockControlFlags) String() string {
	return strings.Join(bcf.Strings(), ",")
}
