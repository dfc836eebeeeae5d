// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"fmt"
)

// AdminRecordType is the record type, the upper nibble of an administrative
// record's first byte.
type AdminRecordType uint8

// Sorted list of all known administrative record type codes to prevent double usage.
const (
	// AdminRecordTypeStatusReport is the administrative record type code for a status report.
	AdminRecordTypeStatusReport AdminRecordType = 1

	// AdminRecordTypeCustodySignal is the administrative record type code for a custody signal.
	AdminRecordTypeCustodySignal AdminRecordType = 2

	// AdminRecordTypeAggregateCustodySignal is the administrative record type
	// code for an aggregate custody signal.
	AdminRecordTypeAggregateCustodySignal AdminRecordType = 4
)

func (art AdminRecordType) String() string {
	switch art {
	case AdminRecordTypeStatusReport:
		return "status report"
	case AdminRecordTypeCustodySignal:
		return "custody signal"
	case AdminRecordTypeAggregateCustodySignal:
		return "aggregate custody signal"
	default:
		return fmt.Sprintf("record %d", uint8(art))
	}
}

// AdminRecordFlags are the lower nibble of an administrative record's first byte.
type AdminRecordFlags uint8

// AdminRecordIsFragment indicates the record refers to a fragment.
const AdminRecordIsFragment AdminRecordFlags = 0x01

// NewAdministrativeRecordHeader creates an administrative record's first byte.
func NewAdministrativeRecordHeader(recordType AdminRecordType, flags AdminRecordFlags) byte {
	return byte(recordType)<<4 | byte(flags)&0x0f
}

// ParseAdministrativeRecordHeader splits an administrative record's first byte.
func ParseAdministrativeRecordHeader(header byte) (AdminRecordType, AdminRecordFlags) {
	return AdminRecordType(header >> 4), AdminRecordFlags(header & 0x0f)
}

// AdministrativeRecord returns the header and the payload of an
// administrative record bundle.
//
// An error arises if this Bundle is not an AdministrativeRecord, compare IsAdministrativeRecord.
func (b Bundle) AdministrativeRecord() (recordType AdminRecordType, flags AdminRecordFlags, payload []byte, err error) {
	if !b.IsAdministrativeRecord() {
		err = fmt.Errorf("bundle is not an administrative record")
		return
	}

	payload = b.Payload()
	if len(payload) == 0 {
		err = fmt.Errorf("administrative record has no header: %w", ErrTruncated)
		return
	}

	recordType, flags = ParseAdministrativeRecordHeader(payload[0])
	return
}
