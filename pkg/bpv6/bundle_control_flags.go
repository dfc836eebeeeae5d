// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// BundleControlFlags represents the general flags of the Bundle Processing
// Control Flags as specified in RFC 5050, section 4.2. The class of service
// and the status report request bits are kept in Priority and
// StatusReportFlags.
type BundleControlFlags uint64

const (
	// IsFragment indicates this bundle is a fragment.
	IsFragment BundleControlFlags = 1 << 0

	// AdministrativeRecordPayload indicates the payload is an administrative record.
	AdministrativeRecordPayload BundleControlFlags = 1 << 1

	// MustNotFragmented forbids bundle fragmentation.
	MustNotFragmented BundleControlFlags = 1 << 2

	// CustodyTransferRequested requests custody transfer for this bundle.
	CustodyTransferRequested BundleControlFlags = 1 << 3

	// SingletonDestination indicates the destination endpoint is a singleton.
	SingletonDestination BundleControlFlags = 1 << 4

	// RequestUserApplicationAck requests an acknowledgement from the application agent.
	RequestUserApplicationAck BundleControlFlags = 1 << 5

	priorityMask     uint64 = 0x3 << 7
	priorityShift    uint64 = 7
	statusReportMask uint64 = 0x7f << 14
)

// Has returns true if a given flag or mask of flags is set.
func (bcf BundleControlFlags) Has(flag BundleControlFlags) bool {
	return (bcf & flag) != 0
}

// CheckValid returns an array of errors for incorrect data.
func (bcf BundleControlFlags) CheckValid() (errs error) {
	if bcf.Has(IsFragment) && bcf.Has(MustNotFragmented) {
		errs = multierror.Append(errs,
			fmt.Errorf("BundleControlFlags: both 'bundle is a fragment' and "+
				"'bundle must not be fragmented' flags are set"))
	}

	if reserved := uint64(bcf) & (priorityMask | statusReportMask); reserved != 0 {
		errs = multierror.Append(errs,
			fmt.Errorf("BundleControlFlags: class of service or status report bits %x are set", reserved))
	}

	return
}

// Strings returns an array of all flags as a string representation.
func (bcf BundleControlFlags) Strings() (fields []string) {
	checks := []struct {
		field BundleControlFlags
		text  string
	}{
		{RequestUserApplicationAck, "REQUESTED_APPLICATION_ACK"},
		{SingletonDestination, "SINGLETON_DESTINATION"},
		{CustodyTransferRequested, "CUSTODY_TRANSFER_REQUESTED"},
		{MustNotFragmented, "MUST_NOT_BE_FRAGMENTED"},
		{AdministrativeRecordPayload, "ADMINISTRATIVE_PAYLOAD"},
		{IsFragment, "IS_FRAGMENT"},
	}

	for _, check := range checks {
		if bcf.Has(check.field) {
			fields = append(fields, check.text)
		}
	}

	return
}

// MarshalJSON creates a JSON array of control flags.
func (bcf BundleControlFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(bcf.Strings())
}

func (bcf BundleControlFlags) String() string {
	return strings.Join(bcf.Strings(), ",")
}

// Priority is the class of service, bits 7 and 8 of the processing flags.
type Priority uint64

const (
	// Bulk bundles are transmitted if no other bundles are waiting.
	Bulk Priority = 0

	// Normal bundles are transmitted before bulk bundles.
	Normal Priority = 1

	// Expedited bundles are transmitted first.
	Expedited Priority = 2
)

// CheckValid returns an error for the reserved class of service.
func (p Priority) CheckValid() error {
	if p > Expedited {
		return fmt.Errorf("Priority: reserved class of service %d", uint64(p))
	}
	return nil
}

func (p Priority) String() string {
	switch p {
	case Bulk:
		return "bulk"
	case Normal:
		return "normal"
	case Expedited:
		return "expedited"
	default:
		return fmt.Sprintf("reserved(%d)", uint64(p))
	}
}

// MarshalJSON writes the Priority's name.
func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// StatusReportFlags are the status report request bits 14 to 20 of the
// processing flags, already shifted to their position.
type StatusReportFlags uint64

const (
	// StatusRequestReception requests a bundle reception status report.
	StatusRequestReception StatusReportFlags = 1 << 14

	// StatusRequestCustodyAccepted requests a custody acceptance status report.
	StatusRequestCustodyAccepted StatusReportFlags = 1 << 15

	// StatusRequestForward requests a bundle forwarding status report.
	StatusRequestForward StatusReportFlags = 1 << 16

	// StatusRequestDelivery requests a bundle delivery status report.
	StatusRequestDelivery StatusReportFlags = 1 << 17

	// StatusRequestDeletion requests a bundle deletion status report.
	StatusRequestDeletion StatusReportFlags = 1 << 18

	// StatusRequestAppAck requests an acknowledged by application status report.
	StatusRequestAppAck StatusReportFlags = 1 << 19
)

// Has returns true if a given flag or mask of flags is set.
func (srf StatusReportFlags) Has(flag StatusReportFlags) bool {
	return (srf & flag) != 0
}

// Strings returns an array of all flags as a string representation.
func (srf StatusReportFlags) Strings() (fields []string) {
	checks := []struct {
		field StatusReportFlags
		text  string
	}{
		{StatusRequestAppAck, "REQUESTED_APP_ACK_STATUS_REPORT"},
		{StatusRequestDeletion, "REQUESTED_DELETION_STATUS_REPORT"},
		{StatusRequestDelivery, "REQUESTED_DELIVERY_STATUS_REPORT"},
		{StatusRequestForward, "REQUESTED_FORWARD_STATUS_REPORT"},
		{StatusRequestCustodyAccepted, "REQUESTED_CUSTODY_STATUS_REPORT"},
		{StatusRequestReception, "REQUESTED_RECEPTION_STATUS_REPORT"},
	}

	for _, check := range checks {
		if srf.Has(check.field) {
			fields = append(fields, check.text)
		}
	}

	return
}

// MarshalJSON creates a JSON array of status report flags.
func (srf StatusReportFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(srf.Strings())
}

func (srf StatusReportFlags) String() string {
	return strings.Join(srf.Strings(), ",")
}

// packProcessingFlags joins all three flag fields into the single SDNV of the
// primary block.
func packProcessingFlags(bcf BundleControlFlags, p Priority, srf StatusReportFlags) uint64 {
	return uint64(bcf) | (uint64(p)<<priorityShift)&priorityMask | uint64(srf)&statusReportMask
}

// unpackProcessingFlags splits the primary block's processing flags. Unknown
// bits remain part of the BundleControlFlags.
func unpackProcessingFlags(flags uint64) (BundleControlFlags, Priority, StatusReportFlags) {
	return BundleControlFlags(flags &^ (priorityMask | statusReportMask)),
		Priority((flags & priorityMask) >> priorityShift),
		StatusReportFlags(flags & statusReportMask)
}
