// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestProcessingFlagsPacking(t *testing.T) {
	tests := []struct {
		flags uint64
		bcf   BundleControlFlags
		p     Priority
		srf   StatusReportFlags
	}{
		{0x000, 0, Bulk, 0},
		{0x116, AdministrativeRecordPayload | MustNotFragmented | SingletonDestination, Expedited, 0},
		{0x0018, CustodyTransferRequested | SingletonDestination, Bulk, 0},
		{0x6_0018, CustodyTransferRequested | SingletonDestination, Bulk, StatusRequestDelivery | StatusRequestDeletion},
		{0x80 | 0x4000, 0, Normal, StatusRequestReception},
		// Unknown bits are kept.
		{0x40 | 0x2000, BundleControlFlags(0x40 | 0x2000), Bulk, 0},
		{1 << 20, 0, Bulk, StatusReportFlags(1 << 20)},
	}

	for _, test := range tests {
		bcf, p, srf := unpackProcessingFlags(test.flags)
		if bcf != test.bcf || p != test.p || srf != test.srf {
			t.Fatalf("unpackProcessingFlags(%x) = (%x, %v, %x), expected (%x, %v, %x)",
				test.flags, bcf, p, srf, test.bcf, test.p, test.srf)
		}

		if flags := packProcessingFlags(bcf, p, srf); flags != test.flags {
			t.Fatalf("packProcessingFlags(%x, %v, %x) = %x, expected %x", bcf, p, srf, flags, test.flags)
		}
	}
}

func TestBundleControlFlagsCheckValid(t *testing.T) {
	tests := []struct {
		bcf   BundleControlFlags
		valid bool
	}{
		{0, true},
		{CustodyTransferRequested | SingletonDestination, true},
		{IsFragment | MustNotFragmented, false},
		{BundleControlFlags(priorityMask), false},
		{BundleControlFlags(StatusRequestDelivery), false},
	}

	for _, test := range tests {
		if err := test.bcf.CheckValid(); (err == nil) != test.valid {
			t.Errorf("BundleControlFlags %x: valid %t, got %v", uint64(test.bcf), test.valid, err)
		}
	}
}

func TestPriorityCheckValid(t *testing.T) {
	for _, p := range []Priority{Bulk, Normal, Expedited} {
		if err := p.CheckValid(); err != nil {
			t.Errorf("Priority %v: %v", p, err)
		}
	}

	if err := Priority(3).CheckValid(); err == nil {
		t.Error("reserved Priority 3 is valid")
	}
}

func TestFlagsStrings(t *testing.T) {
	bcf := CustodyTransferRequested | IsFragment
	if s := bcf.String(); s != "CUSTODY_TRANSFER_REQUESTED,IS_FRAGMENT" {
		t.Fatalf("BundleControlFlags.String() = %q", s)
	}

	srf := StatusRequestDelivery
	if s := srf.String(); s != "REQUESTED_DELIVERY_STATUS_REPORT" {
		t.Fatalf("StatusReportFlags.String() = %q", s)
	}

	blcf := LastBlock | ReplicateBlock
	data, err := json.Marshal(blcf)
	if err != nil {
		t.Fatal(err)
	}

	var fields []string
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	} else if !reflect.DeepEqual(fields, []string{"LAST_BLOCK", "REPLICATE_BLOCK"}) {
		t.Fatalf("BlockControlFlags JSON is %s", data)
	}
}

func TestBlockControlFlagsHas(t *testing.T) {
	cf := ReplicateBlock | LastBlock

	if !cf.Has(ReplicateBlock) || !cf.Has(LastBlock) {
		t.Fatal("set flags are missing")
	}
	if cf.Has(BlockEIDRefs) || cf.Has(DeleteBundle) {
		t.Fatal("unset flags are present")
	}
}
