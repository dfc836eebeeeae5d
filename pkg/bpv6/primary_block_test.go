// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/dtn7/dtn7-bpv6/pkg/sdnv"
)

func TestEncodePrimaryBlockDictionary(t *testing.T) {
	pb := NewPrimaryBlock(
		CustodyTransferRequested|SingletonDestination,
		MustNewEndpointID("dtn:you"), MustNewEndpointID("dtn:me"),
		NewCreationTimestamp(1000, 7), 3600)
	pb.StatusReports = StatusRequestDelivery | StatusRequestDeletion

	expected := []byte{
		0x06, 0x98, 0x80, 0x18, 0x1e, 0x00, 0x04, 0x00, 0x08, 0x00, 0x08, 0x00,
		0x0b, 0x87, 0x68, 0x07, 0x9c, 0x10, 0x10, 0x64, 0x74, 0x6e, 0x00, 0x79,
		0x6f, 0x75, 0x00, 0x6d, 0x65, 0x00, 0x6e, 0x6f, 0x6e, 0x65, 0x00,
	}

	data, err := EncodePrimaryBlock(pb)
	if err != nil {
		t.Fatal(err)
	} else if !bytes.Equal(data, expected) {
		t.Fatalf("encoded\n%x\nexpected\n%x", data, expected)
	}

	pb2, codec, err := parsePrimaryBlock(sdnv.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if codec.encoding() != DictionaryEncoding {
		t.Fatalf("decoded with %v", codec.encoding())
	}
	if !reflect.DeepEqual(pb, pb2) {
		t.Fatalf("decoded\n%v\nexpected\n%v", pb2, pb)
	}
}

func TestEncodePrimaryBlockCbheFragment(t *testing.T) {
	pb := NewPrimaryBlock(
		SingletonDestination,
		NewIpnEndpoint(2, 1), NewIpnEndpoint(1, 0),
		NewCreationTimestamp(1000, 7), 3600)
	pb.BundleControlFlags |= IsFragment
	pb.FragmentOffset = 10
	pb.TotalADULength = 100

	expected := []byte{
		0x06, 0x11, 0x10, 0x02, 0x01, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x87,
		0x68, 0x07, 0x9c, 0x10, 0x00, 0x0a, 0x64,
	}

	data, err := EncodePrimaryBlock(pb)
	if err != nil {
		t.Fatal(err)
	} else if !bytes.Equal(data, expected) {
		t.Fatalf("encoded\n%x\nexpected\n%x", data, expected)
	}

	pb2, codec, err := parsePrimaryBlock(sdnv.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if codec.encoding() != CBHEEncoding {
		t.Fatalf("decoded with %v", codec.encoding())
	}
	if !reflect.DeepEqual(pb, pb2) {
		t.Fatalf("decoded\n%v\nexpected\n%v", pb2, pb)
	}
}

func TestParsePrimaryBlockErrors(t *testing.T) {
	valid := []byte{
		0x06, 0x11, 0x10, 0x02, 0x01, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x87,
		0x68, 0x07, 0x9c, 0x10, 0x00, 0x0a, 0x64,
	}

	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"empty", []byte{}, ErrTruncated},
		{"version 7", append([]byte{0x07}, valid[1:]...), ErrFormat},
		{"unterminated flags", []byte{0x06, 0x81}, ErrTruncated},
		{"short body", valid[:len(valid)-1], ErrTruncated},
		// Body length 17 instead of 16 and one more byte.
		{"trailing body", append(append([]byte{0x06, 0x11, 0x11}, valid[3:]...), 0x00), ErrFormat},
		// Body length 14, missing the fragment fields.
		{"missing fragment", append([]byte{0x06, 0x11, 0x0e}, valid[3:17]...), ErrTruncated},
		// Dictionary of two bytes without a terminator.
		{"bad dictionary", []byte{0x06, 0x00, 0x0e, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x02, 'a', 'b'}, ErrFormat},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := parsePrimaryBlock(sdnv.NewReader(test.data))
			if !errors.Is(err, test.err) {
				t.Fatalf("error %v is not %v", err, test.err)
			}
		})
	}
}

func TestPrimaryBlockCheckValid(t *testing.T) {
	ipn1, ipn2 := NewIpnEndpoint(1, 0), NewIpnEndpoint(2, 1)

	tests := []struct {
		name  string
		pb    PrimaryBlock
		valid bool
	}{
		{"default", NewPrimaryBlock(0, ipn2, ipn1, NewCreationTimestamp(1, 0), 60), true},
		{"wrong version", PrimaryBlock{Version: 7, Destination: ipn2, SourceNode: ipn1, ReportTo: ipn1, Custodian: DtnNone()}, false},
		{"fragment not fragmented", NewPrimaryBlock(IsFragment|MustNotFragmented, ipn2, ipn1, NewCreationTimestamp(1, 0), 60), false},
		{"unset custodian", PrimaryBlock{Version: DtnVersion, Destination: ipn2, SourceNode: ipn1, ReportTo: ipn1}, false},
		{"anonymous custody", NewPrimaryBlock(CustodyTransferRequested, ipn2, DtnNone(), NewCreationTimestamp(1, 0), 60), false},
		{"reserved priority", func() PrimaryBlock {
			pb := NewPrimaryBlock(0, ipn2, ipn1, NewCreationTimestamp(1, 0), 60)
			pb.Priority = 3
			return pb
		}(), false},
		{"admin record with reports", func() PrimaryBlock {
			pb := NewPrimaryBlock(AdministrativeRecordPayload, ipn2, ipn1, NewCreationTimestamp(1, 0), 60)
			pb.StatusReports = StatusRequestDelivery
			return pb
		}(), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.pb.CheckValid(); (err == nil) != test.valid {
				t.Fatalf("expected valid %t, got %v", test.valid, err)
			}
		})
	}
}
