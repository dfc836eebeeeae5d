// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"bytes"
	"errors"
	"testing"
)

func TestDictionaryDeduplication(t *testing.T) {
	dict := NewDictionary()

	refs := []EIDReference{
		dict.Reference(MustNewEndpointID("dtn:me")),
		dict.Reference(MustNewEndpointID("dtn:you")),
		dict.Reference(MustNewEndpointID("dtn:me")),
		dict.Reference(DtnNone()),
	}

	expectedRefs := []EIDReference{{0, 4}, {0, 7}, {0, 4}, {0, 11}}
	for i := range refs {
		if refs[i] != expectedRefs[i] {
			t.Fatalf("reference %d is %v, expected %v", i, refs[i], expectedRefs[i])
		}
	}

	expected := []byte("dtn\x00me\x00you\x00none\x00")
	if !bytes.Equal(dict.Bytes(), expected) {
		t.Fatalf("dictionary is %q, expected %q", dict.Bytes(), expected)
	}
	if dict.Len() != len(expected) {
		t.Fatalf("Len() = %d, expected %d", dict.Len(), len(expected))
	}
}

func TestDictionarySharedStrings(t *testing.T) {
	// A scheme name equal to another endpoint's SSP is stored once.
	dict := NewDictionary()
	a := dict.Reference(MustNewEndpointID("foo:bar"))
	b := dict.Reference(MustNewEndpointID("bar:foo"))

	if a.SchemeOffset != b.SspOffset || a.SspOffset != b.SchemeOffset {
		t.Fatalf("references %v and %v do not share offsets", a, b)
	}
	if dict.Len() != 8 {
		t.Fatalf("dictionary %q has not 8 bytes", dict.Bytes())
	}
}

func TestDictionaryResolve(t *testing.T) {
	dict := loadDictionary([]byte("dtn\x00//a/\x00ipn\x001.2\x00x\x00"))

	tests := []struct {
		ref     EIDReference
		eid     EndpointID
		wantErr bool
	}{
		{EIDReference{0, 4}, MustNewEndpointID("dtn://a/"), false},
		{EIDReference{9, 13}, NewIpnEndpoint(1, 2), false},
		{EIDReference{5, 9}, MustNewEndpointID("/a/:ipn"), false},
		{EIDReference{20, 0}, EndpointID{}, true},
		{EIDReference{0, 19}, EndpointID{}, true},
		{EIDReference{8, 0}, EndpointID{}, true},
		{EIDReference{9, 4}, EndpointID{}, true},
	}

	for _, test := range tests {
		eid, err := dict.Resolve(test.ref)
		if (err != nil) != test.wantErr {
			t.Fatalf("Resolve(%v) error = %v, wantErr %v", test.ref, err, test.wantErr)
		} else if err != nil {
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("Resolve(%v) error %v is no ErrFormat", test.ref, err)
			}
		} else if eid != test.eid {
			t.Fatalf("Resolve(%v) = %v, expected %v", test.ref, eid, test.eid)
		}
	}
}

func TestDictionaryUnterminated(t *testing.T) {
	dict := loadDictionary([]byte("dtn\x00none"))
	if _, err := dict.Lookup(4); !errors.Is(err, ErrFormat) {
		t.Fatalf("Lookup of an unterminated string returned %v", err)
	}
}

func TestEIDEncoderSelection(t *testing.T) {
	tests := []struct {
		name      string
		eids      []EndpointID
		blockRefs bool
		encoding  EIDEncoding
	}{
		{"ipn", []EndpointID{NewIpnEndpoint(2, 1), NewIpnEndpoint(1, 0), NewIpnEndpoint(1, 0), DtnNone()}, false, CBHEEncoding},
		{"all none", []EndpointID{DtnNone(), DtnNone(), DtnNone(), DtnNone()}, false, CBHEEncoding},
		{"block refs", []EndpointID{NewIpnEndpoint(2, 1), NewIpnEndpoint(1, 0), NewIpnEndpoint(1, 0), DtnNone()}, true, DictionaryEncoding},
		{"dtn", []EndpointID{MustNewEndpointID("dtn://a/"), NewIpnEndpoint(1, 0), NewIpnEndpoint(1, 0), DtnNone()}, false, DictionaryEncoding},
		{"ipn:0.0", []EndpointID{NewIpnEndpoint(0, 0), NewIpnEndpoint(1, 0), NewIpnEndpoint(1, 0), DtnNone()}, false, DictionaryEncoding},
		{"leading zero", []EndpointID{MustNewEndpointID("ipn:01.0"), NewIpnEndpoint(1, 0), NewIpnEndpoint(1, 0), DtnNone()}, false, DictionaryEncoding},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if enc := newEIDEncoder(test.eids, test.blockRefs).encoding(); enc != test.encoding {
				t.Fatalf("encoding is %v, expected %v", enc, test.encoding)
			}
		})
	}
}

func TestEIDCodecRoundTrip(t *testing.T) {
	eidSets := [][]EndpointID{
		{NewIpnEndpoint(2, 1), NewIpnEndpoint(1, 0), NewIpnEndpoint(1, 0), DtnNone()},
		{MustNewEndpointID("dtn:you"), MustNewEndpointID("dtn:me"), MustNewEndpointID("dtn:me"), DtnNone()},
		{NewIpnEndpoint(0, 0), NewIpnEndpoint(1<<40, 1<<20), MustNewEndpointID("dtn://foo/"), DtnNone()},
	}

	for _, eids := range eidSets {
		enc := newEIDEncoder(eids, false)

		var tuples [][2]uint64
		for _, eid := range eids {
			a, b, err := enc.encodeEID(eid)
			if err != nil {
				t.Fatal(err)
			}
			tuples = append(tuples, [2]uint64{a, b})
		}

		var dictBytes []byte
		if dict := enc.dictionary(); dict != nil {
			dictBytes = dict.Bytes()
		}

		dec := newEIDDecoder(dictBytes)
		if dec.encoding() != enc.encoding() {
			t.Fatalf("decoder uses %v, encoder %v", dec.encoding(), enc.encoding())
		}

		for i, tuple := range tuples {
			eid, err := dec.decodeEID(tuple[0], tuple[1])
			if err != nil {
				t.Fatal(err)
			} else if eid != eids[i] {
				t.Fatalf("decoded %v, expected %v", eid, eids[i])
			}
		}
	}
}

func TestCbheCodec(t *testing.T) {
	var codec cbheCodec

	if a, b, err := codec.encodeEID(DtnNone()); err != nil || a != 0 || b != 0 {
		t.Fatalf("dtn:none encoded as (%d, %d, %v)", a, b, err)
	}
	if a, b, err := codec.encodeEID(NewIpnEndpoint(23, 42)); err != nil || a != 23 || b != 42 {
		t.Fatalf("ipn:23.42 encoded as (%d, %d, %v)", a, b, err)
	}
	if _, _, err := codec.encodeEID(MustNewEndpointID("dtn://foo/")); err == nil {
		t.Fatal("dtn://foo/ was encoded by CBHE")
	}

	if eid, _ := codec.decodeEID(0, 0); !eid.IsNone() {
		t.Fatalf("(0, 0) decoded as %v", eid)
	}
	if eid, _ := codec.decodeEID(0, 1); eid != NewIpnEndpoint(0, 1) {
		t.Fatalf("(0, 1) decoded as %v", eid)
	}
}
