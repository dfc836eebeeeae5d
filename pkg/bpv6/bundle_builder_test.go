// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"bytes"
	"reflect"
	"testing"
	"time"
)

func TestBundleBuilderSimple(t *testing.T) {
	var counter SequenceCounter

	bndl, err := Builder().
		Source("dtn://myself/").
		Destination("dtn://dest/").
		CreationTimestampEpoch(&counter).
		Lifetime("10m").
		StatusReports(StatusRequestDelivery).
		PreviousHopBlock("ipn:23.42").
		PayloadBlock([]byte("hello world!")).
		Build()

	if err != nil {
		t.Fatalf("Builder erred: %v", err)
	}

	data, err := bndl.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	bndl2, err := ParseBundle(data)
	if err != nil {
		t.Fatal(err)
	}

	bndl3, err := NewBundle(
		NewPrimaryBlock(
			0,
			MustNewEndpointID("dtn://dest/"),
			MustNewEndpointID("dtn://myself/"),
			NewCreationTimestamp(DtnTimeEpoch, 0),
			600),
		[]CanonicalBlock{
			NewCanonicalBlock(PreviousHopBlockType, 0, []byte("ipn\x0023.42\x00")),
			NewPayloadBlock(0, []byte("hello world!"))})
	if err != nil {
		t.Fatal(err)
	}
	bndl3.PrimaryBlock.StatusReports = StatusRequestDelivery

	data3, err := bndl3.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(data, data3) {
		t.Fatalf("serialization has changed:\n%x\n%x", data, data3)
	}

	if !reflect.DeepEqual(bndl.PrimaryBlock, bndl2.PrimaryBlock) {
		t.Fatalf("primary block changed after serialization: %v, %v", bndl.PrimaryBlock, bndl2.PrimaryBlock)
	}
	if !reflect.DeepEqual(bndl, bndl3) {
		t.Fatalf("Bundles differ: %v, %v", bndl, bndl3)
	}

	if prevHop, ok, err := bndl2.PreviousHop(); err != nil || !ok || prevHop != NewIpnEndpoint(23, 42) {
		t.Fatalf("previous hop %v, %t, %v", prevHop, ok, err)
	}
}

func TestBundleBuilderDefaults(t *testing.T) {
	bndl, err := Builder().
		Source(NewIpnEndpoint(1, 0)).
		Destination("ipn:2.1").
		CreationTimestamp(NewCreationTimestamp(1000, 3)).
		Lifetime(time.Hour).
		PayloadBlock("payload").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	pb := bndl.PrimaryBlock
	if pb.ReportTo != pb.SourceNode {
		t.Fatalf("report-to %v differs from the source", pb.ReportTo)
	}
	if !pb.Custodian.IsNone() {
		t.Fatalf("custodian is %v", pb.Custodian)
	}
	if pb.Lifetime != 3600 || pb.CreationTimestamp != NewCreationTimestamp(1000, 3) {
		t.Fatalf("lifetime %d, timestamp %v", pb.Lifetime, pb.CreationTimestamp)
	}
	if pb.Priority != Bulk || pb.Version != DtnVersion {
		t.Fatalf("priority %v, version %d", pb.Priority, pb.Version)
	}
	if string(bndl.Payload()) != "payload" {
		t.Fatalf("payload %q", bndl.Payload())
	}
}

func TestBundleBuilderSequence(t *testing.T) {
	counter := NewSequenceCounter(10)

	for i := uint64(10); i < 13; i++ {
		bndl, err := Builder().
			Source("ipn:1.0").
			Destination("ipn:2.0").
			CreationTimestampTime(time.Date(2010, 8, 5, 15, 41, 56, 0, time.UTC), counter).
			Lifetime(60).
			Build()
		if err != nil {
			t.Fatal(err)
		}

		if ts := bndl.PrimaryBlock.CreationTimestamp; ts != NewCreationTimestamp(334338116, i) {
			t.Fatalf("timestamp %v", ts)
		}
	}
}

func TestBundleBuilderFragment(t *testing.T) {
	bndl, err := Builder().
		Source("ipn:1.0").
		Destination("ipn:2.0").
		CreationTimestampEpoch(nil).
		Lifetime(60).
		Priority(Normal).
		Fragment(100, 1000).
		PayloadBlock([]byte("fragment")).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	id := bndl.ID()
	if !id.IsFragment || id.FragmentOffset != 100 || id.FragmentLength != 8 {
		t.Fatalf("bundle ID %v", id)
	}
	if s := id.String(); s != "ipn:1.0-0-0-100-8" {
		t.Fatalf("bundle ID string %q", s)
	}
	if id.Scrub().String() != "ipn:1.0-0-0" {
		t.Fatalf("scrubbed bundle ID %v", id.Scrub())
	}
}

func TestBundleBuilderErrors(t *testing.T) {
	tests := []struct {
		name string
		bldr *BundleBuilder
	}{
		{"no source", Builder().Destination("ipn:2.0").Lifetime(60)},
		{"no destination", Builder().Source("ipn:1.0").Lifetime(60)},
		{"invalid endpoint", Builder().Source("ipn:foo").Destination("ipn:2.0")},
		{"endpoint type", Builder().Source(23).Destination("ipn:2.0")},
		{"lifetime", Builder().Source("ipn:1.0").Destination("ipn:2.0").Lifetime("-1m")},
		{"canonical arity", Builder().Source("ipn:1.0").Destination("ipn:2.0").Canonical(MetadataBlockType)},
		{"canonical types", Builder().Source("ipn:1.0").Destination("ipn:2.0").Canonical(8, []byte{})},
		{"payload type", Builder().Source("ipn:1.0").Destination("ipn:2.0").PayloadBlock(23)},
		{"previous hop", Builder().Source("ipn:1.0").Destination("ipn:2.0").PreviousHopBlock()},
		{"invalid flags", Builder().Source("ipn:1.0").Destination("ipn:2.0").BundleCtrlFlags(IsFragment | MustNotFragmented)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := test.bldr.Build(); err == nil {
				t.Fatal("Build did not err")
			}
		})
	}
}

func TestBldrParseEndpoint(t *testing.T) {
	eidIn, _ := NewEndpointID("dtn://foo/bar/")
	if eidTmp, _ := bldrParseEndpoint(eidIn); eidTmp != eidIn {
		t.Fatalf("Endpoint does not match: %v != %v", eidTmp, eidIn)
	}

	if eidTmp, _ := bldrParseEndpoint("dtn://foo/bar/"); eidTmp != eidIn {
		t.Fatalf("Parsed endpoint does not match: %v != %v", eidTmp, eidIn)
	}

	if _, errTmp := bldrParseEndpoint(23.42); errTmp == nil {
		t.Fatalf("Invalid endpoint type does not resulted in an error")
	}
}

func TestBldrParseLifetime(t *testing.T) {
	tests := []struct {
		val  interface{}
		secs uint64
		err  bool
	}{
		{1000, 1000, false},
		{uint64(1000), 1000, false},
		{uint(1000), 1000, false},
		{"1000ms", 1, false},
		{"1s", 1, false},
		{"1m", 60, false},
		{"24h", 86400, false},
		{time.Second, 1, false},
		{10 * time.Minute, 600, false},
		{-23, 0, true},
		{"-10m", 0, true},
		{time.Duration(0), 0, true},
		{true, 0, true},
	}

	for _, test := range tests {
		secs, err := bldrParseLifetime(test.val)

		if test.err == (err == nil) {
			t.Fatalf("Error value for %v was unexpected: %v != %v", test.val, test.err, err)
		}

		if secs != test.secs {
			t.Fatalf("Value for %v was unexpected: %v != %v", test.val, secs, test.secs)
		}
	}
}
