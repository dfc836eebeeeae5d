// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bpv6 provides a codec for Bundles as defined in the Bundle Protocol
// Version 6 (RFC 5050) together with the Compressed Bundle Header Encoding
// (RFC 6260). This includes Bundle creation, serialization and deserialization.
//
// The easiest way to create new Bundles is to use the BundleBuilder.
//
//	var counter bpv6.SequenceCounter
//
//	bundle, err := bpv6.Builder().
//	  Source("ipn:1.0").
//	  Destination("ipn:2.1").
//	  CreationTimestampNow(&counter).
//	  Lifetime(24 * time.Hour).
//	  PayloadBlock([]byte("hello world!")).
//	  Build()
//
// Bundles are serialized by MarshalBinary and read back by ParseBundle. Four
// endpoints of the primary block are either encoded through a string
// dictionary or, if all of them are "ipn" endpoints or dtn:none, as CBHE
// node and service numbers.
//
//	data, err1 := bundle.MarshalBinary()
//	b2, err2 := bpv6.ParseBundle(data)
package bpv6
