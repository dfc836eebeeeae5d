// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package acs implements Aggregate Custody Signals (ACS) for the Bundle
// Protocol version 6 together with the Custody Transfer Enhancement Block
// (CTEB), which assigns a custody ID to each bundle.
//
// An ACS acknowledges or refuses custody of many bundles at once. Their custody
// IDs are compacted into Fills, closed intervals of consecutive IDs, which are
// written as SDNV pairs of a delta to the previous Fill and a length.
//
//	signal := acs.NewSignalFromID(true, acs.NoAdditionalInfo, 23)
//	signal.Add(24)
//	signal.Add(42)
//
//	data, _ := signal.MarshalBinary()
//	signal2, err := acs.Unserialize(data)
//
// An Aggregator collects incoming custody bundles per custodian and creates
// the ACS bundles for them.
package acs
