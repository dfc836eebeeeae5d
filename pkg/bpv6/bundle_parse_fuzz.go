// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build gofuzz
// +build gofuzz

package bpv6

func Fuzz(data []byte) int {
	// Make sure go-fuzz has the right start
	if len(data) > 0 && data[0] != DtnVersion {
		return -1
	}

	b, err := ParseBundle(data)
	if err != nil {
		return 0
	}

	if _, err = b.MarshalBinary(); err != nil {
		panic(err)
	}

	return 1
}
