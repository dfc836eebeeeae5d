// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package acs

import (
	"fmt"
	"math"
	"sort"

	"github.com/dtn7/dtn7-bpv6/pkg/bpv6"
)

// ListToFills compacts custody IDs into the minimal list of sorted Fills.
// Duplicates are ignored and the input is left untouched.
func ListToFills(ids []uint64) (fills []Fill) {
	if len(ids) == 0 {
		return
	}

	sorted := append([]uint64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	cur := Fill{Start: sorted[0], End: sorted[0]}
	for _, id := range sorted[1:] {
		switch {
		case id == cur.End:
			continue
		case id == cur.End+1:
			cur.End = id
		default:
			fills = append(fills, cur)
			cur = Fill{Start: id, End: id}
		}
	}

	return append(fills, cur)
}

// FillsToList expands Fills into their custody IDs.
func FillsToList(fills []Fill) (ids []uint64) {
	for _, f := range fills {
		for id := f.Start; ; id++ {
			ids = append(ids, id)
			if id == f.End {
				break
			}
		}
	}
	return
}

// FillsToLengthFills converts sorted and merged Fills into their wire form.
func FillsToLengthFills(fills []Fill) []LengthFill {
	lfs := make([]LengthFill, 0, len(fills))

	var prevEnd uint64
	for i, f := range fills {
		delta := f.Start
		if i > 0 {
			delta = f.Start - prevEnd
		}

		lfs = append(lfs, LengthFill{Delta: delta, Length: f.Len()})
		prevEnd = f.End
	}

	return lfs
}

// LengthFillsToFills converts the wire form back into absolute Fills. A zero
// length or a Fill exceeding the uint64 range results in an ErrFormat.
func LengthFillsToFills(lfs []LengthFill) ([]Fill, error) {
	fills := make([]Fill, 0, len(lfs))

	var prevEnd uint64
	for i, lf := range lfs {
		if lf.Length == 0 {
			return nil, fmt.Errorf("%w: fill %d has length zero", bpv6.ErrFormat, i)
		}

		start := lf.Delta
		if i > 0 {
			if lf.Delta > math.MaxUint64-prevEnd {
				return nil, fmt.Errorf("%w: fill %d starts beyond the custody ID range", bpv6.ErrFormat, i)
			}
			start = prevEnd + lf.Delta
		}

		if lf.Length-1 > math.MaxUint64-start {
			return nil, fmt.Errorf("%w: fill %d ends beyond the custody ID range", bpv6.ErrFormat, i)
		}

		f := Fill{Start: start, End: start + lf.Length - 1}
		fills = append(fills, f)
		prevEnd = f.End
	}

	return fills, nil
}

// ListToLengthFills compacts custody IDs directly into the wire form.
func ListToLengthFills(ids []uint64) []LengthFill {
	return FillsToLengthFills(ListToFills(ids))
}

// LengthFillsToList expands the wire form into custody IDs.
func LengthFillsToList(lfs []LengthFill) ([]uint64, error) {
	fills, err := LengthFillsToFills(lfs)
	if err != nil {
		return nil, err
	}
	return FillsToList(fills), nil
}

// MergeFills sorts the Fills and joins overlapping and adjacent ones. The
// input is left untouched.
func MergeFills(fills []Fill) (merged []Fill) {
	if len(fills) == 0 {
		return
	}

	sorted := append([]Fill(nil), fills...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	cur := sorted[0]
	for _, f := range sorted[1:] {
		if cur.End == math.MaxUint64 || cur.End+1 >= f.Start {
			if f.End > cur.End {
				cur.End = f.End
			}
			continue
		}

		merged = append(merged, cur)
		cur = f
	}

	return append(merged, cur)
}

// MergeLengthFills merges Fills in their wire form.
func MergeLengthFills(lfs []LengthFill) ([]LengthFill, error) {
	fills, err := LengthFillsToFills(lfs)
	if err != nil {
		return nil, err
	}
	return FillsToLengthFills(MergeFills(fills)), nil
}
