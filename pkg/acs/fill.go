// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package acs

import "fmt"

// Fill is a closed interval [Start, End] of custody IDs.
type Fill struct {
	Start uint64
	End   uint64
}

// NewFill creates a Fill, which requires start <= end.
func NewFill(start, end uint64) (f Fill, err error) {
	if start > end {
		err = fmt.Errorf("fill start %d exceeds its end %d", start, end)
		return
	}

	f = Fill{Start: start, End: end}
	return
}

// Len is the number of custody IDs within this Fill. The Fill of the whole
// uint64 range overflows to zero.
func (f Fill) Len() uint64 {
	return f.End - f.Start + 1
}

// Contains checks if a custody ID lies within this Fill.
func (f Fill) Contains(id uint64) bool {
	return f.Start <= id && id <= f.End
}

func (f Fill) String() string {
	if f.Start == f.End {
		return fmt.Sprintf("[%d]", f.Start)
	}
	return fmt.Sprintf("[%d, %d]", f.Start, f.End)
}

// LengthFill is the wire representation of a Fill. The first LengthFill's
// Delta is the absolute start, every following Delta is the distance to the
// previous Fill's End.
type LengthFill struct {
	Delta  uint64
	Length uint64
}

func (lf LengthFill) String() string {
	return fmt.Sprintf("%d(%d)", lf.Delta, lf.Length)
}
