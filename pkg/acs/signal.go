// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package acs

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dtn7/dtn7-bpv6/pkg/bpv6"
	"github.com/dtn7/dtn7-bpv6/pkg/sdnv"
)

// ErrNotAcs marks an administrative record of another type.
var ErrNotAcs = errors.New("not an aggregate custody signal")

const statusSucceeded = 0x80

// Signal is an Aggregate Custody Signal, acknowledging or refusing custody
// for a set of custody IDs. Its Fills are always sorted and merged.
type Signal struct {
	Succeeded bool
	Reason    Reason

	fills []Fill
}

// NewSignal creates an empty Signal.
func NewSignal(succeeded bool, reason Reason) Signal {
	return Signal{Succeeded: succeeded, Reason: reason}
}

// NewSignalFromID creates a Signal for a single custody ID.
func NewSignalFromID(succeeded bool, reason Reason, id uint64) Signal {
	s := NewSignal(succeeded, reason)
	s.Add(id)
	return s
}

// Add a custody ID to this Signal.
func (s *Signal) Add(id uint64) {
	s.AddFill(Fill{Start: id, End: id})
}

// AddFill adds a range of custody IDs to this Signal.
func (s *Signal) AddFill(f Fill) {
	s.fills = MergeFills(append(s.Fills(), f))
}

// Fills returns a copy of this Signal's sorted and merged Fills.
func (s Signal) Fills() []Fill {
	return append([]Fill(nil), s.fills...)
}

// LengthFills returns this Signal's Fills in their wire form.
func (s Signal) LengthFills() []LengthFill {
	return FillsToLengthFills(s.fills)
}

// CustodyIDs returns all custody IDs in ascending order.
func (s Signal) CustodyIDs() []uint64 {
	return FillsToList(s.fills)
}

// Contains checks if a custody ID is part of this Signal.
func (s Signal) Contains(id uint64) bool {
	i := sort.Search(len(s.fills), func(i int) bool { return s.fills[i].End >= id })
	return i < len(s.fills) && s.fills[i].Contains(id)
}

// Len returns the number of custody IDs.
func (s Signal) Len() (n uint64) {
	for _, f := range s.fills {
		n += f.Len()
	}
	return
}

// Equal checks if both Signals share their status, reason and Fills.
func (s Signal) Equal(other Signal) bool {
	if s.Succeeded != other.Succeeded || s.Reason != other.Reason || len(s.fills) != len(other.fills) {
		return false
	}

	for i := range s.fills {
		if s.fills[i] != other.fills[i] {
			return false
		}
	}
	return true
}

func (s Signal) status() byte {
	status := byte(s.Reason) & reasonMask
	if s.Succeeded {
		status |= statusSucceeded
	}
	return status
}

// MarshalBinary serializes this Signal as an administrative record: the
// record header, the status byte and the Fills as delta and length SDNVs.
func (s Signal) MarshalBinary() ([]byte, error) {
	lfs := s.LengthFills()

	buf := make([]byte, 0, 2+len(lfs)*2*sdnv.MaxLen)
	buf = append(buf,
		bpv6.NewAdministrativeRecordHeader(bpv6.AdminRecordTypeAggregateCustodySignal, 0),
		s.status())

	for _, lf := range lfs {
		buf = sdnv.Append(buf, lf.Delta)
		buf = sdnv.Append(buf, lf.Length)
	}

	return buf, nil
}

// Split this Signal into Signals whose serialized form does not exceed
// maxSize bytes. Each part holds at least one Fill, so a single Fill larger
// than maxSize is still returned on its own. A maxSize of zero or less
// disables splitting.
func (s Signal) Split(maxSize int) []Signal {
	if maxSize <= 0 || len(s.fills) == 0 {
		return []Signal{{Succeeded: s.Succeeded, Reason: s.Reason, fills: s.Fills()}}
	}

	var (
		parts   []Signal
		part    = NewSignal(s.Succeeded, s.Reason)
		size    = 2
		prevEnd uint64
	)

	for _, f := range s.fills {
		delta := f.Start - prevEnd
		if len(part.fills) == 0 {
			delta = f.Start
		}
		fillSize := sdnv.Len(delta) + sdnv.Len(f.Len())

		if len(part.fills) > 0 && size+fillSize > maxSize {
			parts = append(parts, part)
			part = NewSignal(s.Succeeded, s.Reason)
			size = 2
			fillSize = sdnv.Len(f.Start) + sdnv.Len(f.Len())
		}

		part.fills = append(part.fills, f)
		size += fillSize
		prevEnd = f.End
	}

	return append(parts, part)
}

// Unserialize an administrative record into a Signal. Records of another type
// result in ErrNotAcs. The Fills are merged again instead of trusting the
// sender.
func Unserialize(data []byte) (s Signal, err error) {
	if len(data) == 0 {
		err = fmt.Errorf("aggregate custody signal header: %w", bpv6.ErrTruncated)
		return
	}

	recordType, flags := bpv6.ParseAdministrativeRecordHeader(data[0])
	if recordType != bpv6.AdminRecordTypeAggregateCustodySignal {
		err = fmt.Errorf("%w: %v", ErrNotAcs, recordType)
		return
	} else if flags != 0 {
		err = fmt.Errorf("%w: aggregate custody signal with record flags %x", bpv6.ErrFormat, uint8(flags))
		return
	} else if len(data) < 2 {
		err = fmt.Errorf("aggregate custody signal status: %w", bpv6.ErrTruncated)
		return
	}

	status := data[1]
	r := sdnv.NewReader(data[2:])

	s.Succeeded = status&statusSucceeded != 0
	s.Reason = Reason(status & reasonMask)

	var lfs []LengthFill
	for r.Len() > 0 {
		lf := LengthFill{Delta: r.Uint(), Length: r.Uint()}
		if err = r.Err(); err != nil {
			err = fmt.Errorf("aggregate custody signal fill %d: %w", len(lfs), err)
			return
		}
		lfs = append(lfs, lf)
	}

	fills, err := LengthFillsToFills(lfs)
	if err != nil {
		return
	}

	s.fills = MergeFills(fills)
	return
}

// ToBundle wraps this Signal into an administrative record bundle from the
// source to the custodian whose custody IDs are signaled.
func (s Signal) ToBundle(source, custodian bpv6.EndpointID, ts bpv6.CreationTimestamp, lifetime uint64) (bpv6.Bundle, error) {
	payload, err := s.MarshalBinary()
	if err != nil {
		return bpv6.Bundle{}, err
	}

	return bpv6.Builder().
		Source(source).
		Destination(custodian).
		CreationTimestamp(ts).
		Lifetime(lifetime).
		BundleCtrlFlags(bpv6.AdministrativeRecordPayload | bpv6.SingletonDestination).
		PayloadBlock(payload).
		Build()
}

// FromBundle reads the Signal of an administrative record bundle.
func FromBundle(b bpv6.Bundle) (Signal, error) {
	if _, _, _, err := b.AdministrativeRecord(); err != nil {
		return Signal{}, err
	}
	return Unserialize(b.Payload())
}

// String prints this Signal as "SACK: 0(2) +3(1)", the absolute start and the
// length of each Fill.
func (s Signal) String() string {
	var b strings.Builder

	if s.Succeeded {
		b.WriteString("SACK: ")
	} else {
		_, _ = fmt.Fprintf(&b, "SNACK (%v): ", s.Reason)
	}

	for i, f := range s.fills {
		if i > 0 {
			b.WriteString(" +")
		}
		_, _ = fmt.Fprintf(&b, "%d(%d)", f.Start, f.Len())
	}

	return b.String()
}
