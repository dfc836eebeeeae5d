// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// DtnTime is an integer indicating the seconds elapsed since the start of the
// year 2000 on the UTC scale.
type DtnTime uint64

const (
	seconds1970To2k = 946684800

	// DtnTimeEpoch represents the zero timestamp/epoch.
	DtnTimeEpoch DtnTime = 0
)

// Unix returns the Unix timestamp for this DtnTime.
func (t DtnTime) Unix() int64 {
	return int64(t) + seconds1970To2k
}

// Time returns a UTC-based time.Time for this DtnTime.
func (t DtnTime) Time() time.Time {
	return time.Unix(t.Unix(), 0).UTC()
}

// String returns this DtnTime's string representation.
func (t DtnTime) String() string {
	return t.Time().Format("2006-01-02 15:04:05")
}

// DtnTimeFromTime returns the DtnTime for the time.Time. Points in time
// before the DTN epoch are mapped to the epoch.
func DtnTimeFromTime(t time.Time) DtnTime {
	unix := t.UTC().Unix()
	if unix < seconds1970To2k {
		return DtnTimeEpoch
	}
	return DtnTime(unix - seconds1970To2k)
}

// DtnTimeNow returns the current (UTC) time as DtnTime.
func DtnTimeNow() DtnTime {
	return DtnTimeFromTime(time.Now())
}

// CreationTimestamp is a tuple of a DtnTime and a sequence number (to differ
// bundles with the same DtnTime (seconds) from the same endpoint).
type CreationTimestamp [2]uint64

// NewCreationTimestamp creates a new creation timestamp from a given DTN time
// and a sequence number, resulting in a hopefully unique tuple.
func NewCreationTimestamp(time DtnTime, sequence uint64) CreationTimestamp {
	return [2]uint64{uint64(time), sequence}
}

// DtnTime returns the creation timestamp's DTN time part.
func (ct CreationTimestamp) DtnTime() DtnTime {
	return DtnTime(ct[0])
}

// IsZeroTime returns if the time part is set to zero, indicating the lack of
// an accurate clock.
func (ct CreationTimestamp) IsZeroTime() bool {
	return ct.DtnTime() == DtnTimeEpoch
}

// SequenceNumber returns the creation timestamp's sequence number.
func (ct CreationTimestamp) SequenceNumber() uint64 {
	return ct[1]
}

func (ct CreationTimestamp) String() string {
	return fmt.Sprintf("(%v, %d)", DtnTime(ct[0]), ct[1])
}

// MarshalJSON creates a JSON object representing this CreationTimestamp.
func (ct CreationTimestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Date string `json:"date"`
		Secs uint64 `json:"seconds"`
		Seq  uint64 `json:"sequenceNo"`
	}{
		Date: ct.DtnTime().String(),
		Secs: ct[0],
		Seq:  ct.SequenceNumber(),
	})
}

// SequenceCounter hands out increasing creation timestamp sequence numbers.
// It is owned by whoever creates bundles; its zero value is ready to use and
// it is safe for concurrent use.
type SequenceCounter struct {
	mutex sync.Mutex
	next  uint64
}

// NewSequenceCounter starting at the given sequence number.
func NewSequenceCounter(start uint64) *SequenceCounter {
	return &SequenceCounter{next: start}
}

// Next returns the next sequence number.
func (sc *SequenceCounter) Next() (seq uint64) {
	sc.mutex.Lock()
	seq = sc.next
	sc.next++
	sc.mutex.Unlock()

	return
}

// Timestamp creates a CreationTimestamp for the given time and the next
// sequence number.
func (sc *SequenceCounter) Timestamp(t DtnTime) CreationTimestamp {
	return NewCreationTimestamp(t, sc.Next())
}
