// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"sync"
	"testing"
	"time"
)

func TestDtnTime(t *testing.T) {
	tests := []struct {
		dtntime DtnTime
		unix    int64
		str     string
	}{
		{0, 946684800, "2000-01-01 00:00:00"},
		{1, 946684801, "2000-01-01 00:00:01"},
		{334338116, 1281022916, "2010-08-05 15:41:56"},
	}

	for _, test := range tests {
		if unix := test.dtntime.Unix(); unix != test.unix {
			t.Errorf("DtnTime %d: Unix() = %d, expected %d", test.dtntime, unix, test.unix)
		}
		if str := test.dtntime.String(); str != test.str {
			t.Errorf("DtnTime %d: String() = %q, expected %q", test.dtntime, str, test.str)
		}
		if dt := DtnTimeFromTime(test.dtntime.Time()); dt != test.dtntime {
			t.Errorf("DtnTime %d: round trip resulted in %d", test.dtntime, dt)
		}
	}
}

func TestDtnTimeBeforeEpoch(t *testing.T) {
	if dt := DtnTimeFromTime(time.Unix(0, 0)); dt != DtnTimeEpoch {
		t.Fatalf("1970 resulted in %d", dt)
	}
}

func TestCreationTimestamp(t *testing.T) {
	ct := NewCreationTimestamp(334338116, 1)

	if ct.DtnTime() != 334338116 || ct.SequenceNumber() != 1 {
		t.Fatalf("CreationTimestamp %v has wrong fields", ct)
	}
	if ct.IsZeroTime() {
		t.Fatal("CreationTimestamp has a zero time")
	}
	if !NewCreationTimestamp(DtnTimeEpoch, 5).IsZeroTime() {
		t.Fatal("epoch CreationTimestamp has no zero time")
	}
}

func TestSequenceCounter(t *testing.T) {
	var counter SequenceCounter

	for i := uint64(0); i < 5; i++ {
		if seq := counter.Next(); seq != i {
			t.Fatalf("sequence number %d, expected %d", seq, i)
		}
	}

	ts := counter.Timestamp(42)
	if ts != NewCreationTimestamp(42, 5) {
		t.Fatalf("timestamp %v", ts)
	}

	if seq := NewSequenceCounter(100).Next(); seq != 100 {
		t.Fatalf("counter starting at 100 returned %d", seq)
	}
}

func TestSequenceCounterConcurrent(t *testing.T) {
	const workers, rounds = 8, 1000

	var (
		counter SequenceCounter
		seen    sync.Map
		wg      sync.WaitGroup
	)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				if _, dup := seen.LoadOrStore(counter.Next(), true); dup {
					t.Error("sequence number handed out twice")
				}
			}
		}()
	}
	wg.Wait()

	if next := counter.Next(); next != workers*rounds {
		t.Fatalf("next sequence number is %d", next)
	}
}
