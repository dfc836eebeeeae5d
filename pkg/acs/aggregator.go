// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package acs

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/dtn7/dtn7-bpv6/pkg/bpv6"
)

var (
	// ErrDuplicate is returned if a custody ID was already noted for the same
	// custodian, status and reason.
	ErrDuplicate = errors.New("custody ID already signaled")

	// ErrNoCteb is returned for bundles without a valid CTEB.
	ErrNoCteb = errors.New("no valid custody transfer enhancement block")
)

type signalKey struct {
	succeeded bool
	reason    Reason
}

// Aggregator collects custody decisions for bundles carrying a CTEB. For each
// current custodian, one pending Signal per status and reason is kept until it
// is taken. An Aggregator is safe for concurrent use.
type Aggregator struct {
	mutex   sync.Mutex
	pending map[string]map[signalKey]*Signal

	counter       bpv6.SequenceCounter
	maxSignalSize int
}

// DefaultSignalSize is ION's default limit for a serialized Signal in bytes.
const DefaultSignalSize = 300

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{pending: make(map[string]map[signalKey]*Signal)}
}

// SetMaxSignalSize limits each Signal created by Bundles to size bytes. Larger
// Signals are split into multiple bundles. Zero disables the limit.
func (agg *Aggregator) SetMaxSignalSize(size int) {
	agg.mutex.Lock()
	defer agg.mutex.Unlock()

	agg.maxSignalSize = size
}

// Note the custody decision for a bundle. The bundle's CTEB must be valid for
// its current custodian, otherwise an error wrapping ErrNoCteb is returned and
// a classic custody signal must be sent instead. A custody ID which is already
// pending results in ErrDuplicate.
func (agg *Aggregator) Note(b bpv6.Bundle, succeeded bool, reason Reason) error {
	cteb, ok, err := ExtractCteb(b)
	if err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("bundle %v: %w", b.ID(), ErrNoCteb)
	} else if !cteb.ValidFor(b) {
		return fmt.Errorf("bundle %v: %w, %v differs from custodian %v",
			b.ID(), ErrNoCteb, cteb, b.PrimaryBlock.Custodian)
	}

	key := signalKey{succeeded: succeeded, reason: reason & reasonMask}
	logger := log.WithFields(log.Fields{
		"bundle":     b.ID(),
		"custodian":  cteb.Custodian,
		"custody id": cteb.CustodyID,
		"succeeded":  succeeded,
		"reason":     key.reason,
	})

	agg.mutex.Lock()
	defer agg.mutex.Unlock()

	signals, ok := agg.pending[cteb.Custodian]
	if !ok {
		signals = make(map[signalKey]*Signal)
		agg.pending[cteb.Custodian] = signals
	}

	signal, ok := signals[key]
	if !ok {
		s := NewSignal(succeeded, key.reason)
		signal = &s
		signals[key] = signal
	} else if signal.Contains(cteb.CustodyID) {
		logger.WithField("signal", signal).Info("Duplicate aggregate custody signal, ignored")
		return fmt.Errorf("%w: %d for %s", ErrDuplicate, cteb.CustodyID, cteb.Custodian)
	}

	signal.Add(cteb.CustodyID)
	logger.WithField("signal", signal).Debug("Appended custody ID to aggregate custody signal")

	return nil
}

// Custodians returns all custodians with pending Signals, sorted.
func (agg *Aggregator) Custodians() (custodians []string) {
	agg.mutex.Lock()
	defer agg.mutex.Unlock()

	for custodian := range agg.pending {
		custodians = append(custodians, custodian)
	}
	sort.Strings(custodians)
	return
}

// Pending returns copies of the custodian's pending Signals, succeeded ones
// first and then ordered by their reason.
func (agg *Aggregator) Pending(custodian string) []Signal {
	agg.mutex.Lock()
	defer agg.mutex.Unlock()

	return sortedSignals(agg.pending[custodian])
}

// Take returns and removes the custodian's pending Signals, ordered like Pending.
func (agg *Aggregator) Take(custodian string) []Signal {
	agg.mutex.Lock()
	defer agg.mutex.Unlock()

	signals := sortedSignals(agg.pending[custodian])
	delete(agg.pending, custodian)
	return signals
}

// Bundles drains all pending Signals into administrative record bundles, sent
// from source to each custodian. A nil counter falls back to the Aggregator's
// own SequenceCounter. On error, no pending Signal is removed.
func (agg *Aggregator) Bundles(source bpv6.EndpointID, counter *bpv6.SequenceCounter, lifetime uint64) ([]bpv6.Bundle, error) {
	if source.IsZero() {
		return nil, fmt.Errorf("%w: aggregate custody signals need a source", bpv6.ErrFormat)
	} else if err := source.CheckValid(); err != nil {
		return nil, fmt.Errorf("source %v: %w", source, err)
	}

	agg.mutex.Lock()
	defer agg.mutex.Unlock()

	if counter == nil {
		counter = &agg.counter
	}

	custodians := make([]string, 0, len(agg.pending))
	for custodian := range agg.pending {
		custodians = append(custodians, custodian)
	}
	sort.Strings(custodians)

	var bndls []bpv6.Bundle
	for _, custodian := range custodians {
		custodianEid, err := bpv6.NewEndpointID(custodian)
		if err != nil {
			return nil, fmt.Errorf("custodian %q: %w", custodian, err)
		}

		for _, signal := range sortedSignals(agg.pending[custodian]) {
			for _, part := range signal.Split(agg.maxSignalSize) {
				bndl, err := part.ToBundle(source, custodianEid, counter.Timestamp(bpv6.DtnTimeNow()), lifetime)
				if err != nil {
					return nil, fmt.Errorf("custodian %q: %w", custodian, err)
				}

				log.WithFields(log.Fields{
					"bundle":    bndl.ID(),
					"custodian": custodian,
					"signal":    part,
				}).Debug("Created aggregate custody signal bundle")

				bndls = append(bndls, bndl)
			}
		}
	}

	for _, custodian := range custodians {
		delete(agg.pending, custodian)
	}
	return bndls, nil
}

func sortedSignals(signals map[signalKey]*Signal) []Signal {
	out := make([]Signal, 0, len(signals))
	for _, s := range signals {
		out = append(out, Signal{Succeeded: s.Succeeded, Reason: s.Reason, fills: s.Fills()})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Succeeded != out[j].Succeeded {
			return out[i].Succeeded
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}
