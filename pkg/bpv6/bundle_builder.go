// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"fmt"
	"time"
)

// BundleBuilder is a simple framework to create bundles by method chaining.
//
//	bndl, err := bpv6.Builder().
//	  Source("ipn:1.0").
//	  Destination("dtn://dest/").
//	  CreationTimestampNow(&counter).
//	  Lifetime("30m").
//	  PayloadBlock([]byte("hello world!")).
//	  Build()
//
// The first error sticks; all following method calls are ignored.
type BundleBuilder struct {
	err error

	primary    PrimaryBlock
	canonicals []CanonicalBlock
}

// Builder creates a new BundleBuilder.
func Builder() *BundleBuilder {
	return &BundleBuilder{
		primary: PrimaryBlock{Version: DtnVersion},
	}
}

// Error returns the BundleBuilder's error, if one is present.
func (bldr *BundleBuilder) Error() error {
	return bldr.err
}

// Build creates a new Bundle and returns an optional error.
func (bldr *BundleBuilder) Build() (bndl Bundle, err error) {
	if bldr.err != nil {
		err = bldr.err
		return
	}

	// Source and Destination are necessary
	if bldr.primary.SourceNode.IsZero() || bldr.primary.Destination.IsZero() {
		err = fmt.Errorf("both Source and Destination must be set")
		return
	}

	if bldr.primary.ReportTo.IsZero() {
		bldr.primary.ReportTo = bldr.primary.SourceNode
	}
	if bldr.primary.Custodian.IsZero() {
		bldr.primary.Custodian = DtnNone()
	}

	bndl, err = NewBundle(bldr.primary, bldr.canonicals)
	return
}

// Helper functions

// bldrParseEndpoint returns an EndpointID for a given EndpointID or a string,
// representing an endpoint identifier as an URI.
func bldrParseEndpoint(eid interface{}) (e EndpointID, err error) {
	switch eid := eid.(type) {
	case EndpointID:
		e = eid
	case string:
		e, err = NewEndpointID(eid)
	default:
		err = fmt.Errorf("%T is neither an EndpointID nor a string", eid)
	}
	return
}

// bldrParseLifetime returns seconds as an uint64 for a given number of
// seconds, a time.Duration or a duration string, which will be parsed.
func bldrParseLifetime(duration interface{}) (secs uint64, err error) {
	switch duration := duration.(type) {
	case uint64:
		secs = duration
	case uint:
		secs = uint64(duration)
	case int:
		if duration < 0 {
			err = fmt.Errorf("lifetime %d < 0", duration)
		} else {
			secs = uint64(duration)
		}
	case time.Duration:
		if duration <= 0 {
			err = fmt.Errorf("lifetime's duration %v <= 0", duration)
		} else {
			secs = uint64(duration / time.Second)
		}
	case string:
		dur, durErr := time.ParseDuration(duration)
		if durErr != nil {
			err = durErr
		} else if dur <= 0 {
			err = fmt.Errorf("lifetime's duration %v <= 0", dur)
		} else {
			secs = uint64(dur / time.Second)
		}
	default:
		err = fmt.Errorf("%T is neither an uint64, an int nor a Duration", duration)
	}
	return
}

// bldrParsePayload accepts a byte slice or a string.
func bldrParsePayload(data interface{}) (payload []byte, err error) {
	switch data := data.(type) {
	case []byte:
		payload = data
	case string:
		payload = []byte(data)
	default:
		err = fmt.Errorf("%T is neither a byte slice nor a string", data)
	}
	return
}

// PrimaryBlock related methods

// endpoint parses the eid and stores it, unless an error is present.
func (bldr *BundleBuilder) endpoint(field *EndpointID, eid interface{}) *BundleBuilder {
	if bldr.err != nil {
		return bldr
	}

	if e, err := bldrParseEndpoint(eid); err != nil {
		bldr.err = err
	} else {
		*field = e
	}

	return bldr
}

// Destination sets the bundle's destination, an EndpointID or a string.
func (bldr *BundleBuilder) Destination(eid interface{}) *BundleBuilder {
	return bldr.endpoint(&bldr.primary.Destination, eid)
}

// Source sets the bundle's source node, an EndpointID or a string.
func (bldr *BundleBuilder) Source(eid interface{}) *BundleBuilder {
	return bldr.endpoint(&bldr.primary.SourceNode, eid)
}

// ReportTo sets the bundle's report-to endpoint. It defaults to the source.
func (bldr *BundleBuilder) ReportTo(eid interface{}) *BundleBuilder {
	return bldr.endpoint(&bldr.primary.ReportTo, eid)
}

// Custodian sets the bundle's current custodian. It defaults to dtn:none.
func (bldr *BundleBuilder) Custodian(eid interface{}) *BundleBuilder {
	return bldr.endpoint(&bldr.primary.Custodian, eid)
}

// creationTimestamp takes the sequence number from the counter. A nil counter
// results in the sequence number zero.
func (bldr *BundleBuilder) creationTimestamp(t DtnTime, counter *SequenceCounter) *BundleBuilder {
	if bldr.err != nil {
		return bldr
	}

	if counter != nil {
		bldr.primary.CreationTimestamp = counter.Timestamp(t)
	} else {
		bldr.primary.CreationTimestamp = NewCreationTimestamp(t, 0)
	}

	return bldr
}

// CreationTimestampEpoch sets the creation time to the DTN epoch.
func (bldr *BundleBuilder) CreationTimestampEpoch(counter *SequenceCounter) *BundleBuilder {
	return bldr.creationTimestamp(DtnTimeEpoch, counter)
}

// CreationTimestampNow sets the creation time to the current time.
func (bldr *BundleBuilder) CreationTimestampNow(counter *SequenceCounter) *BundleBuilder {
	return bldr.creationTimestamp(DtnTimeNow(), counter)
}

// CreationTimestampTime sets the creation time to the given time.
func (bldr *BundleBuilder) CreationTimestampTime(t time.Time, counter *SequenceCounter) *BundleBuilder {
	return bldr.creationTimestamp(DtnTimeFromTime(t), counter)
}

// CreationTimestamp sets an explicit creation timestamp.
func (bldr *BundleBuilder) CreationTimestamp(ts CreationTimestamp) *BundleBuilder {
	if bldr.err == nil {
		bldr.primary.CreationTimestamp = ts
	}

	return bldr
}

// Lifetime in seconds, given as a number of seconds, a time.Duration or a
// duration string like "10m".
func (bldr *BundleBuilder) Lifetime(duration interface{}) *BundleBuilder {
	if bldr.err != nil {
		return bldr
	}

	if secs, secsErr := bldrParseLifetime(duration); secsErr != nil {
		bldr.err = secsErr
	} else {
		bldr.primary.Lifetime = secs
	}

	return bldr
}

// BundleCtrlFlags sets the bundle processing control flags.
func (bldr *BundleBuilder) BundleCtrlFlags(bcf BundleControlFlags) *BundleBuilder {
	if bldr.err == nil {
		bldr.primary.BundleControlFlags = bcf
	}

	return bldr
}

// Priority sets the class of service.
func (bldr *BundleBuilder) Priority(p Priority) *BundleBuilder {
	if bldr.err == nil {
		bldr.primary.Priority = p
	}

	return bldr
}

// StatusReports sets the requested status reports.
func (bldr *BundleBuilder) StatusReports(srf StatusReportFlags) *BundleBuilder {
	if bldr.err == nil {
		bldr.primary.StatusReports = srf
	}

	return bldr
}

// Fragment marks this bundle as a fragment of an ADU.
func (bldr *BundleBuilder) Fragment(offset, totalADULength uint64) *BundleBuilder {
	if bldr.err == nil {
		bldr.primary.BundleControlFlags |= IsFragment
		bldr.primary.FragmentOffset = offset
		bldr.primary.TotalADULength = totalADULength
	}

	return bldr
}

// CanonicalBlock related methods

// Canonical: BlockType, Data[, BlockControlFlags]
func (bldr *BundleBuilder) Canonical(args ...interface{}) *BundleBuilder {
	if bldr.err != nil {
		return bldr
	}

	var (
		blockType      BlockType
		data           []byte
		blockCtrlFlags BlockControlFlags
		dataErr        error

		chk0, chk1 = true, true
	)

	switch l := len(args); l {
	case 2:
		blockType, chk0 = args[0].(BlockType)
		data, dataErr = bldrParsePayload(args[1])
	case 3:
		blockType, chk0 = args[0].(BlockType)
		data, dataErr = bldrParsePayload(args[1])
		blockCtrlFlags, chk1 = args[2].(BlockControlFlags)
	default:
		bldr.err = fmt.Errorf("Canonical was called with neither two nor three parameters")
		return bldr
	}

	if !(chk0 && chk1) {
		bldr.err = fmt.Errorf("Canonical received wrong parameter types, %v %v", chk0, chk1)
		return bldr
	} else if dataErr != nil {
		bldr.err = dataErr
		return bldr
	}

	return bldr.ExtensionBlock(NewCanonicalBlock(blockType, blockCtrlFlags, data))
}

// ExtensionBlock adds an already created CanonicalBlock.
func (bldr *BundleBuilder) ExtensionBlock(cb CanonicalBlock) *BundleBuilder {
	if bldr.err == nil {
		bldr.canonicals = append(bldr.canonicals, cb)
	}

	return bldr
}

// PayloadBlock: Data[, BlockControlFlags]
func (bldr *BundleBuilder) PayloadBlock(args ...interface{}) *BundleBuilder {
	// Call Canonical, but add PayloadBlockType as the first variadic parameter
	return bldr.Canonical(append([]interface{}{PayloadBlockType}, args...)...)
}

// PreviousHopBlock: PrevNode[, BlockControlFlags]
// PrevNode <- { EndpointID, endpoint as string }
func (bldr *BundleBuilder) PreviousHopBlock(args ...interface{}) *BundleBuilder {
	if bldr.err != nil {
		return bldr
	} else if len(args) == 0 {
		bldr.err = fmt.Errorf("PreviousHopBlock requires an endpoint")
		return bldr
	}

	eid, eidErr := bldrParseEndpoint(args[0])
	if eidErr != nil {
		bldr.err = eidErr
		return bldr
	}

	return bldr.Canonical(
		append([]interface{}{PreviousHopBlockType, PreviousHopData(eid)}, args[1:]...)...)
}
