// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/dtn7/dtn7-bpv6/pkg/sdnv"
)

// DtnVersion is the version of the Bundle Protocol implemented here.
const DtnVersion uint8 = 6

// PrimaryBlock is a representation of the primary bundle block as defined in
// RFC 5050, section 4.5.1.
type PrimaryBlock struct {
	Version            uint8
	BundleControlFlags BundleControlFlags
	Priority           Priority
	StatusReports      StatusReportFlags
	Destination        EndpointID
	SourceNode         EndpointID
	ReportTo           EndpointID
	Custodian          EndpointID
	CreationTimestamp  CreationTimestamp
	Lifetime           uint64
	FragmentOffset     uint64
	TotalADULength     uint64
}

// NewPrimaryBlock creates a new primary block with the given parameters. The
// report-to endpoint is the source node, the custodian is dtn:none. The
// lifetime is taken in seconds.
func NewPrimaryBlock(bundleControlFlags BundleControlFlags,
	destination EndpointID, sourceNode EndpointID,
	creationTimestamp CreationTimestamp, lifetime uint64) PrimaryBlock {
	return PrimaryBlock{
		Version:            DtnVersion,
		BundleControlFlags: bundleControlFlags,
		Priority:           Bulk,
		Destination:        destination,
		SourceNode:         sourceNode,
		ReportTo:           sourceNode,
		Custodian:          DtnNone(),
		CreationTimestamp:  creationTimestamp,
		Lifetime:           lifetime,
	}
}

// Kind is always PrimaryKind.
func (pb PrimaryBlock) Kind() BlockKind {
	return PrimaryKind
}

// HasFragmentation returns true if the bundle processing control flags
// indicates a fragmented bundle. In this case the FragmentOffset and
// TotalADULength fields become relevant.
func (pb PrimaryBlock) HasFragmentation() bool {
	return pb.BundleControlFlags.Has(IsFragment)
}

// ProcessingFlags returns the packed processing flags, as written on the wire.
func (pb PrimaryBlock) ProcessingFlags() uint64 {
	return packProcessingFlags(pb.BundleControlFlags, pb.Priority, pb.StatusReports)
}

// endpoints in their wire order.
func (pb PrimaryBlock) endpoints() []EndpointID {
	return []EndpointID{pb.Destination, pb.SourceNode, pb.ReportTo, pb.Custodian}
}

// encodeEndpoints maps all four endpoints through the codec. For a dictionary
// codec this fills the dictionary.
func (pb PrimaryBlock) encodeEndpoints(codec eidCodec) (tuples [4][2]uint64, err error) {
	for i, eid := range pb.endpoints() {
		if tuples[i][0], tuples[i][1], err = codec.encodeEID(eid); err != nil {
			return
		}
	}
	return
}

// marshal the primary block with already encoded endpoints and the final
// dictionary, which is nil for CBHE.
func (pb PrimaryBlock) marshal(tuples [4][2]uint64, dict *Dictionary) []byte {
	var data []byte
	for _, tuple := range tuples {
		data = sdnv.Append(data, tuple[0])
		data = sdnv.Append(data, tuple[1])
	}

	data = sdnv.Append(data, pb.CreationTimestamp[0])
	data = sdnv.Append(data, pb.CreationTimestamp[1])
	data = sdnv.Append(data, pb.Lifetime)

	if dict != nil {
		data = sdnv.Append(data, uint64(dict.Len()))
		data = append(data, dict.Bytes()...)
	} else {
		data = sdnv.Append(data, 0)
	}

	if pb.HasFragmentation() {
		data = sdnv.Append(data, pb.FragmentOffset)
		data = sdnv.Append(data, pb.TotalADULength)
	}

	buf := make([]byte, 0, 1+sdnv.MaxLen*2+len(data))
	buf = append(buf, pb.Version)
	buf = sdnv.Append(buf, pb.ProcessingFlags())
	buf = sdnv.Append(buf, uint64(len(data)))
	return append(buf, data...)
}

// EncodePrimaryBlock serializes only the primary block. Its endpoints are
// compressed by CBHE if possible and use a dictionary otherwise.
func EncodePrimaryBlock(pb PrimaryBlock) ([]byte, error) {
	codec := newEIDEncoder(pb.endpoints(), false)

	tuples, err := pb.encodeEndpoints(codec)
	if err != nil {
		return nil, err
	}
	return pb.marshal(tuples, codec.dictionary()), nil
}

// parsePrimaryBlock reads a primary block and returns the codec used for its
// endpoints, which is required to resolve further EID references.
func parsePrimaryBlock(r *sdnv.Reader) (pb PrimaryBlock, codec eidCodec, err error) {
	pb.Version = r.Byte()
	flags := r.Uint()
	length := r.Uint()
	if err = r.Err(); err != nil {
		err = fmt.Errorf("primary block preamble: %w", err)
		return
	}

	if pb.Version != DtnVersion {
		err = newFormatError("version mismatch, %d instead of %d", pb.Version, DtnVersion)
		return
	}

	pb.BundleControlFlags, pb.Priority, pb.StatusReports = unpackProcessingFlags(flags)

	body := r.Bytes(length)
	if err = r.Err(); err != nil {
		err = fmt.Errorf("primary block of %d bytes: %w", length, err)
		return
	}

	br := sdnv.NewReader(body)

	var tuples [4][2]uint64
	for i := range tuples {
		tuples[i][0] = br.Uint()
		tuples[i][1] = br.Uint()
	}

	pb.CreationTimestamp[0] = br.Uint()
	pb.CreationTimestamp[1] = br.Uint()
	pb.Lifetime = br.Uint()
	dict := br.Bytes(br.Uint())

	if pb.HasFragmentation() {
		pb.FragmentOffset = br.Uint()
		pb.TotalADULength = br.Uint()
	}

	if err = br.Err(); err != nil {
		err = fmt.Errorf("primary block: %w", err)
		return
	} else if br.Len() != 0 {
		err = newFormatError("primary block has %d unexpected trailing bytes", br.Len())
		return
	}

	codec = newEIDDecoder(append([]byte(nil), dict...))

	eids := []*EndpointID{&pb.Destination, &pb.SourceNode, &pb.ReportTo, &pb.Custodian}
	for i, eid := range eids {
		if *eid, err = codec.decodeEID(tuples[i][0], tuples[i][1]); err != nil {
			return
		}
	}

	return
}

// CheckValid returns an array of errors for incorrect data.
func (pb PrimaryBlock) CheckValid() (errs error) {
	if pb.Version != DtnVersion {
		errs = multierror.Append(errs,
			fmt.Errorf("PrimaryBlock: wrong Version, %d instead of %d", pb.Version, DtnVersion))
	}

	if bcfErr := pb.BundleControlFlags.CheckValid(); bcfErr != nil {
		errs = multierror.Append(errs, bcfErr)
	}

	if pErr := pb.Priority.CheckValid(); pErr != nil {
		errs = multierror.Append(errs, pErr)
	}

	names := []string{"Destination", "SourceNode", "ReportTo", "Custodian"}
	for i, eid := range pb.endpoints() {
		if eidErr := eid.CheckValid(); eidErr != nil {
			errs = multierror.Append(errs, fmt.Errorf("PrimaryBlock: %s: %v", names[i], eidErr))
		}
	}

	if pb.BundleControlFlags.Has(AdministrativeRecordPayload) && pb.StatusReports != 0 {
		errs = multierror.Append(errs, fmt.Errorf(
			"PrimaryBlock: payload is an administrative record, but status reports are requested"))
	}

	if pb.BundleControlFlags.Has(CustodyTransferRequested) && pb.SourceNode.IsNone() {
		errs = multierror.Append(errs, fmt.Errorf(
			"PrimaryBlock: custody transfer is requested for an anonymous bundle"))
	}

	return
}

func (pb PrimaryBlock) String() string {
	var b strings.Builder

	_, _ = fmt.Fprintf(&b, "version: %d, ", pb.Version)
	_, _ = fmt.Fprintf(&b, "bundle processing control flags: %v, ", pb.BundleControlFlags)
	_, _ = fmt.Fprintf(&b, "priority: %v, ", pb.Priority)
	_, _ = fmt.Fprintf(&b, "status reports: %v, ", pb.StatusReports)
	_, _ = fmt.Fprintf(&b, "destination: %v, ", pb.Destination)
	_, _ = fmt.Fprintf(&b, "source node: %v, ", pb.SourceNode)
	_, _ = fmt.Fprintf(&b, "report to: %v, ", pb.ReportTo)
	_, _ = fmt.Fprintf(&b, "custodian: %v, ", pb.Custodian)
	_, _ = fmt.Fprintf(&b, "creation timestamp: %v, ", pb.CreationTimestamp)
	_, _ = fmt.Fprintf(&b, "lifetime: %d", pb.Lifetime)

	if pb.HasFragmentation() {
		_, _ = fmt.Fprintf(&b, ", fragment offset: %d, total adu length: %d",
			pb.FragmentOffset, pb.TotalADULength)
	}

	return b.String()
}
