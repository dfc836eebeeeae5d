// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/dtn7/dtn7-bpv6/pkg/sdnv"
)

// Bundle represents a bundle as defined in RFC 5050, section 4.2. Each Bundle
// contains one primary block and multiple canonical blocks, grouped by their
// type.
type Bundle struct {
	PrimaryBlock PrimaryBlock
	Blocks       BlockMap
}

// NewBundle creates a new Bundle. The values and flags of the blocks will be
// checked and an error might be returned.
func NewBundle(primary PrimaryBlock, canonicals []CanonicalBlock) (b Bundle, err error) {
	b = MustNewBundle(primary, canonicals)
	err = b.CheckValid()

	return
}

// MustNewBundle creates a new Bundle like NewBundle, but skips the validity
// check. No panic will be called!
func MustNewBundle(primary PrimaryBlock, canonicals []CanonicalBlock) (b Bundle) {
	b = Bundle{PrimaryBlock: primary}
	for _, cb := range canonicals {
		b.AddBlock(cb)
	}

	return
}

// AddBlock appends a canonical block, either the payload or an extension.
func (b *Bundle) AddBlock(cb CanonicalBlock) {
	b.Blocks.Add(cb)
}

// ExtensionBlocks returns all blocks of the requested block type.
func (b Bundle) ExtensionBlocks(blockType BlockType) []CanonicalBlock {
	return b.Blocks.Get(blockType)
}

// ExtensionBlock returns the only block of the requested type. Multiple
// instances result in an ErrAmbiguous.
func (b Bundle) ExtensionBlock(blockType BlockType) (cb CanonicalBlock, ok bool, err error) {
	switch blocks := b.Blocks.Get(blockType); len(blocks) {
	case 0:
		return
	case 1:
		return blocks[0], true, nil
	default:
		err = fmt.Errorf("%w: %d blocks of type %v", ErrAmbiguous, len(blocks), blockType)
		return
	}
}

// HasExtensionBlock checks if a block of this type is present.
func (b Bundle) HasExtensionBlock(blockType BlockType) bool {
	return b.Blocks.Has(blockType)
}

// PayloadBlock returns the first payload block, if any.
func (b Bundle) PayloadBlock() (cb CanonicalBlock, ok bool) {
	if payloads := b.Blocks.Get(PayloadBlockType); len(payloads) > 0 {
		cb, ok = payloads[0], true
	}
	return
}

// Payload returns the first payload block's data. A Bundle without a payload
// block has an empty payload.
func (b Bundle) Payload() []byte {
	if cb, ok := b.PayloadBlock(); ok {
		return cb.Data
	}
	return nil
}

// ID returns a BundleID representing this Bundle.
func (b Bundle) ID() BundleID {
	return BundleID{
		SourceNode: b.PrimaryBlock.SourceNode,
		Timestamp:  b.PrimaryBlock.CreationTimestamp,

		IsFragment:     b.PrimaryBlock.HasFragmentation(),
		FragmentOffset: b.PrimaryBlock.FragmentOffset,
		FragmentLength: uint64(len(b.Payload())),
	}
}

func (b Bundle) String() string {
	return b.ID().String()
}

// IsAdministrativeRecord returns if this Bundle's control flags indicate this
// has an administrative record payload.
func (b Bundle) IsAdministrativeRecord() bool {
	return b.PrimaryBlock.BundleControlFlags.Has(AdministrativeRecordPayload)
}

// hasEndpointRefs checks if any block references an endpoint, which rules out
// CBHE.
func (b Bundle) hasEndpointRefs() bool {
	for _, cb := range b.Blocks.Blocks() {
		if len(cb.EndpointRefs) > 0 {
			return true
		}
	}
	return false
}

// EIDEncoding returns the endpoint encoding MarshalBinary will use.
func (b Bundle) EIDEncoding() EIDEncoding {
	return newEIDEncoder(b.PrimaryBlock.endpoints(), b.hasEndpointRefs()).encoding()
}

// CheckValid returns an array of errors for incorrect data.
func (b Bundle) CheckValid() (errs error) {
	blocks := b.Blocks.Blocks()

	checks := []Valid{b.PrimaryBlock}
	for _, cb := range blocks {
		checks = append(checks, cb)
	}
	for _, check := range checks {
		if chkErr := check.CheckValid(); chkErr != nil {
			errs = multierror.Append(errs, chkErr)
		}
	}

	for _, cb := range blocks {
		if b.IsAdministrativeRecord() && cb.BlockControlFlags.Has(StatusReportBlock) {
			errs = multierror.Append(errs,
				fmt.Errorf("Bundle: Bundle Processing Control Flags indicate that this bundle's "+
					"payload is an administrative record, but the \"Transmit status report if block "+
					"cannot be processed\" Block Processing Control Flag was set in a %v", cb.BlockType))
		}
	}

	if n := len(b.Blocks.Get(PayloadBlockType)); n > 1 {
		errs = multierror.Append(errs, fmt.Errorf("Bundle: %d Payload Blocks", n))
	}

	if b.Blocks.Has(CustodyTransferBlockType) && !b.PrimaryBlock.BundleControlFlags.Has(CustodyTransferRequested) {
		errs = multierror.Append(errs,
			fmt.Errorf("Bundle: carries a custody transfer enhancement block without requesting custody transfer"))
	}

	return
}

// MarshalBinary serializes this Bundle. The primary block's endpoints use
// CBHE if possible. Blocks are written grouped by type, the payload last.
func (b Bundle) MarshalBinary() ([]byte, error) {
	blocks := b.Blocks.Blocks()
	codec := newEIDEncoder(b.PrimaryBlock.endpoints(), b.hasEndpointRefs())

	tuples, err := b.PrimaryBlock.encodeEndpoints(codec)
	if err != nil {
		return nil, err
	}

	// Block references must be added to the dictionary before the primary block
	// is serialized.
	blockRefs := make([][]EIDReference, len(blocks))
	for i, cb := range blocks {
		if blockRefs[i], err = cb.references(codec.dictionary()); err != nil {
			return nil, err
		}
	}

	buf := b.PrimaryBlock.marshal(tuples, codec.dictionary())
	for i, cb := range blocks {
		buf = cb.marshal(buf, blockRefs[i], i == len(blocks)-1)
	}

	return buf, nil
}

// UnmarshalBinary reads a serialized Bundle, compare ParseBundle.
func (b *Bundle) UnmarshalBinary(data []byte) (err error) {
	*b, _, _, err = Decode(data)
	return
}

// WriteBundle serializes this Bundle into a Writer.
func (b Bundle) WriteBundle(w io.Writer) error {
	data, err := b.MarshalBinary()
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// ParseBundle reads a serialized Bundle.
func ParseBundle(data []byte) (b Bundle, err error) {
	b, _, _, err = Decode(data)
	return
}

// Decode a serialized Bundle and additionally return its first payload block's
// length and data. A Bundle without any payload block results in an empty
// payload.
func Decode(data []byte) (b Bundle, payloadLen uint64, payload []byte, err error) {
	r := sdnv.NewReader(data)

	var codec eidCodec
	if b.PrimaryBlock, codec, err = parsePrimaryBlock(r); err != nil {
		return
	}

	last := false
	for r.Len() > 0 {
		if last {
			err = newFormatError("%d bytes follow the last block", r.Len())
			return
		}

		var cb CanonicalBlock
		if cb, err = parseCanonicalBlock(r, codec); err != nil {
			return
		}

		last = cb.BlockControlFlags.Has(LastBlock)
		b.AddBlock(cb)
	}

	payload = b.Payload()
	payloadLen = uint64(len(payload))
	return
}

// MarshalJSON creates a JSON object for this Bundle.
func (b Bundle) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		PrimaryBlock    primaryBlockJSON `json:"primaryBlock"`
		CanonicalBlocks []CanonicalBlock `json:"canonicalBlocks"`
	}{
		PrimaryBlock:    newPrimaryBlockJSON(b.PrimaryBlock, b.EIDEncoding()),
		CanonicalBlocks: b.Blocks.Blocks(),
	})
}

type primaryBlockJSON struct {
	Version            uint8              `json:"version"`
	BundleControlFlags BundleControlFlags `json:"bundleControlFlags"`
	Priority           Priority           `json:"priority"`
	StatusReports      StatusReportFlags  `json:"statusReports"`
	EIDEncoding        string             `json:"eidEncoding"`
	Destination        EndpointID         `json:"destination"`
	SourceNode         EndpointID         `json:"sourceNode"`
	ReportTo           EndpointID         `json:"reportTo"`
	Custodian          EndpointID         `json:"custodian"`
	CreationTimestamp  CreationTimestamp  `json:"creationTimestamp"`
	Lifetime           uint64             `json:"lifetime"`
	FragmentOffset     *uint64            `json:"fragmentOffset,omitempty"`
	TotalADULength     *uint64            `json:"totalADULength,omitempty"`
}

func newPrimaryBlockJSON(pb PrimaryBlock, enc EIDEncoding) primaryBlockJSON {
	pbj := primaryBlockJSON{
		Version:            pb.Version,
		BundleControlFlags: pb.BundleControlFlags,
		Priority:           pb.Priority,
		StatusReports:      pb.StatusReports,
		EIDEncoding:        enc.String(),
		Destination:        pb.Destination,
		SourceNode:         pb.SourceNode,
		ReportTo:           pb.ReportTo,
		Custodian:          pb.Custodian,
		CreationTimestamp:  pb.CreationTimestamp,
		Lifetime:           pb.Lifetime,
	}

	if pb.HasFragmentation() {
		pbj.FragmentOffset = &pb.FragmentOffset
		pbj.TotalADULength = &pb.TotalADULength
	}

	return pbj
}
