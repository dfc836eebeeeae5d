// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/dtn7/dtn7-bpv6/pkg/sdnv"
)

// CanonicalBlock represents every block following the primary block, i.e.,
// the payload block and all extension blocks, RFC 5050, section 4.5.2.
type CanonicalBlock struct {
	BlockType         BlockType
	BlockControlFlags BlockControlFlags

	// EndpointRefs are the endpoints referenced by this block. They are
	// written as dictionary references and force the dictionary encoding.
	EndpointRefs []EndpointID

	Data []byte
}

// NewCanonicalBlock creates a new CanonicalBlock for the given type, flags
// and block-type-specific data.
func NewCanonicalBlock(blockType BlockType, blockControlFlags BlockControlFlags, data []byte) CanonicalBlock {
	return CanonicalBlock{
		BlockType:         blockType,
		BlockControlFlags: blockControlFlags,
		Data:              data,
	}
}

// NewPayloadBlock creates a new payload block.
func NewPayloadBlock(blockControlFlags BlockControlFlags, data []byte) CanonicalBlock {
	return NewCanonicalBlock(PayloadBlockType, blockControlFlags, data)
}

// Kind distinguishes the payload block from extension blocks.
func (cb CanonicalBlock) Kind() BlockKind {
	if cb.BlockType == PayloadBlockType {
		return PayloadKind
	}
	return ExtensionKind
}

// CheckValid returns an array of errors for incorrect data.
func (cb CanonicalBlock) CheckValid() (errs error) {
	if cb.BlockType == PrimaryBlockType {
		errs = multierror.Append(errs, fmt.Errorf("CanonicalBlock: block type 0 is reserved for the primary block"))
	}

	for i, eid := range cb.EndpointRefs {
		if eidErr := eid.CheckValid(); eidErr != nil {
			errs = multierror.Append(errs, fmt.Errorf("CanonicalBlock: endpoint reference %d: %v", i, eidErr))
		}
	}

	return
}

// EncodeBlockPreamble creates a canonical block's preamble for a payload of
// the given length. Non-empty references set the BlockEIDRefs flag.
func EncodeBlockPreamble(blockType BlockType, flags BlockControlFlags, refs []EIDReference, length uint64) []byte {
	buf := make([]byte, 0, 1+sdnv.MaxLen*(2+2*len(refs)))
	buf = append(buf, byte(blockType))

	if len(refs) > 0 {
		flags |= BlockEIDRefs
	}
	buf = sdnv.Append(buf, uint64(flags))

	if len(refs) > 0 {
		buf = sdnv.Append(buf, uint64(len(refs)))
		for _, ref := range refs {
			buf = ref.appendTo(buf)
		}
	}

	return sdnv.Append(buf, length)
}

// references of this block's endpoints within the dictionary.
func (cb CanonicalBlock) references(dict *Dictionary) ([]EIDReference, error) {
	if len(cb.EndpointRefs) == 0 {
		return nil, nil
	} else if dict == nil {
		return nil, fmt.Errorf("block %v references endpoints, but there is no dictionary", cb.BlockType)
	}

	refs := make([]EIDReference, len(cb.EndpointRefs))
	for i, eid := range cb.EndpointRefs {
		refs[i] = dict.Reference(eid)
	}
	return refs, nil
}

// marshal appends this block. The LastBlock and BlockEIDRefs flags are set
// according to the block's position and references.
func (cb CanonicalBlock) marshal(buf []byte, refs []EIDReference, last bool) []byte {
	flags := cb.BlockControlFlags &^ (LastBlock | BlockEIDRefs)
	if last {
		flags |= LastBlock
	}

	buf = append(buf, EncodeBlockPreamble(cb.BlockType, flags, refs, uint64(len(cb.Data)))...)
	return append(buf, cb.Data...)
}

// parseCanonicalBlock reads the next block. EID references are resolved by
// the primary block's codec.
func parseCanonicalBlock(r *sdnv.Reader, codec eidCodec) (cb CanonicalBlock, err error) {
	cb.BlockType = BlockType(r.Byte())
	cb.BlockControlFlags = BlockControlFlags(r.Uint())

	var refs []EIDReference
	if cb.BlockControlFlags.Has(BlockEIDRefs) {
		count := r.Uint()

		// Each reference takes at least two bytes.
		if r.Err() == nil && count > uint64(r.Len())/2 {
			err = fmt.Errorf("block %v claims %d endpoint references: %w", cb.BlockType, count, ErrTruncated)
			return
		}

		refs = make([]EIDReference, 0, count)
		for i := uint64(0); i < count && r.Err() == nil; i++ {
			refs = append(refs, EIDReference{SchemeOffset: r.Uint(), SspOffset: r.Uint()})
		}
	}

	length := r.Uint()
	data := r.Bytes(length)
	if err = r.Err(); err != nil {
		err = fmt.Errorf("block %v: %w", cb.BlockType, err)
		return
	}

	if cb.BlockType == PrimaryBlockType {
		err = newFormatError("canonical block has the primary block's type")
		return
	}

	if len(refs) > 0 {
		dict := codec.dictionary()
		if dict == nil {
			err = newFormatError("block %v references endpoints within a CBHE bundle", cb.BlockType)
			return
		}

		cb.EndpointRefs = make([]EndpointID, len(refs))
		for i, ref := range refs {
			if cb.EndpointRefs[i], err = dict.Resolve(ref); err != nil {
				err = fmt.Errorf("block %v: %w", cb.BlockType, err)
				return
			}
		}
	}

	cb.Data = append([]byte{}, data...)
	return
}

// MarshalJSON creates a JSON object for this block.
func (cb CanonicalBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		BlockType    string            `json:"blockType"`
		BlockCode    uint8             `json:"blockTypeCode"`
		ControlFlags BlockControlFlags `json:"blockControlFlags"`
		EndpointRefs []EndpointID      `json:"endpointRefs,omitempty"`
		Data         string            `json:"data"`
	}{
		BlockType:    cb.BlockType.String(),
		BlockCode:    uint8(cb.BlockType),
		ControlFlags: cb.BlockControlFlags,
		EndpointRefs: cb.EndpointRefs,
		Data:         hex.EncodeToString(cb.Data),
	})
}

func (cb CanonicalBlock) String() string {
	var b strings.Builder

	_, _ = fmt.Fprintf(&b, "block type: %v, ", cb.BlockType)
	_, _ = fmt.Fprintf(&b, "block processing control flags: %v, ", cb.BlockControlFlags)
	if len(cb.EndpointRefs) > 0 {
		_, _ = fmt.Fprintf(&b, "endpoint references: %v, ", cb.EndpointRefs)
	}
	_, _ = fmt.Fprintf(&b, "data length: %d", len(cb.Data))

	return b.String()
}
