// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

import "fmt"

// BlockType is the one byte block type code of a canonical block.
type BlockType uint8

// Sorted list of all known block type codes to prevent double usage.
const (
	// PrimaryBlockType is never written; it names the primary block's kind.
	PrimaryBlockType BlockType = 0

	// PayloadBlockType is the block type code of the Payload Block.
	PayloadBlockType BlockType = 1

	// BundleAuthenticationBlockType is the block type code of the BAB.
	BundleAuthenticationBlockType BlockType = 2

	// PayloadIntegrityBlockType is the block type code of the PIB.
	PayloadIntegrityBlockType BlockType = 3

	// PayloadConfidentialityBlockType is the block type code of the PCB.
	PayloadConfidentialityBlockType BlockType = 4

	// PreviousHopBlockType is the block type code of the Previous Hop Insertion Block.
	PreviousHopBlockType BlockType = 5

	// MetadataBlockType is the block type code of the Metadata Extension Block.
	MetadataBlockType BlockType = 8

	// CustodyTransferBlockType is the block type code of the Custody Transfer
	// Enhancement Block (CTEB).
	CustodyTransferBlockType BlockType = 10

	// ExtendedCOSBlockType is the block type code of the Extended Class of
	// Service Block.
	ExtendedCOSBlockType BlockType = 19
)

func (bt BlockType) String() string {
	switch bt {
	case PrimaryBlockType:
		return "Primary Block"
	case PayloadBlockType:
		return "Payload Block"
	case BundleAuthenticationBlockType:
		return "Bundle Authentication Block"
	case PayloadIntegrityBlockType:
		return "Payload Integrity Block"
	case PayloadConfidentialityBlockType:
		return "Payload Confidentiality Block"
	case PreviousHopBlockType:
		return "Previous Hop Insertion Block"
	case MetadataBlockType:
		return "Metadata Extension Block"
	case CustodyTransferBlockType:
		return "Custody Transfer Enhancement Block"
	case ExtendedCOSBlockType:
		return "Extended Class of Service Block"
	default:
		return fmt.Sprintf("Block %d", uint8(bt))
	}
}

// BlockKind distinguishes the primary block, the payload block and any other
// extension block.
type BlockKind int

const (
	PrimaryKind BlockKind = iota
	PayloadKind
	ExtensionKind
)

func (k BlockKind) String() string {
	switch k {
	case PrimaryKind:
		return "primary"
	case PayloadKind:
		return "payload"
	default:
		return "extension"
	}
}
