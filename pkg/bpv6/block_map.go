// SPDX-FileCopyrightText: 2026 The dtn7 Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bpv6

// BlockMap groups canonical blocks by their type. Types keep the order of
// their first appearance, blocks of the same type keep their insertion order.
// The zero value is an empty BlockMap.
type BlockMap struct {
	types  []BlockType
	blocks map[BlockType][]CanonicalBlock
}

// Add a block to the end of its type's list.
func (bm *BlockMap) Add(cb CanonicalBlock) {
	if bm.blocks == nil {
		bm.blocks = make(map[BlockType][]CanonicalBlock)
	}

	if _, ok := bm.blocks[cb.BlockType]; !ok {
		bm.types = append(bm.types, cb.BlockType)
	}
	bm.blocks[cb.BlockType] = append(bm.blocks[cb.BlockType], cb)
}

// Get all blocks of a type.
func (bm BlockMap) Get(blockType BlockType) []CanonicalBlock {
	return bm.blocks[blockType]
}

// Has checks if at least one block of this type exists.
func (bm BlockMap) Has(blockType BlockType) bool {
	return len(bm.blocks[blockType]) > 0
}

// Types present, in the order of their first appearance.
func (bm BlockMap) Types() []BlockType {
	return append([]BlockType(nil), bm.types...)
}

// Len returns the total number of blocks.
func (bm BlockMap) Len() (n int) {
	for _, blocks := range bm.blocks {
		n += len(blocks)
	}
	return
}

// Remove all blocks of a type.
func (bm *BlockMap) Remove(blockType BlockType) {
	if _, ok := bm.blocks[blockType]; !ok {
		return
	}

	delete(bm.blocks, blockType)
	for i, t := range bm.types {
		if t == blockType {
			bm.types = append(bm.types[:i], bm.types[i+1:]...)
			break
		}
	}
}

// Blocks returns all blocks in their serialization order: grouped by type and
// the payload blocks last.
func (bm BlockMap) Blocks() []CanonicalBlock {
	blocks := make([]CanonicalBlock, 0, bm.Len())
	for _, t := range bm.types {
		if t != PayloadBlockType {
			blocks = append(blocks, bm.blocks[t]...)
		}
	}
	return append(blocks, bm.blocks[PayloadBlockType]...)
}
