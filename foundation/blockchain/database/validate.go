package database

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
)

// Set of errors returned when a chain fails validation.
var (
	ErrEmptyChain     = errors.New("chain is empty")
	ErrInvalidGenesis = errors.New("invalid genesis block")
	ErrIndexMismatch  = errors.New("block is not the next index")
	ErrHashMismatch   = errors.New("previous hash doesn't match parent block")
	ErrPuzzleUnsolved = errors.New("proof doesn't solve the puzzle")
)

// =============================================================================

// ValidateBlock checks a block against its parent. The parent digest and the
// puzzle hash are recomputed from stored fields.
func (pz Puzzle) ValidateBlock(block Block, parent Block, evHandler func(v string, args ...any)) error {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block index is the next index", block.Index)

	nextIndex := parent.Index + 1
	if block.Index != nextIndex {
		return fmt.Errorf("%w: got %d, exp %d", ErrIndexMismatch, block.Index, nextIndex)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: previous hash does match parent block", block.Index)

	parentHash := pz.BlockHash(parent)
	if block.PreviousHash != parentHash {
		return fmt.Errorf("%w: got %s, exp %s", ErrHashMismatch, block.PreviousHash, parentHash)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: proof solves the puzzle", block.Index)

	if block.Proof < 1 || block.Proof > MaxProof {
		return fmt.Errorf("%w: proof %d out of range 1..%d", ErrPuzzleUnsolved, block.Proof, MaxProof)
	}

	if !pz.IsSolved(block.Proof, parent.Proof, block.Index, block.Data) {
		return fmt.Errorf("%w: proof %d, hash %s", ErrPuzzleUnsolved, block.Proof, pz.PuzzleHash(block.Proof, parent.Proof, block.Index, block.Data))
	}

	return nil
}

// ValidateChain walks every adjacent pair of blocks and returns the first
// failure found. A chain holding only the genesis block is valid.
func (pz Puzzle) ValidateChain(blocks []Block, evHandler func(v string, args ...any)) error {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}

	if len(blocks) == 0 {
		return ErrEmptyChain
	}

	evHandler("database: ValidateChain: validate: blk[%d]: check: genesis block", blocks[0].Index)

	if blocks[0].Index != genesis.Index || blocks[0].PreviousHash != genesis.PreviousHash {
		return fmt.Errorf("%w: index %d, previous hash %q", ErrInvalidGenesis, blocks[0].Index, blocks[0].PreviousHash)
	}

	for i := 1; i < len(blocks); i++ {
		if err := pz.ValidateBlock(blocks[i], blocks[i-1], evHandler); err != nil {
			return fmt.Errorf("block %d: %w", i+1, err)
		}
	}

	return nil
}
