// Package database handles the lower level support for maintaining the
// ordered, append-only sequence of blocks in memory.
package database

import (
	"errors"
	"fmt"
	"sync"
)

// Set of errors returned by the database.
var (
	ErrNotFound     = errors.New("block not found")
	ErrNotNextBlock = errors.New("block is not the next block")
)

// =============================================================================

// Database manages the blocks that make up the chain. Blocks can only be
// appended, they are never removed or modified.
type Database struct {
	mu     sync.RWMutex
	blocks []Block
}

// New constructs a database holding the genesis block.
func New(genesis Block) *Database {
	return &Database{
		blocks: []Block{genesis},
	}
}

// Append adds a new block to the end of the chain. The block must carry
// the next index.
func (db *Database) Append(block Block) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	nextIndex := db.blocks[len(db.blocks)-1].Index + 1
	if block.Index != nextIndex {
		return fmt.Errorf("%w: got %d, exp %d", ErrNotNextBlock, block.Index, nextIndex)
	}

	db.blocks = append(db.blocks, block)

	return nil
}

// LatestBlock returns the last block in the chain.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.blocks[len(db.blocks)-1]
}

// Count returns the number of blocks in the chain.
func (db *Database) Count() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}

// GetBlock returns the block for the specified index.
func (db *Database) GetBlock(index uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if index == 0 || index > uint64(len(db.blocks)) {
		return Block{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}

	return db.blocks[index-1], nil
}

// Copy returns a copy of the blocks in chain order.
func (db *Database) Copy() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, len(db.blocks))
	copy(blocks, db.blocks)

	return blocks
}
