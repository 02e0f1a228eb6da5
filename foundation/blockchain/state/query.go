package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/mempool"
)

// RetrieveGenesis returns the values the chain was started with.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrievePuzzle returns the rules used to mine and validate blocks.
func (s *State) RetrievePuzzle() database.Puzzle {
	return s.puzzle
}

// RetrieveLatestBlock returns a copy of the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	return s.db.LatestBlock()
}

// RetrieveBlocks returns a copy of every block in chain order.
func (s *State) RetrieveBlocks() []database.Block {
	return s.db.Copy()
}

// RetrieveMempool returns a copy of the pending entries.
func (s *State) RetrieveMempool() []mempool.Entry {
	return s.mempool.Copy()
}

// QueryBlock returns the block at the specified index.
func (s *State) QueryBlock(index uint64) (database.Block, error) {
	return s.db.GetBlock(index)
}

// QueryMempoolLength returns the number of pending entries.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// BlockHash returns the digest of the block under the chain's rules.
func (s *State) BlockHash(block database.Block) string {
	return s.puzzle.BlockHash(block)
}

// =============================================================================

// Validate walks the chain checking every hash link and puzzle solution.
func (s *State) Validate() error {
	s.evHandler("state: Validate: started")
	defer s.evHandler("state: Validate: completed")

	return s.puzzle.ValidateChain(s.db.Copy(), s.evHandler)
}

// IsValid reports whether the whole chain passes validation.
func (s *State) IsValid() bool {
	return s.Validate() == nil
}
