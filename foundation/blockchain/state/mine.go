package state

import (
	"context"
	"errors"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/mempool"
)

// ErrNoPendingData is returned when a block is requested to be mined from
// the mempool and there is nothing waiting.
var ErrNoPendingData = errors.New("no pending data in mempool")

// =============================================================================

// MineNewBlock finds a proof for the data and appends the new block to the
// chain. Mining operations are serialized so every block is built on the
// latest block. The search stops if the context is cancelled.
func (s *State) MineNewBlock(ctx context.Context, data string) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mineNewBlock(ctx, data)
}

// mineNewBlock performs the mining. The caller must hold s.mu.
func (s *State) mineNewBlock(ctx context.Context, data string) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: started")
	defer s.evHandler("state: MineNewBlock: MINING: completed")

	previous := s.db.LatestBlock()
	index := uint64(s.db.Count()) + 1

	s.evHandler("state: MineNewBlock: MINING: perform POW: blk[%d]", index)

	// Attempt to solve the POW puzzle. This can be cancelled.
	proof, err := s.puzzle.FindProof(ctx, previous.Proof, index, data, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	// Recompute the parent hash from the stored block.
	previousHash := s.puzzle.BlockHash(previous)
	block := database.NewBlock(data, proof, previousHash, index)

	s.evHandler("state: MineNewBlock: MINING: append: blk[%d]: prevBlk[%s]", index, previousHash)

	if err := s.db.Append(block); err != nil {
		return database.Block{}, err
	}

	s.evHandler("viewer: block: mined: blk[%d]: proof[%d]: hash[%s]", block.Index, block.Proof, s.puzzle.BlockHash(block))

	return block, nil
}

// MinePendingBlock mines the oldest entry in the mempool. The entry is
// removed when it is mined or when its search budget is spent, so a payload
// that can't be solved doesn't block the rest. The entry is picked under the
// mining lock so concurrent callers never mine the same entry twice.
func (s *State) MinePendingBlock(ctx context.Context) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.mempool.Oldest()
	if !ok {
		return database.Block{}, ErrNoPendingData
	}

	s.evHandler("state: MinePendingBlock: MINING: entry[%s]", entry.ID)

	block, err := s.mineNewBlock(ctx, entry.Data)
	if err != nil {
		if errors.Is(err, database.ErrNoProofFound) {
			s.evHandler("state: MinePendingBlock: MINING: dropping entry[%s]: %s", entry.ID, err)
			s.deleteEntry(entry.ID)
		}
		return database.Block{}, err
	}

	s.deleteEntry(entry.ID)

	return block, nil
}

// SubmitData adds a payload to the mempool and signals the worker to mine it.
func (s *State) SubmitData(data string) mempool.Entry {
	entry := mempool.NewEntry(data)
	n := s.mempool.Upsert(entry)

	s.evHandler("state: SubmitData: entry[%s]: pending[%d]", entry.ID, n)

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return entry
}

// deleteEntry removes a mined or abandoned entry from the mempool.
func (s *State) deleteEntry(id string) {
	if err := s.mempool.Delete(id); err != nil {
		s.evHandler("state: deleteEntry: WARNING: entry[%s]: %s", id, err)
	}
}
