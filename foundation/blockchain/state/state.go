// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"fmt"
	"sync"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/digest"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/mempool"
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of mining and validating blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for mining pending data in the background.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Difficulty    uint   // Leading zeros required, defaults to the genesis value.
	MaxAttempts   uint64 // Search budget per block, 0 means unbounded.
	HashAlgorithm string // Defaults to the genesis value.
	EvHandler     EventHandler
}

// State manages the chain, the pending data and the mining rules.
type State struct {
	mu        sync.Mutex
	evHandler EventHandler

	genesis genesis.Genesis
	puzzle  database.Puzzle
	db      *database.Database
	mempool *mempool.Mempool

	Worker Worker
}

// New constructs a new ledger holding only the genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// Apply the configured puzzle parameters over the genesis defaults.
	gen := genesis.Default()
	if cfg.Difficulty != 0 {
		gen.Difficulty = cfg.Difficulty
	}
	if cfg.HashAlgorithm != "" {
		gen.HashAlgorithm = cfg.HashAlgorithm
	}

	hasher, err := digest.Retrieve(gen.HashAlgorithm)
	if err != nil {
		return nil, err
	}

	puzzle, err := database.NewPuzzle(gen.Difficulty, cfg.MaxAttempts, hasher)
	if err != nil {
		return nil, err
	}

	// The genesis block is the only block not created by mining.
	genesisBlock := database.NewBlock(gen.Data, gen.Proof, gen.PreviousHash, gen.Index)
	ev("state: New: genesis: blk[%d]: hash[%s]", genesisBlock.Index, puzzle.BlockHash(genesisBlock))

	state := State{
		evHandler: ev,
		genesis:   gen,
		puzzle:    puzzle,
		db:        database.New(genesisBlock),
		mempool:   mempool.New(),
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start mining pending data in the background.

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all mining activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// String reports the puzzle parameters, used in startup logs.
func (s *State) String() string {
	return fmt.Sprintf("difficulty[%d] hash[%s] maxAttempts[%d]", s.puzzle.Difficulty(), s.genesis.HashAlgorithm, s.puzzle.MaxAttempts())
}
