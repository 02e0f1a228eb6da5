package public

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/mempool"
)

// newData is the payload posted to mine or queue.
type newData struct {
	Data string `json:"data" validate:"required"`
}

type block struct {
	Hash string `json:"hash"`
	database.Block
}

type genesisInfo struct {
	Block         block  `json:"block"`
	Difficulty    uint   `json:"difficulty"`
	MaxAttempts   uint64 `json:"max_attempts"`
	HashAlgorithm string `json:"hash_algorithm"`
}

type chainInfo struct {
	LatestBlock string  `json:"latest_block"`
	Pending     int     `json:"pending"`
	Blocks      []block `json:"blocks"`
}

type pending struct {
	Status string        `json:"status"`
	Entry  mempool.Entry `json:"entry"`
}

type validation struct {
	Valid  bool   `json:"valid"`
	Blocks int    `json:"blocks"`
	Error  string `json:"error,omitempty"`
}
