// Package genesis maintains the fixed values of the first block and the
// default puzzle parameters.
package genesis

import "github.com/ardanlabs/powledger/foundation/blockchain/digest"

// Fixed values for the genesis block.
const (
	Index        uint64 = 1
	Data                = "I am the beginning and the end"
	Proof        int64  = 1
	PreviousHash        = "0"
)

// Default puzzle parameters.
const (
	Difficulty    uint = 4 // Number of leading '0' hex characters, 16 bits of work.
	HashAlgorithm      = digest.AlgorithmSHA256
)

// Genesis represents the information used to start a chain.
type Genesis struct {
	Index         uint64 `json:"index"`
	Data          string `json:"data"`
	Proof         int64  `json:"proof"`
	PreviousHash  string `json:"previous_hash"`
	Difficulty    uint   `json:"difficulty"`     // How many leading zeros a solution needs.
	HashAlgorithm string `json:"hash_algorithm"` // Hash used for links and puzzles.
}

// =============================================================================

// Default returns the genesis information every chain starts from.
func Default() Genesis {
	return Genesis{
		Index:         Index,
		Data:          Data,
		Proof:         Proof,
		PreviousHash:  PreviousHash,
		Difficulty:    Difficulty,
		HashAlgorithm: HashAlgorithm,
	}
}
