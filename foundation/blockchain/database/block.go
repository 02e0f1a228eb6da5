package database

import (
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/digest"
)

// TimeLayout is the text form of a block timestamp.
const TimeLayout = "2006-01-02 15:04:05.000000"

// =============================================================================

// Block represents one record in the chain.
type Block struct {
	Index        uint64 `json:"index"`         // Position in the chain, genesis is 1.
	TimeStamp    string `json:"timestamp"`     // Time the block was constructed.
	Data         string `json:"data"`          // Opaque payload.
	Proof        int64  `json:"proof"`         // Nonce that solves the puzzle.
	PreviousHash string `json:"previous_hash"` // Digest of the parent block.
}

// NewBlock constructs a block stamped with the current time. The values are
// copied as provided, checking them is the job of validation.
func NewBlock(data string, proof int64, previousHash string, index uint64) Block {
	return Block{
		Index:        index,
		TimeStamp:    time.Now().Format(TimeLayout),
		Data:         data,
		Proof:        proof,
		PreviousHash: previousHash,
	}
}

// Hash returns the digest of the block's stored fields.
func (b Block) Hash(h digest.Hasher) string {
	return digest.Hash(h, newBlockDigest(b))
}

// =============================================================================

// blockDigest is the canonical form hashed for a block. Text fields are held
// as bytes so the encoder writes them as base64 and every stored byte reaches
// the hash, including bytes that are not valid UTF-8. The field order is part
// of the hash, changing it changes every digest.
type blockDigest struct {
	Index        uint64 `json:"index"`
	TimeStamp    []byte `json:"timestamp"`
	Data         []byte `json:"data"`
	Proof        int64  `json:"proof"`
	PreviousHash []byte `json:"previous_hash"`
}

func newBlockDigest(b Block) blockDigest {
	return blockDigest{
		Index:        b.Index,
		TimeStamp:    []byte(b.TimeStamp),
		Data:         []byte(b.Data),
		Proof:        b.Proof,
		PreviousHash: []byte(b.PreviousHash),
	}
}
