package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ardanlabs/powledger/foundation/blockchain/digest"
)

// maxDifficulty is the number of hex characters in a 32 byte digest.
const maxDifficulty = 64

// MaxProof is the largest nonce whose square fits in an int64. Proofs
// outside 1..MaxProof are never mined and never valid.
const MaxProof = 3_037_000_499

// reportEvery is how many attempts pass between progress events.
const reportEvery = 100_000

// Set of errors returned by the proof of work support.
var (
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrNoProofFound      = errors.New("no proof found within budget")
)

// =============================================================================

// Puzzle holds the rules shared by mining and validation. Both sides must use
// the same values or mined blocks won't validate. Construct with NewPuzzle.
type Puzzle struct {
	difficulty  uint          // Number of leading '0' hex characters required.
	maxAttempts uint64        // Nonces tried before giving up, 0 means no limit.
	hasher      digest.Hasher // Hash used for the puzzle and the block links.
	prefix      string
}

// NewPuzzle constructs a puzzle for the specified difficulty. A nil hasher
// defaults to sha256.
func NewPuzzle(difficulty uint, maxAttempts uint64, hasher digest.Hasher) (Puzzle, error) {
	if difficulty == 0 || difficulty > maxDifficulty {
		return Puzzle{}, fmt.Errorf("%w: got %d, must be between 1 and %d", ErrInvalidDifficulty, difficulty, maxDifficulty)
	}

	if hasher == nil {
		hasher = digest.SHA256
	}

	pz := Puzzle{
		difficulty:  difficulty,
		maxAttempts: maxAttempts,
		hasher:      hasher,
		prefix:      strings.Repeat("0", int(difficulty)),
	}

	return pz, nil
}

// Difficulty returns the number of leading zeros a solution needs.
func (pz Puzzle) Difficulty() uint {
	return pz.difficulty
}

// MaxAttempts returns the search budget, 0 means the search is unbounded.
func (pz Puzzle) MaxAttempts() uint64 {
	return pz.maxAttempts
}

// Hasher returns the hash function used by the puzzle.
func (pz Puzzle) Hasher() digest.Hasher {
	return pz.hasher
}

// BlockHash returns the digest of the block using the puzzle's hash function.
func (pz Puzzle) BlockHash(b Block) string {
	return b.Hash(pz.hasher)
}

// DigestInput returns the bytes hashed when checking a nonce. The formula is
// the decimal text of n*n - p*p + i followed by the data.
func DigestInput(nonce int64, previousProof int64, index uint64, data string) []byte {
	v := nonce*nonce - previousProof*previousProof + int64(index)

	buf := strconv.AppendInt(make([]byte, 0, 20+len(data)), v, 10)
	return append(buf, data...)
}

// PuzzleHash returns the hex digest checked against the difficulty.
func (pz Puzzle) PuzzleHash(nonce int64, previousProof int64, index uint64, data string) string {
	return digest.Hex(pz.hasher, DigestInput(nonce, previousProof, index, data))
}

// IsSolved reports whether the nonce solves the puzzle for the parent proof,
// the index and the data of a block.
func (pz Puzzle) IsSolved(nonce int64, previousProof int64, index uint64, data string) bool {
	return pz.isHashSolved(pz.PuzzleHash(nonce, previousProof, index, data))
}

// FindProof searches for the smallest nonce, starting at 1, that solves the
// puzzle. The search stops when the context is cancelled or when the
// attempt budget is spent.
func (pz Puzzle) FindProof(ctx context.Context, previousProof int64, index uint64, data string, ev func(v string, args ...any)) (int64, error) {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("database: FindProof: MINING: started: blk[%d]", index)
	defer ev("database: FindProof: MINING: completed: blk[%d]", index)

	var attempts uint64
	for nonce := int64(1); ; nonce++ {
		attempts++
		if attempts%reportEvery == 0 {
			ev("database: FindProof: MINING: attempts[%d]", attempts)
		}

		// Did we get cancelled trying to solve the problem.
		if ctx.Err() != nil {
			ev("database: FindProof: MINING: CANCELLED: attempts[%d]", attempts)
			return 0, ctx.Err()
		}

		if nonce > MaxProof {
			ev("database: FindProof: MINING: GAVE UP: nonce range spent: attempts[%d]", attempts)
			return 0, fmt.Errorf("%w: blk[%d], nonce range spent", ErrNoProofFound, index)
		}

		hash := pz.PuzzleHash(nonce, previousProof, index, data)
		if pz.isHashSolved(hash) {
			ev("database: FindProof: MINING: SOLVED: proof[%d]: hash[%s]: attempts[%d]", nonce, hash, attempts)
			return nonce, nil
		}

		if pz.maxAttempts > 0 && attempts >= pz.maxAttempts {
			ev("database: FindProof: MINING: GAVE UP: attempts[%d]", attempts)
			return 0, fmt.Errorf("%w: blk[%d], attempts[%d]", ErrNoProofFound, index, attempts)
		}
	}
}

// isHashSolved checks the hash starts with the required number of 0's.
func (pz Puzzle) isHashSolved(hash string) bool {
	if pz.prefix == "" {
		return false
	}
	return strings.HasPrefix(hash, pz.prefix)
}
