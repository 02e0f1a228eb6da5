// Package digest provides the hash functions used to link blocks and to
// check proof of work solutions.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// ErrUnknownHasher is returned when a hash algorithm name is not registered.
var ErrUnknownHasher = errors.New("unknown hash algorithm")

// List of the supported hash algorithms.
const (
	AlgorithmSHA256    = "sha256"
	AlgorithmKeccak256 = "keccak256"
)

// Hasher defines a function that produces a 32 byte digest of the data.
type Hasher func(data []byte) []byte

// Map of the supported hash algorithms with their functions.
var hashers = map[string]Hasher{
	AlgorithmSHA256:    SHA256,
	AlgorithmKeccak256: Keccak256,
}

// Retrieve returns the hasher registered for the specified algorithm.
func Retrieve(algorithm string) (Hasher, error) {
	fn, exists := hashers[algorithm]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, algorithm)
	}
	return fn, nil
}

// =============================================================================

// SHA256 returns the sha256 digest of the data.
func SHA256(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

// Keccak256 returns the Ethereum keccak256 digest of the data.
func Keccak256(data []byte) []byte {
	return crypto.Keccak256(data)
}

// =============================================================================

// Hex returns the lower case hex encoding of the data's digest.
func Hex(h Hasher, data []byte) string {
	return hex.EncodeToString(h(data))
}

// Hash returns the hex digest of the JSON encoding of the value. Struct
// fields are encoded in declaration order and map keys are sorted by the
// encoder, so equal values always produce the same digest. A value that
// can't be encoded hashes to the empty string, which never matches a link.
func Hash(h Hasher, value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ""
	}

	return Hex(h, data)
}
