package vm

// Keccak256 is the one cryptographic primitive the CallOrchestrator needs
// directly: hashing CREATE2's init code for address derivation (EIP-1014).
// DefaultAddressDeriver (address_deriver.go) also uses it for both CREATE
// and CREATE2 addresses. The general RLP codec and code-hash recomputation
// are not part of this package.

import (
	"github.com/eth2030/eei/core/types"
	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes data and returns the result as a types.Hash.
func Keccak256(data []byte) types.Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var out types.Hash
	h.Sum(out[:0])
	return out
}
