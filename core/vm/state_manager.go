package vm

// StateManager and StorageReader are the external collaborators the EEI
// relies on for account and storage I/O. They are trimmed here to exactly
// the capabilities §6 names — no transient storage (EIP-1153) or access-list
// (EIP-2929) methods, since this package only targets pre-Constantinople and
// Constantinople/EIP-1283 semantics.

import "github.com/eth2030/eei/core/types"

// StateManager is the account store shared by every frame of a transaction.
// Implementations must provide checkpoint/commit/revert semantics keyed to
// the lifetime of a nested call; the EEI itself never snapshots account
// state (§5) — it relies entirely on this contract.
type StateManager interface {
	GetAccount(addr types.Address) (types.Account, error)
	PutAccount(addr types.Address, acc types.Account) error

	GetContractStorage(addr types.Address, key types.Hash) ([]byte, error)
	PutContractStorage(addr types.Address, key types.Hash, value []byte) error

	// Checkpoint returns an opaque handle a later Revert can roll back to.
	Checkpoint() int
	Commit(checkpoint int)
	Revert(checkpoint int)
}

// StorageFound is the "found" record passed to StorageGate: the value at the
// start of the transaction (original) and the value in pending state
// (current). Emptiness is always judged by byte length, never truthiness
// (Design Notes).
type StorageFound struct {
	Original []byte
	Current  []byte
}

// StorageReader is the Constantinople+ cache layered in front of the
// StateManager that additionally tracks, per slot, the (original, current)
// pair required by the net-gas SSTORE state machine. Its GetContractStorage
// is guaranteed to equal Original on first access within the transaction.
type StorageReader interface {
	GetContractStorage(addr types.Address, key types.Hash) (StorageFound, error)
	PutContractStorage(addr types.Address, key types.Hash, value []byte) error
}
