package vm

// CallKind identifies which of CALL/CALLCODE/DELEGATECALL/STATICCALL/
// CREATE/CREATE2 a CallOrchestrator invocation represents.

import "github.com/eth2030/eei/core/types"

// CallKind enumerates the six ways a frame can spawn a nested frame.
type CallKind uint8

const (
	CallKindCall CallKind = iota
	CallKindCallCode
	CallKindDelegateCall
	CallKindStaticCall
	CallKindCreate
	CallKindCreate2
)

// IsCreate reports whether kind is CREATE or CREATE2.
func (k CallKind) IsCreate() bool {
	return k == CallKindCreate || k == CallKindCreate2
}

// String renders the call kind for logs and test names.
func (k CallKind) String() string {
	switch k {
	case CallKindCall:
		return "CALL"
	case CallKindCallCode:
		return "CALLCODE"
	case CallKindDelegateCall:
		return "DELEGATECALL"
	case CallKindStaticCall:
		return "STATICCALL"
	case CallKindCreate:
		return "CREATE"
	case CallKindCreate2:
		return "CREATE2"
	default:
		return "UNKNOWN"
	}
}

// CallOptions carries everything the VM re-entry point (§6) needs to run a
// nested frame.
type CallOptions struct {
	Kind  CallKind
	Caller types.Address
	Origin types.Address
	GasPrice BigInt256
	Block BlockContext
	Static bool

	Selfdestruct interface{} // opaque handle back to the caller's set, for the host VM's own bookkeeping

	StorageReader StorageReader
	Depth         int

	Value BigInt256
	To    types.Address
	Data  []byte
	Salt  BigInt256 // CREATE2 only

	GasLimit uint64

	Delegatecall bool
}

// CallResult is what the VM re-entry point returns after running a nested
// frame to completion.
type CallResult struct {
	GasUsed        uint64
	ReturnData     []byte
	ExceptionError *Trap
	Logs           []types.Log
	GasRefund      uint64
	CreatedAddress types.Address // CREATE/CREATE2 only
}

// Reverted reports whether the nested frame exited via the REVERT trap.
func (r CallResult) Reverted() bool {
	return r.ExceptionError != nil && r.ExceptionError.Kind() == Revert
}

// Succeeded reports whether the nested frame completed without any trap.
func (r CallResult) Succeeded() bool {
	return r.ExceptionError == nil
}
