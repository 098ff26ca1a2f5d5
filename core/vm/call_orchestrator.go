package vm

// CallOrchestrator constructs nested frames for CALL, CALLCODE, DELEGATECALL,
// STATICCALL, CREATE and CREATE2 (§4.6). Pre-call gating, dispatch and
// post-call integration are grounded on the teacher's CreateExecutor.Execute
// lifecycle (evm_create.go) and EVM.Call's snapshot/balance-check pattern
// (interpreter.go), generalized to cover every call variant instead of only
// CREATE.

import (
	"github.com/eth2030/eei/core/types"
	"github.com/eth2030/eei/internal/elog"
)

// AddressDeriver computes the address a CREATE/CREATE2 deploys to. The
// CallOrchestrator only consumes the derived address through this
// interface; DefaultAddressDeriver (address_deriver.go) is this package's
// own implementation, and the orchestrator tests substitute a fake that
// returns a fixed address.
type AddressDeriver interface {
	DeriveCreateAddress(caller types.Address, nonce uint64) types.Address
	DeriveCreate2Address(caller types.Address, salt BigInt256, initCodeHash types.Hash) types.Address
}

// CallParams is the caller-supplied request for one nested call, before
// pre-call gating fills in defaults.
type CallParams struct {
	Kind CallKind

	// GasLimit is the caller-pinned gas limit; nil means "default to
	// current gasLeft" per pre-call gating step 2.
	GasLimit *uint64

	Value BigInt256
	To    types.Address

	InOffset, InLength   uint64
	OutOffset, OutLength uint64

	Salt BigInt256 // CREATE2 only
	Code []byte    // CREATE/CREATE2 init code; CALL-family code is resolved externally
}

// CallOrchestrator drives one frame's nested-call protocol.
type CallOrchestrator struct {
	frame   *FrameState
	deriver AddressDeriver
	log     *elog.Logger
	metrics *gasMetrics
}

// NewCallOrchestrator constructs an orchestrator bound to frame.
func NewCallOrchestrator(frame *FrameState, deriver AddressDeriver) *CallOrchestrator {
	return &CallOrchestrator{
		frame:   frame,
		deriver: deriver,
		log:     frame.log,
		metrics: frame.metrics,
	}
}

// Dispatch runs the full pre-call gating → snapshot → dispatch → post-call
// integration sequence for one nested call, leaving the outcome (address,
// success flag, or silent-fail 0) pushed onto the caller's stack. It returns
// a trap for a value-bearing CALL out of a static frame
// (STATIC_STATE_CHANGE), for OUT_OF_GAS while expanding the output window or
// loading the input window, for a StateManager failure (INTERNAL_ERROR), and
// for a full operand stack when pushing the outcome. The depth limit,
// insufficient value, REVERT and a nested exception are expressed by
// pushing 0 and are not traps of this frame.
func (co *CallOrchestrator) Dispatch(p CallParams) *Trap {
	f := co.frame

	// A value-bearing CALL out of an already-static frame is the one piece
	// of static enforcement this orchestrator owns directly; every other
	// state-mutating opcode (SSTORE, LOG*, CREATE*, SELFDESTRUCT) is
	// enforced by the opcode dispatcher checking FrameState.Static.
	if f.Static && p.Kind == CallKindCall && !p.Value.IsZero() {
		f.traps.observe(StaticStateChange)
		return NewStaticStateChange(p.Kind.String())
	}

	// Step 1: output window memory expansion.
	if trap := f.Mem.Expand(p.OutOffset, p.OutLength); trap != nil {
		return trap
	}

	// Step 2-3: default and clamp gasLimit to the 1/64 rule.
	gasLimit := f.Gas.Allowance()
	if p.GasLimit != nil {
		if *p.GasLimit < gasLimit {
			gasLimit = *p.GasLimit
		}
	}

	f.LastReturned = nil

	// Step 4: depth limit.
	if f.Depth >= int(f.Fork.StackLimit()) {
		co.metrics.observeCallOutcome("depth_limit", 0)
		return f.PushStack(NewBigInt256(0))
	}

	// Step 5: value transfer precondition (not for DELEGATECALL).
	if p.Kind != CallKindDelegateCall && !p.Value.IsZero() {
		balance := BigInt256FromBig(f.Contract.Balance)
		if balance.Cmp(p.Value) < 0 {
			co.metrics.observeCallOutcome("insufficient_value", 0)
			return f.PushStack(NewBigInt256(0))
		}
	}

	var createdAddr types.Address
	var nonceIncremented bool

	// Step 6-7: CREATE/CREATE2 nonce bump and persistence so the nested
	// frame observes the updated account.
	if p.Kind.IsCreate() {
		nonce := f.Contract.Nonce
		if p.Kind == CallKindCreate {
			createdAddr = co.deriver.DeriveCreateAddress(f.Address, nonce)
		} else {
			createdAddr = co.deriver.DeriveCreate2Address(f.Address, p.Salt, keccak256Hash(p.Code))
		}
		f.Contract.Nonce = nonce + 1
		nonceIncremented = true
	}
	if err := f.StateManager.PutAccount(f.Address, f.Contract); err != nil {
		return f.internalError(err)
	}

	// Snapshot the selfdestruct set before dispatch (Design Notes).
	snapshot := f.snapshotSelfdestruct()

	data := p.Code
	if !p.Kind.IsCreate() {
		loaded, trap := f.Mem.Load(p.InOffset, p.InLength)
		if trap != nil {
			return trap
		}
		data = loaded
	}

	opts := CallOptions{
		Kind:          p.Kind,
		Caller:        f.Address,
		Origin:        f.Origin,
		GasPrice:      f.GasPrice,
		Block:         f.Block,
		Static:        f.Static || p.Kind == CallKindStaticCall,
		Selfdestruct:  f.Selfdestruct,
		StorageReader: f.StorageReader,
		Depth:         f.Depth + 1,
		Value:         p.Value,
		To:            p.To,
		Data:          data,
		Salt:          p.Salt,
		GasLimit:      gasLimit,
		Delegatecall:  p.Kind == CallKindDelegateCall,
	}
	if p.Kind.IsCreate() {
		opts.To = createdAddr
	}

	result := f.VM.RunCall(opts)

	// Post-call integration: subtract gasUsed unconditionally.
	f.Gas.SettleCall(result.GasUsed)

	switch {
	case result.Succeeded():
		co.metrics.observeCallOutcome("success", result.GasUsed)
		f.MergeNestedSuccess(result.Logs, result.GasRefund)
		if trap := f.Mem.Store(p.OutOffset, result.ReturnData, 0, p.OutLength, true); trap != nil {
			return trap
		}
		if acc, err := f.StateManager.GetAccount(f.Address); err != nil {
			return f.internalError(err)
		} else {
			f.Contract = acc
		}
		if !p.Kind.IsCreate() {
			f.LastReturned = result.ReturnData
			return f.PushStack(NewBigInt256(1))
		}
		return f.pushAddress(createdAddr)

	case result.Reverted():
		co.metrics.observeCallOutcome("revert", result.GasUsed)
		f.restoreSelfdestruct(snapshot)
		if trap := f.Mem.Store(p.OutOffset, result.ReturnData, 0, p.OutLength, true); trap != nil {
			return trap
		}
		f.LastReturned = result.ReturnData
		if p.Kind.IsCreate() && nonceIncremented {
			f.Contract.Nonce--
			if err := f.StateManager.PutAccount(f.Address, f.Contract); err != nil {
				return f.internalError(err)
			}
		}
		return f.PushStack(NewBigInt256(0))

	default:
		co.metrics.observeCallOutcome("exception", result.GasUsed)
		if nonceIncremented {
			f.Contract.Nonce--
			if err := f.StateManager.PutAccount(f.Address, f.Contract); err != nil {
				return f.internalError(err)
			}
		}
		f.restoreSelfdestruct(snapshot)
		if co.log != nil && result.ExceptionError != nil && result.ExceptionError.Kind() == InternalError {
			co.log.Error("nested call failed with internal error", "kind", p.Kind.String(), "err", result.ExceptionError.Error())
		}
		return f.PushStack(NewBigInt256(0))
	}
}

func (f *FrameState) pushAddress(addr types.Address) *Trap {
	var buf [32]byte
	copy(buf[12:], addr.Bytes())
	return f.PushStack(BigInt256FromBytes32(buf))
}

// keccak256Hash is a placeholder seam for the external keccak256
// collaborator (golang.org/x/crypto/sha3), kept in its own small file
// (hash.go) so this orchestration logic does not import hashing directly.
func keccak256Hash(data []byte) types.Hash {
	return Keccak256(data)
}
