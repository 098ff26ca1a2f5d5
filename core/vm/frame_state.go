package vm

// FrameState is the full mutable per-frame record (§3). It is owned by
// exactly one executing frame and destroyed on frame exit; only returnData,
// logs and gasRefund cross a call boundary (§5, Ownership).

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/eth2030/eei/core/types"
	"github.com/eth2030/eei/internal/elog"
)

// BlockContext carries the block-level values opcode handlers may read
// (COINBASE, TIMESTAMP, ...). Its fields are opaque to the EEI core beyond
// being threaded through to nested calls.
type BlockContext struct {
	Coinbase   types.Address
	Number     uint64
	Time       uint64
	GasLimit   uint64
	Difficulty BigInt256
	BaseFee    BigInt256
}

// Runner is the VM re-entry point (§6): the only way a frame invokes a
// nested call. Implemented outside this package by the opcode dispatcher's
// host VM; the EEI only calls through this interface.
type Runner interface {
	RunCall(opts CallOptions) CallResult
}

// FrameState holds everything one executing frame needs, per §3's data
// model.
type FrameState struct {
	Code    []byte
	Address types.Address
	Origin  types.Address
	Caller  types.Address

	ProgramCounter uint64

	Gas     *GasMeter
	Mem     *Memory
	Jumps   *JumpTable
	Storage *StorageGate

	Stack []BigInt256

	Logs []types.Log

	LastReturned []byte

	Depth int

	// Selfdestruct is the pending-destruction set, snapshotted before every
	// nested-call dispatch so a failure can restore it (Design Notes).
	Selfdestruct mapset.Set[types.Address]

	// Contract is the working copy of the current account: balance, nonce,
	// storage root and code hash. Reloaded from StateManager after a
	// successful nested call since its storage root may have changed.
	Contract types.Account

	Block    BlockContext
	GasPrice BigInt256
	Fork     *Hardfork

	StateManager  StateManager
	StorageReader StorageReader
	VM            Runner

	// Static is true inside a STATICCALL subtree and is inherited by every
	// descendant frame; never cleared once set (Invariant 7).
	Static bool

	log     *elog.Logger
	metrics *gasMetrics
	traps   *trapMetrics
}

const maxStackDepth = 1024

// NewFrameState constructs a fresh frame. gasLimit seeds the GasMeter;
// hardfork's gas-price table seeds the Memory and StorageGate constants.
func NewFrameState(code []byte, address, origin, caller types.Address, gasLimit uint64, fork *Hardfork, sm StateManager, sr StorageReader, runner Runner, opts ...FrameOption) *FrameState {
	cfg := frameConfig{logger: elog.Default().Module("eei"), metrics: nil, registerer: nil}
	for _, o := range opts {
		o(&cfg)
	}
	gm := newGasMetrics(cfg.registerer)
	tm := newTrapMetrics(cfg.registerer)
	meter := newGasMeter(gasLimit, gm, tm)
	prices := fork.GasPrice()

	fs := &FrameState{
		Code:         code,
		Address:      address,
		Origin:       origin,
		Caller:       caller,
		Gas:          meter,
		Mem:          newMemory(meter, prices.memory, prices.quadCoeffDiv),
		Jumps:        newJumpTable(code),
		Storage:      newStorageGate(fork, meter),
		Selfdestruct: mapset.NewThreadUnsafeSet[types.Address](),
		Contract:     types.NewAccount(),
		Fork:         fork,
		StateManager: sm,
		StorageReader: sr,
		VM:           runner,
		log:          cfg.logger,
		metrics:      gm,
		traps:        tm,
	}
	if sm != nil {
		if acc, err := sm.GetAccount(address); err == nil {
			fs.Contract = acc
			if fs.Contract.Balance == nil {
				fs.Contract.Balance = types.NewAccount().Balance
			}
		}
	}
	return fs
}

// frameConfig gathers the optional ambient collaborators (§2.1) a frame can
// be constructed with.
type frameConfig struct {
	logger     *elog.Logger
	metrics    *gasMetrics
	registerer prometheus.Registerer
}

// FrameOption configures ambient collaborators on a new FrameState.
type FrameOption func(*frameConfig)

// WithLogger overrides the default logger (elog.Default().Module("eei")).
func WithLogger(l *elog.Logger) FrameOption {
	return func(c *frameConfig) { c.logger = l }
}

// WithMetricsRegisterer points gas/call/trap metrics at a specific
// prometheus.Registerer instead of the global default — tests use this to
// avoid cross-test collector collisions.
func WithMetricsRegisterer(reg prometheus.Registerer) FrameOption {
	return func(c *frameConfig) { c.registerer = reg }
}

// PushStack pushes v onto the operand stack, trapping STACK_OVERFLOW past
// the 1024-depth limit.
func (f *FrameState) PushStack(v BigInt256) *Trap {
	if len(f.Stack) >= maxStackDepth {
		f.traps.observe(StackOverflow)
		return NewStackOverflow()
	}
	f.Stack = append(f.Stack, v)
	return nil
}

// PopStack removes and returns the top of the operand stack, trapping
// STACK_UNDERFLOW if empty.
func (f *FrameState) PopStack() (BigInt256, *Trap) {
	if len(f.Stack) == 0 {
		f.traps.observe(StackUnderflow)
		return BigInt256{}, NewStackUnderflow()
	}
	v := f.Stack[len(f.Stack)-1]
	f.Stack = f.Stack[:len(f.Stack)-1]
	return v, nil
}

// MergeNestedSuccess folds a successful nested frame's logs and refund
// counter into this frame (Invariant 6).
func (f *FrameState) MergeNestedSuccess(logs []types.Log, refund uint64) {
	f.Logs = append(f.Logs, logs...)
	f.Gas.MergeNested(refund)
}

// snapshotSelfdestruct returns a shallow copy of the selfdestruct set.
// Entries are never removed, only added, so a shallow copy suffices for
// rollback (Design Notes).
func (f *FrameState) snapshotSelfdestruct() mapset.Set[types.Address] {
	return f.Selfdestruct.Clone()
}

func (f *FrameState) restoreSelfdestruct(snap mapset.Set[types.Address]) {
	f.Selfdestruct = snap
}

// internalError wraps err as an INTERNAL_ERROR trap and records it in the
// trap metrics, so every StateManager failure surfaced through this frame is
// both counted and retrievable via errors.As.
func (f *FrameState) internalError(err error) *Trap {
	f.traps.observe(InternalError)
	return NewInternalError(err)
}
