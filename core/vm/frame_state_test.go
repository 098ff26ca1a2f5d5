package vm

import (
	"math/big"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/eth2030/eei/core/types"
)

// fakeStateManager is a minimal in-memory StateManager for tests.
type fakeStateManager struct {
	accounts map[types.Address]types.Account
	storage  map[types.Address]map[types.Hash][]byte
}

func newFakeStateManager() *fakeStateManager {
	return &fakeStateManager{
		accounts: make(map[types.Address]types.Account),
		storage:  make(map[types.Address]map[types.Hash][]byte),
	}
}

func (s *fakeStateManager) GetAccount(addr types.Address) (types.Account, error) {
	if acc, ok := s.accounts[addr]; ok {
		return acc, nil
	}
	return types.NewAccount(), nil
}

func (s *fakeStateManager) PutAccount(addr types.Address, acc types.Account) error {
	s.accounts[addr] = acc
	return nil
}

func (s *fakeStateManager) GetContractStorage(addr types.Address, key types.Hash) ([]byte, error) {
	if m, ok := s.storage[addr]; ok {
		return m[key], nil
	}
	return nil, nil
}

func (s *fakeStateManager) PutContractStorage(addr types.Address, key types.Hash, value []byte) error {
	if _, ok := s.storage[addr]; !ok {
		s.storage[addr] = make(map[types.Hash][]byte)
	}
	s.storage[addr][key] = value
	return nil
}

func (s *fakeStateManager) Checkpoint() int     { return 0 }
func (s *fakeStateManager) Commit(int)          {}
func (s *fakeStateManager) Revert(int)          {}

func newTestFrame(t *testing.T, gasLimit uint64) *FrameState {
	t.Helper()
	sm := newFakeStateManager()
	addr := types.HexToAddress("0x0000000000000000000000000000000000000001")
	sm.accounts[addr] = types.Account{Balance: big.NewInt(1000), CodeHash: types.EmptyCodeHash, Root: types.EmptyRootHash}
	fork := NewHardfork(string(ForkConstantinople))
	reg := prometheus.NewRegistry()
	return NewFrameState(nil, addr, addr, addr, gasLimit, fork, sm, nil, nil, WithMetricsRegisterer(reg))
}

func TestFrameStatePushPopStack(t *testing.T) {
	f := newTestFrame(t, 1000)
	if trap := f.PushStack(NewBigInt256(42)); trap != nil {
		t.Fatalf("unexpected trap: %v", trap)
	}
	v, trap := f.PopStack()
	if trap != nil {
		t.Fatalf("unexpected trap: %v", trap)
	}
	got, ok := v.Uint64()
	if !ok || got != 42 {
		t.Errorf("PopStack() = %v, want 42", v)
	}
}

func TestFrameStatePopEmptyUnderflows(t *testing.T) {
	f := newTestFrame(t, 1000)
	_, trap := f.PopStack()
	if trap == nil || trap.Kind() != StackUnderflow {
		t.Fatalf("expected STACK_UNDERFLOW, got %v", trap)
	}
}

func TestFrameStatePushOverflows(t *testing.T) {
	f := newTestFrame(t, 1000)
	for i := 0; i < maxStackDepth; i++ {
		if trap := f.PushStack(NewBigInt256(1)); trap != nil {
			t.Fatalf("unexpected trap at depth %d: %v", i, trap)
		}
	}
	if trap := f.PushStack(NewBigInt256(1)); trap == nil || trap.Kind() != StackOverflow {
		t.Fatalf("expected STACK_OVERFLOW, got %v", trap)
	}
}

func TestFrameStateContractLoadedFromStateManager(t *testing.T) {
	f := newTestFrame(t, 1000)
	if f.Contract.Balance.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("Contract.Balance = %v, want 1000", f.Contract.Balance)
	}
}

func TestFrameStateMergeNestedSuccess(t *testing.T) {
	f := newTestFrame(t, 1000)
	logs := []types.Log{{Address: f.Address}}
	f.MergeNestedSuccess(logs, 300)
	if len(f.Logs) != 1 {
		t.Errorf("len(Logs) = %d, want 1", len(f.Logs))
	}
	if f.Gas.Refund() != 300 {
		t.Errorf("Refund() = %d, want 300", f.Gas.Refund())
	}
}

func TestFrameStateSelfdestructSnapshotRestore(t *testing.T) {
	f := newTestFrame(t, 1000)
	snap := f.snapshotSelfdestruct()
	f.Selfdestruct.Add(f.Address)
	if f.Selfdestruct.Cardinality() != 1 {
		t.Fatalf("expected one pending selfdestruct")
	}
	f.restoreSelfdestruct(snap)
	if f.Selfdestruct.Cardinality() != 0 {
		t.Errorf("expected selfdestruct set restored to empty, got %d", f.Selfdestruct.Cardinality())
	}
}
