package vm

import "testing"

func newTestGasMeter(gasLeft uint64) *GasMeter {
	return newGasMeter(gasLeft, nil, nil)
}

func TestGasMeterChargeSufficient(t *testing.T) {
	m := newTestGasMeter(100)
	if trap := m.Charge(30); trap != nil {
		t.Fatalf("unexpected trap: %v", trap)
	}
	if m.GasLeft() != 70 {
		t.Errorf("GasLeft() = %d, want 70", m.GasLeft())
	}
}

func TestGasMeterChargeOutOfGas(t *testing.T) {
	m := newTestGasMeter(10)
	trap := m.Charge(11)
	if trap == nil {
		t.Fatal("expected OUT_OF_GAS trap")
	}
	if trap.Kind() != OutOfGas {
		t.Errorf("Kind() = %v, want OutOfGas", trap.Kind())
	}
	if m.GasLeft() != 0 {
		t.Errorf("GasLeft() = %d, want 0 after OOG", m.GasLeft())
	}
}

func TestGasMeterAllowance(t *testing.T) {
	// Scenario 5: gasLeft=6400 forwards 6400-100=6300.
	m := newTestGasMeter(6400)
	if got := m.Allowance(); got != 6300 {
		t.Errorf("Allowance() = %d, want 6300", got)
	}
}

func TestGasMeterRefundNeverNegative(t *testing.T) {
	m := newTestGasMeter(1000)
	m.RefundAdd(100)
	m.RefundSub(500)
	if m.Refund() != 0 {
		t.Errorf("Refund() = %d, want 0 (floored)", m.Refund())
	}
}

func TestGasMeterMergeNested(t *testing.T) {
	m := newTestGasMeter(1000)
	m.RefundAdd(50)
	m.MergeNested(200)
	if m.Refund() != 250 {
		t.Errorf("Refund() = %d, want 250", m.Refund())
	}
}

func TestGasMeterSettleCallUnconditional(t *testing.T) {
	m := newTestGasMeter(1000)
	m.SettleCall(400)
	if m.GasLeft() != 600 {
		t.Errorf("GasLeft() = %d, want 600", m.GasLeft())
	}
}
