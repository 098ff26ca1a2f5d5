package vm

// GasMeter funnels every gas deduction for one frame through Charge, which
// raises OUT_OF_GAS for an unaffordable amount (Design Notes, §4.2). The only
// other OUT_OF_GAS source is Memory.Expand's 64-bit overflow guard, which
// leaves the meter in the same state (gasLeft 0, trap counted).

// CallGasFraction is the EIP-150 denominator: a nested call may be forwarded
// at most gasLeft - floor(gasLeft/64).
const CallGasFraction = 64

// GasMeter tracks the gas budget and refund counter of one FrameState.
type GasMeter struct {
	gasLeft uint64
	refund  uint64
	metrics *gasMetrics
	traps   *trapMetrics
}

// newGasMeter constructs a GasMeter with the given starting budget.
func newGasMeter(gasLeft uint64, metrics *gasMetrics, traps *trapMetrics) *GasMeter {
	return &GasMeter{gasLeft: gasLeft, metrics: metrics, traps: traps}
}

// GasLeft returns the current remaining gas.
func (m *GasMeter) GasLeft() uint64 { return m.gasLeft }

// Refund returns the current refund counter.
func (m *GasMeter) Refund() uint64 { return m.refund }

// Charge subtracts amount from gasLeft. If the result would go negative,
// gasLeft is clamped to 0 and an OUT_OF_GAS trap is returned.
func (m *GasMeter) Charge(amount uint64) *Trap {
	if amount > m.gasLeft {
		m.gasLeft = 0
		m.traps.observe(OutOfGas)
		return NewOutOfGas()
	}
	m.gasLeft -= amount
	m.metrics.observeCharge(amount)
	return nil
}

// RefundAdd increases the refund counter by n.
func (m *GasMeter) RefundAdd(n uint64) { m.refund += n }

// RefundSub decreases the refund counter by n. The spec's invariant that the
// counter never goes negative in practice is enforced by every StorageGate
// call site pairing adds and subtracts that cannot cross zero for a single
// slot; a defensive floor at 0 guards against any future caller that breaks
// that pairing.
func (m *GasMeter) RefundSub(n uint64) {
	if n > m.refund {
		m.refund = 0
		return
	}
	m.refund -= n
}

// Allowance returns gasLeft - floor(gasLeft/64), the EIP-150 1/64 rule: the
// maximum gas that may be forwarded to a nested call.
func (m *GasMeter) Allowance() uint64 {
	return m.gasLeft - m.gasLeft/CallGasFraction
}

// MergeNested folds a successfully-returned nested frame's refund counter
// into this one. Failed nested frames contribute nothing (Invariant 6).
func (m *GasMeter) MergeNested(nestedRefund uint64) {
	m.refund += nestedRefund
}

// SettleCall subtracts gasUsed from gasLeft unconditionally, per
// CallOrchestrator's post-call integration rule: "Subtract gasUsed from
// gasLeft unconditionally" regardless of the nested call's outcome.
func (m *GasMeter) SettleCall(gasUsed uint64) {
	if gasUsed > m.gasLeft {
		// A well-behaved VM never reports gasUsed > what was forwarded; clamp
		// defensively rather than underflow the counter.
		m.gasLeft = 0
		return
	}
	m.gasLeft -= gasUsed
}
