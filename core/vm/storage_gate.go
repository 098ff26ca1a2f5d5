package vm

// StorageGate implements the hardfork-aware SSTORE gas/refund state machine
// (§4.5). Two variants are selected once per call via Hardfork.GteHardfork:
// the EIP-1283 net-gas rules (Constantinople+) and the pre-Constantinople
// "simple" rules. Constants are read from the active Hardfork's gas-price
// table rather than hardcoded, so retuning a future fork never touches this
// branch logic (Design Notes).

// StorageGate charges gas and adjusts the refund counter for one SSTORE,
// given the slot's (original, current, new) triple.
type StorageGate struct {
	fork  *Hardfork
	meter *GasMeter
}

// newStorageGate constructs a StorageGate bound to one frame's gas meter and
// hardfork schedule.
func newStorageGate(fork *Hardfork, meter *GasMeter) *StorageGate {
	return &StorageGate{fork: fork, meter: meter}
}

// isEmpty judges emptiness by byte length only (RLP-style), never by value
// truthiness (Design Notes: "do not derive emptiness from truthiness").
func isEmpty(b []byte) bool { return len(b) == 0 }

// Sstore charges gas for writing newValue into a slot whose found record is
// (original, current), returning a trap only for OUT_OF_GAS.
func (g *StorageGate) Sstore(found StorageFound, newValue []byte) *Trap {
	if g.fork.GteHardfork(string(ForkConstantinople)) {
		return g.sstoreNetGas(found, newValue)
	}
	return g.sstoreSimple(found, newValue)
}

// sstoreNetGas implements the EIP-1283 net-gas rules.
func (g *StorageGate) sstoreNetGas(found StorageFound, newValue []byte) *Trap {
	prices := g.fork.GasPrice()
	original, current := found.Original, found.Current

	if bytesEqual(current, newValue) {
		return g.meter.Charge(prices.netSstoreNoopGas)
	}

	if bytesEqual(original, current) {
		// Slot untouched so far in this transaction.
		if isEmpty(original) {
			return g.meter.Charge(prices.netSstoreInitGas)
		}
		if isEmpty(newValue) {
			if trap := g.meter.Charge(prices.netSstoreCleanGas); trap != nil {
				return trap
			}
			g.meter.RefundAdd(prices.netSstoreClearRefund)
			return nil
		}
		return g.meter.Charge(prices.netSstoreCleanGas)
	}

	// Slot already dirty in this transaction.
	if trap := g.meter.Charge(prices.netSstoreDirtyGas); trap != nil {
		return trap
	}

	if !isEmpty(original) && isEmpty(current) {
		g.meter.RefundSub(prices.netSstoreClearRefund)
	}
	if !isEmpty(original) && isEmpty(newValue) {
		g.meter.RefundAdd(prices.netSstoreClearRefund)
	}

	if bytesEqual(original, newValue) {
		if isEmpty(original) {
			g.meter.RefundAdd(prices.netSstoreResetClearRefund)
		} else {
			g.meter.RefundAdd(prices.netSstoreResetRefund)
		}
	}
	return nil
}

// sstoreSimple implements the pre-Constantinople rules.
func (g *StorageGate) sstoreSimple(found StorageFound, newValue []byte) *Trap {
	prices := g.fork.GasPrice()
	slotEmpty := isEmpty(found.Current)

	if isEmpty(newValue) {
		if trap := g.meter.Charge(prices.sstoreReset); trap != nil {
			return trap
		}
		if !slotEmpty {
			g.meter.RefundAdd(prices.sstoreRefund)
		}
		return nil
	}

	if slotEmpty {
		return g.meter.Charge(prices.sstoreSet)
	}
	return g.meter.Charge(prices.sstoreReset)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
