package vm

// Hardfork is the "common" collaborator of §6: an ordered, named schedule of
// gas-price tables and feature predicates. Modeled on the teacher's
// ForkRules/SelectJumpTable progression, but shaped as a data table rather
// than a switch over opcode tables — this package has no opcode dispatch to
// select.

// gasPriceTable holds the named numeric gas constants §6 requires under
// param("gasPrices", name).
type gasPriceTable struct {
	memory       uint64
	quadCoeffDiv uint64

	sstoreSet    uint64
	sstoreReset  uint64
	sstoreRefund uint64

	netSstoreNoopGas          uint64
	netSstoreInitGas          uint64
	netSstoreCleanGas         uint64
	netSstoreDirtyGas         uint64
	netSstoreClearRefund      uint64
	netSstoreResetRefund      uint64
	netSstoreResetClearRefund uint64
}

// byzantiumGasPrices is the pre-Constantinople ("simple") SSTORE table, in
// effect from Frontier through Byzantium.
var byzantiumGasPrices = gasPriceTable{
	memory:       3,
	quadCoeffDiv: 512,

	sstoreSet:    20000,
	sstoreReset:  5000,
	sstoreRefund: 15000,
}

// constantinopleGasPrices is the EIP-1283 net-gas SSTORE table.
var constantinopleGasPrices = gasPriceTable{
	memory:       3,
	quadCoeffDiv: 512,

	sstoreSet:    20000,
	sstoreReset:  5000,
	sstoreRefund: 15000,

	netSstoreNoopGas:          200,
	netSstoreInitGas:          20000,
	netSstoreCleanGas:         5000,
	netSstoreDirtyGas:         200,
	netSstoreClearRefund:      15000,
	netSstoreResetRefund:      4800,
	netSstoreResetClearRefund: 19800,
}

// StackLimit is the call-depth bound (§6, param("vm", "stackLimit")).
const StackLimit = 1024

// forkName identifies a named hardfork in ascending activation order.
type forkName string

const (
	ForkFrontier      forkName = "frontier"
	ForkByzantium     forkName = "byzantium"
	ForkConstantinople forkName = "constantinople"
)

var forkOrder = []forkName{ForkFrontier, ForkByzantium, ForkConstantinople}

var forkGasPrices = map[forkName]gasPriceTable{
	ForkFrontier:       byzantiumGasPrices,
	ForkByzantium:      byzantiumGasPrices,
	ForkConstantinople: constantinopleGasPrices,
}

// Hardfork is the active hardfork schedule for one transaction's execution.
type Hardfork struct {
	active forkName
}

// NewHardfork constructs a Hardfork schedule pinned to the named fork. An
// unrecognized name is treated as Frontier (the most conservative table).
func NewHardfork(active string) *Hardfork {
	fn := forkName(active)
	if _, ok := forkGasPrices[fn]; !ok {
		fn = ForkFrontier
	}
	return &Hardfork{active: fn}
}

// GteHardfork reports whether the schedule's active fork is at or after the
// named fork in activation order.
func (h *Hardfork) GteHardfork(name string) bool {
	target := forkName(name)
	activeIdx, targetIdx := -1, -1
	for i, f := range forkOrder {
		if f == h.active {
			activeIdx = i
		}
		if f == target {
			targetIdx = i
		}
	}
	if activeIdx == -1 || targetIdx == -1 {
		return false
	}
	return activeIdx >= targetIdx
}

func (h *Hardfork) table() gasPriceTable {
	return forkGasPrices[h.active]
}

// GasPrice returns the active fork's whole gas-price table, standing in for
// §6's param("gasPrices", name) interface as a typed accessor instead of a
// stringly-keyed lookup (the name set is small and fixed, and callers in
// this package always reference a literal field of the table).
func (h *Hardfork) GasPrice() gasPriceTable {
	return h.table()
}

// StackLimit returns the call-depth bound (§6, param("vm", "stackLimit")).
func (h *Hardfork) StackLimit() uint64 {
	return StackLimit
}
