package vm

import "testing"

func TestHardforkGteHardfork(t *testing.T) {
	cases := []struct {
		active string
		target string
		want   bool
	}{
		{string(ForkByzantium), string(ForkFrontier), true},
		{string(ForkFrontier), string(ForkByzantium), false},
		{string(ForkConstantinople), string(ForkConstantinople), true},
		{string(ForkByzantium), string(ForkConstantinople), false},
	}
	for _, tc := range cases {
		h := NewHardfork(tc.active)
		if got := h.GteHardfork(tc.target); got != tc.want {
			t.Errorf("NewHardfork(%q).GteHardfork(%q) = %v, want %v", tc.active, tc.target, got, tc.want)
		}
	}
}

func TestHardforkUnknownFallsBackToFrontier(t *testing.T) {
	h := NewHardfork("not-a-real-fork")
	if !h.GteHardfork(string(ForkFrontier)) {
		t.Error("unknown fork name should fall back to Frontier")
	}
	if h.GteHardfork(string(ForkByzantium)) {
		t.Error("unknown fork name must not resolve at or past Byzantium")
	}
}

func TestHardforkGasPriceSelectsTable(t *testing.T) {
	byz := NewHardfork(string(ForkByzantium))
	if byz.GasPrice().netSstoreNoopGas != 0 {
		t.Errorf("byzantium netSstoreNoopGas = %d, want 0 (unset pre-Constantinople)", byz.GasPrice().netSstoreNoopGas)
	}

	con := NewHardfork(string(ForkConstantinople))
	if con.GasPrice().netSstoreNoopGas != 200 {
		t.Errorf("constantinople netSstoreNoopGas = %d, want 200", con.GasPrice().netSstoreNoopGas)
	}
}

func TestHardforkStackLimit(t *testing.T) {
	h := NewHardfork(string(ForkFrontier))
	if h.StackLimit() != 1024 {
		t.Errorf("StackLimit() = %d, want 1024", h.StackLimit())
	}
}
