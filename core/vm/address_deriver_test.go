package vm

import (
	"testing"

	"github.com/eth2030/eei/core/types"
)

func TestDeriveCreateAddressDeterministic(t *testing.T) {
	d := DefaultAddressDeriver{}
	sender := types.HexToAddress("0x6ac7ea33f8831ea9dcc53393aaa88b25a785dbf0")

	a1 := d.DeriveCreateAddress(sender, 0)
	a2 := d.DeriveCreateAddress(sender, 0)
	if a1 != a2 {
		t.Errorf("DeriveCreateAddress is not deterministic: %v != %v", a1, a2)
	}

	a3 := d.DeriveCreateAddress(sender, 1)
	if a1 == a3 {
		t.Errorf("different nonces must derive different addresses, both got %v", a1)
	}
}

func TestDeriveCreate2AddressDeterministic(t *testing.T) {
	d := DefaultAddressDeriver{}
	sender := types.HexToAddress("0x6ac7ea33f8831ea9dcc53393aaa88b25a785dbf0")
	salt := NewBigInt256(42)
	initCodeHash := Keccak256([]byte{0x00})

	a1 := d.DeriveCreate2Address(sender, salt, initCodeHash)
	a2 := d.DeriveCreate2Address(sender, salt, initCodeHash)
	if a1 != a2 {
		t.Errorf("DeriveCreate2Address is not deterministic: %v != %v", a1, a2)
	}

	a3 := d.DeriveCreate2Address(sender, NewBigInt256(43), initCodeHash)
	if a1 == a3 {
		t.Errorf("different salts must derive different addresses, both got %v", a1)
	}
}

func TestMinimalBigEndian(t *testing.T) {
	cases := []struct {
		in   uint64
		want []byte
	}{
		{0, nil},
		{1, []byte{1}},
		{255, []byte{255}},
		{256, []byte{1, 0}},
	}
	for _, tc := range cases {
		got := minimalBigEndian(tc.in)
		if len(got) != len(tc.want) {
			t.Fatalf("minimalBigEndian(%d) = %v, want %v", tc.in, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("minimalBigEndian(%d) = %v, want %v", tc.in, got, tc.want)
			}
		}
	}
}
