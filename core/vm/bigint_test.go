package vm

import "testing"

func TestBigInt256DivModByZero(t *testing.T) {
	ten := NewBigInt256(10)
	zero := NewBigInt256(0)

	if got := ten.Div(zero); !got.IsZero() {
		t.Errorf("10 / 0 = %v, want 0 (EVM semantics)", got)
	}
	if got := ten.Mod(zero); !got.IsZero() {
		t.Errorf("10 %% 0 = %v, want 0 (EVM semantics)", got)
	}
}

func TestBigInt256Arithmetic(t *testing.T) {
	cases := []struct {
		name string
		a, b uint64
		op   func(a, b BigInt256) BigInt256
		want uint64
	}{
		{"add", 3, 4, BigInt256.Add, 7},
		{"sub", 10, 4, BigInt256.Sub, 6},
		{"mul", 6, 7, BigInt256.Mul, 42},
		{"div", 20, 4, BigInt256.Div, 5},
		{"mod", 20, 6, BigInt256.Mod, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.op(NewBigInt256(tc.a), NewBigInt256(tc.b))
			v, ok := got.Uint64()
			if !ok || v != tc.want {
				t.Errorf("%s(%d, %d) = %v, want %d", tc.name, tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestBigInt256Bytes32RoundTrip(t *testing.T) {
	original := NewBigInt256(0xdeadbeef)
	b := original.Bytes32()
	roundTripped := BigInt256FromBytes32(b)
	if original.Cmp(roundTripped) != 0 {
		t.Errorf("round trip mismatch: %v != %v", original, roundTripped)
	}
}

func TestBigInt256CeilDiv(t *testing.T) {
	cases := []struct {
		a, b, want uint64
	}{
		{0, 32, 0},
		{1, 32, 1},
		{32, 32, 1},
		{33, 32, 2},
		{64, 32, 2},
	}
	for _, tc := range cases {
		got := NewBigInt256(tc.a).CeilDiv(NewBigInt256(tc.b))
		v, ok := got.Uint64()
		if !ok || v != tc.want {
			t.Errorf("ceilDiv(%d, %d) = %v, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestBigInt256MustUint64Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range MustUint64")
		}
	}()
	max := NewBigInt256(0).Sub(NewBigInt256(1)) // wraps to 2^256-1
	max.MustUint64()
}
