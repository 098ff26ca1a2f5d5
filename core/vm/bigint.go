package vm

// BigInt256 is the fixed-width unsigned 256-bit integer used throughout the
// EEI for stack values, gas accounting and memory-offset arithmetic. It is a
// thin wrapper over uint256.Int so every operation used by this package has
// an explicit EVM semantic (div-by-zero = 0); MustUint64 is the only method
// that panics.

import (
	"math/big"
	"math/bits"

	"github.com/holiman/uint256"
)

// BigInt256 wraps a four-limb unsigned 256-bit integer.
type BigInt256 struct {
	v uint256.Int
}

// NewBigInt256 constructs a BigInt256 from a native uint64.
func NewBigInt256(x uint64) BigInt256 {
	var b BigInt256
	b.v.SetUint64(x)
	return b
}

// BigInt256FromBytes32 decodes a big-endian 32-byte word.
func BigInt256FromBytes32(b [32]byte) BigInt256 {
	var out BigInt256
	out.v.SetBytes32(b[:])
	return out
}

// Bytes32 encodes the value as a big-endian 32-byte word.
func (b BigInt256) Bytes32() [32]byte {
	return b.v.Bytes32()
}

// Add returns b + other, wrapping modulo 2^256 (checked overflow is not an
// EVM concept for ADD: wraparound is the defined behavior).
func (b BigInt256) Add(other BigInt256) BigInt256 {
	var out BigInt256
	out.v.Add(&b.v, &other.v)
	return out
}

// Sub returns b - other, wrapping modulo 2^256.
func (b BigInt256) Sub(other BigInt256) BigInt256 {
	var out BigInt256
	out.v.Sub(&b.v, &other.v)
	return out
}

// Mul returns b * other, wrapping modulo 2^256.
func (b BigInt256) Mul(other BigInt256) BigInt256 {
	var out BigInt256
	out.v.Mul(&b.v, &other.v)
	return out
}

// Div returns floor(b / other); per EVM semantics, division by zero yields 0.
func (b BigInt256) Div(other BigInt256) BigInt256 {
	var out BigInt256
	out.v.Div(&b.v, &other.v)
	return out
}

// Mod returns b % other; per EVM semantics, modulo by zero yields 0.
func (b BigInt256) Mod(other BigInt256) BigInt256 {
	var out BigInt256
	out.v.Mod(&b.v, &other.v)
	return out
}

// And, Or, Xor implement the corresponding bitwise operations.
func (b BigInt256) And(other BigInt256) BigInt256 {
	var out BigInt256
	out.v.And(&b.v, &other.v)
	return out
}

func (b BigInt256) Or(other BigInt256) BigInt256 {
	var out BigInt256
	out.v.Or(&b.v, &other.v)
	return out
}

func (b BigInt256) Xor(other BigInt256) BigInt256 {
	var out BigInt256
	out.v.Xor(&b.v, &other.v)
	return out
}

// Cmp returns -1, 0 or 1 comparing b to other.
func (b BigInt256) Cmp(other BigInt256) int {
	return b.v.Cmp(&other.v)
}

// IsZero reports whether b is zero.
func (b BigInt256) IsZero() bool {
	return b.v.IsZero()
}

// Uint64 returns b as a native uint64. ok is false if b does not fit.
func (b BigInt256) Uint64() (value uint64, ok bool) {
	if !b.v.IsUint64() {
		return 0, false
	}
	return b.v.Uint64(), true
}

// MustUint64 returns b as a native uint64, panicking if it does not fit.
// Reserved for call sites that have already validated range (e.g. a program
// counter derived from code length, which can never exceed a practical
// bytecode size).
func (b BigInt256) MustUint64() uint64 {
	v, ok := b.Uint64()
	if !ok {
		panic("vm: BigInt256 does not fit in uint64")
	}
	return v
}

// CeilDiv returns ceil(b / other) for positive divisors only; the EEI never
// calls this with other == 0 (word-count rounding always divides by 32).
func (b BigInt256) CeilDiv(other BigInt256) BigInt256 {
	if other.IsZero() {
		return NewBigInt256(0)
	}
	quot := b.Div(other)
	rem := b.Mod(other)
	if !rem.IsZero() {
		quot = quot.Add(NewBigInt256(1))
	}
	return quot
}

// ToBig converts to a math/big.Int, for the boundary with StateManager's
// Account.Balance (which, matching the account model this package's
// collaborators use, is a *big.Int rather than a BigInt256 — balances are
// not on the hot gas-accounting path this type is optimized for).
func (b BigInt256) ToBig() *big.Int {
	return b.v.ToBig()
}

// BigInt256FromBig converts a non-negative math/big.Int into a BigInt256,
// truncating modulo 2^256 if it does not fit (never true for account
// balances, which are themselves bounded to 256 bits).
func BigInt256FromBig(x *big.Int) BigInt256 {
	var out BigInt256
	out.v.SetFromBig(x)
	return out
}

// mulOverflows128 reports whether x*y overflows a 64-bit product when
// widened into a 128-bit intermediate, i.e. the high word of the full
// 128-bit product is non-zero. Used by the quadratic memory cost formula,
// which the EVM computes on native-width word counts but whose product can
// exceed 64 bits for adversarial operands; Design Notes calls for at least
// 128 bits of intermediate precision here.
func mulOverflows128(x, y uint64) (hi, lo uint64, overflow bool) {
	hi, lo = bits.Mul64(x, y)
	return hi, lo, hi != 0
}
