package vm

// Memory is the byte-addressable linear buffer of one frame. Expansion cost
// follows the Yellow Paper quadratic formula; gas is charged through the
// owning GasMeter. A size or cost that overflows 64 bits traps OUT_OF_GAS
// here directly, with gasLeft clamped to 0 just as Charge does.

import (
	"math"
	"math/bits"
)

// Memory is a word-granular (32-byte), grow-only byte buffer with
// incremental quadratic expansion costing.
type Memory struct {
	store           []byte
	wordCount       uint64
	highestMemCost  uint64
	gmem            uint64 // linear coefficient, from the active gas-price table
	qcoeff          uint64 // quadratic divisor, from the active gas-price table
	meter           *GasMeter
}

// newMemory constructs an empty Memory charging against meter, using the
// gmem/qcoeff constants from the active hardfork's gas-price table (typically
// 3 and 512).
func newMemory(meter *GasMeter, gmem, qcoeff uint64) *Memory {
	return &Memory{meter: meter, gmem: gmem, qcoeff: qcoeff}
}

// WordCount returns the current memory size in 32-byte words.
func (m *Memory) WordCount() uint64 { return m.wordCount }

// Len returns the current memory size in bytes.
func (m *Memory) Len() int { return len(m.store) }

// Data returns the backing buffer. Callers must not retain it across a
// subsequent expand, which may reallocate.
func (m *Memory) Data() []byte { return m.store }

// quadraticCost computes Gmem*words + floor(words^2/Qcoeff), returning false
// on overflow. The square is computed via a 128-bit intermediate (Design
// Notes requires at least that much precision for the memory cost formula).
func (m *Memory) quadraticCost(words uint64) (uint64, bool) {
	if words == 0 {
		return 0, true
	}
	hi, lo, overflow := mulOverflows128(words, words)
	if overflow {
		return 0, false
	}
	// The overflow check above returned for any hi != 0, so words^2 fits in
	// lo here and divWide divides it by qcoeff without reaching bits.Div64.
	quadratic, rem := divWide(hi, lo, m.qcoeff)
	_ = rem
	linear, ok := safeMulU64(m.gmem, words)
	if !ok {
		return 0, false
	}
	total := linear + quadratic
	if total < linear {
		return 0, false
	}
	return total, true
}

// divWide divides the 128-bit value (hi:lo) by y, returning quotient and
// remainder. Requires hi < y to avoid a 64-bit quotient overflow, which
// always holds for the word counts this package ever computes (gas budgets
// fit in 64 bits, and a words^2 product needing hi >= qcoeff would already
// cost more gas than exists in any conceivable block).
func divWide(hi, lo, y uint64) (quo, rem uint64) {
	if hi == 0 {
		return lo / y, lo % y
	}
	// bits.Div64 panics if hi >= y; guard by saturating, since that only
	// happens for word counts no real gas budget could ever pay for.
	if hi >= y {
		return math.MaxUint64, 0
	}
	return bits.Div64(hi, lo, y)
}

// safeMulU64 multiplies x*y, reporting overflow.
func safeMulU64(x, y uint64) (uint64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	z := x * y
	if z/x != y {
		return 0, false
	}
	return z, true
}

// Expand grows memory so that at least ceil((offset+length)/32) words are
// allocated, charging the incremental quadratic cost. No-op if length == 0
// or the frame is already large enough.
func (m *Memory) Expand(offset, length uint64) *Trap {
	if length == 0 {
		return nil
	}
	end := offset + length
	if end < offset {
		// Offset/length arithmetic overflowed a native word; no real EVM
		// program can address this much memory, so this is always OOG.
		m.meter.gasLeft = 0
		m.meter.traps.observe(OutOfGas)
		return NewOutOfGas()
	}
	newWordCount := (end + 31) / 32
	if newWordCount <= m.wordCount {
		return nil
	}
	cost, ok := m.quadraticCost(newWordCount)
	if !ok {
		m.meter.gasLeft = 0
		m.meter.traps.observe(OutOfGas)
		return NewOutOfGas()
	}
	if cost > m.highestMemCost {
		delta := cost - m.highestMemCost
		if trap := m.meter.Charge(delta); trap != nil {
			return trap
		}
		m.highestMemCost = cost
	}
	newSize := newWordCount * 32
	if uint64(len(m.store)) < newSize {
		grown := make([]byte, newSize)
		copy(grown, m.store)
		m.store = grown
	}
	m.wordCount = newWordCount
	return nil
}

// Load expands memory to cover [offset, offset+length) and returns a fresh
// copy of exactly length bytes, zero-padding any tail beyond the buffer.
func (m *Memory) Load(offset, length uint64) ([]byte, *Trap) {
	if trap := m.Expand(offset, length); trap != nil {
		return nil, trap
	}
	out := make([]byte, length)
	if offset < uint64(len(m.store)) {
		copy(out, m.store[offset:])
	}
	return out, nil
}

// Store copies min(length, max(0, len(src)-srcOffset)) bytes from
// src[srcOffset:] into memory[offset:], zero-filling the remainder of the
// destination window whenever src is non-empty, even if srcOffset is past
// its end and nothing was copied.
// Unless skipExpand is true, it first calls Expand(offset, length).
func (m *Memory) Store(offset uint64, src []byte, srcOffset, length uint64, skipExpand bool) *Trap {
	if length == 0 {
		return nil
	}
	if !skipExpand {
		if trap := m.Expand(offset, length); trap != nil {
			return trap
		}
	}
	end := offset + length
	if uint64(len(m.store)) < end {
		// Only reachable when skipExpand is set and the caller did not Expand
		// this window first; memory grows to whole words without charging.
		words := (end + 31) / 32
		grown := make([]byte, words*32)
		copy(grown, m.store)
		m.store = grown
		if words > m.wordCount {
			m.wordCount = words
		}
	}

	var copied uint64
	if srcOffset < uint64(len(src)) {
		avail := uint64(len(src)) - srcOffset
		copied = length
		if avail < copied {
			copied = avail
		}
		copy(m.store[offset:offset+copied], src[srcOffset:srcOffset+copied])
	}
	if len(src) > 0 {
		for i := copied; i < length; i++ {
			m.store[offset+i] = 0
		}
	}
	return nil
}
