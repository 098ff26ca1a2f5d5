package vm

// JumpTable is a validity SET of JUMPDEST program-counter positions for one
// frame's code. It is not an opcode-dispatch table — decoding and executing
// opcodes is the external dispatcher's job; this type only answers
// "is pc a valid jump destination" (§4.4).

import (
	mapset "github.com/deckarep/golang-set/v2"
)

const jumpdestOpcode = 0x5B

// pushImmediateLen returns how many immediate bytes follow op: 1..32 for
// PUSH1..PUSH32, 0 for anything else. PUSH0 (0x5F) carries no immediate.
func pushImmediateLen(op byte) int {
	const push1, push32 = 0x60, 0x7F
	if op < push1 || op > push32 {
		return 0
	}
	return int(op-push1) + 1
}

// JumpTable holds the frozen set of valid JUMPDEST positions for one frame.
// Built once from code; never mutated afterward (Invariant 5).
type JumpTable struct {
	valid mapset.Set[uint64]
}

// newJumpTable scans code once, skipping PUSH immediates so a JUMPDEST byte
// that appears inside push data is correctly excluded.
func newJumpTable(code []byte) *JumpTable {
	valid := mapset.NewThreadUnsafeSet[uint64]()
	for i := 0; i < len(code); {
		op := code[i]
		if op == jumpdestOpcode {
			valid.Add(uint64(i))
		}
		i += 1 + pushImmediateLen(op)
	}
	return &JumpTable{valid: valid}
}

// IsValid reports whether dest is a JUMPDEST not embedded in PUSH data.
func (jt *JumpTable) IsValid(dest uint64) bool {
	return jt.valid.Contains(dest)
}

// Len returns the number of valid jump destinations, mainly for tests.
func (jt *JumpTable) Len() int { return jt.valid.Cardinality() }
