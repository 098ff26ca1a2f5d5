package vm

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrorKind classifies a Trap. Concrete values are intentionally distinct
// from Go's stdlib error sentinels so dispatcher code can switch on Kind()
// rather than string-matching errors.Is.
type ErrorKind uint8

const (
	// OutOfGas: a GasMeter.charge call would drive gasLeft negative.
	OutOfGas ErrorKind = iota
	// StackUnderflow: an operation needs more operands than the stack holds.
	StackUnderflow
	// StackOverflow: a PUSH/DUP would grow the stack past its depth limit.
	StackOverflow
	// InvalidJump: a JUMP/JUMPI destination fails JumpTable.IsValid.
	InvalidJump
	// InvalidOpcode: unrecognized bytecode. Raised by the external opcode
	// dispatcher, not by anything in this package; defined here so a single
	// ErrorKind enumeration classifies every trap a frame can produce.
	InvalidOpcode
	// StaticStateChange: a state-mutating operation attempted inside a
	// static (STATICCALL) frame.
	StaticStateChange
	// Revert: the explicit REVERT opcode. Preserves gasLeft and return data.
	Revert
	// InternalError: a stateManager or storageReader failure. Must abort the
	// whole transaction rather than being treated as a normal exception.
	InternalError
)

// String renders the ErrorKind for logs and error messages.
func (k ErrorKind) String() string {
	switch k {
	case OutOfGas:
		return "OUT_OF_GAS"
	case StackUnderflow:
		return "STACK_UNDERFLOW"
	case StackOverflow:
		return "STACK_OVERFLOW"
	case InvalidJump:
		return "INVALID_JUMP"
	case InvalidOpcode:
		return "INVALID_OPCODE"
	case StaticStateChange:
		return "STATIC_STATE_CHANGE"
	case Revert:
		return "REVERT"
	case InternalError:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN_TRAP"
	}
}

// Trap is the sole mechanism by which an EEI operation aborts. It unwinds
// the current frame without any frame-local cleanup; the frame's dispatcher
// is responsible for turning it into a frame-result record.
type Trap struct {
	kind ErrorKind
	msg  string
	data []byte // REVERT return data, if any
	err  error  // wrapped cause, for InternalError
}

// Kind returns the trap's classification.
func (t *Trap) Kind() ErrorKind { return t.kind }

// Data returns the REVERT return data, or nil for any other kind.
func (t *Trap) Data() []byte { return t.data }

// Error implements the error interface.
func (t *Trap) Error() string {
	if t.msg != "" {
		return fmt.Sprintf("%s: %s", t.kind, t.msg)
	}
	return t.kind.String()
}

// Unwrap exposes the wrapped cause so errors.Is/errors.As reach the original
// stateManager/storageReader failure behind an InternalError trap.
func (t *Trap) Unwrap() error { return t.err }

// NewOutOfGas constructs an OUT_OF_GAS trap.
func NewOutOfGas() *Trap { return &Trap{kind: OutOfGas} }

// NewStackUnderflow constructs a STACK_UNDERFLOW trap.
func NewStackUnderflow() *Trap { return &Trap{kind: StackUnderflow} }

// NewStackOverflow constructs a STACK_OVERFLOW trap.
func NewStackOverflow() *Trap { return &Trap{kind: StackOverflow} }

// NewInvalidJump constructs an INVALID_JUMP trap for the given destination.
func NewInvalidJump(dest uint64) *Trap {
	return &Trap{kind: InvalidJump, msg: fmt.Sprintf("destination %d", dest)}
}

// NewStaticStateChange constructs a STATIC_STATE_CHANGE trap naming the
// offending opcode for diagnostics.
func NewStaticStateChange(op string) *Trap {
	return &Trap{kind: StaticStateChange, msg: op}
}

// NewRevert constructs a REVERT trap carrying the returned data.
func NewRevert(data []byte) *Trap {
	return &Trap{kind: Revert, data: data}
}

// NewInternalError wraps a stateManager/storageReader failure.
func NewInternalError(cause error) *Trap {
	return &Trap{kind: InternalError, msg: cause.Error(), err: cause}
}

// trapMetrics counts traps by kind so an embedding node can alert on an
// anomalous INTERNAL_ERROR rate without parsing logs.
type trapMetrics struct {
	byKind *prometheus.CounterVec
}

func newTrapMetrics(reg prometheus.Registerer) *trapMetrics {
	m := &trapMetrics{
		byKind: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eei",
			Subsystem: "trap",
			Name:      "total",
			Help:      "Traps raised by the execution environment, labeled by kind.",
		}, []string{"kind"}),
	}
	m.byKind = registerOrReuse(reg, m.byKind)
	return m
}

func (m *trapMetrics) observe(k ErrorKind) {
	if m == nil {
		return
	}
	m.byKind.WithLabelValues(k.String()).Inc()
}
