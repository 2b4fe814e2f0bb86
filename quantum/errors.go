package quantum

import "errors"

// Error kinds reported by the engine. Call sites wrap them with context, so
// match with errors.Is.
var (
	ErrInvalidIndex            = errors.New("basis index out of range")
	ErrInvalidQubitIndex       = errors.New("invalid qubit index")
	ErrDimensionMismatch       = errors.New("dimension mismatch")
	ErrZeroProbabilityCollapse = errors.New("collapse onto zero-probability subspace")
	ErrUnknownObservableLabel  = errors.New("unknown observable label")
)

// Tolerance governs zero-probability and near-zero amplitude detection.
const Tolerance = 1e-9
