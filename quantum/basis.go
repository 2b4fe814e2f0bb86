package quantum

import (
	"fmt"
	"math/bits"
)

// Basis indexing convention: index i of a 2^n state vector is the n-bit
// binary string of i, left-padded to width n. Qubit 0 is the most
// significant bit and qubit n-1 the least significant. Every gate and
// projector in this package goes through the helpers below.

// Dimension returns 2^n.
func Dimension(n int) int {
	return 1 << n
}

// QubitMask returns the bit of a basis index that encodes qubit q.
func QubitMask(n, q int) int {
	return 1 << (n - 1 - q)
}

// BitOf returns the value (0 or 1) of qubit q in basis index i.
func BitOf(i, n, q int) int {
	return (i >> (n - 1 - q)) & 1
}

// ToBits decodes index into its n binary digits, qubit 0 first.
func ToBits(index, n int) ([]int, error) {
	if n < 0 || index < 0 || index >= Dimension(n) {
		return nil, fmt.Errorf("index %d for %d qubits: %w", index, n, ErrInvalidIndex)
	}
	b := make([]int, n)
	decode(b, index)
	return b, nil
}

// ToIndex is the inverse of ToBits.
func ToIndex(b []int) int {
	index := 0
	for _, bit := range b {
		index = index<<1 | (bit & 1)
	}
	return index
}

// decode fills b with the digits of index without allocating.
func decode(b []int, index int) {
	for q := len(b) - 1; q >= 0; q-- {
		b[q] = index & 1
		index >>= 1
	}
}

// BitStrings returns the zero-padded binary string of every basis index.
func BitStrings(n int) []string {
	out := make([]string, Dimension(n))
	for i := range out {
		out[i] = fmt.Sprintf("%0*b", n, i)
	}
	return out
}

// BasisLabels returns the ket label of every basis index, e.g. "|01>".
func BasisLabels(n int) []string {
	out := BitStrings(n)
	for i, s := range out {
		out[i] = "|" + s + ">"
	}
	return out
}

// QubitsFor returns n such that length == 2^n. Lengths that are not a power
// of two, and lengths below 2, are rejected.
func QubitsFor(length int) (int, error) {
	if length < 2 || length&(length-1) != 0 {
		return 0, fmt.Errorf("state length %d is not a power of two >= 2: %w", length, ErrDimensionMismatch)
	}
	return bits.TrailingZeros(uint(length)), nil
}
