package quantum

import (
	"math"
	"math/cmplx"
)

// Operator is a 2x2 single-qubit operator in row-major order.
type Operator [2][2]complex128

// Dagger returns the conjugate transpose.
func (o Operator) Dagger() Operator {
	return Operator{
		{cmplx.Conj(o[0][0]), cmplx.Conj(o[1][0])},
		{cmplx.Conj(o[0][1]), cmplx.Conj(o[1][1])},
	}
}

// Mul returns o·p.
func (o Operator) Mul(p Operator) Operator {
	var r Operator
	for i := range 2 {
		for j := range 2 {
			r[i][j] = o[i][0]*p[0][j] + o[i][1]*p[1][j]
		}
	}
	return r
}

// Matrix widens the operator to a dense 2x2 Matrix.
func (o Operator) Matrix() *Matrix {
	m := NewMatrix(2)
	for i := range 2 {
		for j := range 2 {
			m.Set(i, j, o[i][j])
		}
	}
	return m
}

// Matrix is a dense square complex matrix.
type Matrix struct {
	dim  int
	data []complex128
}

// NewMatrix returns a dim x dim zero matrix.
func NewMatrix(dim int) *Matrix {
	return &Matrix{dim: dim, data: make([]complex128, dim*dim)}
}

// Identity returns the dim x dim identity.
func Identity(dim int) *Matrix {
	m := NewMatrix(dim)
	for i := range dim {
		m.data[i*dim+i] = 1
	}
	return m
}

// Dim is the number of rows, equal to the number of columns.
func (m *Matrix) Dim() int { return m.dim }

// At returns the entry at row i, column j.
func (m *Matrix) At(i, j int) complex128 { return m.data[i*m.dim+j] }

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v complex128) { m.data[i*m.dim+j] = v }

// Kron returns the Kronecker product a ⊗ b.
func Kron(a, b *Matrix) *Matrix {
	out := NewMatrix(a.dim * b.dim)
	for ai := range a.dim {
		for aj := range a.dim {
			av := a.At(ai, aj)
			for bi := range b.dim {
				row := ai*b.dim + bi
				for bj := range b.dim {
					out.Set(row, aj*b.dim+bj, av*b.At(bi, bj))
				}
			}
		}
	}
	return out
}

// KronAll folds Kron over ops left to right, so ops[0] acts on qubit 0.
func KronAll(ops []Operator) *Matrix {
	if len(ops) == 0 {
		return Identity(1)
	}
	out := ops[0].Matrix()
	for _, op := range ops[1:] {
		out = Kron(out, op.Matrix())
	}
	return out
}

// MulVec returns m·v. len(v) must equal m.Dim().
func (m *Matrix) MulVec(v []complex128) []complex128 {
	out := make([]complex128, m.dim)
	for i := range m.dim {
		var sum complex128
		row := m.data[i*m.dim : (i+1)*m.dim]
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = sum
	}
	return out
}

// KronVector returns the tensor product a ⊗ b of two state vectors.
func KronVector(a, b []complex128) []complex128 {
	out := make([]complex128, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, x*y)
		}
	}
	return out
}

// Norm returns the Euclidean norm of v.
func Norm(v []complex128) float64 {
	var sum float64
	for _, x := range v {
		sum += real(x)*real(x) + imag(x)*imag(x)
	}
	return math.Sqrt(sum)
}

// Inner returns <a|b>, conjugating a.
func Inner(a, b []complex128) complex128 {
	var sum complex128
	for i := range a {
		sum += cmplx.Conj(a[i]) * b[i]
	}
	return sum
}
