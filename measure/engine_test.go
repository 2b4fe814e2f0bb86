package measure

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"qstatesim/quantum"
)

var h = complex(1/math.Sqrt(2), 0)

func bell() []complex128 { return []complex128{h, 0, 0, h} }

func TestEngineCapture(t *testing.T) {
	Convey("Given a Bell state", t, func() {
		amps := bell()
		e, err := New(amps)
		So(err, ShouldBeNil)

		Convey("It derives the qubit count and labels", func() {
			So(e.NumQubits(), ShouldEqual, 2)
			So(e.BasisLabels(), ShouldResemble, []string{"|00>", "|01>", "|10>", "|11>"})
		})

		Convey("Probabilities follow the Born rule", func() {
			p := e.Probabilities()
			for i, a := range amps {
				So(p[i], ShouldEqual, real(cmplx.Conj(a)*a))
			}
			So(e.TotalProbability(), ShouldAlmostEqual, 1.0, 1e-12)
			So(e.Outcomes(1e-9), ShouldHaveLength, 2)
		})

		Convey("The engine holds its own copy", func() {
			amps[0] = 0
			So(e.State()[0], ShouldEqual, h)
		})
	})

	Convey("Given a length that is not a power of two", t, func() {
		_, err := New([]complex128{1, 0, 0})
		So(errors.Is(err, quantum.ErrDimensionMismatch), ShouldBeTrue)
	})

	Convey("Given a StateVector", t, func() {
		s, err := quantum.NewStateVector(3)
		So(err, ShouldBeNil)
		e, err := FromState(s)
		So(err, ShouldBeNil)
		So(e.NumQubits(), ShouldEqual, 3)
		So(e.IsNormalized(1e-12), ShouldBeTrue)
	})
}

func TestCollapse(t *testing.T) {
	Convey("Given a Bell state", t, func() {
		e, err := New(bell())
		So(err, ShouldBeNil)

		Convey("Collapsing qubit 0 onto |0> leaves |00>", func() {
			So(e.Collapse([]int{0}, [][]complex128{{1, 0}}), ShouldBeNil)
			So(e.Collapsed(), ShouldBeTrue)
			So(e.CollapseProbability(), ShouldAlmostEqual, 0.5, 1e-12)
			state := e.State()
			So(cmplx.Abs(state[0]-1), ShouldBeLessThan, 1e-12)
			for _, a := range state[1:] {
				So(cmplx.Abs(a), ShouldBeLessThan, 1e-12)
			}
			So(e.Probabilities()[0], ShouldAlmostEqual, 1.0, 1e-12)
			So(e.String(), ShouldEqual, "(1+0i)|00>")
		})

		Convey("Collapsing qubit 1 onto |1> leaves |11>", func() {
			So(e.Collapse([]int{1}, [][]complex128{{0, 1}}), ShouldBeNil)
			So(e.CollapseProbability(), ShouldAlmostEqual, 0.5, 1e-12)
			So(cmplx.Abs(e.State()[3]-1), ShouldBeLessThan, 1e-12)
		})

		Convey("A zero-probability projection is rejected", func() {
			err := e.Collapse([]int{0, 1}, [][]complex128{{1, 0}, {0, 1}})
			So(errors.Is(err, quantum.ErrZeroProbabilityCollapse), ShouldBeTrue)
			So(e.Collapsed(), ShouldBeFalse)
			So(e.State(), ShouldResemble, bell())
		})

		Convey("Mismatched argument lengths are rejected", func() {
			err := e.Collapse([]int{0, 1}, [][]complex128{{1, 0}})
			So(errors.Is(err, quantum.ErrDimensionMismatch), ShouldBeTrue)

			err = e.Collapse([]int{0}, [][]complex128{{1, 0, 0}})
			So(errors.Is(err, quantum.ErrDimensionMismatch), ShouldBeTrue)
		})

		Convey("Bad qubit positions are rejected", func() {
			err := e.Collapse([]int{2}, [][]complex128{{1, 0}})
			So(errors.Is(err, quantum.ErrInvalidQubitIndex), ShouldBeTrue)

			err = e.Collapse([]int{0, 0}, [][]complex128{{1, 0}, {1, 0}})
			So(errors.Is(err, quantum.ErrInvalidQubitIndex), ShouldBeTrue)
			So(e.State(), ShouldResemble, bell())
		})
	})

	Convey("Given two engines captured from the same state", t, func() {
		amps := bell()
		zero, err := New(amps)
		So(err, ShouldBeNil)
		one, err := New(amps)
		So(err, ShouldBeNil)

		Convey("Collapsing one does not affect the other", func() {
			So(zero.Collapse([]int{0}, [][]complex128{{1, 0}}), ShouldBeNil)
			So(one.Collapsed(), ShouldBeFalse)
			So(one.State(), ShouldResemble, bell())

			So(one.Collapse([]int{0}, [][]complex128{{0, 1}}), ShouldBeNil)
			So(cmplx.Abs(zero.State()[0]-1), ShouldBeLessThan, 1e-12)
			So(cmplx.Abs(one.State()[3]-1), ShouldBeLessThan, 1e-12)
		})
	})

	Convey("Targets are consumed in ascending qubit order", t, func() {
		Convey("Given (|001>+|100>)/sqrt2 and qubits listed as 2, 0", func() {
			e, err := New([]complex128{0, h, 0, 0, h, 0, 0, 0})
			So(err, ShouldBeNil)
			// q0 -> |1>, q2 -> |0>
			So(e.Collapse([]int{2, 0}, [][]complex128{{0, 1}, {1, 0}}), ShouldBeNil)
			So(e.CollapseProbability(), ShouldAlmostEqual, 0.5, 1e-12)
			So(cmplx.Abs(e.State()[4]-1), ShouldBeLessThan, 1e-12)
			So(e.String(), ShouldEqual, quantum.Representation([]complex128{0, 0, 0, 0, 1, 0, 0, 0}))
		})

		Convey("Given |10> and qubits listed as 1, 0", func() {
			e, err := New([]complex128{0, 0, 1, 0})
			So(err, ShouldBeNil)
			// projector is |01><01|, orthogonal to |10>
			err = e.Collapse([]int{1, 0}, [][]complex128{{1, 0}, {0, 1}})
			So(errors.Is(err, quantum.ErrZeroProbabilityCollapse), ShouldBeTrue)
			So(e.Collapsed(), ShouldBeFalse)

			So(e.Collapse([]int{1, 0}, [][]complex128{{0, 1}, {1, 0}}), ShouldBeNil)
			So(e.CollapseProbability(), ShouldAlmostEqual, 1.0, 1e-12)
		})
	})
}

func TestExpectation(t *testing.T) {
	Convey("Given single-qubit basis states", t, func() {
		zero, _ := New([]complex128{1, 0})
		one, _ := New([]complex128{0, 1})

		Convey("<Z> is +1 on |0> and -1 on |1>", func() {
			v, err := zero.ExpectationOf("Z")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, complex(1, 0))

			v, err = one.Expectation([]quantum.Pauli{quantum.PauliZ})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, complex(-1, 0))
		})

		Convey("<X> is zero on |0>", func() {
			v, err := zero.ExpectationOf("X")
			So(err, ShouldBeNil)
			So(cmplx.Abs(v), ShouldBeLessThan, 1e-12)
		})
	})

	Convey("Given |+>", t, func() {
		plus, _ := New([]complex128{h, h})
		v, err := plus.ExpectationOf("X")
		So(err, ShouldBeNil)
		So(real(v), ShouldAlmostEqual, 1.0, 1e-12)
		So(imag(v), ShouldAlmostEqual, 0.0, 1e-12)
	})

	Convey("Given a Bell state", t, func() {
		e, _ := New(bell())
		cases := map[string]float64{"ZZ": 1, "XX": 1, "YY": -1, "ZI": 0, "IX": 0, "II": 1}
		for labels, want := range cases {
			v, err := e.ExpectationOf(labels)
			So(err, ShouldBeNil)
			So(real(v), ShouldAlmostEqual, want, 1e-12)
			So(imag(v), ShouldAlmostEqual, 0.0, 1e-12)
		}
	})

	Convey("Bad labels are rejected", t, func() {
		e, _ := New(bell())
		_, err := e.ExpectationOf("ZQ")
		So(errors.Is(err, quantum.ErrUnknownObservableLabel), ShouldBeTrue)

		_, err = e.Expectation([]quantum.Pauli{quantum.PauliZ, quantum.Pauli('W')})
		So(errors.Is(err, quantum.ErrUnknownObservableLabel), ShouldBeTrue)

		_, err = e.ExpectationOf("ZZZ")
		So(errors.Is(err, quantum.ErrDimensionMismatch), ShouldBeTrue)
	})
}

func TestQubitProbabilities(t *testing.T) {
	Convey("Given |10>", t, func() {
		e, _ := New([]complex128{0, 0, 1, 0})
		probs := e.QubitProbabilities()
		So(probs, ShouldHaveLength, 2)
		So(probs[0], ShouldResemble, QubitProbability{Prob0: 0, Prob1: 1})
		So(probs[1], ShouldResemble, QubitProbability{Prob0: 1, Prob1: 0})
	})
}

func TestExpectationMatchesDenseObservable(t *testing.T) {
	Convey("Given an entangled three-qubit state", t, func() {
		c, err := quantum.NewCircuit(3)
		So(err, ShouldBeNil)
		So(c.H(0), ShouldBeNil)
		So(c.RY(1, 0.7), ShouldBeNil)
		So(c.CX(0, 2), ShouldBeNil)
		So(c.CY(1, 0), ShouldBeNil)
		So(c.S(2), ShouldBeNil)

		e, err := FromState(c.State())
		So(err, ShouldBeNil)
		amps := e.State()

		for _, labels := range []string{"XYZ", "ZZI", "IYX", "YYY", "III"} {
			ps, err := quantum.ParsePaulis(labels)
			So(err, ShouldBeNil)
			obs, err := quantum.Observable(ps)
			So(err, ShouldBeNil)
			want := quantum.Inner(amps, obs.MulVec(amps))

			got, err := e.Expectation(ps)
			So(err, ShouldBeNil)
			So(cmplx.Abs(got-want), ShouldBeLessThan, 1e-12)
			So(math.Abs(imag(got)), ShouldBeLessThan, 1e-12)
		}
	})
}
