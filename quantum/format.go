package quantum

import (
	"math/cmplx"
	"strconv"
	"strings"
)

// RepresentationCutoff hides terms whose amplitude magnitude is at or below
// it when a state is written out as a sum of kets.
const RepresentationCutoff = 1e-5

// Representation writes amplitudes as a superposition of basis kets, e.g.
// "(0.7071+0i)|00> + (0.7071+0i)|11>". Negligible terms are dropped.
func Representation(amplitudes []complex128) string {
	n, err := QubitsFor(len(amplitudes))
	if err != nil {
		return ""
	}
	labels := BasisLabels(n)
	var terms []string
	for i, a := range amplitudes {
		if cmplx.Abs(a) > RepresentationCutoff {
			terms = append(terms, strconv.FormatComplex(a, 'g', 4, 128)+labels[i])
		}
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

// String implements fmt.Stringer.
func (s *StateVector) String() string {
	return Representation(s.amplitudes)
}
