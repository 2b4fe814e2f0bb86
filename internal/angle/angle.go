// Package angle reads and writes rotation angles as multiples of pi, such as
// "pi/2", "-3*pi/4" or "2π/3". Plain decimals are accepted too.
package angle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalid is wrapped by every Parse failure.
var ErrInvalid = errors.New("invalid angle")

// Parse reads "[coeff][*]pi[/den]", a plain number, or a number over a
// denominator. Spaces are ignored and "π" may stand for "pi".
func Parse(s string) (float64, error) {
	expr := strings.ToLower(strings.Join(strings.Fields(s), ""))
	expr = strings.ReplaceAll(expr, "π", "pi")
	if expr == "" {
		return 0, fmt.Errorf("empty: %w", ErrInvalid)
	}

	numer, denom, fraction := strings.Cut(expr, "/")
	v, err := multiple(numer)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, err)
	}
	if !fraction {
		return v, nil
	}
	d, err := strconv.ParseFloat(denom, 64)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("%q: bad denominator: %w", s, ErrInvalid)
	}
	return v / d, nil
}

// multiple evaluates a numerator: a number, or a signed coefficient of pi.
func multiple(t string) (float64, error) {
	coeff, isPi := strings.CutSuffix(t, "pi")
	if !isPi {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, ErrInvalid
		}
		return v, nil
	}
	coeff = strings.TrimSuffix(coeff, "*")
	switch coeff {
	case "", "+":
		return math.Pi, nil
	case "-":
		return -math.Pi, nil
	}
	c, err := strconv.ParseFloat(coeff, 64)
	if err != nil {
		return 0, ErrInvalid
	}
	return c * math.Pi, nil
}

// denominators are the pi fractions Format recognises, n*pi/d for
// 0 < n/d <= 2 in lowest terms.
var denominators = []int{1, 2, 3, 4, 6, 8, 12}

const formatTol = 1e-10

// Format writes val as a pi fraction when it is one of the recognised
// multiples, and with %g otherwise.
func Format(val float64) string {
	sign, mag := "", val
	if val < 0 {
		sign, mag = "-", -val
	}
	for _, d := range denominators {
		n := math.Round(mag * float64(d) / math.Pi)
		if n < 1 || int(n) > 2*d || gcd(int(n), d) != 1 {
			continue
		}
		if math.Abs(mag-n*math.Pi/float64(d)) < formatTol {
			return sign + piFraction(int(n), d)
		}
	}
	return fmt.Sprintf("%g", val)
}

func piFraction(n, d int) string {
	s := "pi"
	if n != 1 {
		s = strconv.Itoa(n) + "*pi"
	}
	if d != 1 {
		s += "/" + strconv.Itoa(d)
	}
	return s
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
