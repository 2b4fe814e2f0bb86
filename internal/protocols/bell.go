package protocols

import (
	"fmt"
	"strings"
)

// Variant names one of the four Bell states.
type Variant string

const (
	PhiPlus  Variant = "phi+" // (|00> + |11>)/√2
	PhiMinus Variant = "phi-" // (|00> - |11>)/√2
	PsiPlus  Variant = "psi+" // (|01> + |10>)/√2
	PsiMinus Variant = "psi-" // (|01> - |10>)/√2
)

// Variants lists the Bell states in display order.
var Variants = []Variant{PhiPlus, PsiPlus, PhiMinus, PsiMinus}

// ParseVariant accepts "phi+", "PHI-", "psi+" and so on. Empty means phi+.
func ParseVariant(s string) (Variant, error) {
	if s == "" {
		return PhiPlus, nil
	}
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Variants {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown bell variant %q", s)
}

func (v Variant) description() string {
	switch v {
	case PhiMinus:
		return "(|00> - |11>)/√2"
	case PsiPlus:
		return "(|01> + |10>)/√2"
	case PsiMinus:
		return "(|01> - |10>)/√2"
	}
	return "(|00> + |11>)/√2"
}

// Bell prepares a Bell state from |00>: H on qubit 0 and CX(0,1) give phi+,
// then X on qubit 1 flips to psi and Z on qubit 0 flips the sign.
func (r *Runner) Bell(v Variant) (*Run, error) {
	v, err := ParseVariant(string(v))
	if err != nil {
		return nil, err
	}
	r.logger.Info("preparing bell state", "variant", v)

	c, err := r.circuit(NameBell, 2)
	if err != nil {
		return nil, err
	}
	if err := c.H(0); err != nil {
		return nil, err
	}
	if err := c.CX(0, 1); err != nil {
		return nil, err
	}
	if v == PsiPlus || v == PsiMinus {
		if err := c.X(1); err != nil {
			return nil, err
		}
	}
	if v == PhiMinus || v == PsiMinus {
		if err := c.Z(0); err != nil {
			return nil, err
		}
	}

	run := &Run{
		Name:        NameBell,
		Description: fmt.Sprintf("Bell state %s = %s", v, v.description()),
		Circuit:     c,
	}
	return r.finish(run, "ZZ", "XX", "YY")
}
