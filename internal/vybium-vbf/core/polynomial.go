package core

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"sort"
	"strconv"
	"strings"
)

// defaultPolynomials holds one primitive polynomial per dimension, indexed by n.
var defaultPolynomials = [...]uint32{
	0,
	0x3,      // x + 1
	0x7,      // x^2 + x + 1
	0xD,      // x^3 + x + 1
	0x13,     // x^4 + x + 1
	0x25,     // x^5 + x^2 + 1
	0x43,     // x^6 + x + 1
	0x83,     // x^7 + x + 1
	0x11D,    // x^8 + x^4 + x^3 + x^2 + 1
	0x211,    // x^9 + x^4 + 1
	0x409,    // x^10 + x^3 + 1
	0x805,    // x^11 + x^2 + 1
	0x1053,   // x^12 + x^6 + x^4 + x + 1
	0x201B,   // x^13 + x^4 + x^3 + x + 1
	0x4443,   // x^14 + x^10 + x^6 + x + 1
	0x8003,   // x^15 + x + 1
	0x1100B,  // x^16 + x^12 + x^3 + x + 1
	0x20009,  // x^17 + x^3 + 1
	0x40081,  // x^18 + x^7 + 1
	0x80027,  // x^19 + x^5 + x^2 + x + 1
	0x100009, // x^20 + x^3 + 1
}

// DefaultPolynomial returns the built-in primitive polynomial for GF(2^n).
func DefaultPolynomial(n uint) (uint32, bool) {
	if n == 0 || n >= uint(len(defaultPolynomials)) {
		return 0, false
	}
	return defaultPolynomials[n], true
}

// ParsePolynomial parses a sum of powers of x such as "x^6 + x^4 + x^3 + x + 1"
// into a bitmask where bit k is set for the term x^k. Repeated terms cancel.
func ParsePolynomial(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty polynomial", ErrInvalidPolynomial)
	}
	// A bare integer is accepted as an already encoded bitmask.
	if v, err := strconv.ParseUint(s, 0, 32); err == nil {
		if v == 0 {
			return 0, fmt.Errorf("%w: zero polynomial", ErrInvalidPolynomial)
		}
		return uint32(v), nil
	}

	var mask uint32
	for _, tok := range strings.Split(s, "+") {
		tok = strings.ToLower(strings.ReplaceAll(tok, " ", ""))
		var exp uint64
		switch {
		case tok == "1":
			exp = 0
		case tok == "x":
			exp = 1
		case strings.HasPrefix(tok, "x^"):
			v, err := strconv.ParseUint(tok[2:], 10, 8)
			if err != nil || v > 31 {
				return 0, fmt.Errorf("%w: bad term %q", ErrInvalidPolynomial, tok)
			}
			exp = v
		default:
			return 0, fmt.Errorf("%w: bad term %q", ErrInvalidPolynomial, tok)
		}
		mask ^= 1 << exp
	}
	if mask == 0 {
		return 0, fmt.Errorf("%w: terms cancel to zero", ErrInvalidPolynomial)
	}
	return mask, nil
}

// FormatPolynomial renders a bitmask as "x^n + ... + x + 1".
func FormatPolynomial(mask uint32) string {
	if mask == 0 {
		return "0"
	}
	var terms []string
	for exp := bits.Len32(mask) - 1; exp >= 0; exp-- {
		if mask&(1<<uint(exp)) == 0 {
			continue
		}
		switch exp {
		case 0:
			terms = append(terms, "1")
		case 1:
			terms = append(terms, "x")
		default:
			terms = append(terms, "x^"+strconv.Itoa(exp))
		}
	}
	return strings.Join(terms, " + ")
}

// Term is one summand alpha^Coeff * x^Exp of a univariate polynomial, where
// alpha is the field generator. Coeff 0 is the coefficient 1.
type Term struct {
	Coeff uint32 `json:"coeff"`
	Exp   uint32 `json:"exp"`
}

// Univariate is a polynomial over GF(2^n) written as a sum of terms.
type Univariate []Term

// ParseUnivariate reads the "[[c, m], ...]" list form where each pair means
// alpha^c * x^m.
func ParseUnivariate(s string) (Univariate, error) {
	var pairs [][2]uint32
	if err := json.Unmarshal([]byte(s), &pairs); err != nil {
		return nil, fmt.Errorf("parse univariate polynomial: %w", err)
	}
	u := make(Univariate, len(pairs))
	for i, p := range pairs {
		u[i] = Term{Coeff: p[0], Exp: p[1]}
	}
	return u, nil
}

// TruthTable evaluates the polynomial at every element of the field.
func (u Univariate) TruthTable(f *Field) []uint32 {
	size := f.Size()
	coeffs := make([]uint32, len(u))
	for i, t := range u {
		coeffs[i] = f.Exp(uint64(t.Coeff))
	}
	tt := make([]uint32, size)
	for x := uint32(0); x < size; x++ {
		var v uint32
		for i, t := range u {
			v ^= f.Mul(coeffs[i], f.Pow(x, uint64(t.Exp)))
		}
		tt[x] = v
	}
	return tt
}

// Normalize sorts terms by exponent and folds terms sharing an exponent.
func (u Univariate) Normalize(f *Field) Univariate {
	byExp := make(map[uint32]uint32)
	for _, t := range u {
		byExp[t.Exp] ^= f.Exp(uint64(t.Coeff))
	}
	out := make(Univariate, 0, len(byExp))
	for exp, c := range byExp {
		if c == 0 {
			continue
		}
		l, _ := f.Log(c)
		out = append(out, Term{Coeff: l, Exp: exp})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Exp < out[j].Exp })
	return out
}

// String renders the polynomial as "a^c*x^m + ...", dropping a^0 and x^0.
func (u Univariate) String() string {
	if len(u) == 0 {
		return "0"
	}
	parts := make([]string, len(u))
	for i, t := range u {
		switch {
		case t.Coeff == 0 && t.Exp == 0:
			parts[i] = "1"
		case t.Coeff == 0:
			parts[i] = fmt.Sprintf("x^%d", t.Exp)
		case t.Exp == 0:
			parts[i] = fmt.Sprintf("a^%d", t.Coeff)
		default:
			parts[i] = fmt.Sprintf("a^%d*x^%d", t.Coeff, t.Exp)
		}
	}
	return strings.Join(parts, " + ")
}
