package radix

import (
	"fmt"
	"strings"
)

// Number is a composite literal of the form [-]int[.frac][(period)] read in
// a single base, together with the exact value it denotes.
// The zero value is the number 0 in base 10 without a fractional section.
// Number values are immutable and safe for concurrent use by multiple goroutines.
//
// The sections are kept as written, without the sign:
//
//   - Integer part: the digits before the point.
//   - Fractional part: the digits after the point divided by base^n,
//     where n is the number of fractional digit positions.
//   - Periodic part: the repeating block decoded into a fraction and shifted
//     past the fractional part.
//
// The total is the sum of the three parts, negated when the literal starts
// with '-'. All arithmetic is done on the total.
type Number struct {
	neg       bool // indicates whether the literal starts with '-'
	intPart   Int  // the digits before the point
	fracPart  Frac // the digits after the point
	perPart   Frac // the repeating block
	total     Frac // the signed sum of all parts
	hasFrac   bool // indicates whether the fractional section was present
	hasPeriod bool // indicates whether the periodic section was present
}

// ParseNumber converts a composite literal to a number in the given base.
// The literal must be in one of the following formats:
//
//	123
//	-1.5
//	0.1(6)
//	.(3)
//	1[36].([40]1)
//
// The formal EBNF grammar for the supported format is as follows:
//
//	sign     ::= '-'
//	integer  ::= { digit }
//	fraction ::= '.' { digit }
//	period   ::= '(' { digit } ')'
//	literal  ::= [sign] integer [fraction [period]]
//
// where digit is spelled as in [ParseInt].
// An empty integer part stands for 0 and an empty fractional or periodic
// section is treated as absent, but the literal must contain at least one digit.
//
// ParseNumber returns an error if:
//   - base is not in [MinBase, MaxBase];
//   - the sections are out of order, repeated or not terminated;
//   - a periodic section is not preceded by '.';
//   - a digit is not valid for the base.
func ParseNumber(s string, base int) (Number, error) {
	if err := checkBase(base); err != nil {
		return Number{}, err
	}
	n, err := parseNumber(s, base)
	if err != nil {
		return Number{}, fmt.Errorf("parsing number %q: %w", s, err)
	}
	return n, nil
}

func parseNumber(s string, base int) (Number, error) {
	var n Number
	if strings.HasPrefix(s, "-") {
		n.neg = true
		s = s[1:]
	}
	is, fs, ps, err := splitLiteral(s)
	if err != nil {
		return Number{}, err
	}
	if is == "" && fs == "" && ps == "" {
		return Number{}, fmt.Errorf("no digits: %w", ErrInvalidLiteral)
	}

	// Integer part
	n.intPart = newInt(false, dint{0}, base)
	if is != "" {
		digs, err := parseDigits(is, base)
		if err != nil {
			return Number{}, err
		}
		n.intPart = newInt(false, digs, base)
	}
	total := NewFracFromInt(n.intPart)

	// Fractional part
	zeros := 0
	n.fracPart = NewFracFromInt(newInt(false, dint{0}, base))
	if fs != "" {
		digs, err := parseDigits(fs, base)
		if err != nil {
			return Number{}, err
		}
		zeros = countDigits(fs)
		den := newInt(false, dint{1}.shift(zeros), base)
		n.fracPart = newFracUnsafe(newInt(false, digs, base), den)
		n.hasFrac = true
		total = total.add(n.fracPart)
	}

	// Periodic part
	n.perPart = NewFracFromInt(newInt(false, dint{0}, base))
	if ps != "" {
		num, den, err := decodePeriod(ps, base, zeros)
		if err != nil {
			return Number{}, err
		}
		n.perPart = newFracUnsafe(num, den)
		n.hasPeriod = true
		total = total.add(n.perPart)
	}

	if n.neg {
		total = total.Neg()
	}
	n.total = total
	return n, nil
}

// splitLiteral splits an unsigned literal into its integer, fractional and
// periodic sections, without the '.' and the parentheses.
// Only the layout is checked here; digits are validated by the caller.
func splitLiteral(s string) (is, fs, ps string, err error) {
	dot := strings.IndexByte(s, '.')
	open := strings.IndexByte(s, '(')
	end := strings.IndexByte(s, ')')

	switch {
	case dot >= 0 && strings.IndexByte(s[dot+1:], '.') >= 0:
		return "", "", "", fmt.Errorf("more than one point: %w", ErrInvalidLiteral)
	case open >= 0 && strings.IndexByte(s[open+1:], '(') >= 0:
		return "", "", "", fmt.Errorf("more than one period: %w", ErrInvalidLiteral)
	case end >= 0 && open < 0:
		return "", "", "", fmt.Errorf("')' without '(': %w", ErrInvalidLiteral)
	case open >= 0 && end < 0:
		return "", "", "", fmt.Errorf("missing ')': %w", ErrInvalidLiteral)
	case open >= 0 && end != len(s)-1:
		return "", "", "", fmt.Errorf("text after ')': %w", ErrInvalidLiteral)
	case open >= 0 && (dot < 0 || dot > open):
		return "", "", "", fmt.Errorf("period in integer part: %w", ErrInvalidLiteral)
	}

	rest := s
	if open >= 0 {
		ps = s[open+1 : end]
		rest = s[:open]
	}
	is, fs, _ = strings.Cut(rest, ".")
	return is, fs, ps, nil
}

// Base returns the radix in which the literal was read.
func (n Number) Base() int {
	return n.total.Base()
}

// Total returns the exact value of n.
func (n Number) Total() Frac {
	return n.total
}

// IntPart returns the integer section of the literal, without the sign.
func (n Number) IntPart() Int {
	return n.intPart
}

// FracPart returns the value of the fractional section, without the sign.
func (n Number) FracPart() Frac {
	return n.fracPart
}

// PeriodPart returns the value of the periodic section, without the sign.
func (n Number) PeriodPart() Frac {
	return n.perPart
}

// HasFrac returns true if the literal had a non-empty fractional section.
func (n Number) HasFrac() bool {
	return n.hasFrac
}

// HasPeriod returns true if the literal had a non-empty periodic section.
func (n Number) HasPeriod() bool {
	return n.hasPeriod
}

// Sign returns:
//
//	-1 if n < 0
//	 0 if n == 0
//	+1 if n > 0
func (n Number) Sign() int {
	return n.total.Sign()
}

// Add returns the sum of the totals of n and m.
//
// Add returns an error if n and m have different bases.
func (n Number) Add(m Number) (Frac, error) {
	return n.total.Add(m.total)
}

// Sub returns the difference of the totals of n and m.
//
// Sub returns an error if n and m have different bases.
func (n Number) Sub(m Number) (Frac, error) {
	return n.total.Sub(m.total)
}

// Mul returns the product of the totals of n and m.
//
// Mul returns an error if n and m have different bases.
func (n Number) Mul(m Number) (Frac, error) {
	return n.total.Mul(m.total)
}

// Quo returns the quotient of the totals of n and m.
//
// Quo returns an error if:
//   - n and m have different bases;
//   - m is 0.
func (n Number) Quo(m Number) (Frac, error) {
	return n.total.Quo(m.total)
}

// String implements the [fmt.Stringer] interface and returns
// the representation of n in its own base.
// Also see method [Number.Text].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (n Number) String() string {
	return string(n.appendText(nil, n.Base(), DefaultMaxDigits))
}

// Text returns the representation of n in the given base.
// The sign and the integer part come first. If the literal had a fractional
// or periodic section, they are followed by a point and the expansion of the
// remaining fraction with its repeating block in parentheses, or by "0" when
// the value is an integer:
//
//	| Literal (base 10) | Base | Text  |
//	| ----------------- | ---- | ----- |
//	| 0.(3)             | 10   | 0.(3) |
//	| 0.(9)             | 10   | 1.0   |
//	| 0.5               | 2    | 0.1   |
//	| 0.5               | 3    | 0.(1) |
//
// Text returns an error if base is not in [MinBase, MaxBase].
func (n Number) Text(base int) (string, error) {
	return n.TextN(base, DefaultMaxDigits)
}

// TextN is similar to [Number.Text], but it allows you to specify the maximum
// number of fractional digits.
// A non-positive maxDigits selects [DefaultMaxDigits].
func (n Number) TextN(base, maxDigits int) (string, error) {
	if err := checkBase(base); err != nil {
		return "", err
	}
	return string(n.appendText(nil, base, maxDigits)), nil
}

func (n Number) appendText(buf []byte, base, maxDigits int) []byte {
	if maxDigits <= 0 {
		maxDigits = DefaultMaxDigits
	}
	t := n.total
	den := t.Den()
	q, r := t.num.Abs().quoRem(den)

	// Integer part
	if t.IsNeg() {
		buf = append(buf, '-')
	}
	buf = q.appendText(buf, base)
	if !n.hasFrac && !n.hasPeriod {
		return buf
	}

	// Fractional part
	buf = append(buf, '.')
	if r.IsZero() {
		return append(buf, '0')
	}
	return appendExpansion(buf, r, den, base, maxDigits)
}
