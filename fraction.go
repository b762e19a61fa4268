package radix

import (
	"fmt"
	"strings"
)

// DefaultMaxDigits is the number of fractional digits produced by
// [Frac.Text] and [Number.Text] before the expansion is cut off when
// no repeating block has been found.
const DefaultMaxDigits = 10_000

// Frac is an exact fraction of two integers written in the same base.
// The zero value is 0/1 in base 10.
// Frac values are immutable and safe for concurrent use by multiple goroutines.
//
// A fraction is always kept in lowest terms, its denominator is positive and
// its sign is carried by the numerator.
type Frac struct {
	num Int // the numerator, carries the sign
	den Int // the denominator, 0 stands for 1 in the zero value
}

func newFracUnsafe(num, den Int) Frac {
	n, d := simplify(num, den)
	return Frac{num: n, den: d}
}

// NewFrac returns the fraction num/den reduced to lowest terms.
//
// NewFrac returns an error if:
//   - num and den have different bases;
//   - den is 0.
func NewFrac(num, den Int) (Frac, error) {
	n, d, err := Simplify(num, den)
	if err != nil {
		return Frac{}, err
	}
	return Frac{num: n, den: d}, nil
}

// NewFracFromInt returns the fraction x/1.
func NewFracFromInt(x Int) Frac {
	return Frac{num: x, den: newInt(false, dint{1}, x.Base())}
}

// ParseFrac converts a string of the form "num/den" to a fraction.
// Both parts are parsed with [ParseInt]; a string without '/' is read as an integer.
func ParseFrac(s string, base int) (Frac, error) {
	ns, ds, ok := strings.Cut(s, "/")
	num, err := ParseInt(ns, base)
	if err != nil {
		return Frac{}, fmt.Errorf("parsing numerator: %w", err)
	}
	if !ok {
		return NewFracFromInt(num), nil
	}
	den, err := ParseInt(ds, base)
	if err != nil {
		return Frac{}, fmt.Errorf("parsing denominator: %w", err)
	}
	return NewFrac(num, den)
}

// Num returns the numerator of f.
func (f Frac) Num() Int {
	return f.num
}

// Den returns the denominator of f, which is always positive.
func (f Frac) Den() Int {
	if f.den.IsZero() {
		return newInt(false, dint{1}, f.num.Base())
	}
	return f.den
}

// Base returns the radix of the numerator and denominator of f.
func (f Frac) Base() int {
	return f.num.Base()
}

// Sign returns:
//
//	-1 if f < 0
//	 0 if f == 0
//	+1 if f > 0
func (f Frac) Sign() int {
	return f.num.Sign()
}

// IsZero returns true if f == 0.
func (f Frac) IsZero() bool {
	return f.num.IsZero()
}

// IsNeg returns true if f < 0.
func (f Frac) IsNeg() bool {
	return f.num.IsNeg()
}

// IsInt returns true if the denominator of f is 1.
func (f Frac) IsInt() bool {
	return f.Den().coef().cmp(dint{1}) == 0
}

// Neg returns f with opposite sign.
func (f Frac) Neg() Frac {
	return Frac{num: f.num.Neg(), den: f.Den()}
}

// Abs returns the absolute value of f.
func (f Frac) Abs() Frac {
	return Frac{num: f.num.Abs(), den: f.Den()}
}

// Trunc returns the integer part of f, truncated towards zero.
func (f Frac) Trunc() Int {
	q, _ := f.num.quoRem(f.Den())
	return q
}

// Inv returns 1/f.
//
// Inv returns an error if f is 0.
func (f Frac) Inv() (Frac, error) {
	if f.IsZero() {
		return Frac{}, fmt.Errorf("computing [1 / %v]: %w", f.RatString(), ErrDivisionByZero)
	}
	return newFracUnsafe(f.Den(), f.num), nil
}

func (f Frac) sameBase(g Frac) error {
	return f.num.sameBase(g.num)
}

// Add returns the sum of f and g.
// The operands are brought to the least common multiple of their denominators.
//
// Add returns an error if f and g have different bases.
func (f Frac) Add(g Frac) (Frac, error) {
	if err := f.sameBase(g); err != nil {
		return Frac{}, fmt.Errorf("computing [%v + %v]: %w", f.RatString(), g.RatString(), err)
	}
	return f.add(g), nil
}

func (f Frac) add(g Frac) Frac {
	fd, gd := f.Den(), g.Den()
	lcm, _ := fd.mul(gd).quoRem(gcd(fd, gd))
	fk, _ := lcm.quoRem(fd)
	gk, _ := lcm.quoRem(gd)
	num := f.num.mul(fk).add(g.num.mul(gk))
	return newFracUnsafe(num, lcm)
}

// Sub returns the difference of f and g.
//
// Sub returns an error if f and g have different bases.
func (f Frac) Sub(g Frac) (Frac, error) {
	if err := f.sameBase(g); err != nil {
		return Frac{}, fmt.Errorf("computing [%v - %v]: %w", f.RatString(), g.RatString(), err)
	}
	return f.add(g.Neg()), nil
}

// Mul returns the product of f and g.
//
// Mul returns an error if f and g have different bases.
func (f Frac) Mul(g Frac) (Frac, error) {
	if err := f.sameBase(g); err != nil {
		return Frac{}, fmt.Errorf("computing [%v * %v]: %w", f.RatString(), g.RatString(), err)
	}
	return newFracUnsafe(f.num.mul(g.num), f.Den().mul(g.Den())), nil
}

// Quo returns the quotient of f and g, computed as f multiplied by
// the reciprocal of g.
//
// Quo returns an error if:
//   - f and g have different bases;
//   - g is 0.
func (f Frac) Quo(g Frac) (Frac, error) {
	if err := f.sameBase(g); err != nil {
		return Frac{}, fmt.Errorf("computing [%v / %v]: %w", f.RatString(), g.RatString(), err)
	}
	if g.IsZero() {
		return Frac{}, fmt.Errorf("computing [%v / %v]: %w", f.RatString(), g.RatString(), ErrDivisionByZero)
	}
	return newFracUnsafe(f.num.mul(g.Den()), f.Den().mul(g.num)), nil
}

// Cmp compares f and g and returns:
//
//	-1 if f < g
//	 0 if f == g
//	+1 if f > g
//
// The result is the sign of n * d, where n/d = f - g.
// If g has a different base, it is converted to the base of f first.
func (f Frac) Cmp(g Frac) int {
	if f.Base() != g.Base() {
		g = g.rebase(f.Base())
	}
	d := f.add(g.Neg())
	return d.num.mul(d.Den()).Sign()
}

// Equal returns true if f == g.
func (f Frac) Equal(g Frac) bool {
	return f.Cmp(g) == 0
}

// Less returns true if f < g.
func (f Frac) Less(g Frac) bool {
	return f.Cmp(g) < 0
}

// Rebase returns f with the numerator and denominator written in the given base.
func (f Frac) Rebase(base int) (Frac, error) {
	num, err := f.num.Rebase(base)
	if err != nil {
		return Frac{}, err
	}
	den, err := f.Den().Rebase(base)
	if err != nil {
		return Frac{}, err
	}
	return Frac{num: num, den: den}, nil
}

func (f Frac) rebase(base int) Frac {
	return Frac{num: f.num.rebase(base), den: f.Den().rebase(base)}
}

// RatString returns f in the form "num/den" using its own base.
func (f Frac) RatString() string {
	return f.num.String() + "/" + f.Den().String()
}

// String implements the [fmt.Stringer] interface and returns
// the positional representation of f in its own base.
// Also see method [Frac.Text].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (f Frac) String() string {
	return string(f.appendText(nil, f.Base(), DefaultMaxDigits, true))
}

// Text returns the positional representation of f in the given base.
// The result is formatted according to the following formal EBNF grammar:
//
//	sign     ::= '-'
//	fraction ::= digits [ '(' digit { digit } ')' ]
//	number   ::= [sign] digits [ '.' fraction ]
//
// where digits are spelled as in [Int.Text].
// A repeating block of the expansion is enclosed in parentheses.
// The expansion is cut off after [DefaultMaxDigits] digits if no block repeats
// earlier.
//
// Text returns an error if base is not in [MinBase, MaxBase].
func (f Frac) Text(base int) (string, error) {
	return f.TextN(base, DefaultMaxDigits)
}

// TextN is similar to [Frac.Text], but it allows you to specify the maximum
// number of fractional digits.
// A non-positive maxDigits selects [DefaultMaxDigits].
func (f Frac) TextN(base, maxDigits int) (string, error) {
	if err := checkBase(base); err != nil {
		return "", err
	}
	return string(f.appendText(nil, base, maxDigits, true)), nil
}

// FracText returns only the fractional digits of |f| in the given base,
// without the integer part and the decimal point.
// The result is empty if f is an integer.
func (f Frac) FracText(base int) (string, error) {
	if err := checkBase(base); err != nil {
		return "", err
	}
	return string(f.appendText(nil, base, DefaultMaxDigits, false)), nil
}

func (f Frac) appendText(buf []byte, base, maxDigits int, whole bool) []byte {
	if maxDigits <= 0 {
		maxDigits = DefaultMaxDigits
	}
	den := f.Den()
	q, r := f.num.Abs().quoRem(den)

	// Integer part
	if whole {
		if f.IsNeg() {
			buf = append(buf, '-')
		}
		buf = q.appendText(buf, base)
		if r.IsZero() {
			return buf
		}
		buf = append(buf, '.')
	}

	// Fractional part
	return appendExpansion(buf, r, den, base, maxDigits)
}

// appendExpansion appends the digits of rem/den in the given base,
// where 0 <= rem < den.
// The first remainder seen twice marks the start of a repeating block,
// which is then enclosed in parentheses.
func appendExpansion(buf []byte, rem, den Int, base, maxDigits int) []byte {
	start := len(buf)
	seen := make(map[string]int)
	for n := 0; !rem.IsZero() && n < maxDigits; n++ {
		key := rem.coef().key()
		if pos, ok := seen[key]; ok {
			buf = append(buf, 0)
			copy(buf[start+pos+1:], buf[start+pos:])
			buf[start+pos] = '('
			return append(buf, ')')
		}
		seen[key] = len(buf) - start
		var d Int
		d, rem = newInt(false, rem.coef().mulSmall(base, rem.Base()), rem.Base()).quoRem(den)
		v, _ := d.Int64()
		buf = appendDigit(buf, int(v))
	}
	return buf
}
