package radix

import (
	"errors"
	"fmt"
	"strings"
)

// Int is a signed integer of arbitrary size written in an arbitrary base.
// The zero value is the number 0 in base 10.
// Int values are immutable and safe for concurrent use by multiple goroutines.
//
// An Int is a struct with three parameters:
//
//   - Sign: a boolean indicating whether the integer is negative.
//   - Base: the radix in which the digits are interpreted.
//   - Digits: the digit values, least significant first, each in [0, Base).
//
// Arithmetic between two integers requires them to share a base.
type Int struct {
	neg  bool // indicates whether the integer is negative
	base int  // the radix, 0 is treated as 10
	digs dint // the digits, least significant first
}

const (
	MinBase = 2       // smallest supported base
	MaxBase = 1 << 16 // largest supported base
)

var (
	// ErrInvalidDigit is returned when a literal contains a character or
	// bracket value that is not a digit of the stated base.
	ErrInvalidDigit = errors.New("invalid digit")
	// ErrDigitOverflow is returned when a bracket group holds a value below 10,
	// which must be written as a plain digit.
	ErrDigitOverflow = errors.New("bracketed digit too small")
	// ErrBaseMismatch is returned by operations on operands of different bases.
	ErrBaseMismatch = errors.New("base mismatch")
	// ErrDivisionByZero is returned by integer and fraction division by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNegativeExponent is returned by [Int.Pow] for negative exponents.
	ErrNegativeExponent = errors.New("negative exponent")
	// ErrInvalidLiteral is returned for malformed composite literals.
	ErrInvalidLiteral = errors.New("invalid literal")
	// ErrBaseRange is returned when a base is outside [MinBase, MaxBase].
	ErrBaseRange = errors.New("base out of range")
)

func checkBase(base int) error {
	if base < MinBase || base > MaxBase {
		return fmt.Errorf("base %v is not in [%v, %v]: %w", base, MinBase, MaxBase, ErrBaseRange)
	}
	return nil
}

func newInt(neg bool, digs dint, base int) Int {
	digs = digs.norm()
	if digs.isZero() {
		neg = false
	}
	return Int{neg: neg, base: base, digs: digs}
}

// NewInt returns an integer equal to v written in the given base.
func NewInt(v int64, base int) (Int, error) {
	if err := checkBase(base); err != nil {
		return Int{}, err
	}
	neg := v < 0
	u := uint64(v)
	if neg {
		u = -u
	}
	return newInt(neg, dintFromUint64(u, base), base), nil
}

// ParseInt converts a string to an integer in the given base.
// The string must be in one of the following formats:
//
//	1234
//	-7F
//	1[36]Z
//
// The formal EBNF grammar for the supported format is as follows:
//
//	sign    ::= '-'
//	plain   ::= '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9'
//	letter  ::= 'A' ... 'Z'
//	bracket ::= '[' plain { plain } ']'
//	digit   ::= plain | letter | bracket
//	integer ::= [sign] digit { digit }
//
// Letters denote the values 10 to 35; a bracket group denotes the decimal
// value between the brackets and is needed for values of 36 and above.
//
// ParseInt returns error:
//   - if base is not in [MinBase, MaxBase].
//   - if a digit is not valid for the base or the string has no digits.
//   - if a bracket group holds a value below 10.
func ParseInt(s string, base int) (Int, error) {
	if err := checkBase(base); err != nil {
		return Int{}, err
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	digs, err := parseDigits(s, base)
	if err != nil {
		return Int{}, err
	}
	return newInt(neg, digs, base), nil
}

// parseDigits converts an unsigned digit string to a digit slice.
func parseDigits(s string, base int) (dint, error) {
	if s == "" {
		return nil, fmt.Errorf("no digits: %w", ErrInvalidDigit)
	}
	toks, err := scanDigits(s, base)
	if err != nil {
		return nil, err
	}
	digs := make(dint, len(toks))
	for i, t := range toks {
		digs[len(toks)-1-i] = t.value
	}
	return digs, nil
}

// Base returns the radix of x.
func (x Int) Base() int {
	if x.base == 0 {
		return 10
	}
	return x.base
}

func (x Int) coef() dint {
	if len(x.digs) == 0 {
		return dint{0}
	}
	return x.digs
}

// Digits returns a copy of the digits of x, least significant first.
func (x Int) Digits() []int {
	return []int(x.coef().clone())
}

// Len returns the number of digits of x in its own base.
// Zero has one digit.
func (x Int) Len() int {
	return len(x.coef())
}

// Sign returns:
//
//	-1 if x < 0
//	 0 if x == 0
//	+1 if x > 0
func (x Int) Sign() int {
	switch {
	case x.IsZero():
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// IsZero returns true if x == 0.
func (x Int) IsZero() bool {
	return x.coef().isZero()
}

// IsNeg returns true if x < 0.
func (x Int) IsNeg() bool {
	return x.neg && !x.IsZero()
}

// IsPos returns true if x > 0.
func (x Int) IsPos() bool {
	return !x.neg && !x.IsZero()
}

// Neg returns x with opposite sign.
func (x Int) Neg() Int {
	return newInt(!x.neg, x.coef(), x.Base())
}

// Abs returns the absolute value of x.
func (x Int) Abs() Int {
	return newInt(false, x.coef(), x.Base())
}

// Int64 returns x as int64.
// The second result is false if x does not fit.
func (x Int) Int64() (int64, bool) {
	u, ok := x.coef().uint64(x.Base())
	if !ok {
		return 0, false
	}
	if x.neg {
		if u > 1<<63 {
			return 0, false
		}
		return -int64(u), true
	}
	if u > 1<<63-1 {
		return 0, false
	}
	return int64(u), true
}

func (x Int) sameBase(y Int) error {
	if x.Base() != y.Base() {
		return fmt.Errorf("base %v and base %v: %w", x.Base(), y.Base(), ErrBaseMismatch)
	}
	return nil
}

// Add returns the sum of x and y.
//
// Add returns an error if x and y have different bases.
func (x Int) Add(y Int) (Int, error) {
	if err := x.sameBase(y); err != nil {
		return Int{}, fmt.Errorf("computing [%v + %v]: %w", x, y, err)
	}
	return x.add(y), nil
}

func (x Int) add(y Int) Int {
	base := x.Base()
	xc, yc := x.coef(), y.coef()
	switch {
	case x.neg == y.neg:
		return newInt(x.neg, xc.add(yc, base), base)
	case xc.cmp(yc) < 0:
		return newInt(y.neg, yc.sub(xc, base), base)
	default:
		return newInt(x.neg, xc.sub(yc, base), base)
	}
}

// Sub returns the difference of x and y.
//
// Sub returns an error if x and y have different bases.
func (x Int) Sub(y Int) (Int, error) {
	if err := x.sameBase(y); err != nil {
		return Int{}, fmt.Errorf("computing [%v - %v]: %w", x, y, err)
	}
	return x.sub(y), nil
}

func (x Int) sub(y Int) Int {
	return x.add(y.Neg())
}

// Mul returns the product of x and y.
// Operands of 32 digits and longer are multiplied with the Karatsuba algorithm.
//
// Mul returns an error if x and y have different bases.
func (x Int) Mul(y Int) (Int, error) {
	if err := x.sameBase(y); err != nil {
		return Int{}, fmt.Errorf("computing [%v * %v]: %w", x, y, err)
	}
	return x.mul(y), nil
}

func (x Int) mul(y Int) Int {
	base := x.Base()
	return newInt(x.neg != y.neg, x.coef().mul(y.coef(), base), base)
}

// QuoRem returns the quotient q and remainder r of x and y such that
//
//	x = y * q + r
//	|r| < |y|
//
// The quotient is truncated towards zero and the remainder has the sign of x.
//
// QuoRem returns an error if:
//   - x and y have different bases;
//   - y is 0.
func (x Int) QuoRem(y Int) (q, r Int, err error) {
	if err = x.sameBase(y); err != nil {
		return Int{}, Int{}, fmt.Errorf("computing [%v div %v] and [%v mod %v]: %w", x, y, x, y, err)
	}
	if y.IsZero() {
		return Int{}, Int{}, fmt.Errorf("computing [%v div %v] and [%v mod %v]: %w", x, y, x, y, ErrDivisionByZero)
	}
	q, r = x.quoRem(y)
	return q, r, nil
}

// quoRem assumes that y is not zero and shares the base of x.
func (x Int) quoRem(y Int) (q, r Int) {
	base := x.Base()
	qc, rc := x.coef().quoRem(y.coef(), base)
	return newInt(x.neg != y.neg, qc, base), newInt(x.neg, rc, base)
}

// Quo returns the quotient of x and y truncated towards zero.
// Also see method [Int.QuoRem].
func (x Int) Quo(y Int) (Int, error) {
	q, _, err := x.QuoRem(y)
	return q, err
}

// Rem returns x - y * (x / y).
// Also see method [Int.QuoRem].
func (x Int) Rem(y Int) (Int, error) {
	_, r, err := x.QuoRem(y)
	return r, err
}

// Pow returns x raised to the power of exp.
//
// Pow returns an error if exp is negative.
func (x Int) Pow(exp int) (Int, error) {
	if exp < 0 {
		return Int{}, fmt.Errorf("computing [%v^%v]: %w", x, exp, ErrNegativeExponent)
	}
	return x.pow(exp), nil
}

func (x Int) pow(exp int) Int {
	base := x.Base()
	z := newInt(false, dint{1}, base)
	for exp > 0 {
		if exp%2 == 1 {
			z = z.mul(x)
		}
		x = x.mul(x)
		exp /= 2
	}
	return z
}

// Cmp compares x and y numerically and returns:
//
//	-1 if x < y
//	 0 if x == y
//	+1 if x > y
//
// If y has a different base, it is converted to the base of x first.
func (x Int) Cmp(y Int) int {
	// Special case: different signs
	switch {
	case y.Sign() < x.Sign():
		return 1
	case x.Sign() < y.Sign():
		return -1
	}

	// General case
	yc := y.coef()
	if x.Base() != y.Base() {
		yc = yc.convert(y.Base(), x.Base())
	}
	c := x.coef().cmp(yc)
	if x.neg {
		return -c
	}
	return c
}

// Equal returns true if x == y.
func (x Int) Equal(y Int) bool {
	return x.Cmp(y) == 0
}

// Less returns true if x < y.
func (x Int) Less(y Int) bool {
	return x.Cmp(y) < 0
}

// Text returns the representation of x in the given base.
// Digit values from 10 to 35 are written as letters 'A' to 'Z',
// larger values as decimal numbers enclosed in brackets.
//
// Text returns an error if base is not in [MinBase, MaxBase].
func (x Int) Text(base int) (string, error) {
	if err := checkBase(base); err != nil {
		return "", err
	}
	return string(x.appendText(nil, base)), nil
}

func (x Int) appendText(buf []byte, base int) []byte {
	digs := x.coef().convert(x.Base(), base)
	if x.IsNeg() {
		buf = append(buf, '-')
	}
	for i := len(digs) - 1; i >= 0; i-- {
		buf = appendDigit(buf, digs[i])
	}
	return buf
}

// String implements the [fmt.Stringer] interface and returns
// the representation of x in its own base.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (x Int) String() string {
	return string(x.appendText(nil, x.Base()))
}

// Rebase returns x written in the given base.
// The conversion renders x in the target base and parses the result back.
func (x Int) Rebase(base int) (Int, error) {
	s, err := x.Text(base)
	if err != nil {
		return Int{}, err
	}
	return ParseInt(s, base)
}

// rebase converts x without the textual round trip.
func (x Int) rebase(base int) Int {
	if x.Base() == base {
		return x
	}
	return newInt(x.neg, x.coef().convert(x.Base(), base), base)
}
