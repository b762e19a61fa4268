package radix

import "fmt"

// GCD returns the greatest common divisor of |a| and |b|.
// GCD(a, 0) is |a|; GCD(0, 0) is 0.
// The computation is carried out in the base of a and b.
//
// GCD returns an error if a and b have different bases.
func GCD(a, b Int) (Int, error) {
	if err := a.sameBase(b); err != nil {
		return Int{}, fmt.Errorf("computing gcd(%v, %v): %w", a, b, err)
	}
	return gcd(a.Abs(), b.Abs()), nil
}

// gcd implements the Euclidean algorithm for non-negative a and b.
func gcd(a, b Int) Int {
	if b.IsZero() {
		return a
	}
	_, r := a.quoRem(b)
	return gcd(b, r)
}

// Simplify divides num and den by their greatest common divisor.
// The returned denominator is always positive and the sign of the
// fraction is carried by the returned numerator.
// A zero numerator is reduced to 0/1.
//
// Simplify returns an error if:
//   - num and den have different bases;
//   - den is 0.
func Simplify(num, den Int) (Int, Int, error) {
	if err := num.sameBase(den); err != nil {
		return Int{}, Int{}, fmt.Errorf("simplifying %v/%v: %w", num, den, err)
	}
	if den.IsZero() {
		return Int{}, Int{}, fmt.Errorf("simplifying %v/%v: %w", num, den, ErrDivisionByZero)
	}
	n, d := simplify(num, den)
	return n, d, nil
}

// simplify assumes that den is not zero and shares the base of num.
func simplify(num, den Int) (Int, Int) {
	base := num.Base()

	// Special case
	if num.IsZero() {
		return newInt(false, dint{0}, base), newInt(false, dint{1}, base)
	}

	// General case
	g := gcd(num.Abs(), den.Abs())
	n, _ := num.quoRem(g)
	d, _ := den.quoRem(g)
	if d.IsNeg() {
		n, d = n.Neg(), d.Neg()
	}
	return n, d
}
