package radix

import (
	"fmt"
	"strings"
)

// decodePeriod converts the repeating block of a periodic literal into
// a numerator and a denominator in the given base.
//
// A purely repeating expansion 0.(d1...dk) equals d1...dk / (base^k - 1).
// When the block starts after zeros fractional positions, the denominator
// is shifted by writing that many '0' characters after it:
//
//	0.00(12) = 12 / 9900 in base 10
//
// The block must contain at least one digit; a bracket group counts as one.
func decodePeriod(block string, base, zeros int) (num, den Int, err error) {
	num, err = ParseInt(block, base)
	if err != nil {
		return Int{}, Int{}, fmt.Errorf("parsing period %q: %w", block, err)
	}
	if num.IsNeg() {
		return Int{}, Int{}, fmt.Errorf("signed period %q: %w", block, ErrInvalidLiteral)
	}
	k := countDigits(block)
	radix := newInt(false, dintFromUint64(uint64(base), base), base)
	den = radix.pow(k).sub(newInt(false, dint{1}, base))
	den, err = ParseInt(den.String()+strings.Repeat("0", zeros), base)
	if err != nil {
		return Int{}, Int{}, fmt.Errorf("shifting period %q: %w", block, err)
	}
	return num, den, nil
}
