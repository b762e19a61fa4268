package radix

// dint (Digit INTeger) is an unsigned integer stored as a slice of digits,
// least significant digit first.
// The base is not part of the value and is passed to every method that needs it.
// Methods never modify their receiver or arguments.
type dint []int

// karatsubaThreshold is the operand length in digits below which
// multiplication falls back to the schoolbook algorithm.
const karatsubaThreshold = 32

// dintFromUint64 returns u as a digit slice in the given base.
func dintFromUint64(u uint64, base int) dint {
	if u == 0 {
		return dint{0}
	}
	b := uint64(base)
	z := make(dint, 0, 8)
	for u > 0 {
		z = append(z, int(u%b))
		u /= b
	}
	return z
}

// clone returns a copy of x.
func (x dint) clone() dint {
	z := make(dint, len(x))
	copy(z, x)
	return z
}

// norm removes trailing zero digits from x.
// The result always has at least one digit.
func (x dint) norm() dint {
	i := len(x)
	for i > 1 && x[i-1] == 0 {
		i--
	}
	if i == 0 {
		return dint{0}
	}
	return x[:i]
}

// isZero returns true if x == 0.
func (x dint) isZero() bool {
	for _, d := range x {
		if d != 0 {
			return false
		}
	}
	return true
}

// cmp compares x and y and returns:
//
//	-1 if x < y
//	 0 if x == y
//	+1 if x > y
//
// Both x and y are assumed to be normalized.
func (x dint) cmp(y dint) int {
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// add calculates x + y.
func (x dint) add(y dint, base int) dint {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make(dint, len(x)+1)
	carry := 0
	for i := range x {
		s := x[i] + carry
		if i < len(y) {
			s += y[i]
		}
		if s >= base {
			s -= base
			carry = 1
		} else {
			carry = 0
		}
		z[i] = s
	}
	z[len(x)] = carry
	return z.norm()
}

// sub calculates x - y.
// If x < y, the result is undefined.
func (x dint) sub(y dint, base int) dint {
	z := make(dint, len(x))
	borrow := 0
	for i := range x {
		d := x[i] - borrow
		if i < len(y) {
			d -= y[i]
		}
		if d < 0 {
			d += base
			borrow = 1
		} else {
			borrow = 0
		}
		z[i] = d
	}
	return z.norm()
}

// shift (Left Shift) calculates x * base^k.
func (x dint) shift(k int) dint {
	if k <= 0 || x.isZero() {
		return x.clone()
	}
	z := make(dint, k+len(x))
	copy(z[k:], x)
	return z
}

// mulSmall calculates x * v, where 0 <= v.
func (x dint) mulSmall(v, base int) dint {
	if v == 0 {
		return dint{0}
	}
	z := make(dint, 0, len(x)+4)
	b := uint64(base)
	var carry uint64
	for _, d := range x {
		p := uint64(d)*uint64(v) + carry
		z = append(z, int(p%b))
		carry = p / b
	}
	for carry > 0 {
		z = append(z, int(carry%b))
		carry /= b
	}
	return z.norm()
}

// divSmall calculates q = ⌊x / v⌋ and r = x - v * q, where 0 < v.
func (x dint) divSmall(v, base int) (q dint, r int) {
	q = make(dint, len(x))
	b := uint64(base)
	var rem uint64
	for i := len(x) - 1; i >= 0; i-- {
		cur := rem*b + uint64(x[i])
		q[i] = int(cur / uint64(v))
		rem = cur % uint64(v)
	}
	return q.norm(), int(rem)
}

// mul calculates x * y.
func (x dint) mul(y dint, base int) dint {
	return karatsuba(x.norm(), y.norm(), base)
}

// mulSchool calculates x * y using the O(n·m) schoolbook algorithm.
func (x dint) mulSchool(y dint, base int) dint {
	if len(x) == 0 || len(y) == 0 {
		return dint{0}
	}
	b := uint64(base)
	z := make([]uint64, len(x)+len(y))
	for i, xd := range x {
		if xd == 0 {
			continue
		}
		var carry uint64
		for j, yd := range y {
			p := z[i+j] + uint64(xd)*uint64(yd) + carry
			z[i+j] = p % b
			carry = p / b
		}
		for k := i + len(y); carry > 0; k++ {
			p := z[k] + carry
			z[k] = p % b
			carry = p / b
		}
	}
	r := make(dint, len(z))
	for i, d := range z {
		r[i] = int(d)
	}
	return r.norm()
}

// karatsuba multiplies x and y by splitting both at half the length
// of the shorter operand:
//
//	x = x1 + x2 * base^k
//	y = y1 + y2 * base^k
//	x * y = x1y1 + ((x1 + x2)(y1 + y2) - x1y1 - x2y2) * base^k + x2y2 * base^2k
func karatsuba(x, y dint, base int) dint {
	// Special case
	if len(x) < karatsubaThreshold || len(y) < karatsubaThreshold {
		return x.mulSchool(y, base)
	}

	// General case
	k := min(len(x), len(y)) / 2
	x1, x2 := x[:k].norm(), x[k:]
	y1, y2 := y[:k].norm(), y[k:]

	x1y1 := karatsuba(x1, y1, base)
	x2y2 := karatsuba(x2, y2, base)
	mid := karatsuba(x1.add(x2, base), y1.add(y2, base), base)
	mid = mid.sub(x1y1, base)
	mid = mid.sub(x2y2, base)

	z := x1y1
	z = z.add(mid.shift(k), base)
	z = z.add(x2y2.shift(2*k), base)
	return z
}

// quoRem calculates q = ⌊x / y⌋ and r = x - y * q, where 0 < y.
//
// The quotient is found by a binary search over the candidates in
// [0, min(x + 1, base^(len(x) - len(y) + 1))): a candidate is kept as the lower
// bound when its product with y does not exceed x.
func (x dint) quoRem(y dint, base int) (q, r dint) {
	x, y = x.norm(), y.norm()

	// Special cases
	switch {
	case x.cmp(y) < 0:
		return dint{0}, x.clone()
	case len(y) == 1:
		q, rem := x.divSmall(y[0], base)
		return q, dint{rem}
	}

	// General case
	one := dint{1}
	lo := dint{0}
	hi := x.add(one, base)
	if bound := one.shift(len(x) - len(y) + 1); bound.cmp(hi) < 0 {
		hi = bound
	}
	for lo.add(one, base).cmp(hi) < 0 {
		mid, _ := lo.add(hi, base).divSmall(2, base)
		if mid.mul(y, base).cmp(x) <= 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, x.sub(lo.mul(y, base), base)
}

// convert returns the digits of x rewritten from base from to base to.
func (x dint) convert(from, to int) dint {
	x = x.norm()
	if from == to {
		return x.clone()
	}
	if x.isZero() {
		return dint{0}
	}
	z := make(dint, 0, len(x))
	for !x.isZero() {
		var r int
		x, r = x.divSmall(to, from)
		z = append(z, r)
	}
	return z
}

// uint64 converts x to uint64.
// The result is false if x does not fit.
func (x dint) uint64(base int) (uint64, bool) {
	var u uint64
	b := uint64(base)
	for i := len(x) - 1; i >= 0; i-- {
		if u > (^uint64(0)-uint64(x[i]))/b {
			return 0, false
		}
		u = u*b + uint64(x[i])
	}
	return u, true
}

// key returns a compact string identifying the digits of x.
// It is used as a map key and is not meant to be read by humans.
func (x dint) key() string {
	x = x.norm()
	buf := make([]byte, 0, 3*len(x))
	for _, d := range x {
		buf = append(buf, byte(d), byte(d>>8), byte(d>>16))
	}
	return string(buf)
}
