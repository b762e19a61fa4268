package radix

import "fmt"

// MustNewInt is like [NewInt] but panics if the base is out of range.
// It simplifies safe initialization of global variables holding integers.
func MustNewInt(v int64, base int) Int {
	x, err := NewInt(v, base)
	if err != nil {
		panic(fmt.Sprintf("MustNewInt(%v, %v) failed: %v", v, base, err))
	}
	return x
}

// MustParseInt is like [ParseInt] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding integers.
func MustParseInt(s string, base int) Int {
	x, err := ParseInt(s, base)
	if err != nil {
		panic(fmt.Sprintf("MustParseInt(%q, %v) failed: %v", s, base, err))
	}
	return x
}

// MustNewFrac is like [NewFrac] but panics if the fraction cannot be constructed.
func MustNewFrac(num, den Int) Frac {
	f, err := NewFrac(num, den)
	if err != nil {
		panic(fmt.Sprintf("MustNewFrac(%v, %v) failed: %v", num, den, err))
	}
	return f
}

// MustParseFrac is like [ParseFrac] but panics if the string cannot be parsed.
func MustParseFrac(s string, base int) Frac {
	f, err := ParseFrac(s, base)
	if err != nil {
		panic(fmt.Sprintf("MustParseFrac(%q, %v) failed: %v", s, base, err))
	}
	return f
}

// MustParseNumber is like [ParseNumber] but panics if the literal cannot be parsed.
// It simplifies safe initialization of global variables holding numbers.
func MustParseNumber(s string, base int) Number {
	n, err := ParseNumber(s, base)
	if err != nil {
		panic(fmt.Sprintf("MustParseNumber(%q, %v) failed: %v", s, base, err))
	}
	return n
}

// MustAdd is like [Frac.Add] but panics if computing error.
func (f Frac) MustAdd(g Frac) Frac {
	h, err := f.Add(g)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v) failed: %v", g.RatString(), err))
	}
	return h
}

// MustSub is like [Frac.Sub] but panics if computing error.
func (f Frac) MustSub(g Frac) Frac {
	h, err := f.Sub(g)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v) failed: %v", g.RatString(), err))
	}
	return h
}

// MustMul is like [Frac.Mul] but panics if computing error.
func (f Frac) MustMul(g Frac) Frac {
	h, err := f.Mul(g)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", g.RatString(), err))
	}
	return h
}

// MustQuo is like [Frac.Quo] but panics if computing error.
func (f Frac) MustQuo(g Frac) Frac {
	h, err := f.Quo(g)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", g.RatString(), err))
	}
	return h
}
