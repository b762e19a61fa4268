package radix

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"
)

func TestInt_ZeroValue(t *testing.T) {
	got := Int{}
	want := MustNewInt(0, 10)
	if !got.Equal(want) {
		t.Errorf("Int{} = %v, want %v", got, want)
	}
	if got.Base() != 10 {
		t.Errorf("Int{}.Base() = %v, want 10", got.Base())
	}
	if got.String() != "0" {
		t.Errorf("Int{}.String() = %q, want \"0\"", got.String())
	}
}

func TestInt_Interfaces(t *testing.T) {
	var x any = Int{}
	if _, ok := x.(fmt.Stringer); !ok {
		t.Errorf("%T does not implement fmt.Stringer", x)
	}
	if _, ok := x.(fmt.Formatter); !ok {
		t.Errorf("%T does not implement fmt.Formatter", x)
	}
}

func TestNewInt(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			v    int64
			base int
			want string
		}{
			{0, 2, "0"},
			{5, 2, "101"},
			{-5, 2, "-101"},
			{255, 16, "FF"},
			{100, 60, "1[40]"},
			{35, 36, "Z"},
			{36, 37, "[36]"},
			{math.MaxInt64, 10, "9223372036854775807"},
			{math.MinInt64, 10, "-9223372036854775808"},
			{65535, 65536, "[65535]"},
		}
		for _, tt := range tests {
			got, err := NewInt(tt.v, tt.base)
			if err != nil {
				t.Errorf("NewInt(%v, %v) failed: %v", tt.v, tt.base, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("NewInt(%v, %v) = %q, want %q", tt.v, tt.base, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		for _, base := range []int{-1, 0, 1, MaxBase + 1} {
			_, err := NewInt(1, base)
			if !errors.Is(err, ErrBaseRange) {
				t.Errorf("NewInt(1, %v) = %v, want %v", base, err, ErrBaseRange)
			}
		}
	})
}

func TestParseInt(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			s    string
			base int
			want int64
		}{
			{"0", 2, 0},
			{"-0", 10, 0},
			{"000123", 10, 123},
			{"101", 2, 5},
			{"-7F", 16, -127},
			{"Z", 36, 35},
			{"[36]", 37, 36},
			{"1[40]", 60, 100},
			{"[10]", 11, 10},
			{"[65535]", 65536, 65535},
			{"[35]Z", 36, 35*36 + 35},
		}
		for _, tt := range tests {
			got, err := ParseInt(tt.s, tt.base)
			if err != nil {
				t.Errorf("ParseInt(%q, %v) failed: %v", tt.s, tt.base, err)
				continue
			}
			v, ok := got.Int64()
			if !ok || v != tt.want {
				t.Errorf("ParseInt(%q, %v) = %v, want %v", tt.s, tt.base, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			s    string
			base int
			want error
		}{
			"empty 1":       {"", 10, ErrInvalidDigit},
			"empty 2":       {"-", 10, ErrInvalidDigit},
			"range 1":       {"2", 2, ErrInvalidDigit},
			"range 2":       {"A", 10, ErrInvalidDigit},
			"range 3":       {"[40]", 40, ErrInvalidDigit},
			"lower case 1":  {"-7f", 16, ErrInvalidDigit},
			"lower case 2":  {"z", 36, ErrInvalidDigit},
			"character 1":   {"1 2", 10, ErrInvalidDigit},
			"character 2":   {"+1", 10, ErrInvalidDigit},
			"character 3":   {"1.5", 10, ErrInvalidDigit},
			"bracket 1":     {"[12", 20, ErrInvalidDigit},
			"bracket 2":     {"[]", 20, ErrInvalidDigit},
			"bracket 3":     {"[1a]", 20, ErrInvalidDigit},
			"bracket 4":     {"[99999999]", MaxBase, ErrInvalidDigit},
			"overflow 1":    {"[5]", 20, ErrDigitOverflow},
			"overflow 2":    {"[09]", 20, ErrDigitOverflow},
			"double sign 1": {"--1", 10, ErrInvalidDigit},
			"base 1":        {"1", 1, ErrBaseRange},
			"base 2":        {"1", MaxBase + 1, ErrBaseRange},
		}
		for name, tt := range tests {
			_, err := ParseInt(tt.s, tt.base)
			if !errors.Is(err, tt.want) {
				t.Errorf("%v: ParseInt(%q, %v) = %v, want %v", name, tt.s, tt.base, err, tt.want)
			}
		}
	})
}

func TestInt_Text(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			s          string
			base, dest int
			want       string
		}{
			{"0", 10, 2, "0"},
			{"255", 10, 16, "FF"},
			{"-255", 10, 16, "-FF"},
			{"255", 10, 2, "11111111"},
			{"FF", 16, 10, "255"},
			{"100", 10, 60, "1[40]"},
			{"36", 10, 100, "[36]"},
			{"35", 10, 100, "Z"},
			{"10", 10, 100, "A"},
			{"65535", 10, 65536, "[65535]"},
			{"65536", 10, 65536, "10"},
		}
		for _, tt := range tests {
			x := MustParseInt(tt.s, tt.base)
			got, err := x.Text(tt.dest)
			if err != nil {
				t.Errorf("%q.Text(%v) failed: %v", tt.s, tt.dest, err)
				continue
			}
			if got != tt.want {
				t.Errorf("%q.Text(%v) = %q, want %q", tt.s, tt.dest, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		x := MustNewInt(1, 10)
		_, err := x.Text(1)
		if !errors.Is(err, ErrBaseRange) {
			t.Errorf("%v.Text(1) = %v, want %v", x, err, ErrBaseRange)
		}
	})
}

func TestInt_Rebase(t *testing.T) {
	for base := MinBase; base <= 200; base++ {
		x := MustNewInt(-123456789, 10)
		y, err := x.Rebase(base)
		if err != nil {
			t.Errorf("%v.Rebase(%v) failed: %v", x, base, err)
			continue
		}
		if y.Base() != base {
			t.Errorf("%v.Rebase(%v).Base() = %v", x, base, y.Base())
		}
		if !y.Equal(x) || !x.Equal(y) {
			t.Errorf("%v.Rebase(%v) = %v, not equal", x, base, y)
		}
		z, err := y.Rebase(10)
		if err != nil || z.String() != "-123456789" {
			t.Errorf("%v.Rebase(10) = %v, %v, want -123456789", y, z, err)
		}
	}
}

func TestInt_Arithmetic(t *testing.T) {
	tests := []struct {
		a, b                     int64
		base                     int
		sum, diff, prod, quo, rm int64
	}{
		{0, 1, 10, 1, -1, 0, 0, 0},
		{7, 2, 10, 9, 5, 14, 3, 1},
		{-7, 2, 10, -5, -9, -14, -3, -1},
		{7, -2, 10, 5, 9, -14, -3, 1},
		{-7, -2, 10, -9, -5, 14, 3, -1},
		{100, 100, 2, 200, 0, 10000, 1, 0},
		{65535, 65535, 65536, 131070, 0, 4294836225, 1, 0},
		{123456789, 1000, 37, 123457789, 123455789, 123456789000, 123456, 789},
	}
	for _, tt := range tests {
		a, b := MustNewInt(tt.a, tt.base), MustNewInt(tt.b, tt.base)
		check := func(op string, got Int, err error, want int64) {
			t.Helper()
			if err != nil {
				t.Errorf("%v %v %v in base %v failed: %v", tt.a, op, tt.b, tt.base, err)
				return
			}
			if v, ok := got.Int64(); !ok || v != want {
				t.Errorf("%v %v %v in base %v = %v, want %v", tt.a, op, tt.b, tt.base, got, want)
			}
		}
		got, err := a.Add(b)
		check("+", got, err, tt.sum)
		got, err = a.Sub(b)
		check("-", got, err, tt.diff)
		got, err = a.Mul(b)
		check("*", got, err, tt.prod)
		got, err = a.Quo(b)
		check("/", got, err, tt.quo)
		got, err = a.Rem(b)
		check("%", got, err, tt.rm)
	}
}

func TestInt_QuoRem(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		values := []string{"0", "1", "-1", "9", "-10", "123456789012345678901234567890", "-98765432109876543210"}
		for _, as := range values {
			for _, bs := range values {
				a, b := MustParseInt(as, 10), MustParseInt(bs, 10)
				if b.IsZero() {
					continue
				}
				q, r, err := a.QuoRem(b)
				if err != nil {
					t.Errorf("%v.QuoRem(%v) failed: %v", a, b, err)
					continue
				}
				back := q.mul(b).add(r)
				if !back.Equal(a) {
					t.Errorf("%v.QuoRem(%v) = (%v, %v), but q * b + r = %v", a, b, q, r, back)
				}
				if r.Abs().Cmp(b.Abs()) >= 0 {
					t.Errorf("%v.QuoRem(%v) remainder %v is not smaller than divisor", a, b, r)
				}
				if !r.IsZero() && r.Sign() != a.Sign() {
					t.Errorf("%v.QuoRem(%v) remainder %v does not have the sign of the dividend", a, b, r)
				}
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			a, b Int
			want error
		}{
			"zero 1": {MustNewInt(1, 10), MustNewInt(0, 10), ErrDivisionByZero},
			"zero 2": {MustNewInt(0, 2), MustNewInt(0, 2), ErrDivisionByZero},
			"base 1": {MustNewInt(1, 10), MustNewInt(1, 16), ErrBaseMismatch},
		}
		for name, tt := range tests {
			_, _, err := tt.a.QuoRem(tt.b)
			if !errors.Is(err, tt.want) {
				t.Errorf("%v: %v.QuoRem(%v) = %v, want %v", name, tt.a, tt.b, err, tt.want)
			}
		}
	})
}

func TestInt_BaseMismatch(t *testing.T) {
	a, b := MustNewInt(1, 10), MustNewInt(1, 16)
	if _, err := a.Add(b); !errors.Is(err, ErrBaseMismatch) {
		t.Errorf("%v.Add(%v) = %v, want %v", a, b, err, ErrBaseMismatch)
	}
	if _, err := a.Sub(b); !errors.Is(err, ErrBaseMismatch) {
		t.Errorf("%v.Sub(%v) = %v, want %v", a, b, err, ErrBaseMismatch)
	}
	if _, err := a.Mul(b); !errors.Is(err, ErrBaseMismatch) {
		t.Errorf("%v.Mul(%v) = %v, want %v", a, b, err, ErrBaseMismatch)
	}
}

func TestInt_Pow(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			x, exp int
			base   int
			want   string
		}{
			{2, 0, 10, "1"},
			{0, 0, 10, "1"},
			{0, 5, 10, "0"},
			{2, 10, 10, "1024"},
			{-2, 3, 10, "-8"},
			{2, 64, 10, "18446744073709551616"},
			{10, 5, 2, "11000011010100000"},
		}
		for _, tt := range tests {
			x := MustNewInt(int64(tt.x), tt.base)
			got, err := x.Pow(tt.exp)
			if err != nil {
				t.Errorf("%v.Pow(%v) failed: %v", x, tt.exp, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("%v.Pow(%v) = %v, want %v", x, tt.exp, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		x := MustNewInt(2, 10)
		_, err := x.Pow(-1)
		if !errors.Is(err, ErrNegativeExponent) {
			t.Errorf("%v.Pow(-1) = %v, want %v", x, err, ErrNegativeExponent)
		}
	})
}

func TestInt_Cmp(t *testing.T) {
	tests := []struct {
		a     string
		abase int
		b     string
		bbase int
		want  int
	}{
		{"0", 10, "0", 2, 0},
		{"-0", 10, "0", 10, 0},
		{"1", 10, "0", 10, 1},
		{"-1", 10, "0", 10, -1},
		{"-1", 10, "-2", 10, 1},
		{"-2", 10, "-1", 10, -1},
		{"99", 10, "100", 10, -1},
		{"FF", 16, "255", 10, 0},
		{"FF", 16, "256", 10, -1},
		{"-FF", 16, "-11111111", 2, 0},
		{"1[40]", 60, "100", 10, 0},
	}
	for _, tt := range tests {
		a, b := MustParseInt(tt.a, tt.abase), MustParseInt(tt.b, tt.bbase)
		got := a.Cmp(b)
		if got != tt.want {
			t.Errorf("%v.Cmp(%v) = %v, want %v", a, b, got, tt.want)
		}
		if rev := b.Cmp(a); rev != -tt.want {
			t.Errorf("%v.Cmp(%v) = %v, want %v", b, a, rev, -tt.want)
		}
	}
}

func TestInt_Int64(t *testing.T) {
	tests := []struct {
		s      string
		want   int64
		wantOk bool
	}{
		{"0", 0, true},
		{"9223372036854775807", math.MaxInt64, true},
		{"-9223372036854775808", math.MinInt64, true},
		{"9223372036854775808", 0, false},
		{"-9223372036854775809", 0, false},
		{"100000000000000000000", 0, false},
	}
	for _, tt := range tests {
		x := MustParseInt(tt.s, 10)
		got, ok := x.Int64()
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("%v.Int64() = (%v, %v), want (%v, %v)", x, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestInt_Digits(t *testing.T) {
	x := MustParseInt("1[40]7", 60)
	got := x.Digits()
	want := []int{7, 40, 1}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("%v.Digits() = %v, want %v", x, got, want)
	}
	got[0] = 0
	if x.Digits()[0] != 7 {
		t.Errorf("Digits() returned a shared slice")
	}
	if x.Len() != 3 {
		t.Errorf("%v.Len() = %v, want 3", x, x.Len())
	}
}

func TestMustParseInt(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustParseInt(\"G\", 16) did not panic")
		}
	}()
	MustParseInt("G", 16)
}

func FuzzInt_Text(f *testing.F) {
	f.Add(int64(0), 10, 2)
	f.Add(int64(-123456789), 10, 60)
	f.Add(int64(1<<62), 65536, 3)

	f.Fuzz(
		func(t *testing.T, v int64, base, dest int) {
			if base < MinBase || base > MaxBase || dest < MinBase || dest > MaxBase {
				t.Skip()
				return
			}
			x := MustNewInt(v, base)
			s, err := x.Text(dest)
			if err != nil {
				t.Errorf("%v.Text(%v) failed: %v", x, dest, err)
				return
			}
			y, err := ParseInt(s, dest)
			if err != nil {
				t.Errorf("ParseInt(%q, %v) failed: %v", s, dest, err)
				return
			}
			if got, ok := y.Int64(); !ok || got != v {
				t.Errorf("ParseInt(%q, %v) = %v, want %v", s, dest, y, v)
			}
		},
	)
}

func FuzzInt_QuoRem(f *testing.F) {
	f.Add(int64(7), int64(2), 10)
	f.Add(int64(-7), int64(2), 3)
	f.Add(int64(1<<62), int64(-12345), 65536)

	f.Fuzz(
		func(t *testing.T, a, b int64, base int) {
			if base < MinBase || base > MaxBase || b == 0 {
				t.Skip()
				return
			}
			x, y := MustNewInt(a, base), MustNewInt(b, base)
			q, r, err := x.QuoRem(y)
			if err != nil {
				t.Errorf("%v.QuoRem(%v) failed: %v", x, y, err)
				return
			}
			wq, wr := new(big.Int).QuoRem(big.NewInt(a), big.NewInt(b), new(big.Int))
			if got, _ := q.Int64(); wq.IsInt64() && got != wq.Int64() {
				t.Errorf("%v.QuoRem(%v) quotient = %v, want %v", x, y, q, wq)
			}
			if got, _ := r.Int64(); got != wr.Int64() {
				t.Errorf("%v.QuoRem(%v) remainder = %v, want %v", x, y, r, wr)
			}
		},
	)
}
