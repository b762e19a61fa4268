/*
Package radix implements exact rational arithmetic on numbers of arbitrary size
written in arbitrary bases from 2 to 65536.
It reads and writes positional literals with repeating fractional parts,
such as 0.1(6) for one sixth, and converts them between bases without loss.

# Representation

[Int] is a struct with three fields:

  - Sign: a boolean indicating whether the integer is negative.
  - Base: the radix, from [MinBase] to [MaxBase].
  - Digits: the digit values, least significant first, each in [0, Base).

The numerical value of an integer is calculated as:

  - -(Digits[0] + Digits[1]*Base + Digits[2]*Base^2 + ...), if Sign is true.
  - Digits[0] + Digits[1]*Base + Digits[2]*Base^2 + ..., if Sign is false.

Zero is never negative and has exactly one digit.

[Frac] is a pair of integers written in the same base.
A fraction is always kept in lowest terms with a positive denominator,
so every rational value has exactly one representation.

[Number] is a parsed composite literal: the integer, fractional and periodic
sections as written, and the exact [Frac] they add up to.

# Literals

Digits from 0 to 9 are written as '0' to '9', digits from 10 to 35 as the
upper-case letters 'A' to 'Z', and larger digits as their decimal value in
square brackets:

	| Base | Literal  | Value (base 10) |
	| ---- | -------- | --------------- |
	| 2    | 101      | 5               |
	| 16   | -7F      | -127            |
	| 60   | 1[40]    | 100             |
	| 10   | 0.1(6)   | 1/6             |
	| 3    | 0.(1)    | 1/2             |

A composite literal has an optional sign, an integer part, an optional
fractional part after a point and an optional repeating block in parentheses.
See [ParseNumber] for the exact grammar.

# Operations

Arithmetic between two values requires them to share a base;
a mismatch is reported as an error, never converted silently.
Comparison is the only exception: [Int.Cmp] and [Frac.Cmp] convert the
second operand to the base of the first one.

Multiplication uses the Karatsuba algorithm for operands of 32 digits and
longer and the schoolbook algorithm below that.
Division searches the quotient by bisection and is exact: [Int.QuoRem]
truncates towards zero and its remainder has the sign of the dividend.

# Rendering

[Frac.Text] and [Number.Text] write the value in any base.
The fractional part is expanded digit by digit; the first remainder that
repeats marks the start of the repeating block, which is enclosed in
parentheses.
Expansions that do not repeat within [DefaultMaxDigits] digits are cut off
there; [Frac.TextN] and [Number.TextN] take a different limit.

# Errors

All methods, except the Must helpers, are panic-free and pure.
Errors wrap one of the following sentinel values and can be tested with
[errors.Is]:

  - [ErrInvalidDigit]: an unknown character or a digit not below the base.
  - [ErrDigitOverflow]: a bracketed digit below 10.
  - [ErrInvalidLiteral]: a composite literal with malformed sections.
  - [ErrBaseRange]: a base outside [MinBase, MaxBase].
  - [ErrBaseMismatch]: operands in different bases.
  - [ErrDivisionByZero]: integer or fraction division by 0.
  - [ErrNegativeExponent]: [Int.Pow] with a negative exponent.

[errors.Is]: https://pkg.go.dev/errors#Is
*/
package radix
