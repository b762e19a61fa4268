package radix

import (
	"fmt"
	"strconv"
	"strings"
)

// digitKind classifies how a single digit is spelled in a literal.
type digitKind uint8

const (
	plainDigit   digitKind = iota // '0'..'9', values 0..9
	letterDigit                   // 'A'..'Z', values 10..35
	bracketDigit                  // "[n]", values 10 and above
)

// maxLetter is the largest digit value that has a single-character spelling.
const maxLetter = 35

// token is one digit of a literal together with its spelling.
type token struct {
	kind  digitKind
	value int
}

// kindOf returns the spelling used when rendering digit value v.
func kindOf(v int) digitKind {
	switch {
	case v < 10:
		return plainDigit
	case v <= maxLetter:
		return letterDigit
	default:
		return bracketDigit
	}
}

// appendDigit appends the spelling of digit value v to buf.
func appendDigit(buf []byte, v int) []byte {
	switch kindOf(v) {
	case plainDigit:
		return append(buf, byte('0'+v))
	case letterDigit:
		return append(buf, byte('A'+v-10))
	default:
		buf = append(buf, '[')
		buf = strconv.AppendInt(buf, int64(v), 10)
		return append(buf, ']')
	}
}

// scanDigits splits s into digit tokens and validates them against base.
// The formal EBNF grammar for s is as follows:
//
//	plain   ::= '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9'
//	letter  ::= 'A' ... 'Z'
//	bracket ::= '[' plain { plain } ']'
//	digits  ::= { plain | letter | bracket }
//
// Tokens are returned most significant first, in the order they appear.
func scanDigits(s string, base int) ([]token, error) {
	toks := make([]token, 0, len(s))
	for pos := 0; pos < len(s); {
		c := s[pos]
		var t token
		switch {
		case c >= '0' && c <= '9':
			t = token{kind: plainDigit, value: int(c - '0')}
			pos++
		case c >= 'A' && c <= 'Z':
			t = token{kind: letterDigit, value: int(c-'A') + 10}
			pos++
		case c == '[':
			end := strings.IndexByte(s[pos:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated bracket at position %v: %w", pos, ErrInvalidDigit)
			}
			lit := s[pos+1 : pos+end]
			v, err := parseBracket(lit)
			if err != nil {
				return nil, err
			}
			t = token{kind: bracketDigit, value: v}
			pos += end + 1
		default:
			return nil, fmt.Errorf("invalid character %q: %w", c, ErrInvalidDigit)
		}
		if t.value >= base {
			return nil, fmt.Errorf("digit %v is out of range for base %v: %w", t.value, base, ErrInvalidDigit)
		}
		toks = append(toks, t)
	}
	return toks, nil
}

// parseBracket decodes the decimal literal between '[' and ']'.
func parseBracket(lit string) (int, error) {
	if lit == "" {
		return 0, fmt.Errorf("empty bracket: %w", ErrInvalidDigit)
	}
	v := 0
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid character %q in bracket: %w", c, ErrInvalidDigit)
		}
		v = v*10 + int(c-'0')
		if v > MaxBase {
			return 0, fmt.Errorf("bracket [%v] exceeds maximum base %v: %w", lit, MaxBase, ErrInvalidDigit)
		}
	}
	if v < 10 {
		return 0, fmt.Errorf("bracket [%v] must be written as a plain digit: %w", lit, ErrDigitOverflow)
	}
	return v, nil
}

// countDigits returns the number of digit positions in s,
// where a bracket group counts as a single position.
// s is assumed to be valid for scanDigits.
func countDigits(s string) int {
	n := 0
	inside := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '[':
			inside = true
			n++
		case c == ']':
			inside = false
		case !inside:
			n++
		}
	}
	return n
}
