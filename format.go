package radix

import "fmt"

// Format implements [fmt.Formatter] interface.
// The following [verbs] are available:
//
//	%s, %v: -7F
//	%q:    "-7F"
//
// The following format flags can be used with all verbs: '+', ' ', '0', '-'.
// Digits are written in the base of x.
//
// [verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (x Int) Format(state fmt.State, verb rune) {
	formatText(state, verb, "radix.Int", false, x.IsNeg(), x.Abs().appendText(nil, x.Base()))
}

// Format implements [fmt.Formatter] interface.
// The following [verbs] are available:
//
//	%s, %v: -0.1(6)
//	%q:    "-0.1(6)"
//	%r:     -1/6
//
// The following format flags can be used with all verbs: '+', ' ', '0', '-'.
// Precision limits the number of fractional digits for %s, %v and %q verbs.
//
// [verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (f Frac) Format(state fmt.State, verb rune) {
	var body []byte
	switch verb {
	case 'r', 'R':
		body = f.Abs().num.appendText(nil, f.Base())
		body = append(body, '/')
		body = f.Den().appendText(body, f.Base())
	default:
		prec := 0
		if p, ok := state.Precision(); ok {
			prec = p
		}
		body = f.Abs().appendText(nil, f.Base(), prec, true)
	}
	formatText(state, verb, "radix.Frac", true, f.IsNeg(), body)
}

// Format implements [fmt.Formatter] interface.
// The following [verbs] are available:
//
//	%s, %v: -1.(3)
//	%q:    "-1.(3)"
//
// The following format flags can be used with all verbs: '+', ' ', '0', '-'.
// Precision limits the number of fractional digits.
//
// [verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (n Number) Format(state fmt.State, verb rune) {
	prec := 0
	if p, ok := state.Precision(); ok {
		prec = p
	}
	abs := n
	abs.total = n.total.Abs()
	formatText(state, verb, "radix.Number", false, n.total.IsNeg(), abs.appendText(nil, n.Base(), prec))
}

// formatText writes the unsigned body of a value with its sign, quotes
// and padding as requested by state.
// The %r verb is only valid when rat is set.
func formatText(state fmt.State, verb rune, typ string, rat, neg bool, body []byte) {
	// Arithmetic sign
	rsign := 0
	if neg || state.Flag('+') || state.Flag(' ') {
		rsign = 1
	}

	// Quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Padding
	width := lquote + rsign + len(body) + tquote
	lspaces, tspaces, lzeroes := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0'):
			lzeroes = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	// Writing buffer
	buf := make([]byte, 0, width)
	for i := 0; i < lspaces; i++ {
		buf = append(buf, ' ')
	}
	if lquote > 0 {
		buf = append(buf, '"')
	}
	if rsign > 0 {
		switch {
		case neg:
			buf = append(buf, '-')
		case state.Flag(' '):
			buf = append(buf, ' ')
		default:
			buf = append(buf, '+')
		}
	}
	for i := 0; i < lzeroes; i++ {
		buf = append(buf, '0')
	}
	buf = append(buf, body...)
	if tquote > 0 {
		buf = append(buf, '"')
	}
	for i := 0; i < tspaces; i++ {
		buf = append(buf, ' ')
	}

	// Writing result
	switch {
	case verb == 'q', verb == 'Q', verb == 's', verb == 'S', verb == 'v', verb == 'V':
		state.Write(buf)
	case rat && (verb == 'r' || verb == 'R'):
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(" + typ + "="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

// MarshalText implements [encoding.TextMarshaler] interface.
// Also see method [Int.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (x Int) MarshalText() ([]byte, error) {
	return x.appendText(nil, x.Base()), nil
}

// MarshalText implements [encoding.TextMarshaler] interface.
// The fraction is written as "num/den", see method [Frac.RatString].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (f Frac) MarshalText() ([]byte, error) {
	return []byte(f.RatString()), nil
}

// MarshalText implements [encoding.TextMarshaler] interface.
// Also see method [Number.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (n Number) MarshalText() ([]byte, error) {
	return n.appendText(nil, n.Base(), DefaultMaxDigits), nil
}
