// Package protocol implements the comma-separated line format spoken by the
// radix TCP server.
//
// A request is a single line of fields separated by commas:
//
//	convert,<value>,<source base>,<target base>
//	arif,<operand>,<operand>,<base>,<operator>
//
// The response is either the rendered result or a line starting with
// "error: ".
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxRequestBytes is the largest request a server reads from a connection.
const MaxRequestBytes = 200_000

// ErrorPrefix starts every failed response.
const ErrorPrefix = "error: "

var (
	// ErrUnknownType is returned when the first field names no known request.
	ErrUnknownType = errors.New("unknown request type")
	// ErrMalformed is returned when a request has the wrong shape.
	ErrMalformed = errors.New("malformed request")
)

// Kind is the request type, the first field of a request line.
type Kind string

const (
	KindConvert Kind = "convert"
	KindArith   Kind = "arif"
)

// Operator is an arithmetic operator of an arif request.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpQuo Operator = "/"
)

func (op Operator) valid() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpQuo:
		return true
	}
	return false
}

// Request is a parsed request line.
// Value, Source and Target are set for convert requests.
// A, B, Base and Op are set for arif requests.
type Request struct {
	Kind   Kind
	Value  string
	Source int
	Target int
	A      string
	B      string
	Base   int
	Op     Operator
}

// NewConvert returns a request that renders value, written in base src,
// in base dst.
func NewConvert(value string, src, dst int) Request {
	return Request{Kind: KindConvert, Value: value, Source: src, Target: dst}
}

// NewArith returns a request that evaluates "a op b" in base.
func NewArith(a, b string, base int, op Operator) Request {
	return Request{Kind: KindArith, A: a, B: b, Base: base, Op: op}
}

// Parse parses a request line.
// Surrounding whitespace, including a trailing newline, is ignored.
func Parse(line string) (Request, error) {
	line = strings.TrimSpace(line)
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	switch kind := Kind(fields[0]); kind {
	case KindConvert:
		if len(fields) != 4 {
			return Request{}, fieldCount(kind, 4, len(fields))
		}
		src, err := parseBase("source base", fields[2])
		if err != nil {
			return Request{}, err
		}
		dst, err := parseBase("target base", fields[3])
		if err != nil {
			return Request{}, err
		}
		return NewConvert(fields[1], src, dst), nil
	case KindArith:
		if len(fields) != 5 {
			return Request{}, fieldCount(kind, 5, len(fields))
		}
		base, err := parseBase("base", fields[3])
		if err != nil {
			return Request{}, err
		}
		op := Operator(fields[4])
		if !op.valid() {
			return Request{}, fmt.Errorf("operator %q is not one of + - * /: %w", op, ErrMalformed)
		}
		return NewArith(fields[1], fields[2], base, op), nil
	default:
		return Request{}, fmt.Errorf("%w %q", ErrUnknownType, kind)
	}
}

func parseBase(name, s string) (int, error) {
	b, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%v %q is not an integer: %w", name, s, ErrMalformed)
	}
	return b, nil
}

func fieldCount(kind Kind, want, got int) error {
	return fmt.Errorf("%v request needs %v fields, got %v: %w", kind, want, got, ErrMalformed)
}

// String returns the canonical request line.
// Two requests with the same canonical line produce the same response.
func (r Request) String() string {
	switch r.Kind {
	case KindConvert:
		return fmt.Sprintf("%v,%v,%v,%v", r.Kind, r.Value, r.Source, r.Target)
	case KindArith:
		return fmt.Sprintf("%v,%v,%v,%v,%v", r.Kind, r.A, r.B, r.Base, r.Op)
	}
	return string(r.Kind)
}

// FormatError returns the response line for a failed request.
func FormatError(msg string) string {
	return ErrorPrefix + msg
}

// IsError reports whether a response line is an error response.
func IsError(resp string) bool {
	return strings.HasPrefix(resp, ErrorPrefix)
}
