package service

import (
	"context"
	"errors"

	"github.com/govalues/radix"
	"github.com/govalues/radix/internal/protocol"
)

// Diagnostic codes.
const (
	CodeUnknownType    = "unknown_type"
	CodeMalformed      = "malformed"
	CodeInvalidInput   = "invalid_argument"
	CodeOutOfRange     = "out_of_range"
	CodeDivisionByZero = "division_by_zero"
	CodeCanceled       = "canceled"
	CodeInternal       = "internal"
)

// Diagnostic is a classified request failure.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

var diagnoses = []struct {
	target error
	code   string
}{
	{protocol.ErrUnknownType, CodeUnknownType},
	{protocol.ErrMalformed, CodeMalformed},
	{radix.ErrDivisionByZero, CodeDivisionByZero},
	{radix.ErrBaseRange, CodeOutOfRange},
	{radix.ErrInvalidDigit, CodeInvalidInput},
	{radix.ErrDigitOverflow, CodeInvalidInput},
	{radix.ErrInvalidLiteral, CodeInvalidInput},
	{radix.ErrBaseMismatch, CodeInvalidInput},
	{radix.ErrNegativeExponent, CodeInvalidInput},
	{context.Canceled, CodeCanceled},
	{context.DeadlineExceeded, CodeCanceled},
}

// Diagnose classifies err.
// Errors it does not recognize are reported as internal failures.
func Diagnose(err error) Diagnostic {
	for _, d := range diagnoses {
		if errors.Is(err, d.target) {
			return Diagnostic{Code: d.code, Message: err.Error()}
		}
	}
	return Diagnostic{Code: CodeInternal, Message: "unexpected failure: " + err.Error()}
}
