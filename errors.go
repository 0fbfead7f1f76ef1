package vcdiff

import (
	"fmt"
)

// ErrorCode identifies the category of a decoding failure.
type ErrorCode int

const (
	// ErrCodeBadMagic is returned when the delta does not start with the
	// VCDIFF magic bytes.
	ErrCodeBadMagic ErrorCode = iota + 1
	// ErrCodeUnsupportedVersion is returned for a magic with an unknown
	// version byte.
	ErrCodeUnsupportedVersion
	// ErrCodeUnsupportedFeature is returned when the delta requests a
	// recognized but unimplemented extension, such as secondary section
	// compression.
	ErrCodeUnsupportedFeature
	// ErrCodeTruncatedInput is returned when a read runs past the end of
	// the delta or of a declared section.
	ErrCodeTruncatedInput
	// ErrCodeIntegerOverflow is returned when a variable-length integer
	// exceeds the width of the field it encodes.
	ErrCodeIntegerOverflow
	// ErrCodeLengthMismatch is returned when declared lengths do not
	// reconcile with the bytes actually present or produced.
	ErrCodeLengthMismatch
	// ErrCodeInvalidAddress is returned for a COPY address outside the
	// available source and target bytes, or an addressing mode outside
	// the range of the active code table.
	ErrCodeInvalidAddress
	// ErrCodeChecksumMismatch is returned when a window carries an
	// Adler-32 checksum that does not match the decoded bytes.
	ErrCodeChecksumMismatch
	// ErrCodeInvalidDelta is returned for structural corruption that is
	// not a length problem, such as contradictory window indicator bits
	// or a malformed custom code table.
	ErrCodeInvalidDelta
	// ErrCodeTargetSizeExceeded is returned when decoding would produce
	// more bytes than the limit set with WithMaxTargetSize.
	ErrCodeTargetSizeExceeded
)

var errCodeText = map[ErrorCode]string{
	ErrCodeBadMagic:           "vcdiff: bad magic",
	ErrCodeUnsupportedVersion: "vcdiff: unsupported version",
	ErrCodeUnsupportedFeature: "vcdiff: unsupported feature",
	ErrCodeTruncatedInput:     "vcdiff: truncated input",
	ErrCodeIntegerOverflow:    "vcdiff: integer overflow",
	ErrCodeLengthMismatch:     "vcdiff: length mismatch",
	ErrCodeInvalidAddress:     "vcdiff: invalid address",
	ErrCodeChecksumMismatch:   "vcdiff: checksum mismatch",
	ErrCodeInvalidDelta:       "vcdiff: invalid delta",
	ErrCodeTargetSizeExceeded: "vcdiff: target size exceeded",
}

// Error describes a failure while decoding a delta. It always has a non-zero
// error code. It may contain an underlying error value with more detail about
// the failure condition.
type Error struct {
	Code ErrorCode // category of the failure
	Err  error     // underlying error with detail; may be nil
}

// Error implements the builtin error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return errCodeText[e.Code] + ": " + e.Err.Error()
	}
	return errCodeText[e.Code]
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, err error) *Error {
	if err, ok := err.(*Error); ok {
		return err
	}
	return &Error{Code: code, Err: err}
}

func newErrorf(code ErrorCode, format string, v ...interface{}) *Error {
	return &Error{Code: code, Err: fmt.Errorf(format, v...)}
}
