package ecdsacanon

import (
	"fmt"
)

// ErrorCode identifies a kind of normalization error.  It has full support
// for errors.Is and errors.As, so the caller can directly check against an
// error code when determining the reason for an error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrInvalidInput is returned when the signer output or a caller
	// supplied parameter is malformed, such as an r or s buffer that is not
	// exactly 32 bytes or a chain factor that overflows v.
	ErrInvalidInput ErrorCode = iota

	// ErrInvalidSignature is returned when r or s is zero or not below the
	// group order.  A correctly functioning signer never produces this, so a
	// fresh signature must be requested.
	ErrInvalidSignature

	// ErrInvalidKeySlot is returned when a key slot is outside the range
	// available for user keys.
	ErrInvalidKeySlot

	// ErrInvalidDigest is returned when a message digest is not 32 bytes.
	ErrInvalidDigest

	// numErrorCodes is the maximum error code number used in tests.  This
	// entry MUST be the last entry in the enum.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidInput:     "ErrInvalidInput",
	ErrInvalidSignature: "ErrInvalidSignature",
	ErrInvalidKeySlot:   "ErrInvalidKeySlot",
	ErrInvalidDigest:    "ErrInvalidDigest",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error implements the error interface.
func (e ErrorCode) Error() string {
	return e.String()
}

// Is implements the interface to work with the standard library's errors.Is.
//
// It returns true in the following cases:
// - The target is a Error and the error codes match
// - The target is a ErrorCode and the error codes match
func (e ErrorCode) Is(target error) bool {
	switch target := target.(type) {
	case Error:
		return e == target.ErrorCode

	case ErrorCode:
		return e == target
	}

	return false
}

// Error identifies a normalization error.  It has full support for errors.Is
// and errors.As, so the caller can ascertain the specific reason for the
// error by checking the underlying error code.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Is implements the interface to work with the standard library's errors.Is.
func (e Error) Is(target error) bool {
	switch target := target.(type) {
	case Error:
		return e.ErrorCode == target.ErrorCode

	case ErrorCode:
		return target == e.ErrorCode
	}

	return false
}

// Unwrap returns the underlying wrapped error code.
func (e Error) Unwrap() error {
	return e.ErrorCode
}

// canonError creates an Error given a set of arguments.
func canonError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}
