// Package errors provides structured errors carrying a typed ErrorCode.
//
// Codes are grouped by range:
//   - General (1-99)
//   - Validation (100-199): bad settings, periods, windows, configuration
//   - Data (200-299): empty or unusable candle series
//   - Indicator (300-399): registry lookups
//   - Backtest (600-699): pipeline stage failures
//   - Market data (700-799): provider fetch and parse failures
//   - Oracle (800-899): generative model failures
//   - Store (900-999): strategy repository failures
//
// Usage:
//
//	err := errors.Newf(errors.ErrCodeInvalidPeriod, "period must be positive, got %d", p)
//	err = errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "binance klines", cause)
//	if errors.HasCode(err, errors.ErrCodeOracleQuota) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is an error with a code, a message and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates an Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates an Error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps cause in an Error with the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps cause in an Error with a formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the first *Error in err's chain,
// or ErrCodeUnknown when there is none.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode reports whether any *Error in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}

		err = errors.Unwrap(err)
	}

	return false
}
