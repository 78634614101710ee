// Package codec defines the error taxonomy shared by the fixed-layout and
// generic structured codecs.
package codec

import (
	"errors"
	"fmt"
)

// Core codec errors
var (
	ErrLengthMismatch        = errors.New("buffer length mismatch")
	ErrSerializationFailed   = errors.New("serialization failed")
	ErrDeserializationFailed = errors.New("deserialization failed")
	ErrUnknownType           = errors.New("unknown type")
	ErrUnknownCodec          = errors.New("unknown codec")
)

// ErrorCode represents a numeric error code for efficient error handling
type ErrorCode int

const (
	ErrorCodeSuccess ErrorCode = 0

	ErrorCodeLengthMismatch        ErrorCode = 3001
	ErrorCodeSerializationFailed   ErrorCode = 3005
	ErrorCodeDeserializationFailed ErrorCode = 3006
	ErrorCodeUnknownType           ErrorCode = 3007
	ErrorCodeUnknownCodec          ErrorCode = 3008

	ErrorCodeUnknownError ErrorCode = 9999
)

var sentinels = map[ErrorCode]error{
	ErrorCodeLengthMismatch:        ErrLengthMismatch,
	ErrorCodeSerializationFailed:   ErrSerializationFailed,
	ErrorCodeDeserializationFailed: ErrDeserializationFailed,
	ErrorCodeUnknownType:           ErrUnknownType,
	ErrorCodeUnknownCodec:          ErrUnknownCodec,
}

// Error represents a codec failure with the operation and codec that raised it.
type Error struct {
	Code    ErrorCode
	Codec   string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.Codec != "" {
		msg = e.Codec + ": " + msg
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel for the code and the underlying cause, so
// errors.Is matches either.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := sentinels[e.Code]; ok {
		errs = append(errs, s)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func NewError(code ErrorCode, codecName, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Codec:   codecName,
		Message: message,
		Cause:   cause,
	}
}

// LengthMismatch reports a buffer that is not exactly the expected size.
func LengthMismatch(codecName string, got, want int) *Error {
	return NewError(ErrorCodeLengthMismatch, codecName,
		fmt.Sprintf("buffer length mismatch: got %d bytes, want %d", got, want), nil)
}

func SerializationFailed(codecName string, cause error) *Error {
	return NewError(ErrorCodeSerializationFailed, codecName, "serialization failed", cause)
}

func DeserializationFailed(codecName string, cause error) *Error {
	return NewError(ErrorCodeDeserializationFailed, codecName, "deserialization failed", cause)
}

// GetErrorCode returns the error code for a given error
func GetErrorCode(err error) ErrorCode {
	if err == nil {
		return ErrorCodeSuccess
	}

	var codecErr *Error
	if errors.As(err, &codecErr) {
		return codecErr.Code
	}

	for code, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return code
		}
	}

	return ErrorCodeUnknownError
}
