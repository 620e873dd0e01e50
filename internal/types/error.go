package types

import (
	"errors"
	"net/http"
)

type ErrorCode string

const (
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	InvalidAmount        ErrorCode = "INVALID_AMOUNT"
	InsufficientStake    ErrorCode = "INSUFFICIENT_STAKE"
	TransferRejected     ErrorCode = "TRANSFER_REJECTED"
	AuthorizationDenied  ErrorCode = "AUTHORIZATION_DENIED"
	NotStaking           ErrorCode = "NOT_STAKING"
)

func (c ErrorCode) String() string {
	return string(c)
}

// Error is returned by every ledger operation that fails. No ledger state
// was changed by the operation that produced it.
type Error struct {
	StatusCode int
	ErrorCode  ErrorCode
	Err        error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        errors.New(msg),
	}
}

func NewInternalServiceError(err error) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  InternalServiceError,
		Err:        err,
	}
}

// IsErrorCode reports whether err is a ledger Error carrying the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	var ledgerErr *Error
	if !errors.As(err, &ledgerErr) {
		return false
	}
	return ledgerErr.ErrorCode == code
}
