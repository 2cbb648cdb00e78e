// Package apperrors carries the typed failures every ledger operation can
// return. Kind decides the HTTP mapping, Code is the stable machine-readable
// identifier clients switch on.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindNotFound
	KindAuthorization
	KindTransient
)

const (
	CodeNegativeBalance         = "NEGATIVE_BALANCE"
	CodeNotCurrentWinner        = "NOT_CURRENT_WINNER"
	CodeInvalidPaymentDate      = "INVALID_PAYMENT_DATE"
	CodeDuplicateApproved       = "DUPLICATE_APPROVED_PAYMENT"
	CodeBillingCompleted        = "BILLING_ALREADY_COMPLETED"
	CodeDuplicateBillingDoc     = "DUPLICATE_BILLING_DOCUMENT"
	CodeInsufficientAvailable   = "INSUFFICIENT_AVAILABLE_BALANCE"
	CodeDuplicateRefundRequest  = "DUPLICATE_REFUND_REQUEST"
	CodeDuplicateUser           = "DUPLICATE_USER"
	CodeInvalidStateTransition  = "INVALID_STATE_TRANSITION"
	CodeInvalidAmount           = "INVALID_AMOUNT"
	CodeInvalidInput            = "INVALID_INPUT"
	CodeNotFound                = "NOT_FOUND"
	CodeForbidden               = "FORBIDDEN"
	CodeTxConflict              = "TX_CONFLICT"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// Is matches two apperrors by Code, so sentinel comparisons with errors.Is
// work across wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, err: err}
}

func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

func Conflict(code, message string) *Error {
	return New(KindConflict, code, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, CodeNotFound, message)
}

func Forbidden(message string) *Error {
	return New(KindAuthorization, CodeForbidden, message)
}

func Transient(message string, err error) *Error {
	return Wrap(KindTransient, CodeTxConflict, message, err)
}

// KindOf extracts the Kind from err, defaulting to Transient for unknown
// errors so callers treat them as retryable infrastructure failures.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindTransient, false
}

func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
