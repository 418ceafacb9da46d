package apperror

import "fmt"

// AppError is the error type every module returns to the transport layer.
// Code is a stable machine-readable identifier, Message is safe to show to
// the caller, HTTPStatus decides the response status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap keeps the original error reachable through errors.Is/As.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// WithDetails returns a copy of e carrying extra caller-facing context
// (available vs requested days, conflicting record id). The original error
// stays reachable through Unwrap so errors.Is still matches the base value.
func (e *AppError) WithDetails(format string, args ...any) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message + ": " + fmt.Sprintf(format, args...),
		HTTPStatus: e.HTTPStatus,
		Err:        e,
	}
}
