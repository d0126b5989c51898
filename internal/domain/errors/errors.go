package errors

import (
	"net/http"

	"shopfront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
	parent    *BaseError
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is lets a refined error (WithDetails, Refine) still match its origin.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	for cur := e; cur != nil; cur = cur.parent {
		if cur == t {
			return true
		}
	}

	return false
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
		parent:    e,
	}
}

// Refine returns a more specific error of the same kind with its own code and message.
func (e *BaseError) Refine(errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: errorCode,
		message:   message,
		parent:    e,
	}
}

// The taxonomy every failure is translated into.
var (
	ErrDuplicateIdentity = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_IDENTITY",
		"An account with this email already exists.",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"The requested resource was not found.",
		"",
	)

	ErrInvalidCredential = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIAL",
		"Incorrect password.",
		"",
	)

	ErrInvalidInput = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"The submitted data is invalid.",
		"",
	)

	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Please log in to access this page.",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You do not have access to this page.",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"An unexpected error occurred. Please try again later.",
		"",
	)
)

// Refinements of the taxonomy used where the notice should be more specific.
var (
	ErrAccountNotFound = ErrNotFound.Refine("ACCOUNT_NOT_FOUND", "No account found with that email address.")
	ErrShopNotFound    = ErrNotFound.Refine("SHOP_NOT_FOUND", "No shop is registered for this account.")
	ErrProductNotFound = ErrNotFound.Refine("PRODUCT_NOT_FOUND", "Product not found.")

	ErrPasswordMismatch = ErrInvalidInput.Refine("PASSWORD_MISMATCH", "Passwords do not match.")
	ErrPasswordStrength = ErrInvalidInput.Refine("PASSWORD_STRENGTH", "Password does not meet the strength requirements.")
	ErrInvalidPrice     = ErrInvalidInput.Refine("INVALID_PRICE", "Price must be greater than zero.")
	ErrInvalidImage     = ErrInvalidInput.Refine("INVALID_IMAGE", "Only image files are allowed.")
	ErrInvalidSheet     = ErrInvalidInput.Refine("INVALID_SHEET", "The spreadsheet could not be imported.")
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error for logging.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return ErrInternalError.Message()
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// AsAppError extracts the AppError carried by err, if any.
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}
