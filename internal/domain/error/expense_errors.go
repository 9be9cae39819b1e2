// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense is not found.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidAmount is returned when the amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrMissingCategory is returned when no category is provided.
	ErrMissingCategory = errors.New("category is required")

	// ErrUnknownCategory is returned when the category is not registered.
	ErrUnknownCategory = errors.New("category does not exist")

	// ErrInvalidExpenseDate is returned when the expense date cannot be parsed.
	ErrInvalidExpenseDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrEmptySearchKeyword is returned when a search is requested without a keyword.
	ErrEmptySearchKeyword = errors.New("search keyword is required")

	// ErrNoFieldsToUpdate is returned when an update carries no changes.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrInvalidImportFile is returned when an import file cannot be parsed.
	ErrInvalidImportFile = errors.New("invalid import file")

	// ErrInvalidDayWindow is returned when a recent-expenses window is negative.
	ErrInvalidDayWindow = errors.New("days must be a positive number")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount         ExpenseErrorCode = "EXP-010001"
	ErrCodeMissingCategory       ExpenseErrorCode = "EXP-010002"
	ErrCodeUnknownCategory       ExpenseErrorCode = "EXP-010003"
	ErrCodeInvalidExpenseDate    ExpenseErrorCode = "EXP-010004"
	ErrCodeEmptySearchKeyword    ExpenseErrorCode = "EXP-010005"
	ErrCodeNoFieldsToUpdate      ExpenseErrorCode = "EXP-010006"
	ErrCodeInvalidImportFile     ExpenseErrorCode = "EXP-010007"
	ErrCodeInvalidExpenseRequest ExpenseErrorCode = "EXP-010008"

	// Not found errors (02XXXX)
	ErrCodeExpenseNotFound ExpenseErrorCode = "EXP-020001"

	// Internal errors (99XXXX)
	ErrCodeExpenseInternalError ExpenseErrorCode = "EXP-990001"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
