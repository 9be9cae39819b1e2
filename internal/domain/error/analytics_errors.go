// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Analytics domain errors. Degenerate data (empty ledger, single month,
// zero totals) is never one of these; only malformed requests are.
var (
	// ErrInvalidDateFormat is returned when a date is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidDateRange is returned when a range starts after it ends.
	ErrInvalidDateRange = errors.New("start date must not be after end date")

	// ErrInvalidPeriod is returned for an unknown period selector.
	ErrInvalidPeriod = errors.New("period must be one of: week, month, year, all")

	// ErrInvalidMonthWindow is returned when the trend window is not positive.
	ErrInvalidMonthWindow = errors.New("months must be a positive number")

	// ErrMissingReferenceDate is returned when an operation is called without a reference date.
	ErrMissingReferenceDate = errors.New("reference date is required")
)

// AnalyticsErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDateFormat       AnalyticsErrorCode = "ANL-010001"
	ErrCodeInvalidDateRange        AnalyticsErrorCode = "ANL-010002"
	ErrCodeInvalidPeriod           AnalyticsErrorCode = "ANL-010003"
	ErrCodeInvalidMonthWindow      AnalyticsErrorCode = "ANL-010004"
	ErrCodeMissingReferenceDate    AnalyticsErrorCode = "ANL-010005"
	ErrCodeMissingComparisonPeriod AnalyticsErrorCode = "ANL-010006"

	// Internal errors (99XXXX)
	ErrCodeAnalyticsInternalError AnalyticsErrorCode = "ANL-990001"
)

// AnalyticsError represents an analytics error with code and message.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
