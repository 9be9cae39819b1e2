// Package error defines domain-specific errors for the Expense Tracker application.
package error

// RequestErrorCode defines error codes raised by the transport layer before a
// request reaches a use case.
// Format: REQ-XXYYYY where XX is category and YYYY is specific error.
type RequestErrorCode string

const (
	ErrCodeInvalidRequestBody RequestErrorCode = "REQ-010001"
	ErrCodeInvalidPathParam   RequestErrorCode = "REQ-010002"
	ErrCodeRateLimited        RequestErrorCode = "REQ-020001"
)
