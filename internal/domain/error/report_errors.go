// Package error defines domain-specific errors for the bookkeeping application.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidDateFormat is returned when a period bound is not a valid date.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidDateRange is returned when periodTo is before periodFrom.
	ErrInvalidDateRange = errors.New("periodTo must not be before periodFrom")

	// ErrInvalidActivity is returned when the activity filter is unknown.
	ErrInvalidActivity = errors.New("activity must be: operating, investing, or financing")

	// ErrInvalidReportLevel is returned when the plan-fact level is unknown.
	ErrInvalidReportLevel = errors.New("level must be: article, department, or deal")

	// ErrInvalidRounding is returned when the rounding unit is not a non-negative integer.
	ErrInvalidRounding = errors.New("rounding must be a non-negative integer")

	// ErrInvalidArticleID is returned when parentArticleId is not a valid identifier.
	ErrInvalidArticleID = errors.New("invalid parentArticleId")

	// ErrInvalidBudgetID is returned when budgetId is not a valid identifier.
	ErrInvalidBudgetID = errors.New("invalid budgetId")

	// ErrReportGenerationFailed is returned when a report could not be computed.
	ErrReportGenerationFailed = errors.New("report generation failed")

	// ErrCacheInvalidationFailed is returned when the report cache could not be cleared.
	ErrCacheInvalidationFailed = errors.New("report cache invalidation failed")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDateFormat ReportErrorCode = "RPT-010001"
	ErrCodeInvalidDateRange  ReportErrorCode = "RPT-010002"
	ErrCodeInvalidActivity   ReportErrorCode = "RPT-010003"
	ErrCodeInvalidLevel      ReportErrorCode = "RPT-010004"
	ErrCodeInvalidRounding   ReportErrorCode = "RPT-010005"
	ErrCodeInvalidArticleID  ReportErrorCode = "RPT-010006"
	ErrCodeInvalidBudgetID   ReportErrorCode = "RPT-010007"

	// Internal errors (99XXXX)
	ErrCodeReportGenerationFailed  ReportErrorCode = "RPT-990001"
	ErrCodeCacheInvalidationFailed ReportErrorCode = "RPT-990002"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsValidation reports whether the code belongs to the validation category.
func (c ReportErrorCode) IsValidation() bool {
	return len(c) >= 6 && c[4:6] == "01"
}
