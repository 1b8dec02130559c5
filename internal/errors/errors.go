// Package errors provides custom error types for the Auditdesk API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Audit errors.
var (
	ErrAuditNotFound  = &AppError{Code: "AUDIT_NOT_FOUND", Message: "Audit not found", StatusCode: http.StatusNotFound}
	ErrReportNotFound = &AppError{Code: "REPORT_NOT_FOUND", Message: "No report has been uploaded for this audit", StatusCode: http.StatusNotFound}
)

// Media errors.
var (
	ErrMediaNotFound    = &AppError{Code: "MEDIA_NOT_FOUND", Message: "Media file not found", StatusCode: http.StatusNotFound}
	ErrFileNotFound     = &AppError{Code: "FILE_NOT_FOUND", Message: "Stored file is missing", StatusCode: http.StatusNotFound}
	ErrNoFile           = &AppError{Code: "NO_FILE", Message: "Request must contain exactly one file part", StatusCode: http.StatusBadRequest}
	ErrPayloadTooLarge  = &AppError{Code: "PAYLOAD_TOO_LARGE", Message: "Uploaded file exceeds the size limit", StatusCode: http.StatusRequestEntityTooLarge}
	ErrInvalidMediaKind = &AppError{Code: "INVALID_MEDIA_KIND", Message: "Media kind must be one of image, video, audio, file", StatusCode: http.StatusBadRequest}
)

// Finding & evidence errors.
var (
	ErrFindingNotFound = &AppError{Code: "FINDING_NOT_FOUND", Message: "Finding not found", StatusCode: http.StatusNotFound}
	ErrCrossAuditMedia = &AppError{Code: "CROSS_AUDIT_EVIDENCE", Message: "Media file does not belong to the finding's audit", StatusCode: http.StatusBadRequest}
	ErrEvidenceExists  = &AppError{Code: "EVIDENCE_EXISTS", Message: "This media file is already attached to the finding", StatusCode: http.StatusConflict}
)

// Report errors.
var (
	ErrTemplateMissing = &AppError{Code: "TEMPLATE_MISSING", Message: "Report template file is not available", StatusCode: http.StatusBadRequest}
	ErrEmptyReportCSV  = &AppError{Code: "EMPTY_REPORT_CSV", Message: "Uploaded CSV contains no data rows", StatusCode: http.StatusBadRequest}
)
